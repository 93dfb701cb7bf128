package validator

import (
	"github.com/pitchperfect/pitch-backend/internal/config"
)

// Validator checks incoming requests before any remote service or
// repository is touched.
type Validator struct {
	cfg config.FileUploadConfig
}

func NewValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// MaxUploadSize is the in-memory cap handlers pass to
// ParseMultipartForm.
func (v *Validator) MaxUploadSize() int64 {
	return v.cfg.MaxUploadSize
}
