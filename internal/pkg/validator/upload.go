package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

// Document extensions accepted by the parsing service.
var AllowedDocumentExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".pdf":  true,
	".docx": true,
	".pptx": true,
}

var allowedAudioContentTypes = map[string]bool{
	"audio/wav":                true,
	"audio/x-wav":              true,
	"audio/webm":               true,
	"audio/mpeg":               true,
	"application/octet-stream": true,
}

// ValidateAudioFile validates audio uploads before transcription.
func (v *Validator) ValidateAudioFile(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: audio file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".wav" && ext != ".webm" && ext != ".mp3" {
		return fmt.Errorf("%w: %s (allowed: wav, webm, mp3)", entity.ErrInvalidExtension, ext)
	}

	if file.Size > v.cfg.MaxAudioFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxAudioFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !allowedAudioContentTypes[contentType] {
		return fmt.Errorf("%w: content type '%s'", entity.ErrInvalidExtension, contentType)
	}

	return nil
}

// ValidateVideoFile validates the optional coach video capture.
func (v *Validator) ValidateVideoFile(file *multipart.FileHeader) error {
	if file == nil {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".webm" && ext != ".mp4" {
		return fmt.Errorf("%w: %s (allowed: webm, mp4)", entity.ErrInvalidExtension, ext)
	}

	if file.Size > v.cfg.MaxVideoFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxVideoFileSize)
	}

	return nil
}

// ValidateDocumentFile validates uploads sent to the document parsing
// service: allow-listed extension, 10 MiB cap.
func (v *Validator) ValidateDocumentFile(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: document file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedDocumentExtensions[ext] {
		return fmt.Errorf("%w: %s (allowed: txt, md, pdf, docx, pptx)", entity.ErrInvalidExtension, ext)
	}

	if file.Size > v.cfg.MaxDocumentSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxDocumentSize)
	}

	return nil
}
