package formatter

import (
	"fmt"
	"time"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

// Formatter renders a generated pitch script for download/print.
type Formatter interface {
	Format(pitch *entity.Pitch) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// blockTimeRange renders "0:00 – 0:45" style labels for a speech block.
func blockTimeRange(b entity.SpeechBlock) string {
	return fmt.Sprintf("%s – %s", formatSeconds(b.StartSeconds), formatSeconds(b.EndSeconds))
}

func formatSeconds(s float64) string {
	d := time.Duration(s * float64(time.Second))
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
