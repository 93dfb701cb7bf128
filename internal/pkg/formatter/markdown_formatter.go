package formatter

import (
	"bytes"
	"fmt"

	"github.com/pitchperfect/pitch-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(pitch *entity.Pitch) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", pitch.Title)
	fmt.Fprintf(&buf, "_%d min · %d words · hook: %s_\n\n", pitch.DurationMinutes, pitch.ActualWordCount, pitch.HookStyle)

	for _, block := range pitch.Blocks {
		fmt.Fprintf(&buf, "## %s (%s)\n\n", block.Title, blockTimeRange(block))
		if block.IsDemo {
			buf.WriteString("> **Demo segment**\n\n")
		}
		fmt.Fprintf(&buf, "%s\n\n", block.Content)
		if block.VisualCue != nil {
			fmt.Fprintf(&buf, "_Visual: %s_\n\n", *block.VisualCue)
		}
	}

	if len(pitch.BulletPoints) > 0 {
		buf.WriteString("## Key points\n\n")
		for _, point := range pitch.BulletPoints {
			fmt.Fprintf(&buf, "- %s\n", point)
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
