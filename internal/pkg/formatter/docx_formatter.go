package formatter

import (
	"bytes"
	"fmt"

	"github.com/pitchperfect/pitch-backend/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(pitch *entity.Pitch) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(pitch.Title)

	metaPar := doc.AddParagraph()
	metaPar.AddRun().AddText(fmt.Sprintf("%d min | %d words | hook: %s", pitch.DurationMinutes, pitch.ActualWordCount, pitch.HookStyle))

	for _, block := range pitch.Blocks {
		headPar := doc.AddParagraph()
		headPar.SetStyle("Heading2")
		head := fmt.Sprintf("%s (%s)", block.Title, blockTimeRange(block))
		if block.IsDemo {
			head += " [demo]"
		}
		headPar.AddRun().AddText(head)

		bodyPar := doc.AddParagraph()
		bodyPar.AddRun().AddText(block.Content)

		if block.VisualCue != nil {
			cuePar := doc.AddParagraph()
			cueRun := cuePar.AddRun()
			cueRun.Properties().SetItalic(true)
			cueRun.AddText("Visual: " + *block.VisualCue)
		}
	}

	if len(pitch.BulletPoints) > 0 {
		headPar := doc.AddParagraph()
		headPar.SetStyle("Heading2")
		headPar.AddRun().AddText("Key points")

		for _, point := range pitch.BulletPoints {
			pointPar := doc.AddParagraph()
			pointPar.AddRun().AddText("• " + point)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
