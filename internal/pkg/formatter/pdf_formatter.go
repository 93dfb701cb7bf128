package formatter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/pitchperfect/pitch-backend/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Relative paths where the TTF font may live.
	// In Docker runtime fonts are copied to /app/ttf,
	// so for the compiled binary the path is ./ttf/DejaVuSans.ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path (useful when running from repo root with `go run`).
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}

	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}

	return ""
}

func (pf *PDFFormatter) Format(pitch *entity.Pitch) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	fontName := "Arial"
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, pitch.Title)
	pdf.Ln(10)

	pdf.SetFont(fontName, "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("%d min  |  %d words  |  hook: %s", pitch.DurationMinutes, pitch.ActualWordCount, pitch.HookStyle))
	pdf.Ln(12)

	_, lineHeight := pdf.GetFontSize()

	for _, block := range pitch.Blocks {
		pdf.SetFont(fontName, "B", 13)
		title := fmt.Sprintf("%s  (%s)", block.Title, blockTimeRange(block))
		if block.IsDemo {
			title += "  [demo]"
		}
		pdf.Cell(0, 8, title)
		pdf.Ln(9)

		pdf.SetFont(fontName, "", 12)
		pdf.MultiCell(0, lineHeight*1.5, block.Content, "", "", false)
		if block.VisualCue != nil {
			pdf.SetFont(fontName, "", 10)
			pdf.MultiCell(0, lineHeight*1.3, "Visual: "+*block.VisualCue, "", "", false)
		}
		pdf.Ln(4)
	}

	if len(pitch.BulletPoints) > 0 {
		pdf.SetFont(fontName, "B", 13)
		pdf.Cell(0, 8, "Key points")
		pdf.Ln(9)

		pdf.SetFont(fontName, "", 12)
		for _, point := range pitch.BulletPoints {
			pdf.MultiCell(0, lineHeight*1.5, "- "+point, "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
