package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Converter turns a titled plain-text document into a binary file.
type Converter interface {
	Convert(title, body string) ([]byte, error)
}

// PDFConverter writes an A4 page flow with the core Helvetica font.
type PDFConverter struct{}

var _ Converter = PDFConverter{}

func (PDFConverter) Convert(title, body string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 7, tr(title), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(body), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
