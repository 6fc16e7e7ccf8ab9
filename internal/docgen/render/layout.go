package render

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"

	"famorg/internal/docgen/normalize"
)

// Lines starting with one of these markers render bold with extra
// trailing spacing.
var sectionMarkers = []string{
	"Objet :", "ATTESTATION", "PROCURATION", "AUTORISATION", "JUSTIFICATIF",
}

const (
	pageMargin = 20.0
	bodyWidth  = 170.0 // A4 width minus margins
)

// PDF lays filled content out on A4 pages: centered bold title, bold
// section-marker lines, extra spacing around fillable blanks, paragraph
// breaks on blank lines. Returns the document bytes and the page count.
func PDF(title, content string) ([]byte, int, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(bodyWidth, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, " \t")
		switch {
		case line == "":
			pdf.Ln(4)
		case isSectionLine(line):
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(bodyWidth, 6, tr(line), "", "L", false)
			pdf.Ln(3)
		case strings.Contains(line, normalize.BlankMarker):
			// Extra room around blanks the reader completes by hand.
			pdf.SetFont("Helvetica", "", 11)
			pdf.Ln(2)
			pdf.MultiCell(bodyWidth, 8, tr(line), "", "L", false)
			pdf.Ln(2)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(bodyWidth, 6, tr(line), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pdf.PageCount(), nil
}

func isSectionLine(line string) bool {
	for _, marker := range sectionMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
