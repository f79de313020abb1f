package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Worksheet is a printable list of generated questions.
type Worksheet struct {
	Title     string
	Source    string
	Language  string
	Questions []string
	Date      time.Time
}

// WorksheetPDF renders ws as a numbered A4 question sheet.
func WorksheetPDF(ws Worksheet) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(ws.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; translate UTF-8 input before drawing.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(ws.Title), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	meta := fmt.Sprintf("Source: %s | Language: %s | %d questions | %s",
		ws.Source, ws.Language, len(ws.Questions), ws.Date.Format("2006-01-02"))
	pdf.CellFormat(0, 6, tr(meta), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	if len(ws.Questions) == 0 {
		pdf.MultiCell(0, 7, "No questions could be generated from this document.", "", "L", false)
	}
	for i, q := range ws.Questions {
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", i+1, q)), "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render worksheet: %w", err)
	}
	return buf.Bytes(), nil
}
