package report

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// Widths of the order table columns in mm; they fill the 277 mm between margins.
var pdfColumnWidths = []float64{16, 24, 36, 20, 34, 9, 14, 16, 28, 30, 16, 16, 18}

func columnWidths(columns int) []float64 {
	if columns == len(pdfColumnWidths) {
		return pdfColumnWidths
	}
	widths := make([]float64, columns)
	for i := range widths {
		widths[i] = 277 / float64(columns)
	}
	return widths
}

// PDFRenderer draws the table on landscape A4. The core fonts only cover
// cp1252, so FontPath may name a UTF-8 TTF for other scripts.
type PDFRenderer struct {
	FontPath string
}

func (r PDFRenderer) Render(t Table) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if r.FontPath != "" {
		family = "report"
		pdf.AddUTF8Font(family, "", r.FontPath)
		pdf.AddUTF8Font(family, "B", r.FontPath)
		tr = func(s string) string { return s }
	}

	pdf.AddPage()
	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	widths := columnWidths(len(t.Header))
	header := func() {
		pdf.SetFont(family, "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range t.Header {
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(family, "", 8)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for i, row := range t.Rows {
		if pdf.GetY()+6 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for j, v := range row {
			border := "1"
			if merged, first := t.MergeAt(i, j); merged {
				// Continuation cells of a merge stay blank and open at the top.
				border = "LR"
				if first {
					border = "LRT"
				} else {
					v = ""
				}
				if i == t.lastRowOf(j, i) {
					border += "B"
				}
			}
			pdf.CellFormat(widths[j], 6, tr(v), border, 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lastRowOf returns the last row of the merge covering (row, col), or row.
func (t Table) lastRowOf(col, row int) int {
	for _, m := range t.Merges {
		if m.Column == col && row >= m.FirstRow && row <= m.LastRow {
			return m.LastRow
		}
	}
	return row
}
