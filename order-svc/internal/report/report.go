// Package report renders order listings as Excel, Word and PDF files.
package report

import "fmt"

type Renderer struct {
	PDF PDFRenderer
}

func NewRenderer(pdfFont string) *Renderer {
	return &Renderer{PDF: PDFRenderer{FontPath: pdfFont}}
}

func (r *Renderer) Render(t Table, f Format) ([]byte, error) {
	switch f {
	case FormatExcel:
		return RenderExcel(t)
	case FormatWord:
		return RenderWord(t)
	case FormatPDF:
		return r.PDF.Render(t)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
