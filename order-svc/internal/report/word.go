package report

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"
)

const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

	docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	docxHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

	docxTail = `<w:sectPr><w:pgSz w:w="16838" w:h="11906" w:orient="landscape"/></w:sectPr></w:body></w:document>`
)

// RenderWord writes a minimal WordprocessingML package: a title paragraph
// and one bordered table with vertical merges.
func RenderWord(t Table) ([]byte, error) {
	var doc strings.Builder
	doc.WriteString(docxHead)

	doc.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/><w:sz w:val="32"/></w:rPr>`)
	writeText(&doc, t.Title)
	doc.WriteString(`</w:r></w:p>`)

	doc.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders>`)
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		doc.WriteString(`<w:` + side + ` w:val="single" w:sz="4" w:space="0" w:color="000000"/>`)
	}
	doc.WriteString(`</w:tblBorders></w:tblPr>`)

	doc.WriteString(`<w:tr>`)
	for _, h := range t.Header {
		doc.WriteString(`<w:tc><w:p><w:r><w:rPr><w:b/></w:rPr>`)
		writeText(&doc, h)
		doc.WriteString(`</w:r></w:p></w:tc>`)
	}
	doc.WriteString(`</w:tr>`)

	for i, row := range t.Rows {
		doc.WriteString(`<w:tr>`)
		for j, v := range row {
			doc.WriteString(`<w:tc>`)
			if merged, first := t.MergeAt(i, j); merged {
				if first {
					doc.WriteString(`<w:tcPr><w:vMerge w:val="restart"/></w:tcPr>`)
				} else {
					doc.WriteString(`<w:tcPr><w:vMerge/></w:tcPr>`)
					v = ""
				}
			}
			doc.WriteString(`<w:p><w:r>`)
			writeText(&doc, v)
			doc.WriteString(`</w:r></w:p></w:tc>`)
		}
		doc.WriteString(`</w:tr>`)
	}
	doc.WriteString(`</w:tbl>`)
	doc.WriteString(docxTail)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct{ name, body string }{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", doc.String()},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeText(b *strings.Builder, s string) {
	b.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(b, []byte(s))
	b.WriteString(`</w:t>`)
}
