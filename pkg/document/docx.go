package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// OOXML (docx) serialization. The package emits the minimal part set Word
// needs: content types, package rels, document body, style pool and one
// footer. Block-level mutations never touch these shared parts, which is how
// template styling survives marker substitution.

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>
</Types>`

	packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>
</Relationships>`

	wordprocessingNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return xmlEscaper.Replace(s) }

// Bytes serializes the document to a complete .docx byte stream.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/document.xml", d.documentXML()},
		{"word/styles.xml", d.stylesXML()},
		{"word/footer1.xml", d.footerXML()},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create docx part %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return nil, fmt.Errorf("write docx part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize docx archive: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *Document) documentXML() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<w:document ` + wordprocessingNS + `><w:body>`)
	for _, b := range d.blocks {
		switch v := b.(type) {
		case *Paragraph:
			writeParagraph(&sb, v.Style, v.Text, false)
		case *Table:
			writeTable(&sb, v)
		}
	}
	// Section properties: A4 portrait, footer on every page.
	sb.WriteString(`<w:sectPr>`)
	sb.WriteString(`<w:footerReference w:type="default" r:id="rId2"/>`)
	sb.WriteString(`<w:pgSz w:w="11906" w:h="16838"/>`)
	sb.WriteString(`<w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134" w:header="708" w:footer="708" w:gutter="0"/>`)
	sb.WriteString(`</w:sectPr>`)
	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

func writeParagraph(sb *strings.Builder, style, text string, bold bool) {
	sb.WriteString(`<w:p>`)
	if style != "" {
		sb.WriteString(`<w:pPr><w:pStyle w:val="` + escape(style) + `"/></w:pPr>`)
	}
	sb.WriteString(`<w:r>`)
	if bold {
		sb.WriteString(`<w:rPr><w:b/></w:rPr>`)
	}
	sb.WriteString(`<w:t xml:space="preserve">` + escape(text) + `</w:t></w:r></w:p>`)
	sb.WriteString("\n")
}

func writeTable(sb *strings.Builder, t *Table) {
	style := t.Style
	if style == "" {
		style = "TableGrid"
	}
	sb.WriteString(`<w:tbl><w:tblPr>`)
	sb.WriteString(`<w:tblStyle w:val="` + escape(style) + `"/>`)
	sb.WriteString(`<w:tblW w:w="0" w:type="auto"/>`)
	sb.WriteString(`</w:tblPr>`)

	cols := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	sb.WriteString(`<w:tblGrid>`)
	for i := 0; i < cols; i++ {
		sb.WriteString(`<w:gridCol/>`)
	}
	sb.WriteString(`</w:tblGrid>`)

	if len(t.Header) > 0 {
		writeTableRow(sb, t.Header, cols, true)
	}
	for _, row := range t.Rows {
		writeTableRow(sb, row, cols, false)
	}
	sb.WriteString(`</w:tbl>`)
	sb.WriteString("\n")
}

func writeTableRow(sb *strings.Builder, cells []string, cols int, header bool) {
	sb.WriteString(`<w:tr>`)
	for i := 0; i < cols; i++ {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		sb.WriteString(`<w:tc><w:tcPr/>`)
		writeParagraph(sb, "", text, header)
		sb.WriteString(`</w:tc>`)
	}
	sb.WriteString(`</w:tr>`)
}

func (d *Document) stylesXML() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<w:styles ` + wordprocessingNS + `>`)
	sb.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr><w:sz w:val="22"/></w:rPr></w:rPrDefault></w:docDefaults>`)
	for _, s := range d.styles {
		if s.Table {
			sb.WriteString(`<w:style w:type="table" w:styleId="` + escape(s.ID) + `">`)
			sb.WriteString(`<w:name w:val="` + escape(s.Name) + `"/>`)
			sb.WriteString(`<w:tblPr><w:tblBorders>`)
			for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
				sb.WriteString(`<w:` + edge + ` w:val="single" w:sz="4" w:space="0" w:color="auto"/>`)
			}
			sb.WriteString(`</w:tblBorders></w:tblPr></w:style>`)
			continue
		}
		sb.WriteString(`<w:style w:type="paragraph" w:styleId="` + escape(s.ID) + `">`)
		sb.WriteString(`<w:name w:val="` + escape(s.Name) + `"/>`)
		sb.WriteString(`<w:pPr>`)
		if s.Centered {
			sb.WriteString(`<w:jc w:val="center"/>`)
		}
		sb.WriteString(`</w:pPr><w:rPr>`)
		if s.Bold {
			sb.WriteString(`<w:b/>`)
		}
		if s.SizePt > 0 {
			// OOXML run sizes are half-points.
			sb.WriteString(fmt.Sprintf(`<w:sz w:val="%d"/>`, s.SizePt*2))
		}
		sb.WriteString(`</w:rPr></w:style>`)
	}
	sb.WriteString(`</w:styles>`)
	return sb.String()
}

func (d *Document) footerXML() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<w:ftr ` + wordprocessingNS + `>`)
	writeParagraph(&sb, "Footer", d.footerText, false)
	sb.WriteString(`</w:ftr>`)
	return sb.String()
}
