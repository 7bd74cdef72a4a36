// Package docxtest builds minimal in-memory .docx packages for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const wordNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

// Doc describes the parts of a test document. BodyXML holds raw
// WordprocessingML body content (w:p / w:tbl fragments); the remaining
// fields are optional.
type Doc struct {
	BodyXML   string
	SectPrXML string // contents of w:sectPr, without the wrapper element
	StylesXML string // w:style fragments
	HeaderXML string // w:p fragments for a default header
	FooterXML string // w:p fragments for a default footer
	ExtraRels string // additional Relationship elements (e.g. hyperlinks)
}

// Bytes assembles the document into a .docx zip package.
func (d Doc) Bytes() []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	var rels string
	var sectRefs string
	if d.HeaderXML != "" {
		rels += `<Relationship Id="rIdHdr" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>`
		sectRefs += `<w:headerReference w:type="default" r:id="rIdHdr"/>`
		addPart(zw, "word/header1.xml", fmt.Sprintf(`<w:hdr %s>%s</w:hdr>`, wordNamespaces, d.HeaderXML))
	}
	if d.FooterXML != "" {
		rels += `<Relationship Id="rIdFtr" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>`
		sectRefs += `<w:footerReference w:type="default" r:id="rIdFtr"/>`
		addPart(zw, "word/footer1.xml", fmt.Sprintf(`<w:ftr %s>%s</w:ftr>`, wordNamespaces, d.FooterXML))
	}
	rels += d.ExtraRels

	sectPr := ""
	if d.SectPrXML != "" || sectRefs != "" {
		sectPr = fmt.Sprintf(`<w:sectPr>%s%s</w:sectPr>`, sectRefs, d.SectPrXML)
	}

	addPart(zw, "word/document.xml", fmt.Sprintf(
		`<w:document %s><w:body>%s%s</w:body></w:document>`, wordNamespaces, d.BodyXML, sectPr))

	if d.StylesXML != "" {
		addPart(zw, "word/styles.xml", fmt.Sprintf(`<w:styles %s>%s</w:styles>`, wordNamespaces, d.StylesXML))
	}
	if rels != "" {
		addPart(zw, "word/_rels/document.xml.rels", fmt.Sprintf(
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">%s</Relationships>`, rels))
	}

	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Write materializes the document as a file under t.TempDir and returns
// its path.
func Write(t testing.TB, d Doc) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "submission.docx")
	if err := os.WriteFile(path, d.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write test docx: %v", err)
	}
	return path
}

// Paragraph renders a plain paragraph with optional style id.
func Paragraph(style, text string) string {
	props := ""
	if style != "" {
		props = fmt.Sprintf(`<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, style)
	}
	return fmt.Sprintf(`<w:p>%s<w:r><w:t>%s</w:t></w:r></w:p>`, props, text)
}

// FormattedParagraph renders a paragraph whose single run carries raw
// run properties XML (e.g. "<w:b/><w:i/>").
func FormattedParagraph(runProps, text string) string {
	return fmt.Sprintf(`<w:p><w:r><w:rPr>%s</w:rPr><w:t>%s</w:t></w:r></w:p>`, runProps, text)
}

// ListParagraph renders a numbered list paragraph.
func ListParagraph(text string) string {
	return fmt.Sprintf(
		`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:t>%s</w:t></w:r></w:p>`, text)
}

// Table renders a rows×cols table with empty cells.
func Table(rows, cols int) string {
	var b bytes.Buffer
	b.WriteString("<w:tbl>")
	for r := 0; r < rows; r++ {
		b.WriteString("<w:tr>")
		for c := 0; c < cols; c++ {
			b.WriteString("<w:tc><w:p/></w:tc>")
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
	return b.String()
}

// Style renders a paragraph style definition for styles.xml.
func Style(id, name string) string {
	return fmt.Sprintf(
		`<w:style w:type="paragraph" w:styleId="%s"><w:name w:val="%s"/></w:style>`, id, name)
}

func addPart(zw *zip.Writer, name, content string) {
	w, err := zw.Create(name)
	if err != nil {
		panic(err)
	}
	if _, err := w.Write([]byte(xmlHeader + content)); err != nil {
		panic(err)
	}
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
