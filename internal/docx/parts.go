// Package docx provides read-only inspection of OOXML word-processing documents.
package docx

import "encoding/xml"

// XML shapes for the OOXML parts the inspector reads. Field tags use
// local element names only, so they match regardless of the namespace
// prefix a producer chose.

type xmlDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    xmlBody  `xml:"body"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"p"`
	Tables     []xmlTable     `xml:"tbl"`
	SectPr     *xmlSectPr     `xml:"sectPr"`
}

type xmlParagraph struct {
	Props      *xmlParaProps  `xml:"pPr"`
	Runs       []xmlRun       `xml:"r"`
	Hyperlinks []xmlHyperlink `xml:"hyperlink"`
}

type xmlParaProps struct {
	Style     *xmlVal   `xml:"pStyle"`
	Numbering *xmlNumPr `xml:"numPr"`
	Justify   *xmlVal   `xml:"jc"`
	RunProps  *xmlRunPr `xml:"rPr"`
}

type xmlNumPr struct {
	NumID *xmlVal `xml:"numId"`
	Level *xmlVal `xml:"ilvl"`
}

type xmlRun struct {
	Props    *xmlRunPr  `xml:"rPr"`
	Texts    []xmlText  `xml:"t"`
	Drawings []struct{} `xml:"drawing"`
	Pictures []struct{} `xml:"pict"`
	Objects  []struct{} `xml:"object"`
}

type xmlText struct {
	Value string `xml:",chardata"`
}

type xmlRunPr struct {
	Style     *xmlVal   `xml:"rStyle"`
	Bold      *xmlOnOff `xml:"b"`
	Italic    *xmlOnOff `xml:"i"`
	Underline *xmlVal   `xml:"u"`
	Fonts     *xmlFonts `xml:"rFonts"`
	Size      *xmlVal   `xml:"sz"`
	Color     *xmlVal   `xml:"color"`
	Highlight *xmlVal   `xml:"highlight"`
}

type xmlFonts struct {
	ASCII string `xml:"ascii,attr"`
	HAnsi string `xml:"hAnsi,attr"`
}

type xmlHyperlink struct {
	RelID  string   `xml:"id,attr"`
	Anchor string   `xml:"anchor,attr"`
	Runs   []xmlRun `xml:"r"`
}

type xmlTable struct {
	Rows []xmlTableRow `xml:"tr"`
}

type xmlTableRow struct {
	Cells []xmlTableCell `xml:"tc"`
}

type xmlTableCell struct {
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlSectPr struct {
	PageSize   *xmlPageSize   `xml:"pgSz"`
	PageMargin *xmlPageMargin `xml:"pgMar"`
	HeaderRefs []xmlPartRef   `xml:"headerReference"`
	FooterRefs []xmlPartRef   `xml:"footerReference"`
}

type xmlPageSize struct {
	Width       int    `xml:"w,attr"`
	Height      int    `xml:"h,attr"`
	Orientation string `xml:"orient,attr"`
}

type xmlPageMargin struct {
	Top    int `xml:"top,attr"`
	Bottom int `xml:"bottom,attr"`
	Left   int `xml:"left,attr"`
	Right  int `xml:"right,attr"`
}

type xmlPartRef struct {
	Type  string `xml:"type,attr"`
	RelID string `xml:"id,attr"`
}

// xmlVal is the common single-attribute OOXML element (<w:x w:val="..."/>).
type xmlVal struct {
	Val string `xml:"val,attr"`
}

// xmlOnOff models toggle properties: the element's presence means "on"
// unless val says otherwise.
type xmlOnOff struct {
	Val string `xml:"val,attr"`
}

func (t *xmlOnOff) enabled() bool {
	if t == nil {
		return false
	}
	switch t.Val {
	case "", "1", "true", "on":
		return true
	default:
		return false
	}
}

type xmlStyles struct {
	Styles []xmlStyle `xml:"style"`
}

type xmlStyle struct {
	Type     string    `xml:"type,attr"`
	ID       string    `xml:"styleId,attr"`
	Name     *xmlVal   `xml:"name"`
	BasedOn  *xmlVal   `xml:"basedOn"`
	RunProps *xmlRunPr `xml:"rPr"`
}

type xmlHeaderFooter struct {
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlRelationships struct {
	Rels []xmlRelationship `xml:"Relationship"`
}

type xmlRelationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}
