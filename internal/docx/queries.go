// Package docx provides read-only inspection of OOXML word-processing documents.
package docx

import (
	"strconv"
	"strings"
)

// Paragraph is a read-only view of one body paragraph.
type Paragraph struct {
	doc *Document
	x   *xmlParagraph
}

// Run is a read-only view of one text run within a paragraph.
type Run struct {
	doc *Document
	x   *xmlRun
}

// Table is a read-only view of one body table.
type Table struct {
	x *xmlTable
}

// Hyperlink describes one hyperlink in the document body.
type Hyperlink struct {
	Text   string
	Target string
	Anchor string
}

// PageMargins holds the section page margins in twips.
type PageMargins struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// NormalizeText collapses runs of whitespace to single spaces and trims
// the ends, the canonical form used for exact text comparison.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Paragraphs returns the top-level body paragraphs in document order.
// Paragraphs nested inside table cells are not included.
func (d *Document) Paragraphs() []Paragraph {
	out := make([]Paragraph, 0, len(d.body.Paragraphs))
	for i := range d.body.Paragraphs {
		out = append(out, Paragraph{doc: d, x: &d.body.Paragraphs[i]})
	}
	return out
}

// ParagraphCount returns the number of top-level body paragraphs.
func (d *Document) ParagraphCount() int {
	return len(d.body.Paragraphs)
}

// ParagraphsContaining returns the body paragraphs whose text contains
// the given substring, case-insensitively.
func (d *Document) ParagraphsContaining(substr string) []Paragraph {
	needle := strings.ToLower(substr)
	var out []Paragraph
	for _, p := range d.Paragraphs() {
		if strings.Contains(strings.ToLower(p.Text()), needle) {
			out = append(out, p)
		}
	}
	return out
}

// ParagraphWithText returns the first body paragraph whose normalized
// text equals the given text exactly.
func (d *Document) ParagraphWithText(text string) (Paragraph, bool) {
	want := NormalizeText(text)
	for _, p := range d.Paragraphs() {
		if NormalizeText(p.Text()) == want {
			return p, true
		}
	}
	return Paragraph{}, false
}

// Text assembles the paragraph's visible text from its runs, including
// runs nested in hyperlinks.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for i := range p.x.Runs {
		writeRunText(&sb, &p.x.Runs[i])
	}
	for i := range p.x.Hyperlinks {
		for j := range p.x.Hyperlinks[i].Runs {
			writeRunText(&sb, &p.x.Hyperlinks[i].Runs[j])
		}
	}
	return sb.String()
}

func writeRunText(sb *strings.Builder, r *xmlRun) {
	for _, t := range r.Texts {
		sb.WriteString(t.Value)
	}
}

// StyleID returns the paragraph style id, or "" when unstyled.
func (p Paragraph) StyleID() string {
	if p.x.Props == nil || p.x.Props.Style == nil {
		return ""
	}
	return p.x.Props.Style.Val
}

// StyleName resolves the paragraph style id to its display name via the
// styles part, falling back to the raw id when the style is not defined.
func (p Paragraph) StyleName() string {
	id := p.StyleID()
	if id == "" {
		return ""
	}
	return p.doc.StyleName(id)
}

// IsListItem reports whether the paragraph carries list numbering.
func (p Paragraph) IsListItem() bool {
	return p.x.Props != nil && p.x.Props.Numbering != nil && p.x.Props.Numbering.NumID != nil
}

// Alignment returns the paragraph justification value ("center",
// "right", ...), or "" when unset.
func (p Paragraph) Alignment() string {
	if p.x.Props == nil || p.x.Props.Justify == nil {
		return ""
	}
	return p.x.Props.Justify.Val
}

// Runs returns the paragraph's runs in order, including hyperlink runs.
func (p Paragraph) Runs() []Run {
	out := make([]Run, 0, len(p.x.Runs))
	for i := range p.x.Runs {
		out = append(out, Run{doc: p.doc, x: &p.x.Runs[i]})
	}
	for i := range p.x.Hyperlinks {
		for j := range p.x.Hyperlinks[i].Runs {
			out = append(out, Run{doc: p.doc, x: &p.x.Hyperlinks[i].Runs[j]})
		}
	}
	return out
}

// Text returns the run's text content.
func (r Run) Text() string {
	var sb strings.Builder
	writeRunText(&sb, r.x)
	return sb.String()
}

// Effective run formatting: direct run properties win, then the run's
// character style chain. Paragraph-style formatting is deliberately not
// folded in; rubric rules about styled paragraphs target the style name
// instead.

// Bold reports whether the run renders bold.
func (r Run) Bold() bool {
	if r.x.Props != nil && r.x.Props.Bold != nil {
		return r.x.Props.Bold.enabled()
	}
	pr := r.doc.styleRunProps(r.styleID())
	return pr != nil && pr.Bold.enabled()
}

// Italic reports whether the run renders italic.
func (r Run) Italic() bool {
	if r.x.Props != nil && r.x.Props.Italic != nil {
		return r.x.Props.Italic.enabled()
	}
	pr := r.doc.styleRunProps(r.styleID())
	return pr != nil && pr.Italic.enabled()
}

// Underlined reports whether the run carries any underline other than "none".
func (r Run) Underlined() bool {
	u := r.underlineVal()
	return u != "" && u != "none"
}

func (r Run) underlineVal() string {
	if r.x.Props != nil && r.x.Props.Underline != nil {
		return r.x.Props.Underline.Val
	}
	if pr := r.doc.styleRunProps(r.styleID()); pr != nil && pr.Underline != nil {
		return pr.Underline.Val
	}
	return ""
}

// Font returns the run's ASCII font name, or "" when inherited.
func (r Run) Font() string {
	if r.x.Props != nil && r.x.Props.Fonts != nil {
		if r.x.Props.Fonts.ASCII != "" {
			return r.x.Props.Fonts.ASCII
		}
		return r.x.Props.Fonts.HAnsi
	}
	if pr := r.doc.styleRunProps(r.styleID()); pr != nil && pr.Fonts != nil {
		if pr.Fonts.ASCII != "" {
			return pr.Fonts.ASCII
		}
		return pr.Fonts.HAnsi
	}
	return ""
}

// SizePoints returns the run's font size in points, or 0 when inherited.
// OOXML stores sizes in half-points.
func (r Run) SizePoints() float64 {
	var raw string
	if r.x.Props != nil && r.x.Props.Size != nil {
		raw = r.x.Props.Size.Val
	} else if pr := r.doc.styleRunProps(r.styleID()); pr != nil && pr.Size != nil {
		raw = pr.Size.Val
	}
	if raw == "" {
		return 0
	}
	half, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return half / 2
}

// Color returns the run's text color as a hex string ("FF0000"), or "".
func (r Run) Color() string {
	if r.x.Props != nil && r.x.Props.Color != nil {
		return r.x.Props.Color.Val
	}
	if pr := r.doc.styleRunProps(r.styleID()); pr != nil && pr.Color != nil {
		return pr.Color.Val
	}
	return ""
}

// Highlight returns the run's highlight color name ("yellow"), or "".
func (r Run) Highlight() string {
	if r.x.Props != nil && r.x.Props.Highlight != nil {
		return r.x.Props.Highlight.Val
	}
	if pr := r.doc.styleRunProps(r.styleID()); pr != nil && pr.Highlight != nil {
		return pr.Highlight.Val
	}
	return ""
}

func (r Run) styleID() string {
	if r.x.Props == nil || r.x.Props.Style == nil {
		return ""
	}
	return r.x.Props.Style.Val
}

// StyleName resolves a style id to its display name, falling back to the
// id itself for undefined styles.
func (d *Document) StyleName(styleID string) string {
	if st, ok := d.styles[styleID]; ok && st.Name != nil && st.Name.Val != "" {
		return st.Name.Val
	}
	return styleID
}

// styleRunProps resolves run properties through the style basedOn chain,
// returning the nearest style that defines run properties.
func (d *Document) styleRunProps(styleID string) *xmlRunPr {
	seen := make(map[string]bool)
	for styleID != "" && !seen[styleID] {
		seen[styleID] = true
		st, ok := d.styles[styleID]
		if !ok {
			return nil
		}
		if st.RunProps != nil {
			return st.RunProps
		}
		if st.BasedOn == nil {
			return nil
		}
		styleID = st.BasedOn.Val
	}
	return nil
}

// TableCount returns the number of top-level body tables.
func (d *Document) TableCount() int {
	return len(d.body.Tables)
}

// Tables returns the top-level body tables in document order.
func (d *Document) Tables() []Table {
	out := make([]Table, 0, len(d.body.Tables))
	for i := range d.body.Tables {
		out = append(out, Table{x: &d.body.Tables[i]})
	}
	return out
}

// RowCount returns the number of rows in the table.
func (t Table) RowCount() int {
	return len(t.x.Rows)
}

// ColumnCount returns the widest row's cell count.
func (t Table) ColumnCount() int {
	max := 0
	for _, row := range t.x.Rows {
		if len(row.Cells) > max {
			max = len(row.Cells)
		}
	}
	return max
}

// CellText returns the concatenated paragraph text of the cell at the
// given zero-based row and column, or "" when out of range.
func (t Table) CellText(row, col int) string {
	if row < 0 || row >= len(t.x.Rows) {
		return ""
	}
	cells := t.x.Rows[row].Cells
	if col < 0 || col >= len(cells) {
		return ""
	}
	var parts []string
	for i := range cells[col].Paragraphs {
		var sb strings.Builder
		for j := range cells[col].Paragraphs[i].Runs {
			writeRunText(&sb, &cells[col].Paragraphs[i].Runs[j])
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n")
}

// HeaderText returns the text of the header of the given kind
// ("default", "first", "even"). An empty kind concatenates all headers.
func (d *Document) HeaderText(kind string) string {
	return headerFooterText(d.headers, kind)
}

// FooterText returns the text of the footer of the given kind, with the
// same kind semantics as HeaderText.
func (d *Document) FooterText(kind string) string {
	return headerFooterText(d.footers, kind)
}

func headerFooterText(parts map[string]xmlHeaderFooter, kind string) string {
	var texts []string
	collect := func(part xmlHeaderFooter) {
		for i := range part.Paragraphs {
			var sb strings.Builder
			for j := range part.Paragraphs[i].Runs {
				writeRunText(&sb, &part.Paragraphs[i].Runs[j])
			}
			if sb.Len() > 0 {
				texts = append(texts, sb.String())
			}
		}
	}

	if kind != "" {
		if part, ok := parts[kind]; ok {
			collect(part)
		}
		return strings.Join(texts, "\n")
	}
	for _, k := range []string{"default", "first", "even"} {
		if part, ok := parts[k]; ok {
			collect(part)
		}
	}
	return strings.Join(texts, "\n")
}

// ImageCount counts inline drawings and legacy pictures across body
// paragraphs, including runs nested in hyperlinks and table cells.
func (d *Document) ImageCount() int {
	count := 0
	d.eachRun(func(r *xmlRun) {
		count += len(r.Drawings) + len(r.Pictures)
	})
	return count
}

// EmbeddedObjectCount counts embedded OLE objects in the body.
func (d *Document) EmbeddedObjectCount() int {
	count := 0
	d.eachRun(func(r *xmlRun) {
		count += len(r.Objects)
	})
	return count
}

func (d *Document) eachRun(fn func(*xmlRun)) {
	visitParagraph := func(p *xmlParagraph) {
		for i := range p.Runs {
			fn(&p.Runs[i])
		}
		for i := range p.Hyperlinks {
			for j := range p.Hyperlinks[i].Runs {
				fn(&p.Hyperlinks[i].Runs[j])
			}
		}
	}
	for i := range d.body.Paragraphs {
		visitParagraph(&d.body.Paragraphs[i])
	}
	for i := range d.body.Tables {
		for j := range d.body.Tables[i].Rows {
			for k := range d.body.Tables[i].Rows[j].Cells {
				for l := range d.body.Tables[i].Rows[j].Cells[k].Paragraphs {
					visitParagraph(&d.body.Tables[i].Rows[j].Cells[k].Paragraphs[l])
				}
			}
		}
	}
}

// Hyperlinks returns the document body hyperlinks with their resolved
// external targets. Internal anchors carry Anchor instead of Target.
func (d *Document) Hyperlinks() []Hyperlink {
	var out []Hyperlink
	for i := range d.body.Paragraphs {
		for j := range d.body.Paragraphs[i].Hyperlinks {
			h := &d.body.Paragraphs[i].Hyperlinks[j]
			var sb strings.Builder
			for k := range h.Runs {
				writeRunText(&sb, &h.Runs[k])
			}
			link := Hyperlink{Text: sb.String(), Anchor: h.Anchor}
			if rel, ok := d.rels[h.RelID]; ok && rel.Type == relTypeHyperlink {
				link.Target = rel.Target
			}
			out = append(out, link)
		}
	}
	return out
}

// PageOrientation returns "portrait" or "landscape" for the final
// section, defaulting to portrait when unspecified.
func (d *Document) PageOrientation() string {
	if d.body.SectPr != nil && d.body.SectPr.PageSize != nil && d.body.SectPr.PageSize.Orientation == "landscape" {
		return "landscape"
	}
	return "portrait"
}

// PageMarginValues returns the final section's page margins in twips.
// The second return is false when the document defines no margins.
func (d *Document) PageMarginValues() (PageMargins, bool) {
	if d.body.SectPr == nil || d.body.SectPr.PageMargin == nil {
		return PageMargins{}, false
	}
	m := d.body.SectPr.PageMargin
	return PageMargins{Top: m.Top, Bottom: m.Bottom, Left: m.Left, Right: m.Right}, true
}
