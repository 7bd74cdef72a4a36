// Package criteria implements the per-rubric-task criterion evaluators.
package criteria

import (
	"fmt"
	"strings"

	"github.com/datmos/word-grader/internal/docx"
	"github.com/datmos/word-grader/internal/rubric"
)

// Rule type names accepted in structured rubric criteria.
const (
	RuleTextContains    = "textContains"
	RuleParagraphText   = "paragraphText"
	RuleParagraphStyle  = "paragraphStyle"
	RuleRunFormat       = "runFormat"
	RuleTableCount      = "tableCount"
	RuleTableSize       = "tableSize"
	RuleHeaderContains  = "headerContains"
	RuleFooterContains  = "footerContains"
	RuleImageCount      = "imageCount"
	RuleObjectCount     = "objectCount"
	RuleHyperlink       = "hyperlink"
	RuleListParagraph   = "listParagraph"
	RulePageOrientation = "pageOrientation"
	RulePageMargins     = "pageMargins"
)

// evaluateRule checks a single structured rule against the document.
// Returns whether the rule passed and, on failure, a short explanation
// usable as feedback text.
func evaluateRule(doc *docx.Document, rule *rubric.Rule) (bool, string) {
	switch rule.Type {
	case RuleTextContains:
		return checkText(doc, rule)
	case RuleParagraphText:
		return checkParagraphText(doc, rule)
	case RuleParagraphStyle:
		return checkParagraphStyle(doc, rule)
	case RuleRunFormat:
		return checkRunFormat(doc, rule)
	case RuleTableCount:
		return checkCount(doc.TableCount(), rule, "table")
	case RuleTableSize:
		return checkTableSize(doc, rule)
	case RuleHeaderContains:
		return checkHeaderFooter(doc.HeaderText(rule.Section), rule, "header")
	case RuleFooterContains:
		return checkHeaderFooter(doc.FooterText(rule.Section), rule, "footer")
	case RuleImageCount:
		return checkCount(doc.ImageCount(), rule, "image")
	case RuleObjectCount:
		return checkCount(doc.EmbeddedObjectCount(), rule, "embedded object")
	case RuleHyperlink:
		return checkHyperlink(doc, rule)
	case RuleListParagraph:
		return checkListParagraph(doc, rule)
	case RulePageOrientation:
		return checkOrientation(doc, rule)
	case RulePageMargins:
		return checkMargins(doc, rule)
	default:
		return false, fmt.Sprintf("unknown rule type %q", rule.Type)
	}
}

func checkText(doc *docx.Document, rule *rubric.Rule) (bool, string) {
	if rule.Exact {
		if _, ok := doc.ParagraphWithText(rule.Text); ok {
			return true, ""
		}
		return false, fmt.Sprintf("no paragraph with exact text %q", rule.Text)
	}
	if len(doc.ParagraphsContaining(rule.Text)) > 0 {
		return true, ""
	}
	return false, fmt.Sprintf("text %q not found in document", rule.Text)
}

func checkParagraphText(doc *docx.Document, rule *rubric.Rule) (bool, string) {
	if _, ok := doc.ParagraphWithText(rule.Text); ok {
		return true, ""
	}
	return false, fmt.Sprintf("no paragraph with exact text %q", rule.Text)
}

func checkParagraphStyle(doc *docx.Document, rule *rubric.Rule) (bool, string) {
	for _, p := range matchingParagraphs(doc, rule) {
		if styleMatches(p, rule.Style) {
			return true, ""
		}
	}
	if rule.Text == "" {
		return false, fmt.Sprintf("no paragraph styled %q", rule.Style)
	}
	return false, fmt.Sprintf("no paragraph styled %q with text %q", rule.Style, rule.Text)
}

func checkRunFormat(doc *docx.Document, rule *rubric.Rule) (bool, string) {
	if rule.Format == nil {
		return false, "runFormat rule is missing the expected format"
	}
	for _, p := range matchingParagraphs(doc, rule) {
		for _, r := range p.Runs() {
			if rule.Text != "" && !strings.Contains(strings.ToLower(p.Text()), strings.ToLower(rule.Text)) {
				continue
			}
			if runMatchesFormat(r, rule.Format) {
				return true, ""
			}
		}
	}
	return false, fmt.Sprintf("no run with the expected formatting%s", textClause(rule))
}

func checkTableSize(doc *docx.Document, rule *rubric.Rule) (bool, string) {
	for _, t := range doc.Tables() {
		if rule.Rows != nil && t.RowCount() != *rule.Rows {
			continue
		}
		if rule.Columns != nil && t.ColumnCount() != *rule.Columns {
			continue
		}
		return true, ""
	}
	return false, fmt.Sprintf("no table with %s rows and %s columns",
		intOrAny(rule.Rows), intOrAny(rule.Columns))
}

func checkHeaderFooter(got string, rule *rubric.Rule, kind string) (bool, string) {
	if strings.Contains(strings.ToLower(got), strings.ToLower(rule.Text)) && rule.Text != "" {
		return true, ""
	}
	if rule.Text == "" && strings.TrimSpace(got) != "" {
		return true, ""
	}
	if rule.Text == "" {
		return false, fmt.Sprintf("document has no %s text", kind)
	}
	return false, fmt.Sprintf("%s does not contain %q", kind, rule.Text)
}

func checkHyperlink(doc *docx.Document, rule *rubric.Rule) (bool, string) {
	for _, h := range doc.Hyperlinks() {
		if rule.URL != "" && !strings.Contains(strings.ToLower(h.Target), strings.ToLower(rule.URL)) {
			continue
		}
		if rule.Text != "" && !strings.Contains(strings.ToLower(h.Text), strings.ToLower(rule.Text)) {
			continue
		}
		return true, ""
	}
	if rule.URL != "" {
		return false, fmt.Sprintf("no hyperlink targeting %q", rule.URL)
	}
	return false, "no matching hyperlink found"
}

func checkListParagraph(doc *docx.Document, rule *rubric.Rule) (bool, string) {
	count := 0
	for _, p := range doc.Paragraphs() {
		if !p.IsListItem() {
			continue
		}
		if rule.Text != "" && !strings.Contains(strings.ToLower(p.Text()), strings.ToLower(rule.Text)) {
			continue
		}
		count++
	}
	if pass, _ := countSatisfies(count, rule); pass {
		return true, ""
	}
	return false, fmt.Sprintf("expected %s list paragraph(s)%s, found %d",
		expectedCount(rule), textClause(rule), count)
}

func checkOrientation(doc *docx.Document, rule *rubric.Rule) (bool, string) {
	got := doc.PageOrientation()
	if strings.EqualFold(got, rule.Orientation) {
		return true, ""
	}
	return false, fmt.Sprintf("page orientation is %s, expected %s", got, rule.Orientation)
}

func checkMargins(doc *docx.Document, rule *rubric.Rule) (bool, string) {
	if rule.Margins == nil {
		return false, "pageMargins rule is missing the expected margins"
	}
	got, ok := doc.PageMarginValues()
	if !ok {
		return false, "document defines no page margins"
	}
	// Only margins the rubric sets are compared; zero means unchecked.
	want := rule.Margins
	if want.Top != 0 && got.Top != want.Top {
		return false, fmt.Sprintf("top margin is %d twips, expected %d", got.Top, want.Top)
	}
	if want.Bottom != 0 && got.Bottom != want.Bottom {
		return false, fmt.Sprintf("bottom margin is %d twips, expected %d", got.Bottom, want.Bottom)
	}
	if want.Left != 0 && got.Left != want.Left {
		return false, fmt.Sprintf("left margin is %d twips, expected %d", got.Left, want.Left)
	}
	if want.Right != 0 && got.Right != want.Right {
		return false, fmt.Sprintf("right margin is %d twips, expected %d", got.Right, want.Right)
	}
	return true, ""
}

// matchingParagraphs narrows the paragraphs a rule applies to by its
// text target. An empty target means every paragraph.
func matchingParagraphs(doc *docx.Document, rule *rubric.Rule) []docx.Paragraph {
	if rule.Text == "" {
		return doc.Paragraphs()
	}
	if rule.Exact {
		if p, ok := doc.ParagraphWithText(rule.Text); ok {
			return []docx.Paragraph{p}
		}
		return nil
	}
	return doc.ParagraphsContaining(rule.Text)
}

func styleMatches(p docx.Paragraph, want string) bool {
	return strings.EqualFold(p.StyleName(), want) || strings.EqualFold(p.StyleID(), want)
}

func runMatchesFormat(r docx.Run, want *rubric.RunFormat) bool {
	if want.Bold != nil && r.Bold() != *want.Bold {
		return false
	}
	if want.Italic != nil && r.Italic() != *want.Italic {
		return false
	}
	if want.Underline != nil && r.Underlined() != *want.Underline {
		return false
	}
	if want.Font != "" && !strings.EqualFold(r.Font(), want.Font) {
		return false
	}
	if want.SizePt != 0 && r.SizePoints() != want.SizePt {
		return false
	}
	if want.Color != "" && !strings.EqualFold(r.Color(), want.Color) {
		return false
	}
	if want.Highlight != "" && !strings.EqualFold(r.Highlight(), want.Highlight) {
		return false
	}
	return true
}

func checkCount(actual int, rule *rubric.Rule, noun string) (bool, string) {
	if pass, _ := countSatisfies(actual, rule); pass {
		return true, ""
	}
	return false, fmt.Sprintf("expected %s %s(s), found %d", expectedCount(rule), noun, actual)
}

func countSatisfies(actual int, rule *rubric.Rule) (bool, string) {
	switch {
	case rule.Count != nil:
		return actual == *rule.Count, ""
	case rule.MinCount != nil:
		return actual >= *rule.MinCount, ""
	default:
		return actual > 0, ""
	}
}

func expectedCount(rule *rubric.Rule) string {
	switch {
	case rule.Count != nil:
		return fmt.Sprintf("exactly %d", *rule.Count)
	case rule.MinCount != nil:
		return fmt.Sprintf("at least %d", *rule.MinCount)
	default:
		return "at least 1"
	}
}

func textClause(rule *rubric.Rule) string {
	if rule.Text == "" {
		return ""
	}
	return fmt.Sprintf(" containing %q", rule.Text)
}

func intOrAny(v *int) string {
	if v == nil {
		return "any"
	}
	return fmt.Sprintf("%d", *v)
}
