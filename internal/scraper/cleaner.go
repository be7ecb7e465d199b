package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	inlineSpaces = regexp.MustCompile(`[ \t\r\f\v\x{00A0}]+`)
	extraLines   = regexp.MustCompile(`\n{3,}`)
)

// HTMLCleaner strips elements that never contribute visible job text
type HTMLCleaner struct {
	removeTags []string
}

// blockTags end a line in the visible text rendering.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "tr": true, "table": true, "dd": true, "dt": true,
}

func NewHTMLCleaner() *HTMLCleaner {
	return &HTMLCleaner{
		removeTags: []string{
			"script", "style", "noscript", "template", "iframe", "object", "embed",
			"svg", "canvas", "meta", "link", "head",
			"nav", "footer", "form", "button",
		},
	}
}

// Parse parses html and removes the non-visible elements.
func (hc *HTMLCleaner) Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	doc.Find(strings.Join(hc.removeTags, ", ")).Remove()
	return doc, nil
}

// VisibleText renders a selection roughly the way a browser's innerText
// would: block elements on their own lines, inline runs joined by spaces.
func VisibleText(sel *goquery.Selection) string {
	var sb strings.Builder
	sel.Each(func(_ int, s *goquery.Selection) {
		writeVisible(&sb, s)
		sb.WriteByte('\n')
	})
	return CleanText(sb.String())
}

func writeVisible(sb *strings.Builder, s *goquery.Selection) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		if goquery.NodeName(child) == "#text" {
			sb.WriteString(child.Text())
			return
		}

		block := blockTags[goquery.NodeName(child)]
		if block {
			sb.WriteByte('\n')
		}
		writeVisible(sb, child)
		if block {
			sb.WriteByte('\n')
		}
	})
}

// CleanText collapses inline whitespace, trims lines and limits blank runs.
func CleanText(text string) string {
	text = inlineSpaces.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		kept = append(kept, strings.TrimSpace(line))
	}
	text = strings.Join(kept, "\n")

	return strings.TrimSpace(extraLines.ReplaceAllString(text, "\n\n"))
}
