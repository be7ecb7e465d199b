package scraper

import (
	"errors"
	"unicode/utf8"
)

// JobDescriptionSelectors are tried in order: job-board specific containers
// (LinkedIn, Indeed, Glassdoor) first, then generic ones, then the whole body.
var JobDescriptionSelectors = []string{
	".description__text",
	".job-description",
	"[data-testid='job-description']",
	".jobs-description__content",
	".jobsearch-JobComponent-description",
	".jobDescriptionContent",
	".desc",
	".description",
	".content",
	".job-details",
	"[class*='description']",
	"[class*='content']",
	"body",
}

// ErrNoText means the page had no visible text at all.
var ErrNoText = errors.New("no extractable text on page")

// Extraction is the text pulled from a page and where it came from.
type Extraction struct {
	Text     string
	Selector string
}

// ExtractDescription returns the visible text of the first selector match
// longer than minLength runes, falling back to the whole body text.
func ExtractDescription(html string, minLength int) (*Extraction, error) {
	doc, err := NewHTMLCleaner().Parse(html)
	if err != nil {
		return nil, err
	}

	for _, selector := range JobDescriptionSelectors {
		match := doc.Find(selector).First()
		if match.Length() == 0 {
			continue
		}
		if text := VisibleText(match); utf8.RuneCountInString(text) > minLength {
			return &Extraction{Text: text, Selector: selector}, nil
		}
	}

	if text := VisibleText(doc.Find("body")); text != "" {
		return &Extraction{Text: text, Selector: "body"}, nil
	}

	return nil, ErrNoText
}
