package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	xmlTags      = regexp.MustCompile(`<[^>]+>`)
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:cr/>`)
	tabElement   = regexp.MustCompile(`<w:tab/>`)
)

// extractDOCX reads word/document.xml and flattens it to paragraphs.
func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty document")
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	text := documentXMLToText(doc.Editable().GetContent())
	if strings.TrimSpace(text) == "" {
		return "", errors.New("docx contains no text")
	}
	return text, nil
}

func documentXMLToText(content string) string {
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = tabElement.ReplaceAllString(content, "\t")
	content = xmlTags.ReplaceAllString(content, "")
	return normalizeWhitespace(html.UnescapeString(content))
}
