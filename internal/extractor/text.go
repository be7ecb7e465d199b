package extractor

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	errInvalidUTF8   = errors.New("content is not valid UTF-8")
	errNotPlausible  = errors.New("decoded bytes do not look like text")
	horizontalSpaces = regexp.MustCompile(`[ \t\r\f\v\x{00A0}]+`)
	blankLines       = regexp.MustCompile(`\n{3,}`)
)

// decodeUTF8 returns the bytes verbatim when they are valid UTF-8.
func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return string(data), nil
}

// decodePlausibleText accepts raw bytes as text when they decode cleanly,
// run past minRawLength characters and contain a space.
func decodePlausibleText(data []byte) (string, error) {
	text, err := decodeUTF8(data)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(text) <= minRawLength || !strings.Contains(text, " ") {
		return "", errNotPlausible
	}
	return text, nil
}

// normalizeWhitespace collapses runs of horizontal whitespace, trims every
// line and keeps at most one blank line between paragraphs.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = horizontalSpaces.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")

	return strings.TrimSpace(blankLines.ReplaceAllString(s, "\n\n"))
}
