package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var errTooShort = errors.New("extracted text below minimum length")

func openPDF(data []byte) (*pdf.Reader, error) {
	if len(data) == 0 {
		return nil, errors.New("empty document")
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	return r, nil
}

// extractPDFPlain reads the whole content stream in document order.
func extractPDFPlain(data []byte) (string, error) {
	r, err := openPDF(data)
	if err != nil {
		return "", err
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}

	return acceptStructured(buf.String())
}

// extractPDFRows rebuilds each page line by line from positioned text runs,
// which copes with PDFs whose content streams are out of reading order.
func extractPDFRows(data []byte) (string, error) {
	r, err := openPDF(data)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, t := range row.Content {
				words = append(words, t.S)
			}
			sb.WriteString(strings.Join(words, " "))
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}

	return acceptStructured(sb.String())
}

func acceptStructured(raw string) (string, error) {
	text := normalizeWhitespace(raw)
	if utf8.RuneCountInString(text) < MinStructuredLength {
		return "", errTooShort
	}
	return text, nil
}
