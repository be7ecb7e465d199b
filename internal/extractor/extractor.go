// Package extractor turns uploaded resume documents into plain text.
//
// Extraction never fails: every format runs an ordered list of strategies and
// the first one producing usable text wins. When every strategy fails the
// result carries a diagnostic message naming the file and is marked degraded.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"jobhunt-insights/internal/logging"
	"jobhunt-insights/internal/metrics"
)

// Format is the document type inferred from the file name.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatText    Format = "txt"
	FormatUnknown Format = "unknown"
)

const (
	// MinStructuredLength is the shortest structured PDF output accepted.
	MinStructuredLength = 10
	// MinContentLength is the shortest final text accepted before the
	// insufficient-content placeholder replaces it.
	MinContentLength = 50
	// minRawLength is the character count a raw PDF decode must exceed.
	minRawLength = 100
)

// Result is the outcome of an extraction.
type Result struct {
	Text     string
	Format   Format
	Strategy string
	Degraded bool
	Metadata map[string]interface{}
}

// strategy is one step in a fallback chain.
type strategy struct {
	name string
	run  func(data []byte) (string, error)
}

// Extractor runs the per-format fallback chains.
type Extractor struct {
	logger logging.Logger
}

// New returns an Extractor that reports degraded extractions to logger.
func New(logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Extractor{logger: logger}
}

// DetectFormat dispatches on the file name suffix, case-insensitively.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".txt":
		return FormatText
	default:
		return FormatUnknown
	}
}

// Extract returns the best-effort text of the document. The returned text is
// never empty.
func (e *Extractor) Extract(data []byte, filename string) Result {
	format := DetectFormat(filename)

	var chain []strategy
	var diagnostic string

	switch format {
	case FormatPDF:
		chain = []strategy{
			{name: "pdf_plain", run: extractPDFPlain},
			{name: "pdf_rows", run: extractPDFRows},
			{name: "pdf_raw_utf8", run: decodePlausibleText},
		}
		diagnostic = pdfDiagnostic(filename)
	case FormatDOCX:
		chain = []strategy{{name: "docx_xml", run: extractDOCX}}
		diagnostic = fmt.Sprintf("Resume: %s - Unable to extract text from DOCX file.", filename)
	case FormatText:
		chain = []strategy{{name: "utf8", run: decodeUTF8}}
		diagnostic = fmt.Sprintf("Resume: %s - Unable to decode text file as UTF-8.", filename)
	default:
		chain = []strategy{{name: "utf8", run: decodeUTF8}}
		diagnostic = fmt.Sprintf("Resume: %s - Unable to extract text from this file format. Please use PDF, DOCX, or TXT format.", filename)
	}

	result := Result{Format: format, Metadata: map[string]interface{}{}}

	for _, s := range chain {
		text, err := runSafely(s, data)
		if err != nil {
			e.logger.Debug("extraction strategy failed", map[string]interface{}{
				"filename": filename,
				"strategy": s.name,
				"error":    err.Error(),
			})
			continue
		}
		result.Text = text
		result.Strategy = s.name
		break
	}

	if result.Strategy == "" {
		result.Text = diagnostic
		result.Strategy = "diagnostic"
		result.Degraded = true
	}

	if utf8.RuneCountInString(strings.TrimSpace(result.Text)) < MinContentLength {
		result.Text = fmt.Sprintf("Resume: %s - Text extraction produced insufficient content. Please ensure the file contains readable text.", filename)
		result.Strategy = "insufficient_content"
		result.Degraded = true
	}

	result.Metadata["format"] = string(format)
	result.Metadata["strategy"] = result.Strategy
	result.Metadata["characters"] = utf8.RuneCountInString(result.Text)
	result.Metadata["bytes"] = len(data)

	if result.Degraded {
		metrics.RecordDegradation(metrics.DegradationExtraction)
		e.logger.Warn("resume extraction degraded", map[string]interface{}{
			"degradation": metrics.DegradationExtraction,
			"filename":    filename,
			"format":      string(format),
			"strategy":    result.Strategy,
			"bytes":       len(data),
		})
	}

	return result
}

// runSafely converts parser panics into errors; the PDF parser panics on
// some malformed inputs.
func runSafely(s strategy, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%s panicked: %v", s.name, r)
		}
	}()
	return s.run(data)
}

func pdfDiagnostic(filename string) string {
	return fmt.Sprintf(`Resume: %s

PDF parsing failed. This could be due to:
1. Password-protected PDF
2. Scanned PDF (image-based)
3. Corrupted PDF file
4. PDF with special formatting

Please try:
- Converting to DOCX format
- Saving as plain text
- Using a different PDF file
- Ensuring the PDF is not password-protected

For now, please provide a manual description of your skills and experience.`, filename)
}
