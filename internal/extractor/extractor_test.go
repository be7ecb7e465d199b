package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-insights/internal/logging"
	"jobhunt-insights/internal/logging/adapters"
)

const sampleResume = "Jane Doe\nSenior Go engineer with ten years of experience building APIs.\nSkills: Go, PostgreSQL, Docker, Kubernetes"

func newTestExtractor(t *testing.T) (*Extractor, *adapters.MemoryAdapter) {
	t.Helper()
	logger := logging.NewMultiLogger()
	logger.SetLevel(logging.DebugLevel)
	mem := adapters.NewMemoryAdapter("mem")
	require.NoError(t, logger.AddAdapter(mem))
	return New(logger), mem
}

// buildPDF writes a single-page PDF showing each line with Tj, with a
// correct cross-reference table.
func buildPDF(lines ...string) []byte {
	var content strings.Builder
	content.WriteString("BT /F1 12 Tf 72 720 Td 14 TL\n")
	for _, line := range lines {
		fmt.Fprintf(&content, "(%s) Tj T*\n", line)
	}
	content.WriteString("ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, p)
	}

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatPDF, DetectFormat("CV.PDF"))
	assert.Equal(t, FormatDOCX, DetectFormat("resume.docx"))
	assert.Equal(t, FormatText, DetectFormat("notes.txt"))
	assert.Equal(t, FormatUnknown, DetectFormat("resume.odt"))
	assert.Equal(t, FormatUnknown, DetectFormat("resume"))
}

func TestExtract_PlainTextVerbatim(t *testing.T) {
	e, mem := newTestExtractor(t)

	content := sampleResume + "\nLanguages: English, Français, 日本語"
	res := e.Extract([]byte(content), "resume.txt")

	assert.Equal(t, content, res.Text)
	assert.Equal(t, FormatText, res.Format)
	assert.False(t, res.Degraded)
	assert.Empty(t, mem.Messages(logging.WarnLevel))
}

func TestExtract_InvalidUTF8Text(t *testing.T) {
	e, _ := newTestExtractor(t)

	res := e.Extract(append([]byte(sampleResume), 0xff, 0xfe), "resume.txt")

	assert.True(t, res.Degraded)
	assert.Contains(t, res.Text, "resume.txt")
	assert.Contains(t, res.Text, "Unable to decode")
}

func TestExtract_StructuredPDF(t *testing.T) {
	e, _ := newTestExtractor(t)

	data := buildPDF("Jane Doe", "Senior Go engineer with ten years of experience", "Skills Go PostgreSQL Docker Kubernetes")
	res := e.Extract(data, "jane.pdf")

	require.False(t, res.Degraded, res.Text)
	assert.Contains(t, res.Text, "Senior Go engineer")
	assert.Contains(t, []string{"pdf_plain", "pdf_rows"}, res.Strategy)
}

func TestExtract_CorruptPDFsYieldDiagnostic(t *testing.T) {
	cases := map[string][]byte{
		"zero bytes": {},
		"truncated":  []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog"),
		"binary":     append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte{0x00, 0x9f, 0x20, 0x01}, 64)...),
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			e, mem := newTestExtractor(t)
			res := e.Extract(data, "broken.pdf")

			assert.True(t, res.Degraded)
			assert.Equal(t, "diagnostic", res.Strategy)
			assert.Equal(t, pdfDiagnostic("broken.pdf"), res.Text)
			assert.Contains(t, res.Text, "Password-protected PDF")
			assert.Contains(t, mem.Messages(logging.WarnLevel), "resume extraction degraded")
		})
	}
}

func TestExtract_PDFRawTextFallback(t *testing.T) {
	e, _ := newTestExtractor(t)

	res := e.Extract([]byte(sampleResume), "exported.pdf")

	assert.False(t, res.Degraded)
	assert.Equal(t, "pdf_raw_utf8", res.Strategy)
	assert.Equal(t, sampleResume, res.Text)
}

func TestDecodePlausibleText_CountsCharacters(t *testing.T) {
	// 60 two-byte runes: over the limit in bytes, under it in characters.
	short := strings.Repeat("é", 59) + " "
	_, err := decodePlausibleText([]byte(short))
	assert.ErrorIs(t, err, errNotPlausible)

	long := strings.Repeat("é", 100) + " "
	text, err := decodePlausibleText([]byte(long))
	require.NoError(t, err)
	assert.Equal(t, long, text)

	tabbed := strings.Repeat("a\tb ", 30)
	text, err = decodePlausibleText([]byte(tabbed))
	require.NoError(t, err)
	assert.Equal(t, tabbed, text)

	_, err = decodePlausibleText([]byte(strings.Repeat("x", 200)))
	assert.ErrorIs(t, err, errNotPlausible)
}

func TestExtract_DOCX(t *testing.T) {
	e, _ := newTestExtractor(t)

	data := buildDOCX(t, "Jane Doe", "Senior Go engineer &amp; team lead with ten years of experience", "Skills: Go, SQL")
	res := e.Extract(data, "jane.docx")

	require.False(t, res.Degraded, res.Text)
	assert.Equal(t, "Jane Doe\nSenior Go engineer & team lead with ten years of experience\nSkills: Go, SQL", res.Text)
}

func TestExtract_BrokenDOCX(t *testing.T) {
	e, _ := newTestExtractor(t)

	res := e.Extract([]byte("definitely not a zip archive"), "jane.docx")

	assert.True(t, res.Degraded)
	assert.Equal(t, "Resume: jane.docx - Unable to extract text from DOCX file.", res.Text)
}

func TestExtract_ShortContentGuard(t *testing.T) {
	e, _ := newTestExtractor(t)

	res := e.Extract([]byte("Jane Doe\nSkills: Python, SQL\n5 years experience"), "short.txt")

	assert.True(t, res.Degraded)
	assert.Equal(t, "insufficient_content", res.Strategy)
	assert.Contains(t, res.Text, "Text extraction produced insufficient content")
	assert.GreaterOrEqual(t, len(res.Text), MinContentLength)
}

func TestExtract_UnknownFormat(t *testing.T) {
	e, _ := newTestExtractor(t)

	readable := e.Extract([]byte(sampleResume), "resume.md")
	assert.False(t, readable.Degraded)
	assert.Equal(t, sampleResume, readable.Text)

	binary := e.Extract([]byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}, "photo.jpg")
	assert.True(t, binary.Degraded)
	assert.Contains(t, binary.Text, "Please use PDF, DOCX, or TXT format")
}

func TestExtract_NeverEmpty(t *testing.T) {
	e, _ := newTestExtractor(t)

	for _, name := range []string{"a.pdf", "a.docx", "a.txt", "a.bin", ""} {
		res := e.Extract(nil, name)
		assert.NotEmpty(t, strings.TrimSpace(res.Text), name)
		assert.Equal(t, string(res.Format), res.Metadata["format"], name)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	got := normalizeWhitespace("  Jane \t Doe  \r\n\n\n\n  Go developer ")
	assert.Equal(t, "Jane Doe\n\nGo developer", got)
}
