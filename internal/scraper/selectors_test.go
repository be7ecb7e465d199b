package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDescription_SelectorPriority(t *testing.T) {
	long := strings.Repeat("Kubernetes operators and Go microservices. ", 5)
	html := `<html><body>
		<div class="content">` + long + `</div>
		<section class="description__text">` + long + ` LinkedIn</section>
	</body></html>`

	ext, err := ExtractDescription(html, 100)
	require.NoError(t, err)
	assert.Equal(t, ".description__text", ext.Selector)
	assert.Contains(t, ext.Text, "LinkedIn")
}

func TestExtractDescription_ShortMatchesAreSkipped(t *testing.T) {
	long := strings.Repeat("Design data pipelines in Python and SQL. ", 4)
	html := `<html><body>
		<div class="job-description">Too short</div>
		<div class="jobDescriptionContent">` + long + `</div>
	</body></html>`

	ext, err := ExtractDescription(html, 100)
	require.NoError(t, err)
	assert.Equal(t, ".jobDescriptionContent", ext.Selector)
}

func TestExtractDescription_AttributeSelectors(t *testing.T) {
	long := strings.Repeat("React, TypeScript and design systems. ", 4)
	html := `<html><body><div data-testid="job-description">` + long + `</div></body></html>`

	ext, err := ExtractDescription(html, 100)
	require.NoError(t, err)
	assert.Equal(t, "[data-testid='job-description']", ext.Selector)
}

func TestExtractDescription_FallsBackToBody(t *testing.T) {
	ext, err := ExtractDescription(`<html><body><p>Short role.</p><p>Apply now.</p></body></html>`, 100)
	require.NoError(t, err)
	assert.Equal(t, "body", ext.Selector)
	assert.Equal(t, "Short role.\n\nApply now.", ext.Text)
}

func TestExtractDescription_NoText(t *testing.T) {
	_, err := ExtractDescription(`<html><body><script>x()</script><style>p{}</style></body></html>`, 100)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestVisibleText_BlocksOnOwnLines(t *testing.T) {
	doc, err := NewHTMLCleaner().Parse(`<div><h2>Title</h2><p>One <b>bold</b> word</p><ul><li>A</li><li>B</li></ul></div>`)
	require.NoError(t, err)

	text := VisibleText(doc.Find("div").First())
	assert.Equal(t, "Title\n\nOne bold word\n\nA\n\nB", text)
}
