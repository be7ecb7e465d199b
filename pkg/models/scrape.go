package models

import "time"

// ContentType of a scraped page body.
type ContentType string

const (
	ContentHTML     ContentType = "html"
	ContentMarkdown ContentType = "markdown"
)

// ScrapedPage is what a scraping engine returns for one URL.
type ScrapedPage struct {
	URL         string        `json:"url"`
	Content     string        `json:"content"`
	ContentType ContentType   `json:"content_type"`
	Engine      string        `json:"engine"`
	StatusCode  int           `json:"status_code,omitempty"`
	FetchedAt   time.Time     `json:"fetched_at"`
	Duration    time.Duration `json:"duration"`
}
