package scraper

import (
	"context"

	"jobhunt-insights/pkg/models"
)

// PageScraper fetches a job posting page. Engines return the raw page; text
// selection happens in the Resolver so every engine shares it.
type PageScraper interface {
	// Scrape loads url and returns its content, or an error on any failure
	Scrape(ctx context.Context, url string) (*models.ScrapedPage, error)

	// Name identifies the engine in logs and metrics
	Name() string

	// Cleanup releases any resources used by the scraper
	Cleanup()

	// IsHealthy returns true if the scraper is ready to process pages
	IsHealthy() bool
}
