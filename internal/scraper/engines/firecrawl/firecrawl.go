package firecrawl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mendableai/firecrawl-go"

	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
)

// scrapeClient is the part of the Firecrawl SDK this engine uses
type scrapeClient interface {
	ScrapeURL(url string, params *firecrawl.ScrapeParams) (*firecrawl.FirecrawlDocument, error)
}

// FirecrawlScraper fetches pages through the hosted Firecrawl API
type FirecrawlScraper struct {
	app        scrapeClient
	formats    []string
	maxRetries int
	backoff    time.Duration
	logger     logging.Logger
}

// NewFirecrawlScraper requires an API key
func NewFirecrawlScraper(cfg *config.Config, logger logging.Logger) (*FirecrawlScraper, error) {
	if cfg.Firecrawl.APIKey == "" {
		return nil, errors.New("firecrawl engine requires FIRECRAWL_API_KEY")
	}

	app, err := firecrawl.NewFirecrawlApp(cfg.Firecrawl.APIKey, cfg.Firecrawl.APIURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firecrawl: %w", err)
	}

	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	logger.Info("Firecrawl scraper initialized", map[string]interface{}{
		"api_url": cfg.Firecrawl.APIURL,
	})

	return newWithClient(app, cfg.Firecrawl.Formats, cfg.Firecrawl.MaxRetries, logger), nil
}

func newWithClient(app scrapeClient, formats []string, maxRetries int, logger logging.Logger) *FirecrawlScraper {
	if len(formats) == 0 {
		formats = []string{"markdown"}
	}
	if maxRetries <= 0 {
		maxRetries = 1
	}
	return &FirecrawlScraper{
		app:        app,
		formats:    formats,
		maxRetries: maxRetries,
		backoff:    time.Second,
		logger:     logger.WithField("engine", "firecrawl"),
	}
}

type scrapeResult struct {
	doc *firecrawl.FirecrawlDocument
	err error
}

// Scrape retries up to maxRetries times with linear backoff. The SDK has no
// context support, so ctx only bounds how long we wait for it.
func (f *FirecrawlScraper) Scrape(ctx context.Context, url string) (*models.ScrapedPage, error) {
	start := time.Now()
	params := &firecrawl.ScrapeParams{Formats: f.formats}

	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		done := make(chan scrapeResult, 1)
		go func() {
			doc, err := f.app.ScrapeURL(url, params)
			done <- scrapeResult{doc: doc, err: err}
		}()

		var res scrapeResult
		select {
		case res = <-done:
		case <-ctx.Done():
			return nil, fmt.Errorf("firecrawl scrape of %s: %w", url, ctx.Err())
		}

		if res.err == nil {
			return f.toPage(url, res.doc, start)
		}

		lastErr = res.err
		f.logger.Debug("Firecrawl scrape attempt failed", map[string]interface{}{
			"attempt": attempt,
			"url":     url,
			"error":   res.err.Error(),
		})

		if attempt < f.maxRetries {
			select {
			case <-time.After(time.Duration(attempt) * f.backoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("firecrawl scrape of %s: %w", url, ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("firecrawl scraping failed after %d attempts: %w", f.maxRetries, lastErr)
}

func (f *FirecrawlScraper) toPage(url string, doc *firecrawl.FirecrawlDocument, start time.Time) (*models.ScrapedPage, error) {
	if doc == nil {
		return nil, errors.New("no result returned from Firecrawl")
	}

	page := &models.ScrapedPage{
		URL:       url,
		Engine:    f.Name(),
		FetchedAt: time.Now(),
		Duration:  time.Since(start),
	}

	switch {
	case strings.TrimSpace(doc.Markdown) != "":
		page.Content = doc.Markdown
		page.ContentType = models.ContentMarkdown
	case strings.TrimSpace(doc.HTML) != "":
		page.Content = doc.HTML
		page.ContentType = models.ContentHTML
	default:
		return nil, errors.New("no content found in Firecrawl response")
	}

	return page, nil
}

func (f *FirecrawlScraper) Name() string   { return "firecrawl" }
func (f *FirecrawlScraper) Cleanup()       {}
func (f *FirecrawlScraper) IsHealthy() bool { return f.app != nil }
