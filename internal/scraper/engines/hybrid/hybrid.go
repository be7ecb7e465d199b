// Package hybrid fetches pages with a plain HTTP GET first and renders them
// in a browser only when that yields no usable text.
package hybrid

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
)

// Engine is the subset of the page scraper contract the hybrid engine drives.
type Engine interface {
	Scrape(ctx context.Context, url string) (*models.ScrapedPage, error)
	Name() string
	Cleanup()
	IsHealthy() bool
}

// errThinPage marks a fetched page whose visible text is too short to hold a
// job description.
var errThinPage = errors.New("page has too little visible text")

// HybridScraper tries the fetch engine first and falls back to the browser
// engine, remembering domains that needed the browser.
type HybridScraper struct {
	fetch         Engine
	browser       Engine
	domains       *BrowserDomains
	minTextLength int
	logger        logging.Logger
}

// NewHybridScraper combines fetch (cheap) and browser (rendering) engines.
func NewHybridScraper(fetch, browser Engine, minTextLength int, logger logging.Logger) *HybridScraper {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	if minTextLength <= 0 {
		minTextLength = 100
	}

	domains := NewBrowserDomains(defaultBrowserDomains...)
	logger = logger.WithField("engine", "hybrid")
	logger.Info("Hybrid scraper initialized", map[string]interface{}{
		"fetch":                 fetch.Name(),
		"browser":               browser.Name(),
		"known_browser_domains": domains.Count(),
	})

	return &HybridScraper{
		fetch:         fetch,
		browser:       browser,
		domains:       domains,
		minTextLength: minTextLength,
		logger:        logger,
	}
}

// Scrape goes straight to the browser for known domains. Otherwise it
// fetches the page and falls back to the browser when the fetch fails or
// the page is a client-rendered shell.
func (h *HybridScraper) Scrape(ctx context.Context, url string) (*models.ScrapedPage, error) {
	if h.domains.Contains(url) {
		h.logger.Debug("Known browser domain, skipping plain fetch", map[string]interface{}{"url": url})
		return h.browser.Scrape(ctx, url)
	}

	page, err := h.fetch.Scrape(ctx, url)
	if err == nil {
		err = h.checkPage(page)
	}
	if err == nil {
		return page, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if errors.Is(err, errThinPage) && h.domains.Add(url) {
		h.logger.Info("Added browser domain", map[string]interface{}{
			"url":         url,
			"total_count": h.domains.Count(),
		})
	}

	h.logger.Debug("Plain fetch unusable, rendering in browser", map[string]interface{}{
		"url":   url,
		"error": err.Error(),
	})

	page, browserErr := h.browser.Scrape(ctx, url)
	if browserErr != nil {
		return nil, fmt.Errorf("hybrid scraping failed - %s: %v, %s: %w", h.fetch.Name(), err, h.browser.Name(), browserErr)
	}
	return page, nil
}

func (h *HybridScraper) checkPage(page *models.ScrapedPage) error {
	if page == nil {
		return errThinPage
	}
	if page.ContentType == models.ContentMarkdown {
		if len(strings.TrimSpace(page.Content)) < h.minTextLength {
			return errThinPage
		}
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Content))
	if err != nil {
		return fmt.Errorf("failed to parse page: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	if len(strings.Join(strings.Fields(doc.Find("body").Text()), " ")) < h.minTextLength {
		return errThinPage
	}
	return nil
}

func (h *HybridScraper) Name() string { return "hybrid" }

// Cleanup releases both engines
func (h *HybridScraper) Cleanup() {
	h.fetch.Cleanup()
	h.browser.Cleanup()
}

// IsHealthy is true while the browser fallback is usable
func (h *HybridScraper) IsHealthy() bool {
	return h.browser.IsHealthy()
}
