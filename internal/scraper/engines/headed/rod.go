package headed

import (
	"context"
	"fmt"
	"time"

	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

// RodScraper renders job pages in headless Chromium
type RodScraper struct {
	config         *config.Config
	browserManager *BrowserManager
	logger         logging.Logger
}

// NewRodScraper creates a new Rod scraper instance
func NewRodScraper(cfg *config.Config, logger logging.Logger) *RodScraper {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	logger = logger.WithField("engine", "headed")

	return &RodScraper{
		config:         cfg,
		browserManager: NewBrowserManager(cfg, logger),
		logger:         logger,
	}
}

// Scrape loads url, waits for the network to settle and returns the rendered HTML
func (rs *RodScraper) Scrape(ctx context.Context, url string) (*models.ScrapedPage, error) {
	startTime := time.Now()

	browser, err := rs.browserManager.GetBrowser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get browser instance: %w", err)
	}
	defer browser.Release()

	if err := browser.Navigate(ctx, url, rs.config.Scraper.IdleWait); err != nil {
		return nil, err
	}

	html, err := browser.GetPageHTML()
	if err != nil {
		return nil, err
	}

	rs.logger.Debug("Page rendered", map[string]interface{}{
		"url":             url,
		"html_length":     len(html),
		"processing_time": utils.FormatDuration(time.Since(startTime)),
	})

	return &models.ScrapedPage{
		URL:         url,
		Content:     html,
		ContentType: models.ContentHTML,
		Engine:      rs.Name(),
		FetchedAt:   time.Now(),
		Duration:    time.Since(startTime),
	}, nil
}

func (rs *RodScraper) Name() string { return "headed" }

// Cleanup shuts the browser down
func (rs *RodScraper) Cleanup() {
	rs.browserManager.Cleanup()
}

func (rs *RodScraper) IsHealthy() bool {
	return rs.browserManager.IsHealthy()
}
