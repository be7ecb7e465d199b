// Package static fetches job pages with a plain HTTP GET, for hosts without
// a Chromium install.
package static

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
)

// maxBodyBytes caps how much of a page is read.
const maxBodyBytes = 5 << 20

// HTTPScraper implements the page scraper with net/http
type HTTPScraper struct {
	client    *http.Client
	userAgent string
	logger    logging.Logger
}

// NewHTTPScraper uses client when given, otherwise one bounded by the scrape timeout.
func NewHTTPScraper(cfg *config.Config, client *http.Client, logger logging.Logger) *HTTPScraper {
	if client == nil {
		client = &http.Client{Timeout: cfg.Scraper.RequestTimeout}
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &HTTPScraper{
		client:    client,
		userAgent: cfg.Scraper.UserAgent,
		logger:    logger.WithField("engine", "static"),
	}
}

func (s *HTTPScraper) Scrape(ctx context.Context, url string) (*models.ScrapedPage, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") && !strings.Contains(ct, "text") {
		return nil, fmt.Errorf("fetch %s: unsupported content type %q", url, ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}

	s.logger.Debug("Page fetched", map[string]interface{}{
		"url":    url,
		"status": resp.StatusCode,
		"bytes":  len(body),
	})

	return &models.ScrapedPage{
		URL:         url,
		Content:     string(body),
		ContentType: models.ContentHTML,
		Engine:      s.Name(),
		StatusCode:  resp.StatusCode,
		FetchedAt:   time.Now(),
		Duration:    time.Since(start),
	}, nil
}

func (s *HTTPScraper) Name() string    { return "static" }
func (s *HTTPScraper) Cleanup()        { s.client.CloseIdleConnections() }
func (s *HTTPScraper) IsHealthy() bool { return true }
