package scraper

import (
	"fmt"

	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/internal/scraper/engines/firecrawl"
	"jobhunt-insights/internal/scraper/engines/headed"
	"jobhunt-insights/internal/scraper/engines/hybrid"
	"jobhunt-insights/internal/scraper/engines/static"
)

// NewScraper creates the engine selected by cfg.Scraper.Engine
func NewScraper(cfg *config.Config, logger logging.Logger) (PageScraper, error) {
	switch cfg.Scraper.Engine {
	case "headed":
		return headed.NewRodScraper(cfg, logger), nil
	case "static":
		return static.NewHTTPScraper(cfg, nil, logger), nil
	case "hybrid":
		return hybrid.NewHybridScraper(
			static.NewHTTPScraper(cfg, nil, logger),
			headed.NewRodScraper(cfg, logger),
			cfg.Scraper.MinTextLength,
			logger,
		), nil
	case "firecrawl":
		return firecrawl.NewFirecrawlScraper(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported scraping engine: %s", cfg.Scraper.Engine)
	}
}

// SupportedEngines lists the engines NewScraper can build.
func SupportedEngines() []string {
	return append([]string(nil), config.SupportedEngines...)
}
