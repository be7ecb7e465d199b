package scoring

import (
	"fmt"

	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
)

// NewProvider creates the provider named by cfg.Scoring.Provider.
func NewProvider(cfg *config.Config, logger logging.Logger) (Provider, error) {
	switch cfg.Scoring.Provider {
	case "", "http":
		return NewHTTPProvider(cfg.Scoring.BaseURL, HTTPOptions{
			Timeout:    cfg.Scoring.Timeout,
			MaxRetries: cfg.Scoring.MaxRetries,
			Logger:     logger,
		}), nil
	case "claude":
		return NewClaudeProvider(cfg, logger), nil
	case "openai":
		return NewOpenAIProvider(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported scoring provider: %s", cfg.Scoring.Provider)
	}
}

// SupportedProviders returns the provider names NewProvider accepts.
func SupportedProviders() []string {
	return append([]string(nil), config.SupportedProviders...)
}
