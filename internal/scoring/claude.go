package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

// ClaudeProvider scores matches with Anthropic's Claude.
type ClaudeProvider struct {
	client      anthropic.Client
	apiKey      string
	model       anthropic.Model
	maxTokens   int64
	temperature float64
	logger      logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config, logger logging.Logger) *ClaudeProvider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.Scoring.APIKey)}
	if cfg.Scoring.LLMBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.Scoring.LLMBaseURL))
	}

	model := anthropic.ModelClaude3_7SonnetLatest
	if cfg.Scoring.Model != "" {
		model = anthropic.Model(cfg.Scoring.Model)
	}

	return &ClaudeProvider{
		client:      anthropic.NewClient(opts...),
		apiKey:      cfg.Scoring.APIKey,
		model:       model,
		maxTokens:   int64(cfg.Scoring.MaxTokens),
		temperature: float64(cfg.Scoring.Temperature),
		logger:      logger,
	}
}

// Score asks Claude for a MatchReport in JSON form.
func (cp *ClaudeProvider) Score(ctx context.Context, req models.ScoreRequest) (*models.MatchReport, error) {
	startTime := time.Now()

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       cp.model,
		MaxTokens:   cp.maxTokens,
		Temperature: anthropic.Float(cp.temperature),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: buildScoringPrompt(req)},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Claude API: %w", err)
	}

	var responseText string
	for _, content := range response.Content {
		if text := content.AsText().Text; text != "" {
			responseText = text
			break
		}
	}
	if responseText == "" {
		return nil, fmt.Errorf("no text content in Claude response")
	}

	report, err := parseReportJSON(responseText)
	if err != nil {
		return nil, err
	}

	cp.logger.Debug("Claude scoring completed", map[string]interface{}{
		"provider":        "claude",
		"model":           string(cp.model),
		"overall_score":   report.OverallScore,
		"processing_time": utils.FormatDuration(time.Since(startTime)),
	})

	return report, nil
}

// IsHealthy checks if the Claude provider is configured and reachable
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.apiKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     cp.model,
		MaxTokens: 16,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}
	return nil
}

func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
