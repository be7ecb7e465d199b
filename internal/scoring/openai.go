package scoring

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
)

const defaultOpenAIModel = openai.GPT4oMini

// OpenAIProvider scores matches through any OpenAI-compatible chat API.
type OpenAIProvider struct {
	client      *openai.Client
	apiKey      string
	model       string
	maxTokens   int
	temperature float32
	logger      logging.Logger
}

// NewOpenAIProvider creates an OpenAI-compatible provider. LLMBaseURL
// points it at a compatible gateway.
func NewOpenAIProvider(cfg *config.Config, logger logging.Logger) *OpenAIProvider {
	clientCfg := openai.DefaultConfig(cfg.Scoring.APIKey)
	if cfg.Scoring.LLMBaseURL != "" {
		clientCfg.BaseURL = cfg.Scoring.LLMBaseURL
	}

	model := cfg.Scoring.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(clientCfg),
		apiKey:      cfg.Scoring.APIKey,
		model:       model,
		maxTokens:   cfg.Scoring.MaxTokens,
		temperature: cfg.Scoring.Temperature,
		logger:      logger,
	}
}

func (p *OpenAIProvider) Score(ctx context.Context, req models.ScoreRequest) (*models.MatchReport, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildScoringPrompt(req),
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call chat completion API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty chat completion response")
	}

	report, err := parseReportJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("OpenAI scoring completed", map[string]interface{}{
		"provider":          "openai",
		"model":             p.model,
		"overall_score":     report.OverallScore,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	})
	return report, nil
}

// IsHealthy lists models, which needs a valid key but no completion quota.
func (p *OpenAIProvider) IsHealthy(ctx context.Context) error {
	if p.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured - set LLM_API_KEY environment variable")
	}
	if _, err := p.client.ListModels(ctx); err != nil {
		return fmt.Errorf("OpenAI API health check failed: %w", err)
	}
	return nil
}

func (p *OpenAIProvider) GetProviderName() string {
	return "openai"
}
