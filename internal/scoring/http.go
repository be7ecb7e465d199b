package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
)

// maxResponseBytes caps how much of a scoring response is read.
const maxResponseBytes = 4 << 20

// HTTPOptions configures an HTTPProvider; zero values take defaults.
type HTTPOptions struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       logging.Logger
}

// HTTPProvider talks to an external scoring service over JSON/HTTP:
// POST {base}/analyze, POST {base}/job-recommendations and GET {base}/health.
type HTTPProvider struct {
	baseURL string
	client  *retryablehttp.Client
	logger  logging.Logger
}

// NewHTTPProvider creates a client for the scoring service at baseURL.
func NewHTTPProvider(baseURL string, opts HTTPOptions) *HTTPProvider {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = 250 * time.Millisecond
	}
	if opts.RetryWaitMax < opts.RetryWaitMin {
		opts.RetryWaitMax = 4 * opts.RetryWaitMin
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewDiscardLogger()
	}

	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = opts.Timeout
	client.RetryMax = opts.MaxRetries
	client.RetryWaitMin = opts.RetryWaitMin
	client.RetryWaitMax = opts.RetryWaitMax
	client.Logger = leveledLogger{opts.Logger}

	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  opts.Logger,
	}
}

// Score posts the request to {base}/analyze and decodes the report.
// Missing scores decode as 0; out-of-range scores are clamped.
func (p *HTTPProvider) Score(ctx context.Context, req models.ScoreRequest) (*models.MatchReport, error) {
	if req.ResumeData == nil {
		req.ResumeData = map[string]interface{}{}
	}

	var report models.MatchReport
	if err := p.postJSON(ctx, "/analyze", req, &report); err != nil {
		return nil, err
	}
	report.Normalize()
	return &report, nil
}

// Recommend posts the resume to {base}/job-recommendations.
func (p *HTTPProvider) Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.JobListing, error) {
	if req.ResumeData == nil {
		req.ResumeData = map[string]interface{}{}
	}

	var resp models.RecommendationResponse
	if err := p.postJSON(ctx, "/job-recommendations", req, &resp); err != nil {
		return nil, err
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []models.JobListing{}
	}
	return resp.Recommendations, nil
}

// IsHealthy calls GET {base}/health once, without retries.
func (p *HTTPProvider) IsHealthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := p.client.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("scoring service unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("scoring service health returned status %d", resp.StatusCode)
	}
	return nil
}

func (p *HTTPProvider) GetProviderName() string {
	return "http"
}

func (p *HTTPProvider) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("scoring request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read scoring response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("scoring service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("malformed scoring response: %w", err)
	}
	return nil
}

// leveledLogger routes retryablehttp's logging into the structured logger.
type leveledLogger struct {
	logger logging.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, kvFields(keysAndValues))
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, kvFields(keysAndValues))
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, kvFields(keysAndValues))
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, kvFields(keysAndValues))
}

func kvFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		value := keysAndValues[i+1]
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		fields[key] = value
	}
	return fields
}
