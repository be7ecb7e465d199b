package scoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/internal/metrics"
	"jobhunt-insights/pkg/models"
)

// Scoring outcomes recorded in metrics.
const (
	outcomeSuccess      = "success"
	outcomeFailure      = "failure"
	outcomeShortCircuit = "short_circuit"
)

// ManagerOptions configures a Manager built around an existing provider.
type ManagerOptions struct {
	Timeout     time.Duration
	Breaker     *CircuitBreaker
	Recommender Recommender
	Logger      logging.Logger
}

// Manager owns the scoring provider and applies the failure policy: any
// provider error, timeout or open circuit yields PlaceholderReport. Callers
// never see a scoring error.
type Manager struct {
	provider    Provider
	recommender Recommender
	breaker     *CircuitBreaker
	timeout     time.Duration
	logger      logging.Logger

	mu      sync.RWMutex
	healthy bool
}

// NewManager creates the provider configured in cfg and wraps it.
func NewManager(cfg *config.Config, logger logging.Logger) (*Manager, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	provider, err := NewProvider(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring provider: %w", err)
	}

	// LLM providers have no catalogue of openings; recommendations still go
	// to the scoring service.
	recommender, ok := provider.(Recommender)
	if !ok {
		recommender = NewHTTPProvider(cfg.Scoring.BaseURL, HTTPOptions{
			Timeout:    cfg.Scoring.Timeout,
			MaxRetries: cfg.Scoring.MaxRetries,
			Logger:     logger,
		})
	}

	return NewManagerWithProvider(provider, ManagerOptions{
		Timeout:     cfg.Scoring.Timeout,
		Breaker:     NewCircuitBreaker(cfg.Scoring.BreakerThreshold, cfg.Scoring.BreakerReset),
		Recommender: recommender,
		Logger:      logger,
	}), nil
}

// NewManagerWithProvider wraps provider. When opts.Recommender is nil the
// provider is used if it implements Recommender.
func NewManagerWithProvider(provider Provider, opts ManagerOptions) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewDiscardLogger()
	}
	if opts.Recommender == nil {
		if r, ok := provider.(Recommender); ok {
			opts.Recommender = r
		}
	}

	return &Manager{
		provider:    provider,
		recommender: opts.Recommender,
		breaker:     opts.Breaker,
		timeout:     opts.Timeout,
		logger:      opts.Logger,
		healthy:     true,
	}
}

// Start runs an initial health check. An unhealthy backend is logged but
// does not stop the server; requests then get the placeholder report.
func (m *Manager) Start(ctx context.Context) {
	m.logger.Info("Starting scoring manager", map[string]interface{}{"provider": m.provider.GetProviderName()})

	if err := m.CheckHealth(ctx); err != nil {
		m.logger.Warn("scoring provider health check failed - placeholder reports will be served until it recovers", map[string]interface{}{
			"provider": m.provider.GetProviderName(),
			"error":    err.Error(),
		})
		return
	}

	m.logger.Info("Scoring manager started successfully", map[string]interface{}{"provider": m.provider.GetProviderName()})
}

// Score scores req with the configured provider. The returned report is
// never nil; it is PlaceholderReport (Degraded) when the provider fails.
func (m *Manager) Score(ctx context.Context, req models.ScoreRequest) *models.MatchReport {
	name := m.provider.GetProviderName()

	if !m.breaker.CanCall() {
		metrics.ScoringRequestsTotal.WithLabelValues(name, outcomeShortCircuit).Inc()
		m.degrade(name, fmt.Errorf("circuit breaker %s", m.breaker.State()))
		return PlaceholderReport()
	}

	scoreCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	report, err := m.callProvider(scoreCtx, req)
	metrics.ScoringRequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		m.breaker.RecordFailure()
		m.setHealthy(false)
		metrics.ScoringRequestsTotal.WithLabelValues(name, outcomeFailure).Inc()
		m.degrade(name, err)
		return PlaceholderReport()
	}

	m.breaker.RecordSuccess()
	m.setHealthy(true)
	metrics.ScoringRequestsTotal.WithLabelValues(name, outcomeSuccess).Inc()

	report.Normalize()
	return report
}

func (m *Manager) callProvider(ctx context.Context, req models.ScoreRequest) (report *models.MatchReport, err error) {
	defer func() {
		if p := recover(); p != nil {
			report, err = nil, fmt.Errorf("scoring provider panicked: %v", p)
		}
	}()

	report, err = m.provider.Score(ctx, req)
	if err == nil && report == nil {
		err = fmt.Errorf("scoring provider returned no report")
	}
	return report, err
}

func (m *Manager) degrade(provider string, err error) {
	metrics.RecordDegradation(metrics.DegradationScoring)
	m.logger.Warn("scoring unavailable, using placeholder report", map[string]interface{}{
		"degradation": metrics.DegradationScoring,
		"provider":    provider,
		"error":       err.Error(),
	})
}

// Recommend returns job listings for a resume. The bool is true when the
// listings are FallbackRecommendations.
func (m *Manager) Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.JobListing, bool) {
	if m.recommender == nil {
		return FallbackRecommendations(), true
	}

	recCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	jobs, err := m.recommender.Recommend(recCtx, req)
	if err != nil {
		metrics.RecordDegradation(metrics.DegradationScoring)
		m.logger.Warn("job recommendations unavailable, using fallback catalogue", map[string]interface{}{
			"degradation": metrics.DegradationScoring,
			"error":       err.Error(),
		})
		return FallbackRecommendations(), true
	}
	return jobs, false
}

// CheckHealth performs a health check on the provider
func (m *Manager) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.provider.IsHealthy(ctx)
	m.setHealthy(err == nil)
	return err
}

// IsHealthy reports the result of the last health check or scoring call.
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy
}

// GetProviderName returns the name of the current scoring provider
func (m *Manager) GetProviderName() string {
	return m.provider.GetProviderName()
}

// BreakerState exposes the circuit state for health reporting.
func (m *Manager) BreakerState() CircuitState {
	return m.breaker.State()
}

func (m *Manager) setHealthy(healthy bool) {
	m.mu.Lock()
	m.healthy = healthy
	m.mu.Unlock()
}
