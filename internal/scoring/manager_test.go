package scoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/internal/logging/adapters"
	"jobhunt-insights/internal/metrics"
	"jobhunt-insights/pkg/models"
)

type stubProvider struct {
	report *models.MatchReport
	err    error
	delay  time.Duration
	panics bool
	calls  int
}

func (s *stubProvider) Score(ctx context.Context, _ models.ScoreRequest) (*models.MatchReport, error) {
	s.calls++
	if s.panics {
		panic("provider exploded")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.report, s.err
}

func (s *stubProvider) IsHealthy(context.Context) error { return s.err }
func (s *stubProvider) GetProviderName() string         { return "stub" }

func TestManager_PassesThroughReport(t *testing.T) {
	stub := &stubProvider{report: &models.MatchReport{OverallScore: 88, SkillMatch: 90}}
	m := NewManagerWithProvider(stub, ManagerOptions{})

	report := m.Score(context.Background(), models.ScoreRequest{ResumeText: "r", JobDescription: "j"})
	assert.Equal(t, 88.0, report.OverallScore)
	assert.False(t, report.Degraded)
	assert.NotNil(t, report.Strengths)
	assert.True(t, m.IsHealthy())
}

func TestManager_HTTPErrorYieldsPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "scoring crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	mem := adapters.NewMemoryAdapter("memory")
	logger := logging.NewMultiLogger()
	require.NoError(t, logger.AddAdapter(mem))

	before := testutil.ToFloat64(metrics.DegradationsTotal.WithLabelValues(metrics.DegradationScoring))

	m := NewManagerWithProvider(NewHTTPProvider(srv.URL, fastOptions()), ManagerOptions{Logger: logger})
	report := m.Score(context.Background(), models.ScoreRequest{ResumeText: "r", JobDescription: "j"})

	assert.Equal(t, &models.MatchReport{
		OverallScore:    65,
		SkillMatch:      70,
		ExperienceMatch: 60,
		KeywordDensity:  65,
		Strengths:       []string{"Good technical foundation", "Relevant experience"},
		Improvements:    []string{"Add more specific skills", "Include more projects"},
		SuggestedProjects: []models.SuggestedProject{{
			Title:       "Portfolio Project",
			Description: "Build a comprehensive project showcasing your skills",
			Relevance:   "Demonstrates practical experience",
		}},
		Degraded: true,
	}, report)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.DegradationsTotal.WithLabelValues(metrics.DegradationScoring)))
	assert.Contains(t, mem.Messages(logging.WarnLevel), "scoring unavailable, using placeholder report")
	assert.False(t, m.IsHealthy())
}

func TestManager_TimeoutYieldsPlaceholder(t *testing.T) {
	stub := &stubProvider{report: &models.MatchReport{OverallScore: 99}, delay: time.Second}
	m := NewManagerWithProvider(stub, ManagerOptions{Timeout: 20 * time.Millisecond})

	report := m.Score(context.Background(), models.ScoreRequest{})
	assert.True(t, report.Degraded)
	assert.Equal(t, 65.0, report.OverallScore)
}

func TestManager_PanicYieldsPlaceholder(t *testing.T) {
	m := NewManagerWithProvider(&stubProvider{panics: true}, ManagerOptions{})
	assert.True(t, m.Score(context.Background(), models.ScoreRequest{}).Degraded)
}

func TestManager_NilReportIsFailure(t *testing.T) {
	m := NewManagerWithProvider(&stubProvider{}, ManagerOptions{})
	assert.True(t, m.Score(context.Background(), models.ScoreRequest{}).Degraded)
}

func TestManager_OpenBreakerSkipsProvider(t *testing.T) {
	stub := &stubProvider{err: errors.New("down")}
	m := NewManagerWithProvider(stub, ManagerOptions{Breaker: NewCircuitBreaker(2, time.Hour)})

	for i := 0; i < 4; i++ {
		assert.True(t, m.Score(context.Background(), models.ScoreRequest{}).Degraded)
	}
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, CircuitOpen, m.BreakerState())
}

func TestManager_Recommend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"recommendations": [{"id": "a", "title": "Data Engineer"}]}`))
	}))
	defer srv.Close()

	m := NewManagerWithProvider(NewHTTPProvider(srv.URL, fastOptions()), ManagerOptions{})
	jobs, degraded := m.Recommend(context.Background(), models.RecommendationRequest{ResumeText: "r"})
	assert.False(t, degraded)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Data Engineer", jobs[0].Title)
}

func TestManager_RecommendFallback(t *testing.T) {
	m := NewManagerWithProvider(&stubProvider{}, ManagerOptions{})
	jobs, degraded := m.Recommend(context.Background(), models.RecommendationRequest{})
	assert.True(t, degraded)
	assert.Equal(t, FallbackRecommendations(), jobs)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	before := testutil.ToFloat64(metrics.DegradationsTotal.WithLabelValues(metrics.DegradationScoring))

	m = NewManagerWithProvider(NewHTTPProvider(srv.URL, fastOptions()), ManagerOptions{})
	jobs, degraded = m.Recommend(context.Background(), models.RecommendationRequest{})
	assert.True(t, degraded)
	assert.Len(t, jobs, 3)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.DegradationsTotal.WithLabelValues(metrics.DegradationScoring)))
}

func TestNewManager_ProviderSelection(t *testing.T) {
	cfg := config.Default()

	m, err := NewManager(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "http", m.GetProviderName())

	cfg.Scoring.Provider = "claude"
	m, err = NewManager(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "claude", m.GetProviderName())
	assert.NotNil(t, m.recommender)

	cfg.Scoring.Provider = "openai"
	m, err = NewManager(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", m.GetProviderName())

	cfg.Scoring.Provider = "oracle"
	_, err = NewManager(cfg, nil)
	assert.Error(t, err)
}

func TestLLMProviders_RequireAPIKey(t *testing.T) {
	cfg := config.Default()
	assert.Error(t, NewClaudeProvider(cfg, logging.NewDiscardLogger()).IsHealthy(context.Background()))
	assert.Error(t, NewOpenAIProvider(cfg, logging.NewDiscardLogger()).IsHealthy(context.Background()))
}
