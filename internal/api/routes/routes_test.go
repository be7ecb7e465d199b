package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-insights/internal/analysis"
	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/heuristics"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/internal/scoring"
	"jobhunt-insights/internal/scraper"
	"jobhunt-insights/internal/session"
	"jobhunt-insights/pkg/models"
)

const resumeText = "Jane Doe\nSkills: Python, SQL, Docker, PostgreSQL\n5 years experience building REST API services"

// failingScraper stands in for a browser; every scrape fails.
type failingScraper struct{}

func (failingScraper) Scrape(context.Context, string) (*models.ScrapedPage, error) {
	return nil, errors.New("no browser in tests")
}

func (failingScraper) Name() string    { return "failing" }
func (failingScraper) Cleanup()        {}
func (failingScraper) IsHealthy() bool { return true }

type testServer struct {
	echo    *echo.Echo
	manager *scoring.Manager
}

func newTestServer(t *testing.T, scoringURL string, mutate func(*config.Config)) *testServer {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}

	manager := scoring.NewManagerWithProvider(
		scoring.NewHTTPProvider(scoringURL, scoring.HTTPOptions{Timeout: 2 * time.Second, MaxRetries: 0}),
		scoring.ManagerOptions{Timeout: 2 * time.Second},
	)
	page := failingScraper{}
	svc := analysis.NewService(analysis.Deps{
		Resolver: scraper.NewResolver(page, scraper.ResolverOptions{Timeout: time.Second}),
		Scorer:   manager,
		Store:    session.NewMemoryStore(),
		Logger:   logging.NewDiscardLogger(),
	})

	e := echo.New()
	SetupRoutes(e, cfg, Dependencies{
		Service: svc,
		Scoring: manager,
		Scraper: page,
		Logger:  logging.NewDiscardLogger(),
	})
	return &testServer{echo: e, manager: manager}
}

func newScoringBackend(t *testing.T) *httptest.Server {
	t.Helper()
	e := echo.New()
	heuristics.SetupRoutes(e, logging.NewDiscardLogger(), time.Now)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

// closedURL returns the address of a server that is no longer listening.
func closedURL() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return srv.URL
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) postJSON(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return s.do(req)
}

func (s *testServer) upload(t *testing.T, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return s.do(req)
}

func (s *testServer) uploadResume(t *testing.T) string {
	t.Helper()
	rec := s.upload(t, "resume", "resume.txt", []byte(resumeText))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ResumeID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestUploadResume(t *testing.T) {
	srv := newTestServer(t, closedURL(), nil)

	rec := srv.upload(t, "resume", "resume.txt", []byte(resumeText))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Regexp(t, `^rsm_[0-9a-f]{32}$`, resp.ResumeID)
	assert.Equal(t, "resume.txt", resp.Filename)
	assert.Equal(t, len([]rune(resumeText)), resp.TextLength)
	assert.False(t, resp.Degraded)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestUploadResume_MissingFile(t *testing.T) {
	srv := newTestServer(t, closedURL(), nil)

	rec := srv.upload(t, "document", "resume.txt", []byte(resumeText))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeError(t, rec)
	assert.Equal(t, "invalid_input", resp.Error)
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), resp.RequestID)
}

func TestUploadResume_TooLarge(t *testing.T) {
	srv := newTestServer(t, closedURL(), func(cfg *config.Config) { cfg.Upload.MaxBytes = 1024 })

	rec := srv.upload(t, "resume", "resume.txt", bytes.Repeat([]byte("a"), 2048))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = srv.upload(t, "resume", "resume.txt", bytes.Repeat([]byte("a"), 128<<10))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAnalyze_EndToEnd(t *testing.T) {
	backend := newScoringBackend(t)
	srv := newTestServer(t, backend.URL, nil)
	resumeID := srv.uploadResume(t)

	rec := srv.postJSON(t, "/api/analysis/analyze", map[string]string{
		"resumeId":       resumeID,
		"jobDescription": "Backend engineer with Python, Docker and PostgreSQL. 3+ years experience building REST API services.",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Regexp(t, `^anl_[0-9a-f]{32}$`, resp.AnalysisID)
	assert.Equal(t, models.AnalysisStatusCompleted, resp.Status)
	assert.False(t, resp.Degraded)
	assert.Empty(t, resp.Warnings)
	require.NotNil(t, resp.Results)
	assert.Greater(t, resp.Results.OverallScore, 0.0)
	assert.Contains(t, resp.Results.MatchingSkills, "Python")

	get := srv.do(httptest.NewRequest(http.MethodGet, "/api/analysis/"+resp.AnalysisID, nil))
	require.Equal(t, http.StatusOK, get.Code)

	var status models.AnalysisStatusResponse
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &status))
	assert.Equal(t, models.AnalysisStatusCompleted, status.Status)
	assert.Equal(t, resp.Results.OverallScore, status.Results.OverallScore)
}

func TestAnalyze_ScoringUnavailableReturnsPlaceholder(t *testing.T) {
	srv := newTestServer(t, closedURL(), nil)
	resumeID := srv.uploadResume(t)

	rec := srv.postJSON(t, "/api/analysis/analyze", map[string]string{
		"resumeId":       resumeID,
		"jobDescription": "Go developer",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Degraded)
	assert.Equal(t, []string{models.WarningScoringUnavailable}, resp.Warnings)
	assert.Equal(t, 65.0, resp.Results.OverallScore)
	assert.Equal(t, 70.0, resp.Results.SkillMatch)
}

func TestAnalyze_MissingJobInput(t *testing.T) {
	srv := newTestServer(t, closedURL(), nil)
	resumeID := srv.uploadResume(t)

	rec := srv.postJSON(t, "/api/analysis/analyze", map[string]string{"resumeId": resumeID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", decodeError(t, rec).Error)
}

func TestAnalyze_UnusableJobURLDegrades(t *testing.T) {
	backend := newScoringBackend(t)
	srv := newTestServer(t, backend.URL, nil)
	resumeID := srv.uploadResume(t)

	rec := srv.postJSON(t, "/api/analysis/analyze", map[string]string{
		"resumeId": resumeID,
		"jobUrl":   "ftp://jobs.example.com/1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Degraded)
	assert.Equal(t, []string{models.WarningScrapeFailed}, resp.Warnings)
}

func TestAnalyze_UnknownResume(t *testing.T) {
	srv := newTestServer(t, closedURL(), nil)

	rec := srv.postJSON(t, "/api/analysis/analyze", map[string]string{
		"resumeId":       "rsm_00000000000000000000000000000000",
		"jobDescription": "Go developer",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "resume_not_found", decodeError(t, rec).Error)
}

func TestAnalyze_InvalidBody(t *testing.T) {
	srv := newTestServer(t, closedURL(), nil)

	rec := srv.postJSON(t, "/api/analysis/analyze", map[string]string{"jobDescription": "Go developer"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "ResumeID is required")

	req := httptest.NewRequest(http.MethodPost, "/api/analysis/analyze", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, srv.do(req).Code)
}

func TestGetAnalysis_NotFound(t *testing.T) {
	srv := newTestServer(t, closedURL(), nil)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/api/analysis/anl_missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "analysis_not_found", decodeError(t, rec).Error)
}

func TestRecommendations(t *testing.T) {
	backend := newScoringBackend(t)
	srv := newTestServer(t, backend.URL, nil)
	resumeID := srv.uploadResume(t)

	rec := srv.postJSON(t, "/api/jobs/recommendations", map[string]string{"resumeId": resumeID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.RecommendationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Degraded)
	assert.NotEmpty(t, resp.Jobs)
	assert.LessOrEqual(t, len(resp.Jobs), 10)
}

func TestRecommendations_FallbackWhenScoringDown(t *testing.T) {
	srv := newTestServer(t, closedURL(), nil)
	resumeID := srv.uploadResume(t)

	rec := srv.postJSON(t, "/api/jobs/recommendations", map[string]string{"resumeId": resumeID})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RecommendationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Degraded)
	assert.Len(t, resp.Jobs, 3)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, closedURL(), nil)

	for _, path := range []string{"/", "/health", "/health/ready", "/health/live"} {
		rec := srv.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRequestIDIsPropagated(t *testing.T) {
	srv := newTestServer(t, closedURL(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-fixed-1")
	rec := srv.do(req)
	assert.Equal(t, "req-fixed-1", rec.Header().Get(echo.HeaderXRequestID))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, closedURL(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/analysis/analyze", nil)
	req.Header.Set(echo.HeaderOrigin, "http://app.test")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := srv.do(req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
