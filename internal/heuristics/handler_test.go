package heuristics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
)

func newTestServer() *echo.Echo {
	e := echo.New()
	fixed := func() time.Time { return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) }
	SetupRoutes(e, logging.NewDiscardLogger(), fixed)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/analyze", `{
		"resume_text": "Jane Doe\nSkills: Python, SQL\n5 years experience",
		"job_description": "Looking for a Python developer with SQL skills",
		"resume_data": {}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.MatchReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 100.0, report.SkillMatch)
	assert.NotEmpty(t, report.Strengths)
	assert.NotEmpty(t, report.SuggestedProjects)
}

func TestAnalyzeEndpoint_RejectsMissingFields(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/analyze", `{"resume_text": "x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(e, http.MethodPost, "/analyze", `not json`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAnalyzeEndpoint_AcceptsEmptyStrings(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/analyze", `{"resume_text": "", "job_description": "", "resume_data": {}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.MatchReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 0.0, report.OverallScore)
	assert.True(t, report.IsCompleteMismatch)
}

func TestRecommendationsEndpoint(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/job-recommendations", `{"resumeText": "Go, Docker and PostgreSQL", "resumeData": {}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RecommendationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Recommendations, maxRecommendations)
	assert.Equal(t, "Backend Developer", resp.Recommendations[0].Title)
}

func TestHealthEndpoint(t *testing.T) {
	rec := do(newTestServer(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}
