package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobhunt-insights/pkg/models"
)

// Version is reported by the health endpoints.
const Version = "1.0.0"

var startTime = time.Now()

// ScoringStatus is the view of the scoring manager the health checks need.
type ScoringStatus interface {
	IsHealthy() bool
	GetProviderName() string
}

// ScraperStatus is the view of the page scraper the health checks need.
type ScraperStatus interface {
	IsHealthy() bool
	Name() string
}

// RootHandler describes the service and its endpoints.
func RootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"message":   "Job Hunt Insights Engine API",
		"version":   Version,
		"timestamp": time.Now(),
		"endpoints": map[string]string{
			"health":          "/health",
			"resume":          "/api/resume/upload",
			"analysis":        "/api/analysis/analyze",
			"recommendations": "/api/jobs/recommendations",
			"metrics":         "/metrics",
		},
	})
}

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   Version,
		Uptime:    time.Since(startTime),
		Checks:    map[string]string{"api": "ok"},
	})
}

// ReadinessHandler reports collaborator health. The service keeps serving
// degraded results when a collaborator is down, so it answers 200 with
// status "degraded" rather than failing the probe.
func ReadinessHandler(scoring ScoringStatus, scraper ScraperStatus) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{"api": "ok"}
		status := "ready"

		if scoring != nil {
			if scoring.IsHealthy() {
				checks["scoring:"+scoring.GetProviderName()] = "ok"
			} else {
				checks["scoring:"+scoring.GetProviderName()] = "unavailable"
				status = "degraded"
			}
		}

		if scraper != nil {
			if scraper.IsHealthy() {
				checks["scraper:"+scraper.Name()] = "ok"
			} else {
				checks["scraper:"+scraper.Name()] = "unavailable"
				status = "degraded"
			}
		}

		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   Version,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   Version,
		Uptime:    time.Since(startTime),
	})
}
