package heuristics

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

type analyzeRequest struct {
	ResumeText     *string                `json:"resume_text" validate:"required"`
	JobDescription *string                `json:"job_description" validate:"required"`
	ResumeData     map[string]interface{} `json:"resume_data"`
}

type recommendationRequest struct {
	ResumeText *string                `json:"resumeText" validate:"required"`
	ResumeData map[string]interface{} `json:"resumeData"`
}

var validate = validator.New()

// SetupRoutes registers the scoring service endpoints on e.
func SetupRoutes(e *echo.Echo, logger logging.Logger, now func() time.Time) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	e.POST("/analyze", AnalyzeHandler(logger))
	e.POST("/job-recommendations", RecommendationsHandler(logger, now))
}

// AnalyzeHandler scores the posted resume against the posted job text.
func AnalyzeHandler(logger logging.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req analyzeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "request body must be JSON"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		}

		start := time.Now()
		report := Analyze(*req.ResumeText, *req.JobDescription)

		logger.Info("analysis scored", map[string]interface{}{
			"resume_preview":  utils.Preview(*req.ResumeText, 80),
			"job_preview":     utils.Preview(*req.JobDescription, 80),
			"overall_score":   report.OverallScore,
			"skill_match":     report.SkillMatch,
			"matching_skills": len(report.MatchingSkills),
			"mismatch":        report.IsCompleteMismatch,
			"duration_ms":     time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusOK, report)
	}
}

// RecommendationsHandler ranks catalogue openings for the posted resume.
func RecommendationsHandler(logger logging.Logger, now func() time.Time) echo.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c echo.Context) error {
		var req recommendationRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "request body must be JSON"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		}

		jobs := Recommend(*req.ResumeText, now())
		logger.Info("recommendations generated", map[string]interface{}{"count": len(jobs)})

		return c.JSON(http.StatusOK, models.RecommendationResponse{Recommendations: jobs})
	}
}
