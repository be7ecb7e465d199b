package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jobhunt-insights/internal/analysis"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

// RecommendationsHandler handles POST /api/jobs/recommendations.
func RecommendationsHandler(svc *analysis.Service, logger logging.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := logging.FromContext(ctx, logger)

		var req models.RecommendationsRequest
		if err := c.Bind(&req); err != nil {
			return respondError(c, log, utils.NewInputError("Invalid JSON format"))
		}
		if err := c.Validate(&req); err != nil {
			return respondError(c, log, utils.NewInputError(err.Error()))
		}

		jobs, degraded, err := svc.Recommend(ctx, req.ResumeID)
		if err != nil {
			return respondError(c, log, err)
		}
		if jobs == nil {
			jobs = []models.JobListing{}
		}

		return c.JSON(http.StatusOK, models.RecommendationsResponse{Jobs: jobs, Degraded: degraded})
	}
}
