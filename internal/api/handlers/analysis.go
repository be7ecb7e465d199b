package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jobhunt-insights/internal/analysis"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

// AnalyzeHandler handles POST /api/analysis/analyze.
func AnalyzeHandler(svc *analysis.Service, logger logging.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := logging.FromContext(ctx, logger)

		var req models.AnalyzeRequest
		if err := c.Bind(&req); err != nil {
			return respondError(c, log, utils.NewInputError("Invalid JSON format"))
		}
		if err := c.Validate(&req); err != nil {
			return respondError(c, log, utils.NewInputError(err.Error()))
		}

		record, err := svc.Analyze(ctx, req)
		if err != nil {
			return respondError(c, log, err)
		}

		return c.JSON(http.StatusOK, models.AnalyzeResponse{
			AnalysisID: record.ID,
			Status:     record.Status,
			Results:    record.Report,
			Degraded:   record.Degraded(),
			Warnings:   record.Warnings,
		})
	}
}

// GetAnalysisHandler handles GET /api/analysis/:id.
func GetAnalysisHandler(svc *analysis.Service, logger logging.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		record, err := svc.GetAnalysis(ctx, c.Param("id"))
		if err != nil {
			return respondError(c, logging.FromContext(ctx, logger), err)
		}

		return c.JSON(http.StatusOK, models.AnalysisStatusResponse{
			Status:   record.Status,
			Results:  record.Report,
			Degraded: record.Degraded(),
			Warnings: record.Warnings,
			Error:    record.Error,
		})
	}
}
