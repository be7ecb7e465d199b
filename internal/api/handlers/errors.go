package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobhunt-insights/internal/api/middleware"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

// errorCode maps an error kind onto the machine-readable code in responses.
func errorCode(err *utils.CustomError) string {
	switch {
	case err.Code == http.StatusRequestEntityTooLarge:
		return "request_too_large"
	case errors.Is(err, utils.ErrInput):
		return "invalid_input"
	case errors.Is(err, utils.ErrResumeNotFound):
		return "resume_not_found"
	case errors.Is(err, utils.ErrAnalysisNotFound):
		return "analysis_not_found"
	default:
		return "internal_error"
	}
}

// respondError renders err with the status code it carries. Causes of
// internal errors are logged and never rendered.
func respondError(c echo.Context, logger logging.Logger, err error) error {
	customErr := utils.AsCustomError(err)
	requestID, _ := c.Get(middleware.RequestIDKey).(string)

	if customErr.Code >= 500 {
		fields := map[string]interface{}{"request_id": requestID, "error": err.Error()}
		if cause := errors.Unwrap(customErr); cause != nil {
			fields["cause"] = cause.Error()
		}
		logger.Error("request failed", fields)
	}

	return c.JSON(customErr.Code, models.ErrorResponse{
		Error:     errorCode(customErr),
		Message:   customErr.Error(),
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
