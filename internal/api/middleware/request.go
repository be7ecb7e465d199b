package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

// RequestIDKey is the echo context key holding the request id.
const RequestIDKey = "request_id"

// RequestID reuses an incoming X-Request-ID or generates one, echoes it in
// the response and stores it on both the echo context and the request
// context for logging.FromContext.
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: utils.GenerateRequestID,
		RequestIDHandler: func(c echo.Context, requestID string) {
			c.Set(RequestIDKey, requestID)
			req := c.Request()
			c.SetRequest(req.WithContext(logging.ContextWithRequestID(req.Context(), requestID)))
		},
	})
}

// BodyLimit rejects POST bodies larger than maxBytes: early when the client
// declares the length, otherwise when the handler reads past the limit.
func BodyLimit(maxBytes int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodPost {
				return next(c)
			}

			if req.ContentLength > maxBytes {
				requestID, _ := c.Get(RequestIDKey).(string)
				return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
					Error:     "request_too_large",
					Message:   "Request body too large",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}

			req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBytes)
			return next(c)
		}
	}
}

// AccessLog logs one line per request through the structured logger.
func AccessLog(logger logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			fields := map[string]interface{}{
				"method":      c.Request().Method,
				"path":        c.Path(),
				"uri":         c.Request().RequestURI,
				"status":      status,
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if id, ok := c.Get(RequestIDKey).(string); ok {
				fields["request_id"] = id
			}

			switch {
			case status >= 500:
				logger.Error("request completed", fields)
			case status >= 400:
				logger.Warn("request completed", fields)
			default:
				logger.Debug("request completed", fields)
			}
			return nil
		}
	}
}
