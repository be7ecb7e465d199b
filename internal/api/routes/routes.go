package routes

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobhunt-insights/internal/analysis"
	"jobhunt-insights/internal/api/handlers"
	"jobhunt-insights/internal/api/middleware"
	"jobhunt-insights/internal/api/validation"
	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/internal/metrics"
)

// Dependencies are the components the routes are served from.
type Dependencies struct {
	Service *analysis.Service
	Scoring handlers.ScoringStatus
	Scraper handlers.ScraperStatus
	Logger  logging.Logger
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	e.HideBanner = true
	e.Validator = validation.New()

	// Global middleware. The metrics middleware sits outside the access log so
	// it observes the status after errors are rendered.
	e.Use(middleware.RequestID())
	e.Use(echomiddleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.AccessLog(logger))
	e.Use(middleware.CORSConfig(cfg.CORS.AllowedOrigins))
	e.Use(middleware.BodyLimit(cfg.Upload.MaxBytes + multipartOverhead))
	e.Use(middleware.TimeoutConfig(cfg.Server.RequestTimeout))

	e.GET("/", handlers.RootHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(deps.Scoring, deps.Scraper))
		health.GET("/live", handlers.LivenessHandler)
	}

	api := e.Group("/api")
	{
		api.POST("/resume/upload", handlers.UploadResumeHandler(cfg, deps.Service, logger))

		analysisGroup := api.Group("/analysis")
		{
			analysisGroup.POST("/analyze", handlers.AnalyzeHandler(deps.Service, logger))
			analysisGroup.GET("/:id", handlers.GetAnalysisHandler(deps.Service, logger))
		}

		api.POST("/jobs/recommendations", handlers.RecommendationsHandler(deps.Service, logger))
	}
}

// multipartOverhead leaves room for multipart framing around a file of the
// maximum upload size.
const multipartOverhead = 64 << 10
