package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"jobhunt-insights/internal/analysis"
	"jobhunt-insights/internal/api/routes"
	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/extractor"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/internal/scoring"
	"jobhunt-insights/internal/scraper"
	"jobhunt-insights/internal/session"
	"jobhunt-insights/pkg/utils"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Job Hunt Insights Engine", map[string]interface{}{
		"scraper_engine":   cfg.Scraper.Engine,
		"scoring_provider": cfg.Scoring.Provider,
	})

	// Page scraper and job description resolver
	pageScraper, err := scraper.NewScraper(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create scraper", map[string]interface{}{"error": err.Error()})
	}

	var cache scraper.Cache = scraper.NoopCache{}
	var redisClient *utils.RedisClient
	if cfg.Cache.Enabled {
		redisClient = utils.NewRedisClient(cfg)
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
		if err := redisClient.Ping(pingCtx); err != nil {
			logger.Warn("Redis unreachable, scrape cache will miss until it recovers", map[string]interface{}{"error": err.Error()})
		}
		cancel()
		cache = scraper.NewRedisCache(redisClient, cfg.Cache.TTL)
	}

	resolver := scraper.NewResolver(pageScraper, scraper.ResolverOptions{
		Timeout:       cfg.Scraper.RequestTimeout,
		MinTextLength: cfg.Scraper.MinTextLength,
		Limiter:       scraper.NewDomainLimiter(cfg.Scraper.RateLimit, 0),
		Cache:         cache,
		Logger:        logger,
	})

	// Scoring manager
	scoringManager, err := scoring.NewManager(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create scoring manager", map[string]interface{}{"error": err.Error()})
	}
	scoringManager.Start(context.Background())

	svc := analysis.NewService(analysis.Deps{
		Extractor: extractor.New(logger),
		Resolver:  resolver,
		Scorer:    scoringManager,
		Store:     session.NewMemoryStore(),
		Logger:    logger,
	})

	// Initialize Echo
	e := echo.New()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	routes.SetupRoutes(e, cfg, routes.Dependencies{
		Service: svc,
		Scoring: scoringManager,
		Scraper: pageScraper,
		Logger:  logger,
	})

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Releasing scraper resources...")
		pageScraper.Cleanup()

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Error("Error closing Redis client", map[string]interface{}{"error": err.Error()})
			}
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := cfg.Address()
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}
