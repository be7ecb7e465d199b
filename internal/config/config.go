package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port           int           `yaml:"port" default:"3000"`
		Host           string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout    time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout   time.Duration `yaml:"write_timeout" default:"90s"`
		IdleTimeout    time.Duration `yaml:"idle_timeout" default:"60s"`
		RequestTimeout time.Duration `yaml:"request_timeout" default:"80s"`
	} `yaml:"server"`

	Upload struct {
		MaxBytes  int64  `yaml:"max_bytes" default:"10485760"`
		FormField string `yaml:"form_field" default:"resume"`
	} `yaml:"upload"`

	Scraper struct {
		Engine         string        `yaml:"engine" default:"headed"`
		UserAgent      string        `yaml:"user_agent"`
		RequestTimeout time.Duration `yaml:"request_timeout" default:"30s"`
		IdleWait       time.Duration `yaml:"idle_wait" default:"500ms"`
		HeadlessMode   bool          `yaml:"headless_mode" default:"true"`
		StealthMode    bool          `yaml:"stealth_mode" default:"true"`
		RateLimit      int           `yaml:"rate_limit" default:"30"` // requests per minute per domain
		MinTextLength  int           `yaml:"min_text_length" default:"100"`
	} `yaml:"scraper"`

	Browser struct {
		MaxInstances int    `yaml:"max_instances" default:"2"`
		ChromePath   string `yaml:"chrome_path"`
	} `yaml:"browser"`

	Firecrawl struct {
		APIKey     string        `yaml:"api_key"`
		APIURL     string        `yaml:"api_url" default:"https://api.firecrawl.dev"`
		MaxRetries int           `yaml:"max_retries" default:"2"`
		Formats    []string      `yaml:"formats"`
		Timeout    time.Duration `yaml:"timeout" default:"60s"`
	} `yaml:"firecrawl"`

	Scoring struct {
		Provider    string        `yaml:"provider" default:"http"`
		BaseURL     string        `yaml:"base_url" default:"http://localhost:8000"`
		Timeout     time.Duration `yaml:"timeout" default:"30s"`
		MaxRetries  int           `yaml:"max_retries" default:"2"`
		APIKey      string        `yaml:"api_key"`
		Model       string        `yaml:"model"`
		LLMBaseURL  string        `yaml:"llm_base_url"`
		MaxTokens   int           `yaml:"max_tokens" default:"4096"`
		Temperature float32       `yaml:"temperature" default:"0.1"`

		BreakerThreshold int           `yaml:"breaker_threshold" default:"5"`
		BreakerReset     time.Duration `yaml:"breaker_reset" default:"30s"`
	} `yaml:"scoring"`

	Scorer struct {
		Host string `yaml:"host" default:"0.0.0.0"`
		Port int    `yaml:"port" default:"8000"`
	} `yaml:"scorer"`

	Cache struct {
		Enabled bool          `yaml:"enabled" default:"false"`
		TTL     time.Duration `yaml:"ttl" default:"6h"`
	} `yaml:"cache"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// Supported scraper engines and scoring providers.
var (
	SupportedEngines   = []string{"headed", "static", "hybrid", "firecrawl"}
	SupportedProviders = []string{"http", "claude", "openai"}
)

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax.
// Unknown variables are left untouched.
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})

	return bareEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[1:]); val != "" {
			return val
		}
		return match
	})
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	config := &Config{}

	config.Server.Port = 3000
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 90 * time.Second
	config.Server.IdleTimeout = 60 * time.Second
	config.Server.RequestTimeout = 80 * time.Second

	config.Upload.MaxBytes = 10 << 20
	config.Upload.FormField = "resume"

	config.Scraper.Engine = "headed"
	config.Scraper.RequestTimeout = 30 * time.Second
	config.Scraper.IdleWait = 500 * time.Millisecond
	config.Scraper.HeadlessMode = true
	config.Scraper.StealthMode = true
	config.Scraper.RateLimit = 30
	config.Scraper.MinTextLength = 100
	config.Scraper.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	config.Browser.MaxInstances = 2

	config.Firecrawl.APIURL = "https://api.firecrawl.dev"
	config.Firecrawl.MaxRetries = 2
	config.Firecrawl.Formats = []string{"markdown"}
	config.Firecrawl.Timeout = 60 * time.Second

	config.Scoring.Provider = "http"
	config.Scoring.BaseURL = "http://localhost:8000"
	config.Scoring.Timeout = 30 * time.Second
	config.Scoring.MaxRetries = 2
	config.Scoring.MaxTokens = 4096
	config.Scoring.Temperature = 0.1
	config.Scoring.BreakerThreshold = 5
	config.Scoring.BreakerReset = 30 * time.Second

	config.Scorer.Host = "0.0.0.0"
	config.Scorer.Port = 8000

	config.Cache.TTL = 6 * time.Hour

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.Timeout = 5 * time.Second

	config.CORS.AllowedOrigins = []string{"*"}

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	return config
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := Default()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
			}
		}
	}

	config.loadFromEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Scorer.Port <= 0 || c.Scorer.Port > 65535 {
		return fmt.Errorf("invalid scorer port: %d", c.Scorer.Port)
	}
	if !contains(SupportedEngines, c.Scraper.Engine) {
		return fmt.Errorf("unsupported scraping engine: %s", c.Scraper.Engine)
	}
	if !contains(SupportedProviders, c.Scoring.Provider) {
		return fmt.Errorf("unsupported scoring provider: %s", c.Scoring.Provider)
	}
	if c.Scraper.RequestTimeout <= 0 {
		return fmt.Errorf("scraper request_timeout must be positive")
	}
	if c.Scoring.Timeout <= 0 {
		return fmt.Errorf("scoring timeout must be positive")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload max_bytes must be positive")
	}
	return nil
}

// Address returns host:port for the API server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ScorerAddress returns host:port for the reference scoring service.
func (c *Config) ScorerAddress() string {
	return fmt.Sprintf("%s:%d", c.Scorer.Host, c.Scorer.Port)
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if maxBytes := os.Getenv("UPLOAD_MAX_BYTES"); maxBytes != "" {
		if n, err := strconv.ParseInt(maxBytes, 10, 64); err == nil {
			c.Upload.MaxBytes = n
		}
	}

	// Scraper configuration
	if engine := os.Getenv("SCRAPER_ENGINE"); engine != "" {
		c.Scraper.Engine = engine
	}

	if timeout := os.Getenv("SCRAPER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Scraper.RequestTimeout = d
		}
	}

	if rateLimit := os.Getenv("SCRAPER_RATE_LIMIT"); rateLimit != "" {
		if n, err := strconv.Atoi(rateLimit); err == nil {
			c.Scraper.RateLimit = n
		}
	}

	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		c.Browser.ChromePath = chromePath
	}

	if firecrawlAPIKey := os.Getenv("FIRECRAWL_API_KEY"); firecrawlAPIKey != "" {
		c.Firecrawl.APIKey = firecrawlAPIKey
	}

	if firecrawlAPIURL := os.Getenv("FIRECRAWL_API_URL"); firecrawlAPIURL != "" {
		c.Firecrawl.APIURL = firecrawlAPIURL
	}

	// Scoring configuration
	if aiServiceURL := os.Getenv("AI_SERVICE_URL"); aiServiceURL != "" {
		c.Scoring.BaseURL = strings.TrimRight(aiServiceURL, "/")
	}

	if provider := os.Getenv("SCORING_PROVIDER"); provider != "" {
		c.Scoring.Provider = provider
	}

	if timeout := os.Getenv("SCORING_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Scoring.Timeout = d
		}
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.Scoring.APIKey = apiKey
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.Scoring.Model = model
	}

	if llmBaseURL := os.Getenv("LLM_BASE_URL"); llmBaseURL != "" {
		c.Scoring.LLMBaseURL = llmBaseURL
	}

	if scorerPort := os.Getenv("SCORER_PORT"); scorerPort != "" {
		if p, err := strconv.Atoi(scorerPort); err == nil {
			c.Scorer.Port = p
		}
	}

	// Cache configuration
	if cacheEnabled := os.Getenv("CACHE_ENABLED"); cacheEnabled != "" {
		c.Cache.Enabled = cacheEnabled == "true" || cacheEnabled == "1"
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		var allowed []string
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowed = append(allowed, origin)
			}
		}
		if len(allowed) > 0 {
			c.CORS.AllowedOrigins = allowed
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
