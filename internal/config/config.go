package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/deusflow/ainews/internal/news"
	"github.com/deusflow/ainews/internal/rss"
	"github.com/deusflow/ainews/internal/scraper"
	"github.com/deusflow/ainews/internal/summarizer"
)

type Config struct {
	// Summarizer settings
	SummaryProvider    string // auto | openai | gemini | none
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIModel        string
	GeminiAPIKey       string
	GeminiModel        string
	MaxSummaryRequests int // maximum language-model requests per run (0 = unlimited)
	SummaryConcurrency int

	// Feed settings
	MaxArticlesPerSource int
	RequestTimeout       time.Duration
	UserAgent            string
	SourceDelay          time.Duration
	FetchConcurrency     int

	// Scraper settings
	ContentDelay    time.Duration
	ContentMaxChars int

	// Pipeline settings
	LookbackDays      int
	CategoryThreshold float64
	CategoryBoost     float64

	// Catalog: feed sources and keyword tables, optionally from YAML
	CatalogPath string
	Sources     []rss.Source
	Keywords    news.KeywordTable

	// App settings
	Debug       bool
	Port        string
	RunCacheTTL time.Duration
}

// Load reads the configuration from the environment and, when CATALOG_PATH
// is set, the YAML catalog it points to. A .env file in the working
// directory fills in variables the process environment does not set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	cfg := &Config{
		SummaryProvider:      getEnvOrDefault("SUMMARY_PROVIDER", summarizer.ProviderAuto),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:        getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:          getEnvOrDefault("OPENAI_MODEL", summarizer.DefaultOpenAIModel),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", summarizer.DefaultGeminiModel),
		MaxSummaryRequests:   getEnvIntOrDefault("MAX_SUMMARY_REQUESTS", 0),
		SummaryConcurrency:   getEnvIntOrDefault("SUMMARY_CONCURRENCY", 1),
		MaxArticlesPerSource: getEnvIntOrDefault("MAX_ARTICLES_PER_SOURCE", rss.DefaultMaxPerSource),
		RequestTimeout:       getEnvDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		UserAgent:            getEnvOrDefault("USER_AGENT", rss.DefaultUserAgent),
		SourceDelay:          getEnvDurationOrDefault("SOURCE_DELAY", rss.DefaultSourceDelay),
		FetchConcurrency:     getEnvIntOrDefault("FETCH_CONCURRENCY", 1),
		ContentDelay:         getEnvDurationOrDefault("CONTENT_DELAY", rss.DefaultContentDelay),
		ContentMaxChars:      getEnvIntOrDefault("CONTENT_MAX_CHARS", scraper.DefaultMaxChars),
		LookbackDays:         getEnvIntOrDefault("LOOKBACK_DAYS", 7),
		CategoryThreshold:    getEnvFloatOrDefault("CATEGORY_THRESHOLD", news.DefaultThreshold),
		CategoryBoost:        getEnvFloatOrDefault("CATEGORY_BOOST", news.DefaultBoostFactor),
		CatalogPath:          os.Getenv("CATALOG_PATH"),
		Sources:              rss.DefaultSources(),
		Keywords:             news.DefaultKeywordTable(),
		Debug:                os.Getenv("DEBUG") == "true",
		Port:                 getEnvOrDefault("PORT", "5001"),
		RunCacheTTL:          getEnvDurationOrDefault("RUN_CACHE_TTL", 0),
	}

	if cfg.CatalogPath != "" {
		if err := cfg.ApplyCatalog(cfg.CatalogPath); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// ApplyCatalog replaces the sources and keyword tables with those found in
// the YAML catalog at path. Sections missing from the file keep the defaults.
func (c *Config) ApplyCatalog(path string) error {
	sources, err := rss.LoadSources(path)
	if err != nil {
		return fmt.Errorf("load catalog sources: %w", err)
	}
	keywords, err := news.LoadKeywordTable(path)
	if err != nil {
		return fmt.Errorf("load catalog categories: %w", err)
	}

	c.CatalogPath = path
	if len(sources) > 0 {
		c.Sources = sources
	}
	if len(keywords) > 0 {
		c.Keywords = keywords
	}
	return nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.SummaryProvider) {
	case summarizer.ProviderAuto, summarizer.ProviderOpenAI, summarizer.ProviderGemini, summarizer.ProviderNone:
	default:
		return fmt.Errorf("SUMMARY_PROVIDER must be one of auto, openai, gemini, none")
	}
	if c.MaxSummaryRequests < 0 {
		return fmt.Errorf("MAX_SUMMARY_REQUESTS must not be negative")
	}
	if c.SummaryConcurrency < 1 {
		return fmt.Errorf("SUMMARY_CONCURRENCY must be at least 1")
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1")
	}
	if c.MaxArticlesPerSource < 1 {
		return fmt.Errorf("MAX_ARTICLES_PER_SOURCE must be at least 1")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.SourceDelay < 0 || c.ContentDelay < 0 {
		return fmt.Errorf("SOURCE_DELAY and CONTENT_DELAY must not be negative")
	}
	if c.ContentMaxChars < 1 {
		return fmt.Errorf("CONTENT_MAX_CHARS must be at least 1")
	}
	if c.LookbackDays < 1 {
		return fmt.Errorf("LOOKBACK_DAYS must be at least 1")
	}
	if c.CategoryThreshold < 0 || c.CategoryThreshold >= 1 {
		return fmt.Errorf("CATEGORY_THRESHOLD must be in [0, 1)")
	}
	if c.CategoryBoost <= 0 {
		return fmt.Errorf("CATEGORY_BOOST must be positive")
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("no feed sources configured")
	}
	if err := c.Keywords.Validate(); err != nil {
		return fmt.Errorf("invalid keyword table: %w", err)
	}
	return nil
}

// SummarizerConfig maps the summarizer settings.
func (c *Config) SummarizerConfig() summarizer.Config {
	return summarizer.Config{
		Provider:      c.SummaryProvider,
		OpenAIAPIKey:  c.OpenAIAPIKey,
		OpenAIBaseURL: c.OpenAIBaseURL,
		OpenAIModel:   c.OpenAIModel,
		GeminiAPIKey:  c.GeminiAPIKey,
		GeminiModel:   c.GeminiModel,
		MaxRequests:   c.MaxSummaryRequests,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("300ms", "30s").
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
