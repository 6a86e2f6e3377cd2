package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/deusflow/ainews/internal/metrics"
	"github.com/deusflow/ainews/internal/news"
	"github.com/deusflow/ainews/internal/ratelimit"
	"github.com/deusflow/ainews/internal/startups"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAuto   = "auto"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// ErrNoCredential is returned when a provider is requested explicitly but
// its API key is missing.
var ErrNoCredential = errors.New("summarizer credential not configured")

// Summarizer produces natural-language summaries. Implementations return
// an empty string with a nil error when they have nothing to say.
type Summarizer interface {
	Available() bool
	SummarizeArticle(ctx context.Context, article news.Article, category news.Category) (string, error)
	SummarizeCategory(ctx context.Context, articles []news.Article, category news.Category) (string, error)
	SummarizeStartups(ctx context.Context, records []startups.Record) (string, error)
}

// Unavailable is the summarizer used when no language model is configured.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) SummarizeArticle(context.Context, news.Article, news.Category) (string, error) {
	return "", nil
}

func (Unavailable) SummarizeCategory(context.Context, []news.Article, news.Category) (string, error) {
	return "", nil
}

func (Unavailable) SummarizeStartups(context.Context, []startups.Record) (string, error) {
	return "", nil
}

// Prompt is one completion request in provider-neutral form.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Backend sends a prompt to a language model and returns the raw reply.
type Backend interface {
	Name() string
	Complete(ctx context.Context, p Prompt) (string, error)
}

// LLM implements Summarizer on top of a Backend, spending one request of
// the shared budget per call.
type LLM struct {
	backend Backend
	budget  *ratelimit.Budget
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewLLM wraps backend. budget may be nil for unlimited requests.
func NewLLM(backend Backend, budget *ratelimit.Budget, m *metrics.Metrics, logger *slog.Logger) *LLM {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLM{backend: backend, budget: budget, metrics: m, logger: logger}
}

// Available reports whether a backend is set and the budget is not spent.
func (l *LLM) Available() bool {
	return l != nil && l.backend != nil && l.budget.Remaining() != 0
}

// Budget exposes the request budget so callers can reset it per run.
func (l *LLM) Budget() *ratelimit.Budget {
	return l.budget
}

// Close releases the backend's resources when it holds any.
func (l *LLM) Close() error {
	if c, ok := l.backend.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (l *LLM) SummarizeArticle(ctx context.Context, article news.Article, category news.Category) (string, error) {
	return l.complete(ctx, "article", articlePrompt(article, category))
}

func (l *LLM) SummarizeCategory(ctx context.Context, articles []news.Article, category news.Category) (string, error) {
	if len(articles) == 0 {
		return "", nil
	}
	return l.complete(ctx, "category", categoryPrompt(articles, category))
}

func (l *LLM) SummarizeStartups(ctx context.Context, records []startups.Record) (string, error) {
	if len(records) == 0 {
		return "", nil
	}
	return l.complete(ctx, "startups", startupsPrompt(records))
}

func (l *LLM) complete(ctx context.Context, kind string, p Prompt) (string, error) {
	if l.backend == nil {
		return "", nil
	}
	if err := l.budget.Use(kind); err != nil {
		l.metrics.Summary(kind, "skipped")
		return "", err
	}

	l.logger.Debug("requesting summary", "kind", kind, "backend", l.backend.Name())
	text, err := l.backend.Complete(ctx, p)
	if err != nil {
		l.metrics.Summary(kind, "failed")
		return "", fmt.Errorf("%s summary via %s: %w", kind, l.backend.Name(), err)
	}

	text = cleanReply(text)
	if text == "" {
		l.metrics.Summary(kind, "empty")
		return "", nil
	}
	l.metrics.Summary(kind, "ok")
	return text, nil
}

// Config selects and configures the summarization backend.
type Config struct {
	Provider      string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string
	// MaxRequests caps language-model calls per run; 0 is unlimited.
	MaxRequests int
}

// New picks a summarizer from cfg. Auto prefers OpenAI, then Gemini, and
// falls back to Unavailable when neither key is set.
func New(ctx context.Context, cfg Config, m *metrics.Metrics, logger *slog.Logger) (Summarizer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderAuto
	}

	switch provider {
	case ProviderNone:
		return Unavailable{}, nil
	case ProviderAuto:
		switch {
		case cfg.OpenAIAPIKey != "":
			provider = ProviderOpenAI
		case cfg.GeminiAPIKey != "":
			provider = ProviderGemini
		default:
			logger.Warn("no summarizer credential configured, summaries will be skipped")
			return Unavailable{}, nil
		}
	}

	var backend Backend
	switch provider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY", ErrNoCredential)
		}
		backend = NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY", ErrNoCredential)
		}
		g, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		backend = g
	default:
		return nil, fmt.Errorf("unknown summary provider %q", cfg.Provider)
	}

	logger.Info("summarizer ready", "backend", backend.Name(), "max_requests", cfg.MaxRequests)
	return NewLLM(backend, ratelimit.NewBudget(cfg.MaxRequests), m, logger), nil
}
