package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/deusflow/ainews/internal/metrics"
	"github.com/deusflow/ainews/internal/news"
	"github.com/deusflow/ainews/internal/ratelimit"
	"github.com/deusflow/ainews/internal/rss"
	"github.com/deusflow/ainews/internal/startups"
	"github.com/deusflow/ainews/internal/summarizer"
)

// FeedFetcher is the part of rss.Fetcher the agent depends on.
type FeedFetcher interface {
	FetchAll(ctx context.Context, sources []rss.Source, fetchContent bool) []news.Article
}

// Config holds the agent's own tuning.
type Config struct {
	// SummaryConcurrency is the number of categories summarized at once.
	SummaryConcurrency int
}

// Deps are the pipeline stages wired into an Agent.
type Deps struct {
	Fetcher     FeedFetcher
	Sources     []rss.Source
	Recency     *news.RecencyFilter
	Categorizer *news.Categorizer
	Summarizer  summarizer.Summarizer
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// Options select the optional stages of a single run.
type Options struct {
	Days              int
	FetchFullContent  bool
	GenerateSummaries bool
}

// Agent runs the fetch, filter, categorize and summarize pipeline.
type Agent struct {
	cfg  Config
	deps Deps
	now  func() time.Time
}

// NewAgent validates deps and fills optional ones.
func NewAgent(cfg Config, deps Deps) (*Agent, error) {
	if deps.Fetcher == nil {
		return nil, errors.New("agent: fetcher is required")
	}
	if deps.Categorizer == nil {
		return nil, errors.New("agent: categorizer is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Recency == nil {
		deps.Recency = news.NewRecencyFilter(deps.Logger)
	}
	if deps.Summarizer == nil {
		deps.Summarizer = summarizer.Unavailable{}
	}
	if cfg.SummaryConcurrency <= 0 {
		cfg.SummaryConcurrency = 1
	}
	return &Agent{cfg: cfg, deps: deps, now: time.Now}, nil
}

// Run executes one full pipeline pass. Feed, content and summary failures
// are logged and never abort the run.
func (a *Agent) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Days <= 0 {
		return nil, fmt.Errorf("lookback days must be positive, got %d", opts.Days)
	}
	start := time.Now()
	log := a.deps.Logger

	log.Info("fetching news sources", "sources", len(a.deps.Sources), "full_content", opts.FetchFullContent)
	articles := a.deps.Fetcher.FetchAll(ctx, a.deps.Sources, opts.FetchFullContent)
	if err := ctx.Err(); err != nil {
		a.deps.Metrics.RecordRun(time.Since(start), err)
		return nil, fmt.Errorf("fetch cancelled: %w", err)
	}

	recent := a.deps.Recency.Apply(articles, opts.Days)
	a.deps.Metrics.ArticlesOutsideWindow(len(articles) - len(recent))
	log.Info("filtered recent articles", "total", len(articles), "recent", len(recent), "days", opts.Days)

	grouped := a.deps.Categorizer.CategorizeAll(recent)
	for _, c := range news.Categories() {
		n := len(grouped.ByCategory[c])
		a.deps.Metrics.Categorized(string(c), n)
		log.Info("categorized", "category", c, "articles", n)
	}
	a.deps.Metrics.Categorized("uncategorized", len(grouped.Uncategorized))
	log.Info("categorized", "category", "uncategorized", "articles", len(grouped.Uncategorized))

	res := newResult(a.now())
	for _, c := range news.Categories() {
		res.Categories[c].Articles = grouped.ByCategory[c]
	}
	res.Categories[news.Startups].Articles = append(startups.Articles(), grouped.ByCategory[news.Startups]...)
	res.Uncategorized = grouped.Uncategorized
	res.Fetched = len(articles)
	res.Recent = len(recent)

	if opts.GenerateSummaries {
		a.summarize(ctx, res)
	}

	a.deps.Metrics.RecordRun(time.Since(start), nil)
	log.Info("processing complete", "articles", res.Total(), "duration", time.Since(start).Round(time.Millisecond))
	return res, nil
}

func (a *Agent) summarize(ctx context.Context, res *Result) {
	s := a.deps.Summarizer
	if !s.Available() {
		a.deps.Logger.Warn("skipping summaries, no language model configured")
		return
	}
	var budget *ratelimit.Budget
	if b, ok := s.(interface{ Budget() *ratelimit.Budget }); ok {
		budget = b.Budget()
		budget.Reset()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.SummaryConcurrency)

	for _, c := range news.Categories() {
		cr := res.Categories[c]
		if c == news.Startups {
			g.Go(func() error {
				a.summarizeStartups(gctx, cr)
				return nil
			})
			continue
		}
		if len(cr.Articles) == 0 {
			continue
		}
		g.Go(func() error {
			a.summarizeCategory(gctx, c, cr)
			return nil
		})
	}
	_ = g.Wait()

	if budget != nil {
		stats := budget.Stats()
		a.deps.Logger.Info("summary requests", "used", stats["used"], "limit", stats["limit"], "calls", stats["calls"])
	}
}

// summarizeCategory writes the overview first and then each article's
// summary. Articles are kept whether or not their summary succeeds.
func (a *Agent) summarizeCategory(ctx context.Context, c news.Category, cr *CategoryResult) {
	s := a.deps.Summarizer
	log := a.deps.Logger.With("category", c)

	log.Info("generating category overview", "articles", len(cr.Articles))
	if s.Available() {
		summary, err := s.SummarizeCategory(ctx, cr.Articles, c)
		if err != nil {
			log.Warn("could not generate category summary", "error", err)
		}
		cr.Summary = summary
	}

	for i := range cr.Articles {
		cr.Articles[i].CategorySummary = cr.Summary
		if !s.Available() {
			continue
		}
		summary, err := s.SummarizeArticle(ctx, cr.Articles[i], c)
		if err != nil {
			log.Warn("error generating summary", "title", cr.Articles[i].Title, "error", err)
			continue
		}
		cr.Articles[i].AISummary = summary
	}
}

func (a *Agent) summarizeStartups(ctx context.Context, cr *CategoryResult) {
	s := a.deps.Summarizer
	if s.Available() {
		summary, err := s.SummarizeStartups(ctx, startups.Records())
		if err != nil {
			a.deps.Logger.Warn("error generating startups summary", "error", err)
		}
		cr.Summary = summary
	}
	for i := range cr.Articles {
		cr.Articles[i].CategorySummary = cr.Summary
	}
}
