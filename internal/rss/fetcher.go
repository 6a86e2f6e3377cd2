package rss

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/deusflow/ainews/internal/metrics"
	"github.com/deusflow/ainews/internal/news"
	"github.com/deusflow/ainews/internal/ratelimit"
)

const (
	DefaultMaxPerSource = 3
	DefaultSourceDelay  = 300 * time.Millisecond
	DefaultContentDelay = 300 * time.Millisecond
	DefaultUserAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// aiKeywords lets an entry through the per-source gate regardless of position.
var aiKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "ml", "llm",
	"neural", "deep learning", "gpt", "claude", "gemini", "openai",
	"anthropic", "transformer", "model", "algorithm",
}

// ContentFetcher downloads the readable text of an article page.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// Config tunes a Fetcher. Zero values fall back to the package defaults,
// except the delays, where zero disables waiting.
type Config struct {
	Client       *http.Client
	UserAgent    string
	MaxPerSource int
	SourceDelay  time.Duration
	ContentDelay time.Duration
	// Concurrency is the number of host groups fetched at once; 1 is sequential.
	Concurrency int
}

// Fetcher retrieves feeds and normalizes their entries into articles.
type Fetcher struct {
	cfg     Config
	content ContentFetcher
	hosts   *ratelimit.HostLimiter
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewFetcher builds a Fetcher. content may be nil when full-page
// enrichment is never requested.
func NewFetcher(cfg Config, content ContentFetcher, m *metrics.Metrics, logger *slog.Logger) *Fetcher {
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxPerSource <= 0 {
		cfg.MaxPerSource = DefaultMaxPerSource
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		cfg:     cfg,
		content: content,
		hosts:   ratelimit.NewHostLimiter(cfg.ContentDelay),
		metrics: m,
		logger:  logger,
	}
}

// FetchAll downloads every source and returns the normalized articles in
// registry order. A failing source is logged and skipped.
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source, fetchContent bool) []news.Article {
	perSource := make([][]news.Article, len(sources))
	ok := make([]bool, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.Concurrency)

	for _, group := range f.groups(sources) {
		g.Go(func() error {
			for n, idx := range group {
				if n > 0 {
					if err := ratelimit.Sleep(gctx, f.cfg.SourceDelay); err != nil {
						return nil
					}
				}
				articles, err := f.fetchSource(gctx, sources[idx], fetchContent)
				if err != nil {
					f.logger.Warn("error parsing feed", "source", sources[idx].Name, "url", sources[idx].URL, "error", err)
					f.metrics.SourceFetched(false)
					continue
				}
				f.metrics.SourceFetched(true)
				perSource[idx] = articles
				ok[idx] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	var all []news.Article
	successCount := 0
	for i := range sources {
		if ok[i] {
			successCount++
		}
		all = append(all, perSource[i]...)
	}
	f.metrics.ArticlesFetched(len(all))
	f.logger.Info("processed feeds", "ok", successCount, "total", len(sources), "articles", len(all))
	return all
}

// groups partitions source indexes into work units. Sequential mode is a
// single group; otherwise one group per host so that a host never sees
// parallel requests.
func (f *Fetcher) groups(sources []Source) [][]int {
	if f.cfg.Concurrency <= 1 {
		all := make([]int, len(sources))
		for i := range sources {
			all[i] = i
		}
		return [][]int{all}
	}

	var groups [][]int
	byHost := make(map[string]int)
	for i, s := range sources {
		host := s.Host()
		g, seen := byHost[host]
		if !seen {
			g = len(groups)
			byHost[host] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

func (f *Fetcher) fetchSource(ctx context.Context, src Source, fetchContent bool) ([]news.Article, error) {
	parser := gofeed.NewParser()
	parser.Client = f.cfg.Client
	parser.UserAgent = f.cfg.UserAgent

	feed, err := parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, err
	}

	articles := Normalize(feed, f.cfg.MaxPerSource)
	f.logger.Debug("loaded feed", "source", src.Name, "entries", len(feed.Items), "kept", len(articles))

	if fetchContent && f.content != nil {
		f.enrich(ctx, articles)
	}
	return articles, nil
}

func (f *Fetcher) enrich(ctx context.Context, articles []news.Article) {
	for i := range articles {
		link := articles[i].Link
		if link == "" {
			continue
		}
		if err := f.hosts.Wait(ctx, link); err != nil {
			f.logger.Warn("skipping content fetch", "url", link, "error", err)
			f.metrics.ContentFetched(false)
			continue
		}
		content, err := f.content.FetchContent(ctx, link)
		if err != nil {
			f.logger.Warn("error fetching content", "url", link, "error", err)
			f.metrics.ContentFetched(false)
			continue
		}
		f.metrics.ContentFetched(true)
		articles[i].FullContent = content
	}
}

// Normalize converts the leading entries of a parsed feed into articles.
// At most 2*max entries are inspected and at most max are returned.
func Normalize(feed *gofeed.Feed, max int) []news.Article {
	if feed == nil || max <= 0 {
		return nil
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = news.UnknownSourcePlaceholder
	}

	items := feed.Items
	if len(items) > 2*max {
		items = items[:2*max]
	}

	articles := make([]news.Article, 0, max)
	for _, item := range items {
		if item == nil {
			continue
		}
		summary := itemSummary(item)
		if !isAIRelated(item.Title+" "+summary) && len(articles) >= max {
			continue
		}

		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = news.UntitledPlaceholder
		}
		published := item.Published
		if published == "" {
			published = item.Updated
		}

		articles = append(articles, news.Article{
			Title:     title,
			Link:      itemLink(item),
			Published: published,
			Summary:   summary,
			Source:    source,
		})
		if len(articles) >= max {
			break
		}
	}
	return articles
}

// itemSummary prefers the description and falls back to the entry body
// (content:encoded in RSS, content in Atom).
func itemSummary(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

func itemLink(item *gofeed.Item) string {
	if item.Link != "" {
		return item.Link
	}
	if len(item.Links) > 0 {
		return item.Links[0]
	}
	return ""
}

func isAIRelated(text string) bool {
	text = strings.ToLower(text)
	for _, k := range aiKeywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
