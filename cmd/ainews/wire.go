package main

import (
	"context"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/deusflow/ainews/internal/app"
	"github.com/deusflow/ainews/internal/config"
	"github.com/deusflow/ainews/internal/logger"
	"github.com/deusflow/ainews/internal/metrics"
	"github.com/deusflow/ainews/internal/news"
	"github.com/deusflow/ainews/internal/rss"
	"github.com/deusflow/ainews/internal/scraper"
	"github.com/deusflow/ainews/internal/summarizer"
)

// loadConfig reads the environment and the catalog named by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := cfg.ApplyCatalog(path); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// pipeline is a wired Agent plus the resources to release after use.
type pipeline struct {
	agent   *app.Agent
	closers []io.Closer
}

func (p *pipeline) Close() {
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			logger.Logger.Warn("error closing resource", "error", err)
		}
	}
}

func buildPipeline(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*pipeline, error) {
	log := logger.Init(cfg.Debug)

	categorizer, err := news.NewCategorizer(cfg.Keywords, cfg.CategoryThreshold, cfg.CategoryBoost)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: cfg.RequestTimeout}
	fetcher := rss.NewFetcher(rss.Config{
		Client:       client,
		UserAgent:    cfg.UserAgent,
		MaxPerSource: cfg.MaxArticlesPerSource,
		SourceDelay:  cfg.SourceDelay,
		ContentDelay: cfg.ContentDelay,
		Concurrency:  cfg.FetchConcurrency,
	}, scraper.New(client, cfg.UserAgent, cfg.ContentMaxChars), m, log)

	sum, err := summarizer.New(ctx, cfg.SummarizerConfig(), m, log)
	if err != nil {
		return nil, err
	}

	p := &pipeline{}
	if c, ok := sum.(io.Closer); ok {
		p.closers = append(p.closers, c)
	}

	p.agent, err = app.NewAgent(app.Config{SummaryConcurrency: cfg.SummaryConcurrency}, app.Deps{
		Fetcher:     fetcher,
		Sources:     cfg.Sources,
		Recency:     news.NewRecencyFilter(log),
		Categorizer: categorizer,
		Summarizer:  sum,
		Metrics:     m,
		Logger:      log,
	})
	if err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}
