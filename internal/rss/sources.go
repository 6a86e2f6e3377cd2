package rss

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is one syndication feed to pull articles from.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Host returns the lowercase host of the feed URL, or the raw URL when it does not parse.
func (s Source) Host() string {
	u, err := url.Parse(s.URL)
	if err != nil || u.Host == "" {
		return s.URL
	}
	return strings.ToLower(u.Hostname())
}

// DefaultSources returns the built-in registry of AI news feeds.
func DefaultSources() []Source {
	return []Source{
		// Tech publications
		{Name: "techcrunch_ai", URL: "https://techcrunch.com/tag/artificial-intelligence/feed/"},
		{Name: "the_verge_ai", URL: "https://www.theverge.com/ai-artificial-intelligence/rss/index.xml"},
		{Name: "wired_ai", URL: "https://www.wired.com/feed/tag/artificial-intelligence/latest/rss"},
		{Name: "mit_tech_review", URL: "https://www.technologyreview.com/topic/artificial-intelligence/feed/"},
		{Name: "venturebeat_ai", URL: "https://venturebeat.com/ai/feed/"},
		{Name: "zdnet_ai", URL: "https://www.zdnet.com/topic/artificial-intelligence/rss.xml"},
		{Name: "arstechnica_ai", URL: "https://feeds.arstechnica.com/arstechnica/index"},
		{Name: "engadget_ai", URL: "https://www.engadget.com/rss.xml"},

		// AI-specific blogs and sites
		{Name: "hacker_news", URL: "https://hnrss.org/newest?q=AI"},
		{Name: "arxiv_ai", URL: "http://arxiv.org/rss/cs.AI"},
		{Name: "arxiv_ml", URL: "http://arxiv.org/rss/cs.LG"},
		{Name: "towards_data_science", URL: "https://towardsdatascience.com/feed"},
		{Name: "ai_news", URL: "https://www.artificialintelligence-news.com/feed/"},
		{Name: "synced_review", URL: "https://syncedreview.com/feed/"},
		{Name: "the_batch", URL: "https://www.deeplearning.ai/the-batch/feed/"},

		// Newspaper tech sections
		{Name: "nytimes_tech", URL: "https://rss.nytimes.com/services/xml/rss/nyt/Technology.xml"},
		{Name: "washington_post_tech", URL: "https://feeds.washingtonpost.com/rss/business/technology"},
		{Name: "guardian_tech", URL: "https://www.theguardian.com/technology/artificialintelligenceai/rss"},
		{Name: "bbc_tech", URL: "https://feeds.bbci.co.uk/news/technology/rss.xml"},
		{Name: "reuters_tech", URL: "https://www.reutersagency.com/feed/?taxonomy=best-topics&post_type=best"},

		// Industry and business
		{Name: "bloomberg_tech", URL: "https://www.bloomberg.com/feed/topics/technology"},
		{Name: "wsj_tech", URL: "https://feeds.a.dj.com/rss/RSSWSJD.xml"},
		{Name: "forbes_ai", URL: "https://www.forbes.com/innovation/feed2/"},
		{Name: "cnbc_tech", URL: "https://www.cnbc.com/id/19854910/device/rss/rss.html"},

		// Research and academic
		{Name: "nature_ai", URL: "https://www.nature.com/subjects/artificial-intelligence.rss"},
		{Name: "science_daily_ai", URL: "https://www.sciencedaily.com/rss/computers_math/artificial_intelligence.xml"},
		{Name: "ieee_spectrum", URL: "https://spectrum.ieee.org/rss/blog/artificial-intelligence/fulltext"},

		// Developer and vendor blogs
		{Name: "github_blog", URL: "https://github.blog/feed/"},
		{Name: "google_ai_blog", URL: "https://ai.googleblog.com/feeds/posts/default"},
		{Name: "openai_blog", URL: "https://openai.com/blog/rss.xml"},
		{Name: "anthropic_blog", URL: "https://www.anthropic.com/index.xml"},
	}
}

// FeedsConfig is the sources section of the YAML catalog:
//
//	sources:
//	  - name: techcrunch_ai
//	    url: https://techcrunch.com/tag/artificial-intelligence/feed/
type FeedsConfig struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the feed list from a YAML catalog.
// A file without a sources section yields a nil slice.
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode sources from %s: %w", path, err)
	}
	for i, s := range cfg.Sources {
		if s.URL == "" {
			return nil, fmt.Errorf("source %d (%q) in %s has no url", i, s.Name, path)
		}
		if s.Name == "" {
			cfg.Sources[i].Name = s.URL
		}
	}
	return cfg.Sources, nil
}
