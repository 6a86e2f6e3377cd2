package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	DefaultMaxChars  = 5000
	TruncationMarker = "..."
)

// Elements that never carry article text.
var strippedElements = "script, style, nav, header, footer"

// Content-bearing regions, most specific first.
var contentSelectors = []string{
	"article",
	".article-content",
	".post-content",
	".entry-content",
	"main",
	".content",
}

// Scraper downloads article pages and extracts their readable text.
type Scraper struct {
	client    *http.Client
	userAgent string
	maxChars  int
}

// New builds a Scraper; maxChars <= 0 falls back to DefaultMaxChars.
func New(client *http.Client, userAgent string, maxChars int) *Scraper {
	if client == nil {
		client = http.DefaultClient
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Scraper{client: client, userAgent: userAgent, maxChars: maxChars}
}

// FetchContent returns the extracted text of the page at url.
func (s *Scraper) FetchContent(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	return s.Extract(resp.Body)
}

// Extract parses an HTML document and returns its main text, whitespace
// collapsed and truncated to the configured length.
func (s *Scraper) Extract(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %w", err)
	}

	doc.Find(strippedElements).Remove()

	var content string
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			content = joinedText(sel)
			break
		}
	}
	if content == "" {
		content = joinedText(doc.Find("body").First())
	}

	content = strings.Join(strings.Fields(content), " ")
	return truncate(content, s.maxChars), nil
}

// joinedText concatenates the trimmed text nodes below sel with single spaces.
func joinedText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + TruncationMarker
}
