package server

import (
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/deusflow/ainews/internal/app"
	"github.com/deusflow/ainews/internal/news"
	"github.com/deusflow/ainews/internal/report"
)

const (
	maxSummaryRunes = 500
	missingLink     = "#"
)

// RunResponse is the body returned by POST /run.
type RunResponse struct {
	GeneratedAt string                          `json:"generated_at"`
	Categories  report.Ordered[CategoryPayload] `json:"categories"`
}

type CategoryPayload struct {
	Summary  *string          `json:"summary"`
	Articles []ArticlePayload `json:"articles"`
}

type ArticlePayload struct {
	Title     string  `json:"title"`
	Source    string  `json:"source"`
	Link      string  `json:"link"`
	Published string  `json:"published"`
	DaysAgo   *int    `json:"days_ago"`
	Summary   string  `json:"summary"`
	AISummary *string `json:"ai_summary"`
	Focus     string  `json:"focus"`
}

func (s *Server) buildResponse(res *app.Result) *RunResponse {
	resp := &RunResponse{GeneratedAt: res.GeneratedAt.Format(time.RFC3339)}
	for _, sec := range res.Ordered() {
		payload := CategoryPayload{
			Summary:  report.Optional(sec.Summary),
			Articles: make([]ArticlePayload, 0, len(sec.Articles)),
		}
		for _, a := range sec.Articles {
			payload.Articles = append(payload.Articles, s.articlePayload(a))
		}
		resp.Categories = append(resp.Categories, report.Keyed[CategoryPayload]{Name: sec.Category, Value: payload})
	}
	return resp
}

func (s *Server) articlePayload(a news.Article) ArticlePayload {
	link := a.Link
	if link == "" {
		link = missingLink
	}
	return ArticlePayload{
		Title:     a.Title,
		Source:    a.Source,
		Link:      link,
		Published: a.Published,
		DaysAgo:   a.DaysAgo,
		Summary:   s.plainSummary(a.Summary),
		AISummary: report.Optional(a.AISummary),
		Focus:     a.Focus,
	}
}

// plainSummary strips markup and caps the feed summary for display.
func (s *Server) plainSummary(summary string) string {
	text := strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(summary)))
	if utf8.RuneCountInString(text) > maxSummaryRunes {
		text = string([]rune(text)[:maxSummaryRunes])
	}
	return text
}
