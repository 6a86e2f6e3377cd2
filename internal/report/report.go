package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/deusflow/ainews/internal/app"
	"github.com/deusflow/ainews/internal/news"
)

// Entry is one article in the persisted report. Absent values are null.
type Entry struct {
	Title     string  `json:"title"`
	Source    string  `json:"source"`
	Link      *string `json:"link"`
	Published *string `json:"published"`
	DaysAgo   *int    `json:"days_ago"`
	AISummary *string `json:"ai_summary"`
}

// Document is the persisted report.
type Document struct {
	GeneratedAt string           `json:"generated_at"`
	Categories  Ordered[[]Entry] `json:"categories"`
}

// Keyed is one category's value inside an Ordered object.
type Keyed[T any] struct {
	Name  news.Category
	Value T
}

// Ordered encodes as a JSON object whose keys keep slice order.
type Ordered[T any] []Keyed[T]

func (o Ordered[T]) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, kv := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(string(kv.Name))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// Optional maps an empty string to a JSON null.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Build converts a run result into its persisted form.
func Build(res *app.Result) Document {
	doc := Document{GeneratedAt: res.GeneratedAt.Format(time.RFC3339)}
	for _, s := range res.Ordered() {
		entries := make([]Entry, 0, len(s.Articles))
		for _, a := range s.Articles {
			entries = append(entries, Entry{
				Title:     a.Title,
				Source:    a.Source,
				Link:      Optional(a.Link),
				Published: Optional(a.Published),
				DaysAgo:   a.DaysAgo,
				AISummary: Optional(a.AISummary),
			})
		}
		doc.Categories = append(doc.Categories, Keyed[[]Entry]{Name: s.Category, Value: entries})
	}
	return doc
}

// DefaultFileName returns the timestamped report name for t.
func DefaultFileName(t time.Time) string {
	return fmt.Sprintf("ai_news_report_%s.json", t.Format("20060102_150405"))
}

// Write saves the result as indented JSON at path.
func Write(path string, res *app.Result) error {
	data, err := json.MarshalIndent(Build(res), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
