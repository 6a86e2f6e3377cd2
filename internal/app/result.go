package app

import (
	"time"

	"github.com/deusflow/ainews/internal/news"
)

// CategoryResult is one category of a run: its overview and its articles.
type CategoryResult struct {
	Summary  string
	Articles []news.Article
}

// Result is the outcome of a run. Categories always holds every fixed category.
type Result struct {
	GeneratedAt   time.Time
	Categories    map[news.Category]*CategoryResult
	Uncategorized []news.Article

	Fetched int
	Recent  int
}

// Section pairs a category with its result for ordered iteration.
type Section struct {
	Category news.Category
	*CategoryResult
}

func newResult(at time.Time) *Result {
	r := &Result{
		GeneratedAt: at,
		Categories:  make(map[news.Category]*CategoryResult, len(news.Categories())),
	}
	for _, c := range news.Categories() {
		r.Categories[c] = &CategoryResult{}
	}
	return r
}

// Ordered returns the categories in their fixed display order.
func (r *Result) Ordered() []Section {
	sections := make([]Section, 0, len(r.Categories))
	for _, c := range news.Categories() {
		cr, ok := r.Categories[c]
		if !ok {
			cr = &CategoryResult{}
		}
		sections = append(sections, Section{Category: c, CategoryResult: cr})
	}
	return sections
}

// Total counts the articles across all categories, excluding uncategorized.
func (r *Result) Total() int {
	n := 0
	for _, cr := range r.Categories {
		n += len(cr.Articles)
	}
	return n
}
