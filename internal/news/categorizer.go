package news

import (
	"fmt"
	"strings"
)

const (
	DefaultThreshold   = 0.1
	DefaultBoostFactor = 1.2
)

type compiledCategory struct {
	category Category
	keywords []string
}

// Categorizer assigns articles to categories by weighted keyword matching.
// It is immutable after construction and safe for concurrent use.
type Categorizer struct {
	table     []compiledCategory
	threshold float64
	boost     float64
}

// Categorization is the result of categorizing a batch of articles.
type Categorization struct {
	ByCategory    map[Category][]Article
	Uncategorized []Article
}

// NewCategorizer validates the table and prepares lowercased keyword lists.
// An article is assigned only when its best score is strictly greater than threshold;
// boost multiplies scores backed by more than one matched keyword.
func NewCategorizer(table KeywordTable, threshold, boost float64) (*Categorizer, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if threshold < 0 || threshold >= 1 {
		return nil, fmt.Errorf("category threshold must be in [0, 1), got %v", threshold)
	}
	if boost <= 0 {
		return nil, fmt.Errorf("category boost factor must be positive, got %v", boost)
	}

	c := &Categorizer{threshold: threshold, boost: boost}
	for _, entry := range table {
		keywords := make([]string, 0, len(entry.Keywords))
		for _, k := range entry.Keywords {
			keywords = append(keywords, strings.ToLower(strings.TrimSpace(k)))
		}
		c.table = append(c.table, compiledCategory{category: entry.Category, keywords: keywords})
	}
	return c, nil
}

// Score returns how well text matches category, in [0, 1].
func (c *Categorizer) Score(text string, category Category) float64 {
	for _, entry := range c.table {
		if entry.category == category {
			return c.score(strings.ToLower(text), entry.keywords)
		}
	}
	return 0
}

func (c *Categorizer) score(lowerText string, keywords []string) float64 {
	if lowerText == "" || len(keywords) == 0 {
		return 0
	}
	matches := 0
	for _, k := range keywords {
		if strings.Contains(lowerText, k) {
			matches++
		}
	}
	score := float64(matches) / float64(len(keywords))
	if matches > 1 {
		score *= c.boost
	}
	if score > 1 {
		score = 1
	}
	return score
}

func (c *Categorizer) accepts(score float64) bool {
	return score > c.threshold
}

// Categorize returns the best-scoring category for a, or false when
// nothing scores above the threshold.
func (c *Categorizer) Categorize(a Article) (Category, bool) {
	text := strings.Join([]string{a.Title, a.Summary, a.FullContent}, " ")
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	lower := strings.ToLower(text)

	var best Category
	bestScore := -1.0
	for _, entry := range c.table {
		s := c.score(lower, entry.keywords)
		if s > bestScore {
			best, bestScore = entry.category, s
		}
	}
	if !c.accepts(bestScore) {
		return "", false
	}
	return best, true
}

// CategorizeAll splits articles into per-category groups and an uncategorized group.
// Every fixed category is present in ByCategory, possibly with an empty slice.
func (c *Categorizer) CategorizeAll(articles []Article) Categorization {
	out := Categorization{ByCategory: make(map[Category][]Article, len(categories))}
	for _, cat := range categories {
		out.ByCategory[cat] = []Article{}
	}
	for _, a := range articles {
		cat, ok := c.Categorize(a)
		if !ok {
			a.Category = ""
			out.Uncategorized = append(out.Uncategorized, a)
			continue
		}
		a.Category = cat
		out.ByCategory[cat] = append(out.ByCategory[cat], a)
	}
	return out
}
