package news

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyKeywordTable is returned when no category has any keyword to score with.
var ErrEmptyKeywordTable = errors.New("keyword table has no categories")

// CategoryKeywords binds a category to the keywords that signal it.
type CategoryKeywords struct {
	Category Category `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// KeywordTable is an ordered list of categories with their keywords.
// Order matters: on equal scores the earlier category wins.
type KeywordTable []CategoryKeywords

// DefaultKeywordTable returns the built-in keyword lists.
func DefaultKeywordTable() KeywordTable {
	return KeywordTable{
		{
			Category: Infrastructure,
			Keywords: []string{
				"infrastructure", "compute", "gpu", "datacenter", "cloud", "training infrastructure",
				"hardware", "chips", "processors", "servers", "distributed training", "scaling",
				"mlops", "deployment", "inference", "serving", "kubernetes", "orchestration",
				"data pipeline", "storage", "networking", "optimization", "efficiency", "compute cluster",
			},
		},
		{
			Category: FrontierModels,
			Keywords: []string{
				"frontier model", "large language model", "llm", "gpt", "claude", "gemini",
				"multimodal", "foundation model", "general intelligence", "agi", "reasoning",
				"capabilities", "benchmark", "evaluation", "safety", "alignment", "scaling laws",
				"emergent", "breakthrough", "state-of-the-art", "sota", "performance", "parameters",
			},
		},
		{
			Category: BuilderTools,
			Keywords: []string{
				"developer tool", "sdk", "api", "framework", "library", "platform", "toolkit",
				"development", "programming", "code", "software", "build", "create", "tool",
				"ide", "editor", "assistant", "copilot", "autocomplete", "generation", "studio",
			},
		},
		{
			Category: Startups,
			Keywords: []string{
				"startup", "funding", "raise", "series a", "series b", "seed", "venture", "capital",
				"unicorn", "valuation", "ipo", "acquisition", "merger", "new company", "launch",
				"announcement", "backed", "investor", "accelerator", "incubator",
			},
		},
	}
}

// Validate checks that every entry names a known category exactly once and
// that its keywords are non-empty and distinct ignoring case. The keyword
// count is the score denominator, so blanks or repeats would skew it.
func (t KeywordTable) Validate() error {
	if len(t) == 0 {
		return ErrEmptyKeywordTable
	}
	seen := make(map[Category]struct{}, len(t))
	total := 0
	for _, entry := range t {
		if !entry.Category.Valid() {
			return fmt.Errorf("unknown category %q in keyword table", entry.Category)
		}
		if _, dup := seen[entry.Category]; dup {
			return fmt.Errorf("category %q listed twice in keyword table", entry.Category)
		}
		seen[entry.Category] = struct{}{}

		words := make(map[string]struct{}, len(entry.Keywords))
		for _, k := range entry.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				return fmt.Errorf("empty keyword in category %q", entry.Category)
			}
			if _, dup := words[k]; dup {
				return fmt.Errorf("keyword %q listed twice in category %q", k, entry.Category)
			}
			words[k] = struct{}{}
		}
		total += len(entry.Keywords)
	}
	if total == 0 {
		return ErrEmptyKeywordTable
	}
	return nil
}

type catalogCategories struct {
	Categories KeywordTable `yaml:"categories"`
}

// LoadKeywordTable reads the categories section of a YAML catalog.
//
//	categories:
//	  - name: AI Infrastructure
//	    keywords: [gpu, datacenter]
//
// A file without a categories section yields a nil table.
func LoadKeywordTable(path string) (KeywordTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg catalogCategories
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode categories from %s: %w", path, err)
	}
	if len(cfg.Categories) == 0 {
		return nil, nil
	}
	if err := cfg.Categories.Validate(); err != nil {
		return nil, fmt.Errorf("categories in %s: %w", path, err)
	}
	return cfg.Categories, nil
}
