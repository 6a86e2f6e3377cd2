package news

// Category is one of the fixed topical buckets an article can land in.
type Category string

const (
	Infrastructure Category = "AI Infrastructure"
	FrontierModels Category = "AI Frontier models"
	BuilderTools   Category = "AI Builder tools"
	Startups       Category = "AI startups to watch"
)

// Placeholders used when a feed entry omits its title or the feed its name.
const (
	UntitledPlaceholder      = "No title"
	UnknownSourcePlaceholder = "Unknown"
)

var categories = []Category{Infrastructure, FrontierModels, BuilderTools, Startups}

// Categories returns the fixed category set in presentation order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c belongs to the fixed category set.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Article is a single news item flowing through the pipeline.
// Empty strings mean "absent"; DaysAgo is nil until the recency filter
// has parsed a publish date.
type Article struct {
	Title       string
	Link        string
	Published   string
	Summary     string
	Source      string
	FullContent string
	Focus       string

	DaysAgo  *int
	Category Category

	AISummary       string
	CategorySummary string
}

// HasCategory reports whether the categorizer assigned a category.
func (a Article) HasCategory() bool {
	return a.Category != ""
}

// IntPtr is a small helper for building DaysAgo values.
func IntPtr(v int) *int {
	return &v
}
