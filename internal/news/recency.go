package news

import (
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// RecencyFilter keeps articles published within a lookback window.
// Articles whose date is missing or unparsable are always kept.
type RecencyFilter struct {
	Now    func() time.Time
	Logger *slog.Logger
}

// NewRecencyFilter returns a filter measuring age against the wall clock.
func NewRecencyFilter(logger *slog.Logger) *RecencyFilter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecencyFilter{Now: time.Now, Logger: logger}
}

// Apply returns the articles no older than days, each annotated with DaysAgo
// when its publish date could be parsed.
func (f *RecencyFilter) Apply(articles []Article, days int) []Article {
	now := naive(f.now())
	recent := make([]Article, 0, len(articles))

	for _, a := range articles {
		published := strings.TrimSpace(a.Published)
		if published == "" {
			a.DaysAgo = nil
			recent = append(recent, a)
			continue
		}

		t, err := dateparse.ParseIn(published, time.UTC)
		if err != nil {
			f.logger().Debug("unparsable publish date, keeping article", "title", a.Title, "published", published, "error", err)
			a.DaysAgo = nil
			recent = append(recent, a)
			continue
		}

		daysAgo := DaysBetween(naive(t), now)
		if daysAgo > days {
			continue
		}
		a.DaysAgo = IntPtr(daysAgo)
		recent = append(recent, a)
	}
	return recent
}

// DaysBetween returns the whole number of days from then to now, rounded down.
func DaysBetween(then, now time.Time) int {
	const day = 24 * time.Hour
	d := now.Sub(then)
	days := int(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}

// naive drops the location, keeping the wall-clock reading.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func (f *RecencyFilter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

func (f *RecencyFilter) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}
