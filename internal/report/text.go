package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/deusflow/ainews/internal/app"
)

const (
	rule          = "================================================================================"
	maxRSSSummary = 200
)

// Style decorates the headings of a text report. Nil fields leave the
// text unchanged.
type Style struct {
	Title    func(a ...interface{}) string
	Category func(a ...interface{}) string
	Label    func(a ...interface{}) string
}

func apply(f func(a ...interface{}) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// FormatText renders the plain console report. Empty categories are omitted.
func FormatText(res *app.Result) string {
	return RenderText(res, Style{})
}

// RenderText renders the report with headings decorated by style.
func RenderText(res *app.Result, style Style) string {
	var b strings.Builder

	b.WriteString("\n" + rule + "\n")
	b.WriteString(apply(style.Title, "AI NEWS SUMMARY REPORT") + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", res.GeneratedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(rule + "\n\n")

	for _, s := range res.Ordered() {
		if len(s.Articles) == 0 {
			continue
		}
		b.WriteString("\n" + rule + "\n")
		b.WriteString(apply(style.Category, "CATEGORY: "+strings.ToUpper(string(s.Category))) + "\n")
		b.WriteString(rule + "\n\n")
		if s.Summary != "" {
			fmt.Fprintf(&b, "%s %s\n\n", apply(style.Label, "Overview:"), s.Summary)
		}

		for i, a := range s.Articles {
			fmt.Fprintf(&b, "\n[%d] %s\n", i+1, a.Title)
			fmt.Fprintf(&b, "    Source: %s\n", a.Source)
			if a.Link != "" {
				fmt.Fprintf(&b, "    Link: %s\n", a.Link)
			}
			if a.DaysAgo != nil {
				fmt.Fprintf(&b, "    Published: %d days ago\n", *a.DaysAgo)
			}
			switch {
			case a.AISummary != "":
				fmt.Fprintf(&b, "\n    %s %s\n", apply(style.Label, "AI Summary:"), a.AISummary)
			case a.Summary != "":
				fmt.Fprintf(&b, "\n    Summary: %s\n", clip(a.Summary, maxRSSSummary))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func clip(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
