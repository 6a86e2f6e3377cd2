package summarizer

import (
	"regexp"
	"strings"
)

var (
	// Echoed prompt labels such as "Summary:" or "**Summary:**".
	leadingLabel = regexp.MustCompile(`(?i)^\**\s*(summary|overview)\s*:\s*\**\s*`)
	// Model disclaimers, on their own line or in parentheses.
	noteLine   = regexp.MustCompile(`(?im)^\s*note:.*$`)
	inlineNote = regexp.MustCompile(`(?i)\(\s*note:[^)]*\)`)
)

// cleanReply strips prompt echoes and disclaimers from a model reply.
func cleanReply(text string) string {
	text = inlineNote.ReplaceAllString(text, "")
	text = noteLine.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	text = leadingLabel.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		if l == "" && len(kept) > 0 && kept[len(kept)-1] == "" {
			continue
		}
		kept = append(kept, l)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
