package summarizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/deusflow/ainews/internal/news"
	"github.com/deusflow/ainews/internal/startups"
)

const (
	maxArticleInput    = 4000
	maxSnippet         = 300
	maxCategoryEntries = 10
	temperature        = 0.7
)

func articlePrompt(a news.Article, category news.Category) Prompt {
	text := a.FullContent
	if text == "" {
		text = a.Summary
	}
	if text == "" {
		text = a.Title
	}
	if utf8.RuneCountInString(text) > maxArticleInput {
		text = string([]rune(text)[:maxArticleInput]) + "..."
	}

	return Prompt{
		System: "You are a concise AI news analyst. Generate brief, informative summaries.",
		User: fmt.Sprintf(`You are an AI news analyst. Generate a concise, informative summary (2-3 sentences) of the following article about %s.

Title: %s

Content:
%s

Summary:`, category, a.Title, text),
		MaxTokens:   200,
		Temperature: temperature,
	}
}

func categoryPrompt(articles []news.Article, category news.Category) Prompt {
	if len(articles) > maxCategoryEntries {
		articles = articles[:maxCategoryEntries]
	}

	lines := make([]string, 0, len(articles))
	for i, a := range articles {
		snippet := a.Summary
		if snippet == "" {
			snippet = a.AISummary
		}
		if snippet == "" {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, a.Title))
			continue
		}
		if utf8.RuneCountInString(snippet) > maxSnippet {
			snippet = string([]rune(snippet)[:maxSnippet])
		}
		lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, a.Title, snippet))
	}

	return Prompt{
		System: "You are an expert AI news analyst. Create comprehensive, insightful category-level summaries that synthesize multiple articles into a cohesive narrative.",
		User: fmt.Sprintf(`You are an AI news analyst. Analyze the following articles about %[1]s and create a comprehensive bird's-eye view summary (4-6 sentences) that captures:

1. The main themes and trends
2. Key developments and breakthroughs
3. Important implications or impacts
4. Overall direction of the field

Articles:
%[2]s

Provide a cohesive summary that gives readers a comprehensive understanding of what's happening in %[1]s based on these articles:`, category, strings.Join(lines, "\n")),
		MaxTokens:   400,
		Temperature: temperature,
	}
}

func startupsPrompt(records []startups.Record) Prompt {
	if len(records) > maxCategoryEntries {
		records = records[:maxCategoryEntries]
	}

	lines := make([]string, 0, len(records))
	for i, r := range records {
		lines = append(lines, fmt.Sprintf("%d. %s (%s): %s Focus: %s", i+1, r.Name, r.Website, r.Description, r.Focus))
	}

	return Prompt{
		System: "You are an expert AI industry analyst. Create comprehensive, insightful summaries about AI enterprise startups that synthesize information into a cohesive narrative.",
		User: fmt.Sprintf(`You are an AI industry analyst. Analyze the following top 10 AI enterprise startups and create a comprehensive summary (5-7 sentences) that covers:

1. The overall landscape and trends in AI enterprise startups
2. Key focus areas and market segments these startups are targeting
3. Notable innovations or differentiators
4. The direction of enterprise AI adoption
5. What makes these companies stand out in the market

Top AI Enterprise Startups:
%s

Provide an insightful, cohesive summary that gives readers a comprehensive understanding of the current state of AI enterprise startups:`, strings.Join(lines, "\n")),
		MaxTokens:   500,
		Temperature: temperature,
	}
}
