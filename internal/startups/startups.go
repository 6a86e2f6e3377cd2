package startups

import "github.com/deusflow/ainews/internal/news"

// SourceName labels every curated entry.
const SourceName = "AI Enterprise Startups"

// Record describes one curated enterprise AI startup.
type Record struct {
	Name        string `json:"name" yaml:"name"`
	Website     string `json:"website" yaml:"website"`
	Description string `json:"description" yaml:"description"`
	Focus       string `json:"focus" yaml:"focus"`
}

var curated = []Record{
	{
		Name:        "Anthropic",
		Website:     "https://www.anthropic.com",
		Description: "AI safety company building Claude, a next-generation AI assistant focused on helpfulness, harmlessness, and honesty.",
		Focus:       "AI Safety & Enterprise AI Assistants",
	},
	{
		Name:        "Cohere",
		Website:     "https://cohere.com",
		Description: "Enterprise AI platform providing large language models and NLP APIs for businesses.",
		Focus:       "Enterprise LLM APIs & NLP",
	},
	{
		Name:        "Adept AI",
		Website:     "https://www.adept.ai",
		Description: "Building AI systems that can use software tools and APIs to accomplish complex tasks.",
		Focus:       "AI Agents & Automation",
	},
	{
		Name:        "Scale AI",
		Website:     "https://scale.com",
		Description: "Data platform for AI providing high-quality training data and model evaluation for enterprise AI.",
		Focus:       "AI Data Infrastructure & Training",
	},
	{
		Name:        "Hugging Face",
		Website:     "https://huggingface.co",
		Description: "Open-source AI platform providing models, datasets, and tools for the AI community and enterprises.",
		Focus:       "Open-Source AI Platform & Model Hub",
	},
	{
		Name:        "Weights & Biases",
		Website:     "https://wandb.ai",
		Description: "MLOps platform for experiment tracking, model management, and collaboration for ML teams.",
		Focus:       "MLOps & Experiment Tracking",
	},
	{
		Name:        "Runway",
		Website:     "https://runwayml.com",
		Description: "Creative AI tools for content generation, video editing, and multimedia creation for enterprises.",
		Focus:       "Creative AI & Content Generation",
	},
	{
		Name:        "Jasper AI",
		Website:     "https://www.jasper.ai",
		Description: "AI content platform for marketing teams to generate copy, blog posts, and marketing materials.",
		Focus:       "AI Content Generation for Marketing",
	},
	{
		Name:        "C3.ai",
		Website:     "https://c3.ai",
		Description: "Enterprise AI software platform for accelerating digital transformation across industries.",
		Focus:       "Enterprise AI Applications",
	},
	{
		Name:        "DataRobot",
		Website:     "https://www.datarobot.com",
		Description: "Automated machine learning platform that enables organizations to build and deploy AI models faster.",
		Focus:       "AutoML & Model Deployment",
	},
}

// Records returns the curated startups in their fixed order.
func Records() []Record {
	out := make([]Record, len(curated))
	copy(out, curated)
	return out
}

// Enrich turns a record into an article of the startups category.
func Enrich(r Record) news.Article {
	return news.Article{
		Title:    r.Name,
		Link:     r.Website,
		Summary:  r.Description,
		Source:   SourceName,
		Focus:    r.Focus,
		Category: news.Startups,
	}
}

// Articles enriches every curated record.
func Articles() []news.Article {
	records := Records()
	out := make([]news.Article, 0, len(records))
	for _, r := range records {
		out = append(out, Enrich(r))
	}
	return out
}
