package config

import "github.com/aipostbot/newsdraft/pkg/domain"

// DefaultSources returns the built-in AI news feeds used when the config lists none
func DefaultSources() []domain.Source {
	return []domain.Source{
		{Name: "ArXiv CS.AI+CS.LG", URL: "https://rss.arxiv.org/rss/cs.AI+cs.LG", Category: "arxiv", Weight: 0.8},
		{Name: "MIT Tech Review", URL: "https://www.technologyreview.com/feed/", Category: "news", Weight: 0.9},
		{Name: "TechCrunch AI", URL: "https://techcrunch.com/category/artificial-intelligence/feed/", Category: "news", Weight: 0.85},
		{Name: "VentureBeat AI", URL: "https://venturebeat.com/category/ai/feed", Category: "news", Weight: 0.85},
		{Name: "The Verge AI", URL: "https://www.theverge.com/rss/ai-artificial-intelligence/index.xml", Category: "news", Weight: 0.8},
		{Name: "Hugging Face Blog", URL: "https://huggingface.co/blog/feed.xml", Category: "blog", Weight: 0.7},
		{Name: "Google AI Blog", URL: "https://blog.google/innovation-and-ai/technology/ai/rss/", Category: "blog", Weight: 0.75},
		{Name: "OpenAI Blog", URL: "https://openai.com/news/rss.xml", Category: "blog", Weight: 0.9},
		{Name: "Microsoft AI Blog", URL: "https://www.microsoft.com/en-us/ai/blog/feed/", Category: "blog", Weight: 0.75},
		{Name: "Google DeepMind", URL: "https://deepmind.google/blog/rss.xml", Category: "blog", Weight: 0.8},
		{Name: "MIT News AI", URL: "https://news.mit.edu/topic/artificial-intelligence2/feed", Category: "news", Weight: 0.8},
		{Name: "Daily Dose of Data Science", URL: "https://blog.dailydoseofds.com/feed", Category: "blog", Weight: 0.75},
	}
}

// DefaultBoostKeywords returns title keywords that boost an item's score
func DefaultBoostKeywords() []string {
	return []string{
		"gpt", "claude", "gemini", "llama", "mistral", "open source", "benchmark", "sota",
		"release", "launch", "announcement", "breakthrough", "transformer", "diffusion",
		"agent", "rag", "fine-tuning", "reasoning",
	}
}
