package domain

import "strings"

// NewsItem is a single candidate article pulled from a feed during one run.
// Items are never persisted, only their URLs end up in the seen list.
type NewsItem struct {
	Title     string
	URL       string
	Summary   string
	Published string // raw date string as provided by the feed, may be empty or malformed
	Source    string
	Score     float64
	Content   string // extracted article text, optional
}

// Source is a configured RSS/Atom feed with its static priority
type Source struct {
	Name     string  `yaml:"name" json:"name" jsonschema:"required,description=Source name used as the weight key"`
	URL      string  `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Category string  `yaml:"category" json:"category" jsonschema:"enum=arxiv,enum=research,enum=news,enum=blog,description=Source category"`
	Weight   float64 `yaml:"weight" json:"weight" jsonschema:"minimum=0,maximum=1,description=Static priority between 0 and 1"`
}

// Category of generated content
type Category string

// content categories
const (
	CategoryResearch Category = "research"
	CategoryNews     Category = "news"
	CategoryRelease  Category = "release"
	CategoryBlog     Category = "blog"
)

// Emoji returns the marker used in approval messages
func (c Category) Emoji() string {
	switch c {
	case CategoryResearch:
		return "🔬"
	case CategoryRelease:
		return "🚀"
	case CategoryBlog:
		return "📝"
	default:
		return "📰"
	}
}

var releaseKeywords = []string{
	"release", "launch", "announce", "announcing", "introduces", "unveiled", "open-source", "open source",
}

// Classify picks the content category for an item. Release-like titles win over the source category.
func Classify(src Source, title string) Category {
	lower := strings.ToLower(title)
	for _, kw := range releaseKeywords {
		if strings.Contains(lower, kw) {
			return CategoryRelease
		}
	}
	switch strings.ToLower(src.Category) {
	case "arxiv", "research":
		return CategoryResearch
	case "blog":
		return CategoryBlog
	default:
		return CategoryNews
	}
}
