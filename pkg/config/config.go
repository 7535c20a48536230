package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aipostbot/newsdraft/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Sources []domain.Source `yaml:"sources" json:"sources" jsonschema:"description=RSS/Atom sources with static weights"`

	Ranking RankingConfig `yaml:"ranking" json:"ranking" jsonschema:"description=Scoring and deduplication settings"`

	State StateConfig `yaml:"state" json:"state" jsonschema:"description=Persisted state settings"`

	History struct {
		DSN          string `yaml:"dsn" json:"dsn" jsonschema:"description=SQLite DSN for run history (empty disables)"`
		MaxOpenConns int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=1,description=Maximum number of open connections"`
	} `yaml:"history" json:"history" jsonschema:"description=Run history database"`

	Feed struct {
		Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Per-feed fetch timeout"`
		UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newsdraft/1.0,description=User agent for feed requests"`
	} `yaml:"feed" json:"feed" jsonschema:"description=Feed fetching"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Content extraction configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for draft generation"`

	Telegram TelegramConfig `yaml:"telegram" json:"telegram" jsonschema:"description=Approval channel"`

	Twitter TwitterConfig `yaml:"twitter" json:"twitter" jsonschema:"description=Publishing platform"`

	Schedule struct {
		GenerateInterval time.Duration `yaml:"generate_interval" json:"generate_interval" jsonschema:"default=6h,description=Interval between generate runs"`
		PublishInterval  time.Duration `yaml:"publish_interval" json:"publish_interval" jsonschema:"default=15m,description=Interval between publish runs"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public base URL used in RSS links"`
	} `yaml:"server" json:"server" jsonschema:"description=Status server configuration"`
}

// RankingConfig holds scoring and dedup settings
type RankingConfig struct {
	RecencyThreshold time.Duration `yaml:"recency_threshold" json:"recency_threshold" jsonschema:"default=48h,description=Items older than this score zero"`
	DedupThreshold   float64       `yaml:"dedup_threshold" json:"dedup_threshold" jsonschema:"default=0.8,minimum=0,maximum=1,description=Title similarity ratio above which items are duplicates"`
	MaxDrafts        int           `yaml:"max_drafts" json:"max_drafts" jsonschema:"default=3,minimum=1,description=Maximum items selected per run"`
	DefaultWeight    float64       `yaml:"default_weight" json:"default_weight" jsonschema:"default=0.5,description=Weight for items from unknown sources"`
	BoostKeywords    []string      `yaml:"boost_keywords" json:"boost_keywords" jsonschema:"description=Title keywords boosting the score"`
	MaxCandidates    int           `yaml:"max_candidates" json:"max_candidates" jsonschema:"default=50,description=Scored candidates kept in run logs"`
}

// StateConfig holds persisted state settings
type StateConfig struct {
	Path          string `yaml:"path" json:"path" jsonschema:"default=data/state.json,description=State file location"`
	RunsDir       string `yaml:"runs_dir" json:"runs_dir" jsonschema:"default=data/runs,description=Directory for run log files"`
	MaxSeenURLs   int    `yaml:"max_seen_urls" json:"max_seen_urls" jsonschema:"default=1000,minimum=1,description=Seen URL history cap"`
	RetentionDays int    `yaml:"retention_days" json:"retention_days" jsonschema:"default=90,minimum=1,description=Published history retention in days"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Extract full article text for selected items"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newsdraft/1.0,description=User agent for HTTP requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum text length to consider valid"`
	MaxChars      int           `yaml:"max_chars" json:"max_chars" jsonschema:"default=2000,description=Extracted text kept per article"`
}

// LLMConfig holds LLM configuration for draft generation
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"required,description=Model name"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=Custom instructions replacing the default ones"`
	MaxRetries   int           `yaml:"max_retries" json:"max_retries" jsonschema:"default=2,minimum=1,description=Attempts when the response can't be parsed"`
	UseJSONMode  bool          `yaml:"use_json_mode" json:"use_json_mode" jsonschema:"default=false,description=Use JSON response format (not all models support this)"`
}

// TelegramConfig holds approval channel settings
type TelegramConfig struct {
	Token   string        `yaml:"token" json:"token" jsonschema:"description=Bot token"`
	ChatID  string        `yaml:"chat_id" json:"chat_id" jsonschema:"description=Chat receiving drafts and decisions"`
	APIURL  string        `yaml:"api_url" json:"api_url" jsonschema:"default=https://api.telegram.org,description=Bot API base URL"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Request timeout"`
}

// TwitterConfig holds publishing platform settings
type TwitterConfig struct {
	ConsumerKey       string        `yaml:"consumer_key" json:"consumer_key" jsonschema:"description=OAuth consumer key"`
	ConsumerSecret    string        `yaml:"consumer_secret" json:"consumer_secret" jsonschema:"description=OAuth consumer secret"`
	AccessToken       string        `yaml:"access_token" json:"access_token" jsonschema:"description=OAuth access token"`
	AccessTokenSecret string        `yaml:"access_token_secret" json:"access_token_secret" jsonschema:"description=OAuth access token secret"`
	APIURL            string        `yaml:"api_url" json:"api_url" jsonschema:"default=https://api.twitter.com,description=API base URL"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Request timeout"`
	MaxLength         int           `yaml:"max_length" json:"max_length" jsonschema:"default=280,description=Post length budget"`
	URLLength         int           `yaml:"url_length" json:"url_length" jsonschema:"default=23,description=Length reserved for a shortened link"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	SetDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// SetDefaults fills zero values with defaults
func SetDefaults(cfg *Config) {
	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultSources()
	}

	// set defaults for ranking
	if cfg.Ranking.RecencyThreshold == 0 {
		cfg.Ranking.RecencyThreshold = 48 * time.Hour
	}
	if cfg.Ranking.DedupThreshold == 0 {
		cfg.Ranking.DedupThreshold = 0.8
	}
	if cfg.Ranking.MaxDrafts == 0 {
		cfg.Ranking.MaxDrafts = 3
	}
	if cfg.Ranking.DefaultWeight == 0 {
		cfg.Ranking.DefaultWeight = 0.5
	}
	if len(cfg.Ranking.BoostKeywords) == 0 {
		cfg.Ranking.BoostKeywords = DefaultBoostKeywords()
	}
	if cfg.Ranking.MaxCandidates == 0 {
		cfg.Ranking.MaxCandidates = 50
	}

	// set defaults for state
	if cfg.State.Path == "" {
		cfg.State.Path = "data/state.json"
	}
	if cfg.State.RunsDir == "" {
		cfg.State.RunsDir = "data/runs"
	}
	if cfg.State.MaxSeenURLs == 0 {
		cfg.State.MaxSeenURLs = 1000
	}
	if cfg.State.RetentionDays == 0 {
		cfg.State.RetentionDays = 90
	}

	if cfg.History.MaxOpenConns == 0 {
		cfg.History.MaxOpenConns = 1
	}

	// set defaults for feed fetching
	if cfg.Feed.Timeout == 0 {
		cfg.Feed.Timeout = 10 * time.Second
	}
	if cfg.Feed.UserAgent == "" {
		cfg.Feed.UserAgent = "Newsdraft/1.0"
	}

	// set defaults for extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 30 * time.Second
	}
	if cfg.Extraction.UserAgent == "" {
		cfg.Extraction.UserAgent = "Newsdraft/1.0"
	}
	if cfg.Extraction.MinTextLength == 0 {
		cfg.Extraction.MinTextLength = 100
	}
	if cfg.Extraction.MaxChars == 0 {
		cfg.Extraction.MaxChars = 2000
	}

	// set defaults for LLM
	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = "https://generativelanguage.googleapis.com/v1beta/openai"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gemini-2.5-flash"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.7
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 2000
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}
	if cfg.LLM.MaxRetries == 0 {
		cfg.LLM.MaxRetries = 2
	}

	// set defaults for approval channel and publisher
	if cfg.Telegram.APIURL == "" {
		cfg.Telegram.APIURL = "https://api.telegram.org"
	}
	if cfg.Telegram.Timeout == 0 {
		cfg.Telegram.Timeout = 15 * time.Second
	}
	if cfg.Twitter.APIURL == "" {
		cfg.Twitter.APIURL = "https://api.twitter.com"
	}
	if cfg.Twitter.Timeout == 0 {
		cfg.Twitter.Timeout = 15 * time.Second
	}
	if cfg.Twitter.MaxLength == 0 {
		cfg.Twitter.MaxLength = 280
	}
	if cfg.Twitter.URLLength == 0 {
		cfg.Twitter.URLLength = 23
	}

	// set defaults for schedule
	if cfg.Schedule.GenerateInterval == 0 {
		cfg.Schedule.GenerateInterval = 6 * time.Hour
	}
	if cfg.Schedule.PublishInterval == 0 {
		cfg.Schedule.PublishInterval = 15 * time.Minute
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	names := make(map[string]bool, len(cfg.Sources))
	for i, src := range cfg.Sources {
		if src.Name == "" || src.URL == "" {
			return fmt.Errorf("sources[%d]: name and url are required", i)
		}
		if names[src.Name] {
			return fmt.Errorf("sources[%d]: duplicate name %q", i, src.Name)
		}
		names[src.Name] = true
		if src.Weight < 0 || src.Weight > 1 {
			return fmt.Errorf("sources[%d]: weight must be between 0 and 1", i)
		}
	}

	if cfg.Ranking.DedupThreshold <= 0 || cfg.Ranking.DedupThreshold > 1 {
		return fmt.Errorf("ranking.dedup_threshold must be in (0, 1]")
	}
	if cfg.Ranking.MaxDrafts < 1 {
		return fmt.Errorf("ranking.max_drafts must be at least 1")
	}
	if cfg.Ranking.DefaultWeight < 0 || cfg.Ranking.DefaultWeight > 1 {
		return fmt.Errorf("ranking.default_weight must be between 0 and 1")
	}
	if cfg.Ranking.RecencyThreshold < 24*time.Hour {
		return fmt.Errorf("ranking.recency_threshold must be at least 24h")
	}

	if cfg.State.MaxSeenURLs < 1 {
		return fmt.Errorf("state.max_seen_urls must be at least 1")
	}
	if cfg.State.RetentionDays < 1 {
		return fmt.Errorf("state.retention_days must be at least 1")
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MaxRetries < 1 {
		return fmt.Errorf("llm.max_retries must be at least 1")
	}

	if cfg.Twitter.URLLength+1 >= cfg.Twitter.MaxLength {
		return fmt.Errorf("twitter.url_length must leave room for text")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// Retention returns published history retention as a duration
func (c *Config) Retention() time.Duration {
	return time.Duration(c.State.RetentionDays) * 24 * time.Hour
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the public base URL of the status server
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// FilterSources returns configured sources matching names case-insensitively,
// along with the names that matched nothing
func (c *Config) FilterSources(names []string) (matched []domain.Source, unknown []string) {
	requested := make(map[string]bool, len(names))
	for _, n := range names {
		requested[strings.ToLower(strings.TrimSpace(n))] = true
	}
	found := make(map[string]bool, len(names))
	for _, src := range c.Sources {
		key := strings.ToLower(src.Name)
		if requested[key] {
			matched = append(matched, src)
			found[key] = true
		}
	}
	for n := range requested {
		if !found[n] {
			unknown = append(unknown, n)
		}
	}
	sort.Strings(unknown)
	return matched, unknown
}
