package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aipostbot/newsdraft/pkg/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

sources:
  - name: OpenAI Blog
    url: https://openai.com/blog/rss.xml
    category: blog
    weight: 0.85
  - name: ArXiv CS.AI
    url: https://rss.arxiv.org/rss/cs.AI
    category: research
    weight: 0.95

ranking:
  max_drafts: 5
  dedup_threshold: 0.75

state:
  path: /tmp/state.json
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		require.Len(t, cfg.Sources, 2)
		assert.Equal(t, "OpenAI Blog", cfg.Sources[0].Name)
		assert.Equal(t, "blog", cfg.Sources[0].Category)
		assert.InDelta(t, 0.95, cfg.Sources[1].Weight, 1e-9)
		assert.Equal(t, 5, cfg.Ranking.MaxDrafts)
		assert.InDelta(t, 0.75, cfg.Ranking.DedupThreshold, 1e-9)
		assert.Equal(t, "/tmp/state.json", cfg.State.Path)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "llm:\n  api_key: key\n"))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Len(t, cfg.Sources, len(DefaultSources()))
		assert.Equal(t, 48*time.Hour, cfg.Ranking.RecencyThreshold)
		assert.InDelta(t, 0.8, cfg.Ranking.DedupThreshold, 1e-9)
		assert.Equal(t, 3, cfg.Ranking.MaxDrafts)
		assert.InDelta(t, 0.5, cfg.Ranking.DefaultWeight, 1e-9)
		assert.Equal(t, DefaultBoostKeywords(), cfg.Ranking.BoostKeywords)
		assert.Equal(t, "data/state.json", cfg.State.Path)
		assert.Equal(t, 1000, cfg.State.MaxSeenURLs)
		assert.Equal(t, 90, cfg.State.RetentionDays)
		assert.Equal(t, 10*time.Second, cfg.Feed.Timeout)
		assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
		assert.Equal(t, 2, cfg.LLM.MaxRetries)
		assert.Equal(t, 15*time.Second, cfg.Telegram.Timeout)
		assert.Equal(t, 280, cfg.Twitter.MaxLength)
		assert.Equal(t, 23, cfg.Twitter.URLLength)
		assert.Equal(t, 6*time.Hour, cfg.Schedule.GenerateInterval)
		assert.Equal(t, 15*time.Minute, cfg.Schedule.PublishInterval)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("NEWSDRAFT_TEST_TOKEN", "bot-secret")
		cfg, err := Load(writeConfig(t, "telegram:\n  token: ${NEWSDRAFT_TEST_TOKEN}\n  chat_id: \"42\"\n"))
		require.NoError(t, err)
		assert.Equal(t, "bot-secret", cfg.Telegram.Token)
		assert.Equal(t, "42", cfg.Telegram.ChatID)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "ranking:\n  dedup_threshold: 1.5\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "validate config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", modify: func(c *Config) {}},
		{name: "source without url", modify: func(c *Config) {
			c.Sources = []domain.Source{{Name: "a"}}
		}, wantErr: "name and url are required"},
		{name: "duplicate source names", modify: func(c *Config) {
			c.Sources = []domain.Source{{Name: "a", URL: "http://a"}, {Name: "a", URL: "http://b"}}
		}, wantErr: "duplicate name"},
		{name: "weight out of range", modify: func(c *Config) {
			c.Sources = []domain.Source{{Name: "a", URL: "http://a", Weight: 1.2}}
		}, wantErr: "weight must be between 0 and 1"},
		{name: "short recency window", modify: func(c *Config) {
			c.Ranking.RecencyThreshold = time.Hour
		}, wantErr: "recency_threshold"},
		{name: "negative max drafts", modify: func(c *Config) {
			c.Ranking.MaxDrafts = -1
		}, wantErr: "max_drafts"},
		{name: "temperature too high", modify: func(c *Config) {
			c.LLM.Temperature = 3
		}, wantErr: "temperature"},
		{name: "url length eats the budget", modify: func(c *Config) {
			c.Twitter.URLLength = 280
		}, wantErr: "url_length"},
		{name: "server timeout too short", modify: func(c *Config) {
			c.Server.Timeout = 10 * time.Millisecond
		}, wantErr: "server timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			SetDefaults(cfg)
			tt.modify(cfg)
			err := validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_FilterSources(t *testing.T) {
	cfg := &Config{Sources: []domain.Source{
		{Name: "OpenAI Blog", URL: "http://a"},
		{Name: "Hacker News AI", URL: "http://b"},
		{Name: "ArXiv CS.AI", URL: "http://c"},
	}}

	matched, unknown := cfg.FilterSources([]string{"openai blog", " ARXIV CS.AI ", "Nope", "another"})
	require.Len(t, matched, 2)
	assert.Equal(t, "OpenAI Blog", matched[0].Name)
	assert.Equal(t, "ArXiv CS.AI", matched[1].Name)
	assert.Equal(t, []string{"another", "nope"}, unknown)

	matched, unknown = cfg.FilterSources([]string{"missing"})
	assert.Empty(t, matched)
	assert.Equal(t, []string{"missing"}, unknown)
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Listen = ":9090"
	cfg.Server.Timeout = 45 * time.Second

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)

	cfg.Server.BaseURL = "https://news.example.com"
	assert.Equal(t, "https://news.example.com", cfg.GetBaseURL())
}

func TestConfig_Retention(t *testing.T) {
	cfg := &Config{State: StateConfig{RetentionDays: 90}}
	assert.Equal(t, 90*24*time.Hour, cfg.Retention())
}

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()
	require.NotEmpty(t, sources)
	names := make(map[string]bool)
	for _, src := range sources {
		assert.NotEmpty(t, src.URL, src.Name)
		assert.False(t, names[src.Name], "duplicate %s", src.Name)
		names[src.Name] = true
		assert.True(t, src.Weight > 0 && src.Weight <= 1, src.Name)
	}
}

func TestLoad_ExampleConfig(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	cfg, err := Load("../../config.example.yml")
	require.NoError(t, err)

	require.Len(t, cfg.Sources, 3)
	assert.Equal(t, "OpenAI Blog", cfg.Sources[0].Name)
	assert.Equal(t, "12345", cfg.Telegram.ChatID)
	assert.Equal(t, "data/history.db", cfg.History.DSN)
	assert.Equal(t, 6*time.Hour, cfg.Schedule.GenerateInterval)
	assert.Equal(t, 15*time.Minute, cfg.Schedule.PublishInterval)
	assert.Equal(t, 280, cfg.Twitter.MaxLength)
	assert.Contains(t, cfg.Ranking.BoostKeywords, "anthropic")
}
