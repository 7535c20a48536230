package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aipostbot/newsdraft/pkg/config"
	"github.com/aipostbot/newsdraft/pkg/domain"
)

var testItems = []domain.NewsItem{
	{Title: "GPT-5 Release", URL: "https://news.com/gpt5", Summary: "OpenAI ships a new model", Source: "OpenAI Blog"},
	{Title: "New diffusion paper", URL: "https://arxiv.org/abs/1", Summary: strings.Repeat("x", 300), Source: "ArXiv", Content: "full text"},
}

// fakeLLM serves queued chat completion contents and records requests
type fakeLLM struct {
	mu        sync.Mutex
	responses []string
	requests  []openai.ChatCompletionRequest
	status    int
}

func (f *fakeLLM) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests = append(f.requests, req)
		if f.status != 0 {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		content := f.responses[0]
		if len(f.responses) > 1 {
			f.responses = f.responses[1:]
		}
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func newTestGenerator(t *testing.T, fake *fakeLLM, jsonMode bool) *Generator {
	t.Helper()
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	g := NewGenerator(config.LLMConfig{
		Endpoint:    server.URL + "/v1",
		APIKey:      "test-key",
		Model:       "test-model",
		Temperature: 0.7,
		MaxTokens:   500,
		Timeout:     5 * time.Second,
		MaxRetries:  2,
		UseJSONMode: jsonMode,
	}, 256)
	g.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerator_Generate(t *testing.T) {
	fake := &fakeLLM{responses: []string{"```json\n" + `[
  {"news_url": "https://news.com/gpt5", "news_title": "GPT-5 Release", "tweet_text": "GPT-5 is here 🚀 #AI"},
  {"news_url": "https://arxiv.org/abs/1", "news_title": "New diffusion paper", "tweet_text": "Diffusion again? #ML",
   "thread": ["Part one", " ", "Part two"]}
]` + "\n```"}}
	g := newTestGenerator(t, fake, false)

	drafts := g.Generate(context.Background(), testItems)
	require.Len(t, drafts, 2)

	assert.Equal(t, "https://news.com/gpt5", drafts[0].NewsURL)
	assert.Equal(t, "GPT-5 Release", drafts[0].NewsTitle)
	assert.Equal(t, "GPT-5 is here 🚀 #AI", drafts[0].Text)
	assert.Equal(t, domain.StatusPending, drafts[0].Status)
	assert.Nil(t, drafts[0].MessageID)
	assert.Equal(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), drafts[0].CreatedAt)
	assert.Empty(t, drafts[0].Thread)
	assert.Equal(t, []string{"Part one", "Part two"}, drafts[1].Thread)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, "test-model", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "under 256 characters")
	assert.Contains(t, req.Messages[1].Content, "- [OpenAI Blog] GPT-5 Release: OpenAI ships a new model\n  URL: https://news.com/gpt5")
	assert.Contains(t, req.Messages[1].Content, "Context: full text")
	assert.Nil(t, req.ResponseFormat)
}

func TestGenerator_GenerateRetriesParseErrors(t *testing.T) {
	fake := &fakeLLM{responses: []string{
		"Sure! Here are your tweets: not json",
		`[{"news_url": "https://news.com/gpt5", "news_title": "GPT-5 Release", "tweet_text": "retry worked"}]`,
	}}
	g := newTestGenerator(t, fake, false)

	drafts := g.Generate(context.Background(), testItems[:1])
	require.Len(t, drafts, 1)
	assert.Equal(t, "retry worked", drafts[0].Text)

	require.Len(t, fake.requests, 2)
	assert.NotContains(t, fake.requests[0].Messages[1].Content, "IMPORTANT: Return ONLY valid JSON")
	assert.True(t, strings.HasSuffix(fake.requests[1].Messages[1].Content, strictReminder))
}

func TestGenerator_GenerateGivesUp(t *testing.T) {
	t.Run("missing required key", func(t *testing.T) {
		fake := &fakeLLM{responses: []string{`[{"news_url": "https://news.com/gpt5", "news_title": "t"}]`}}
		g := newTestGenerator(t, fake, false)
		drafts := g.Generate(context.Background(), testItems)
		assert.Empty(t, drafts)
		assert.NotNil(t, drafts)
		assert.Len(t, fake.requests, 2)
		assert.Equal(t, 1, strings.Count(fake.requests[1].Messages[1].Content, "IMPORTANT"), "reminder added once")
	})

	t.Run("transport error not retried", func(t *testing.T) {
		fake := &fakeLLM{status: http.StatusInternalServerError}
		g := newTestGenerator(t, fake, false)
		drafts := g.Generate(context.Background(), testItems)
		assert.Empty(t, drafts)
		assert.Len(t, fake.requests, 1)
	})

	t.Run("no items", func(t *testing.T) {
		fake := &fakeLLM{}
		g := newTestGenerator(t, fake, false)
		assert.Empty(t, g.Generate(context.Background(), nil))
		assert.Empty(t, fake.requests)
	})
}

func TestGenerator_GenerateJSONMode(t *testing.T) {
	fake := &fakeLLM{responses: []string{`{"drafts": [{"news_url": "u", "news_title": "t", "tweet_text": "hello"}]}`}}
	g := newTestGenerator(t, fake, true)

	drafts := g.Generate(context.Background(), testItems[:1])
	require.Len(t, drafts, 1)
	assert.Equal(t, "hello", drafts[0].Text)
	require.Len(t, fake.requests, 1)
	require.NotNil(t, fake.requests[0].ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, fake.requests[0].ResponseFormat.Type)
	assert.Contains(t, fake.requests[0].Messages[1].Content, "'drafts' array")
}

func TestGenerator_ParseResponse(t *testing.T) {
	g := NewGenerator(config.LLMConfig{Model: "m"}, 256)

	tests := []struct {
		name    string
		content string
		want    int
		wantErr string
	}{
		{name: "plain array", content: `[{"news_url":"u","news_title":"t","tweet_text":"x"}]`, want: 1},
		{name: "fenced", content: "```json\n[{\"news_url\":\"u\",\"news_title\":\"t\",\"tweet_text\":\"x\"}]\n```", want: 1},
		{name: "bare fence", content: "```\n[]\n```", want: 0},
		{name: "surrounding prose", content: "here:\n[{\"news_url\":\"u\",\"news_title\":\"t\",\"tweet_text\":\"x\"}]\nbye", want: 1},
		{name: "no array", content: `{"a": 1}`, wantErr: "no json array found"},
		{name: "broken json", content: `[{"news_url": }]`, wantErr: "failed to parse json array"},
		{name: "missing url", content: `[{"news_title":"t","tweet_text":"x"}]`, wantErr: "missing news_url"},
		{name: "missing title", content: `[{"news_url":"u","tweet_text":"x"}]`, wantErr: "missing news_title"},
		{name: "empty text", content: `[{"news_url":"u","news_title":"t","tweet_text":"  "}]`, wantErr: "missing tweet_text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts, err := g.parseResponse(tt.content)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.ErrorIs(t, err, errParse)
				return
			}
			require.NoError(t, err)
			assert.Len(t, drafts, tt.want)
		})
	}
}

func TestGenerator_BuildPrompt(t *testing.T) {
	g := NewGenerator(config.LLMConfig{Model: "m"}, 256)
	prompt := g.buildPrompt(testItems)

	assert.True(t, strings.HasPrefix(prompt, "NEWS ITEMS:\n- [OpenAI Blog] GPT-5 Release"))
	assert.Contains(t, prompt, "- [ArXiv] New diffusion paper: "+strings.Repeat("x", 200)+"\n  URL: https://arxiv.org/abs/1")
	assert.NotContains(t, prompt, strings.Repeat("x", 201))
}

func TestGenerator_CustomSystemPrompt(t *testing.T) {
	g := NewGenerator(config.LLMConfig{Model: "m", SystemPrompt: "be brief"}, 256)
	assert.Equal(t, "be brief", g.systemMsg)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, "[1]", stripFences("```json\n[1]\n```"))
	assert.Equal(t, "[1]", stripFences("  ```\n[1]```  "))
	assert.Equal(t, "[1]", stripFences("[1]"))
	assert.Equal(t, "[1]", stripFences("```json [1]"))
}
