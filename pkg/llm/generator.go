// Package llm drafts social posts for news items with an OpenAI-compatible model
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/aipostbot/newsdraft/pkg/config"
	"github.com/aipostbot/newsdraft/pkg/domain"
)

// errParse marks responses that can't be turned into drafts, these are retried
var errParse = errors.New("unparsable response")

// strictReminder is appended to the prompt after the first unparsable response
const strictReminder = "\n\nIMPORTANT: Return ONLY valid JSON. No markdown fences or explanation."

// summaryLimit is the number of summary characters sent per item
const summaryLimit = 200

// contentLimit is the number of extracted article characters sent per item
const contentLimit = 500

var (
	openFenceRe  = regexp.MustCompile("^```(?:json)?\\s*")
	closeFenceRe = regexp.MustCompile("\\s*```$")
)

// Generator turns ranked news items into post drafts
type Generator struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
	now       func() time.Time
}

// NewGenerator creates a new draft generator. maxBody is the post body budget without the link.
func NewGenerator(cfg config.LLMConfig, maxBody int) *Generator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = fmt.Sprintf(defaultSystemPrompt, maxBody)
	}

	return &Generator{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
		now:       time.Now,
	}
}

// default instructions, %d is the body length budget
const defaultSystemPrompt = `You are a witty AI and data science personality on X. Write post drafts about the news items below.

Style:
- Casual, conversational tone, like a tech-savvy friend rather than a press release.
- Open with a hook: a question, a hot take or a surprising fact.
- Use 1-2 relevant emojis, not more.
- End with 2-3 hashtags (#AI #MachineLearning #DataScience #LLM and similar).
- Keep each post under %d characters, longer posts get truncated.
- No clickbait, be informative.
- Vary the structure across items: questions, opinions, teasers, plain announcements.
- Never put URLs into the text, the link is appended automatically.
- If an item deserves more room, add an optional "thread" array with 2-4 posts, each within the same limit.

Output:
Return ONLY a valid JSON array without markdown or explanation.
Each element must have these keys:
[{"news_url": "...", "news_title": "...", "tweet_text": "..."}]

Write exactly one draft per news item.`

// Generate asks the model for drafts. Failures are logged and give an empty result, never an error.
func (g *Generator) Generate(ctx context.Context, items []domain.NewsItem) []domain.Draft {
	if len(items) == 0 {
		lgr.Printf("[INFO] no news items to generate drafts for")
		return []domain.Draft{}
	}

	prompt := g.buildPrompt(items)
	attempts := max(g.config.MaxRetries, 1)

	var drafts []domain.Draft
	var fatalErr error
	attempt := 0
	retrier := repeater.NewBackoff(attempts, 100*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		attempt++
		content, err := g.complete(ctx, prompt)
		if err != nil {
			fatalErr = err
			return nil // transport errors are not retried
		}
		res, err := g.parseResponse(content)
		if err != nil {
			lgr.Printf("[WARN] failed to parse model response (attempt %d): %v", attempt, err)
			if attempt == 1 {
				prompt += strictReminder
			}
			return err
		}
		drafts = res
		return nil
	})

	switch {
	case fatalErr != nil:
		lgr.Printf("[ERROR] draft generation failed: %v", fatalErr)
		return []domain.Draft{}
	case err != nil:
		lgr.Printf("[ERROR] failed to generate drafts after %d attempts: %v", attempt, err)
		return []domain.Draft{}
	}
	lgr.Printf("[INFO] generated %d drafts", len(drafts))
	return drafts
}

// complete sends one chat completion request and returns the message content
func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       g.config.Model,
		Temperature: float32(g.config.Temperature),
		MaxTokens:   g.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: g.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	// add JSON response format if enabled
	if g.config.UseJSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}
	lgr.Printf("[DEBUG] model response received (%d chars)", len(resp.Choices[0].Message.Content))
	return resp.Choices[0].Message.Content, nil
}

// buildPrompt lists the news items for the model
func (g *Generator) buildPrompt(items []domain.NewsItem) string {
	var sb strings.Builder
	sb.WriteString("NEWS ITEMS:\n")
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("- [%s] %s: %s\n  URL: %s", item.Source, item.Title, cut(item.Summary, summaryLimit), item.URL))
		if item.Content != "" {
			sb.WriteString(fmt.Sprintf("\n  Context: %s", cut(item.Content, contentLimit)))
		}
	}
	if g.config.UseJSONMode {
		sb.WriteString("\n\nRespond with a JSON object containing a 'drafts' array.")
	}
	return sb.String()
}

// draftResponse is a single draft as returned by the model, pointers detect missing keys
type draftResponse struct {
	NewsURL   *string  `json:"news_url"`
	NewsTitle *string  `json:"news_title"`
	Text      *string  `json:"tweet_text"`
	Thread    []string `json:"thread"`
}

// parseResponse converts the model output to pending drafts
func (g *Generator) parseResponse(content string) ([]domain.Draft, error) {
	cleaned := stripFences(content)

	var parsed []draftResponse
	if g.config.UseJSONMode {
		var resp struct {
			Drafts []draftResponse `json:"drafts"`
		}
		if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
			return nil, fmt.Errorf("failed to parse json object response: %w: %w", err, errParse)
		}
		parsed = resp.Drafts
	} else {
		start := strings.Index(cleaned, "[")
		end := strings.LastIndex(cleaned, "]")
		if start == -1 || end == -1 || start >= end {
			return nil, fmt.Errorf("no json array found in response: %w", errParse)
		}
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse json array response: %w: %w", err, errParse)
		}
	}

	now := g.now().UTC()
	drafts := make([]domain.Draft, 0, len(parsed))
	for i, p := range parsed {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("draft %d: %w", i, err)
		}
		d := domain.NewDraft(strings.TrimSpace(*p.NewsURL), strings.TrimSpace(*p.NewsTitle), strings.TrimSpace(*p.Text), now)
		for _, part := range p.Thread {
			if part = strings.TrimSpace(part); part != "" {
				d.Thread = append(d.Thread, part)
			}
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func (p draftResponse) validate() error {
	switch {
	case p.NewsURL == nil || strings.TrimSpace(*p.NewsURL) == "":
		return fmt.Errorf("missing news_url: %w", errParse)
	case p.NewsTitle == nil:
		return fmt.Errorf("missing news_title: %w", errParse)
	case p.Text == nil || strings.TrimSpace(*p.Text) == "":
		return fmt.Errorf("missing tweet_text: %w", errParse)
	}
	return nil
}

// stripFences removes leading and trailing markdown code fences
func stripFences(s string) string {
	s = openFenceRe.ReplaceAllString(strings.TrimSpace(s), "")
	return closeFenceRe.ReplaceAllString(s, "")
}

// cut returns at most n characters of s
func cut(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
