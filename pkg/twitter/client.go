// Package twitter publishes approved drafts with the X API v2
package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dghubble/oauth1"
	"github.com/go-pkgz/lgr"

	"github.com/aipostbot/newsdraft/pkg/config"
)

const ellipsis = "…"

// Client posts tweets on behalf of the configured account
type Client struct {
	httpClient *http.Client
	apiURL     string
	maxLength  int
	urlLength  int
}

// NewClient makes a client signing requests with OAuth 1.0a user context
func NewClient(cfg config.TwitterConfig) *Client {
	oauthCfg := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	httpClient := oauthCfg.Client(context.Background(), oauth1.NewToken(cfg.AccessToken, cfg.AccessTokenSecret))
	httpClient.Timeout = cfg.Timeout
	return &Client{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		maxLength:  cfg.MaxLength,
		urlLength:  cfg.URLLength,
	}
}

// BuildText appends the link to the body, cutting the body with an ellipsis so the
// result fits the length budget. Links count as urlLength characters whatever their real size.
func (c *Client) BuildText(body, link string) string {
	if link == "" {
		return truncate(body, c.maxLength)
	}
	return truncate(body, c.maxLength-c.urlLength-1) + " " + link
}

// Publish posts the body with the link and returns the tweet id
func (c *Client) Publish(ctx context.Context, body, link string) (string, error) {
	id, err := c.post(ctx, c.BuildText(body, link), "")
	if err != nil {
		return "", err
	}
	lgr.Printf("[INFO] published tweet %s", id)
	return id, nil
}

// PublishThread posts the first part with the link and the rest as a reply chain.
// Returns the id of the first tweet. A failure after the first tweet is logged and the chain stops,
// the thread counts as published since its head is live.
func (c *Client) PublishThread(ctx context.Context, parts []string, link string) (string, error) {
	if len(parts) == 0 {
		return "", fmt.Errorf("empty thread")
	}
	headID, err := c.Publish(ctx, parts[0], link)
	if err != nil {
		return "", err
	}

	prev := headID
	for i, part := range parts[1:] {
		id, err := c.post(ctx, c.BuildText(part, ""), prev)
		if err != nil {
			lgr.Printf("[WARN] thread %s stopped at part %d: %v", headID, i+2, err)
			break
		}
		prev = id
	}
	return headID, nil
}

type tweetRequest struct {
	Text  string      `json:"text"`
	Reply *replyField `json:"reply,omitempty"`
}

type replyField struct {
	InReplyTo string `json:"in_reply_to_tweet_id"`
}

type tweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// post creates a tweet, optionally as a reply, and returns its id
func (c *Client) post(ctx context.Context, text, replyTo string) (string, error) {
	reqBody := tweetRequest{Text: text}
	if replyTo != "" {
		reqBody.Reply = &replyField{InReplyTo: replyTo}
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal tweet: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/2/tweets", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post tweet: %w", err)
	}
	defer resp.Body.Close()

	var tr tweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode response, status %d: %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("post tweet, status %d: %s", resp.StatusCode, tr.errorMessage())
	}
	if tr.Data.ID == "" {
		return "", fmt.Errorf("post tweet: empty id in response")
	}
	return tr.Data.ID, nil
}

func (r tweetResponse) errorMessage() string {
	msgs := make([]string, 0, len(r.Errors)+1)
	if r.Detail != "" {
		msgs = append(msgs, r.Detail)
	} else if r.Title != "" {
		msgs = append(msgs, r.Title)
	}
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// truncate cuts s to limit characters, the last one replaced by an ellipsis
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit-1]) + ellipsis
}
