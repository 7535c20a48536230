// Package telegram sends drafts to a bot chat and reads approval replies
package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aipostbot/newsdraft/pkg/config"
	"github.com/aipostbot/newsdraft/pkg/domain"
)

// longPollSeconds is the getUpdates server-side wait
const longPollSeconds = 5

var approveTokens = map[string]bool{"✅": true, "approve": true, "yes": true, "ok": true, "si": true, "sí": true}

var rejectTokens = map[string]bool{"❌": true, "reject": true, "no": true, "skip": true}

// Decision is an approval or rejection replied to a draft message
type Decision struct {
	MessageID int64 // id of the draft message replied to
	Approved  bool
	UpdateID  int64
}

// PollResult holds decisions found since the cursor and the new cursor value
type PollResult struct {
	Decisions []Decision
	Cursor    int64
}

// Bot talks to the Telegram Bot API
type Bot struct {
	client     *http.Client
	pollClient *http.Client
	endpoint   string
	token      string
	chatID     int64  // numeric chat id, zero when the chat is set by channel name
	channel    string // channel username without @
	retries    int
	retryDelay time.Duration
}

// NewBot creates a bot client from config. Chat id is either numeric or a @channel name.
func NewBot(cfg config.TelegramConfig) *Bot {
	b := &Bot{
		client:     &http.Client{Timeout: cfg.Timeout},
		pollClient: &http.Client{Timeout: cfg.Timeout + longPollSeconds*time.Second},
		endpoint:   strings.TrimRight(cfg.APIURL, "/") + "/bot%s/%s",
		token:      cfg.Token,
		retries:    3,
		retryDelay: 500 * time.Millisecond,
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(cfg.ChatID), 10, 64); err == nil {
		b.chatID = id
	} else {
		b.channel = strings.TrimPrefix(strings.TrimSpace(cfg.ChatID), "@")
	}
	return b
}

// SendDraft posts the draft for review and returns the message id
func (b *Bot) SendDraft(ctx context.Context, d domain.Draft) (int64, error) {
	msg, err := b.api(ctx, b.client).Send(b.message(FormatDraft(d)))
	if err != nil {
		return 0, fmt.Errorf("send draft: %w", err)
	}
	lgr.Printf("[INFO] sent draft to telegram (message_id=%d): %s", msg.MessageID, d.NewsTitle)
	return int64(msg.MessageID), nil
}

// Notify sends a status message to the chat
func (b *Bot) Notify(ctx context.Context, text string) error {
	if _, err := b.api(ctx, b.client).Send(b.message(html.EscapeString(text))); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// Poll reads updates after cursor and returns recognized decisions.
// The returned cursor is the highest update id seen and never below the input cursor.
func (b *Bot) Poll(ctx context.Context, cursor int64) (PollResult, error) {
	updCfg := tgbotapi.NewUpdate(int(cursor + 1))
	updCfg.Timeout = longPollSeconds
	api := b.api(ctx, b.pollClient)

	var updates []tgbotapi.Update
	retrier := repeater.NewBackoff(b.retries, b.retryDelay, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		var err error
		updates, err = api.GetUpdates(updCfg)
		return err
	})
	if err != nil {
		return PollResult{Cursor: cursor}, fmt.Errorf("get updates: %w", err)
	}

	res := PollResult{Cursor: cursor}
	for _, u := range updates {
		if id := int64(u.UpdateID); id > res.Cursor {
			res.Cursor = id
		}
		if d, ok := b.decision(u); ok {
			res.Decisions = append(res.Decisions, d)
		}
	}
	lgr.Printf("[INFO] found %d decisions from %d updates", len(res.Decisions), len(updates))
	return res, nil
}

// decision extracts a decision from an update if it is a recognized reply in our chat
func (b *Bot) decision(u tgbotapi.Update) (Decision, bool) {
	msg := u.Message
	if msg == nil || !b.ownChat(msg.Chat) || msg.ReplyToMessage == nil {
		return Decision{}, false
	}
	approved, ok := ParseDecision(msg.Text)
	if !ok {
		return Decision{}, false
	}
	return Decision{MessageID: int64(msg.ReplyToMessage.MessageID), Approved: approved, UpdateID: int64(u.UpdateID)}, true
}

func (b *Bot) ownChat(chat *tgbotapi.Chat) bool {
	switch {
	case chat == nil:
		return false
	case b.chatID != 0:
		return chat.ID == b.chatID
	default:
		return b.channel != "" && strings.EqualFold(chat.UserName, b.channel)
	}
}

// message makes an html message for the configured chat
func (b *Bot) message(text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(b.chatID, text)
	if b.chatID == 0 {
		msg.ChannelUsername = "@" + b.channel
	}
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

// api makes a bot api client bound to ctx. It is built directly to skip the getMe call of the constructors.
func (b *Bot) api(ctx context.Context, client *http.Client) *tgbotapi.BotAPI {
	api := &tgbotapi.BotAPI{Token: b.token, Client: ctxClient{ctx: ctx, client: client}}
	api.SetAPIEndpoint(b.endpoint)
	return api
}

// ctxClient attaches the caller's context to requests, the bot api builds them without one
type ctxClient struct {
	ctx    context.Context
	client *http.Client
}

func (c ctxClient) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req.WithContext(c.ctx))
	if err != nil {
		// the url carries the token, drop it from the error
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("telegram request: %w", err)
	}
	return resp, nil
}

// ParseDecision matches reply text against approve and reject tokens, exact and case-insensitive
func ParseDecision(text string) (approved, ok bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case t == "":
		return false, false
	case approveTokens[t]:
		return true, true
	case rejectTokens[t]:
		return false, true
	default:
		return false, false
	}
}

// FormatDraft renders the review message in Telegram HTML
func FormatDraft(d domain.Draft) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s <b>%s</b> | Score: %.2f\n\n", d.Category.Emoji(), strings.ToUpper(string(d.Category)), d.Score))
	sb.WriteString(html.EscapeString(d.Text))
	if len(d.Thread) > 0 {
		sb.WriteString("\n\n🧵 Thread:")
		for i, part := range d.Thread {
			sb.WriteString(fmt.Sprintf("\n%d/%d %s", i+1, len(d.Thread), html.EscapeString(part)))
		}
	}
	sb.WriteString(fmt.Sprintf("\n\n📰 %s\n🔗 %s\n\n", html.EscapeString(d.NewsTitle), d.NewsURL))
	sb.WriteString("<i>Reply ✅ to approve or ❌ to reject</i>")
	return sb.String()
}
