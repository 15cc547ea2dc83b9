package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultBaseURL = "https://api.telegram.org"

// Update is one incoming chat message, reduced to the fields the bot needs.
type Update struct {
	ID       int64
	ChatID   int64
	Username string
	Text     string
}

// Client is a minimal Telegram Bot API client: long-poll getUpdates plus
// sendMessage. Replies are sent with HTML parse mode.
type Client struct {
	baseURL     string
	token       string
	pollTimeout time.Duration
	httpc       *http.Client
}

func New(baseURL, token string, pollTimeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if pollTimeout <= 0 {
		pollTimeout = 30 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		pollTimeout: pollTimeout,
		httpc: &http.Client{
			// Долгий poll держит соединение открытым до pollTimeout.
			Timeout: pollTimeout + 10*time.Second,
		},
	}
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type updatePayload struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		From *struct {
			Username string `json:"username"`
		} `json:"from"`
		Chat struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

// GetUpdates long-polls for new messages starting at offset. Updates without
// message text (edits, stickers, joins) are skipped.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	q := url.Values{}
	q.Set("offset", strconv.FormatInt(offset, 10))
	q.Set("timeout", strconv.Itoa(int(c.pollTimeout.Seconds())))
	q.Set("allowed_updates", `["message"]`)

	raw, err := c.call(ctx, "getUpdates", q)
	if err != nil {
		return nil, err
	}

	var payload []updatePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrap(err, "decode updates")
	}

	out := make([]Update, 0, len(payload))
	for _, u := range payload {
		if u.Message == nil || u.Message.Text == "" {
			out = append(out, Update{ID: u.UpdateID})
			continue
		}
		username := u.Message.Chat.Username
		if username == "" && u.Message.From != nil {
			username = u.Message.From.Username
		}
		out = append(out, Update{
			ID:       u.UpdateID,
			ChatID:   u.Message.Chat.ID,
			Username: username,
			Text:     u.Message.Text,
		})
	}
	return out, nil
}

// SendMessage posts text to a chat with HTML parse mode.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	q := url.Values{}
	q.Set("chat_id", strconv.FormatInt(chatID, 10))
	q.Set("text", text)
	q.Set("parse_mode", "HTML")

	_, err := c.call(ctx, "sendMessage", q)
	return err
}

func (c *Client) call(ctx context.Context, method string, params url.Values) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	var r apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if !r.OK {
		return nil, fmt.Errorf("telegram %s: %s (http %d)", method, r.Description, resp.StatusCode)
	}
	return r.Result, nil
}
