package bot

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/BearBump/TrackChat/internal/broker/messages"
	"github.com/BearBump/TrackChat/internal/integrations/telegram"
	"github.com/BearBump/TrackChat/internal/render"
	"github.com/BearBump/TrackChat/internal/services/tracker"
)

type Transport interface {
	GetUpdates(ctx context.Context, offset int64) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type Tracker interface {
	Track(ctx context.Context, text string) []tracker.Reply
}

type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Bot is the chat front end: it polls the transport for updates, routes
// commands, and forwards plain text to the tracker. When mirroring is on,
// every exchange from a non-admin chat is reported to the admin chat and,
// if an audit producer is wired, published to the mirror topic.
type Bot struct {
	transport Transport
	tracker   Tracker
	producer  Producer
	topic     string

	adminChatID int64
	mirror      atomic.Bool
}

func New(t Transport, svc Tracker, adminChatID int64) *Bot {
	b := &Bot{transport: t, tracker: svc, adminChatID: adminChatID}
	b.mirror.Store(true)
	return b
}

func (b *Bot) WithMirror(on bool) *Bot {
	b.mirror.Store(on)
	return b
}

func (b *Bot) WithAuditProducer(p Producer, topic string) *Bot {
	b.producer = p
	b.topic = topic
	return b
}

// Mirroring reports whether request mirroring is currently enabled.
func (b *Bot) Mirroring() bool {
	return b.mirror.Load()
}

// Run polls for updates until the context is canceled. A failing poll is
// logged and retried after a short pause so that transient transport errors
// do not kill the bot.
func (b *Bot) Run(ctx context.Context) error {
	var offset int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		updates, err := b.transport.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("get updates", "error", err.Error())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
			continue
		}
		for _, u := range updates {
			if u.ID >= offset {
				offset = u.ID + 1
			}
			b.handleUpdate(ctx, u)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, u telegram.Update) {
	text := strings.TrimSpace(u.Text)
	switch {
	case text == "":
	case strings.HasPrefix(text, "/start"):
		b.send(ctx, u.ChatID, render.StartText())
	case strings.HasPrefix(text, "/echo"):
		b.handleEcho(ctx, u)
	case strings.HasPrefix(text, "/"):
		// Unknown command, ignore.
	default:
		b.handleTrack(ctx, u)
	}
}

// handleEcho toggles mirroring. Admin-only; any argument other than
// true/false is a no-op.
func (b *Bot) handleEcho(ctx context.Context, u telegram.Update) {
	if u.ChatID != b.adminChatID {
		return
	}
	arg := ""
	if fields := strings.Fields(u.Text); len(fields) > 1 {
		arg = fields[1]
	}
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "true":
		b.mirror.Store(true)
		b.send(ctx, u.ChatID, "Requests will be now mirrored.")
	case "false":
		b.mirror.Store(false)
		b.send(ctx, u.ChatID, "Requests will not be mirrored anymore.")
	}
}

func (b *Bot) handleTrack(ctx context.Context, u telegram.Update) {
	for _, r := range b.tracker.Track(ctx, u.Text) {
		b.send(ctx, u.ChatID, r.Text)
		// Запросы из админ-чата не зеркалим обратно в него же.
		if b.mirror.Load() && u.ChatID != b.adminChatID {
			b.mirrorReply(ctx, u, r)
		}
	}
}

func (b *Bot) mirrorReply(ctx context.Context, u telegram.Update, r tracker.Reply) {
	b.send(ctx, b.adminChatID, render.ReportText(r.ID, r.Text, u.Username))

	if b.producer == nil {
		return
	}
	msg := messages.RequestMirrored{
		Identifier: r.ID,
		Reply:      r.Text,
		Username:   u.Username,
		ChatID:     u.ChatID,
		At:         time.Now().UTC(),
	}
	value, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal mirror message", "id", r.ID, "error", err.Error())
		return
	}
	if err := b.producer.Publish(ctx, b.topic, []byte(r.ID), value); err != nil {
		slog.Error("publish mirror message", "id", r.ID, "error", err.Error())
	}
}

func (b *Bot) send(ctx context.Context, chatID int64, text string) {
	if err := b.transport.SendMessage(ctx, chatID, text); err != nil {
		slog.Error("send message", "chat_id", chatID, "error", err.Error())
	}
}
