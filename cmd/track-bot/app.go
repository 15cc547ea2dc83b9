package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BearBump/TrackChat/config"
	"github.com/BearBump/TrackChat/internal/bot"
	"github.com/BearBump/TrackChat/internal/broker/kafka"
	"github.com/BearBump/TrackChat/internal/cache"
	"github.com/BearBump/TrackChat/internal/cache/memcache"
	"github.com/BearBump/TrackChat/internal/cache/rediscache"
	"github.com/BearBump/TrackChat/internal/integrations/maersk"
	"github.com/BearBump/TrackChat/internal/integrations/telegram"
	"github.com/BearBump/TrackChat/internal/services/tracker"
)

type botFactories struct {
	newCache     func(cfg *config.Config) cache.TextCache
	newFetcher   func(cfg *config.Config) tracker.Fetcher
	newTransport func(cfg *config.Config, token string) bot.Transport
	newProducer  func(cfg *config.Config) bot.Producer
}

func defaultBotFactories() botFactories {
	return botFactories{
		newCache: func(cfg *config.Config) cache.TextCache {
			if cfg.Cache.Backend == "redis" {
				return rediscache.New(fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port))
			}
			return memcache.New(cfg.Cache.Capacity)
		},
		newFetcher: func(cfg *config.Config) tracker.Fetcher {
			timeout := time.Duration(cfg.Maersk.FetchTimeoutSeconds) * time.Second
			return maersk.New(cfg.Maersk.BaseURL, timeout, cfg.Maersk.MaxInFlight)
		},
		newTransport: func(cfg *config.Config, token string) bot.Transport {
			pollTimeout := time.Duration(cfg.Telegram.PollTimeoutSeconds) * time.Second
			return telegram.New(cfg.Telegram.APIBaseURL, token, pollTimeout)
		},
		newProducer: func(cfg *config.Config) bot.Producer {
			// Аудит в Kafka опционален: без брокера в конфиге бот работает без него.
			if cfg.Kafka.Host == "" {
				return nil
			}
			return kafka.NewProducer([]string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)})
		},
	}
}

func RunTrackBot(ctx context.Context, cfg *config.Config, token string, f botFactories) error {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	topic := cfg.Kafka.MirrorTopicName
	if topic == "" {
		topic = "request.mirrored"
	}

	svc := tracker.New(f.newCache(cfg), f.newFetcher(cfg), ttl)

	b := bot.New(f.newTransport(cfg, token), svc, cfg.Bot.AdminChatID)
	if cfg.Bot.MirrorByDefault != nil {
		b.WithMirror(*cfg.Bot.MirrorByDefault)
	}
	if p := f.newProducer(cfg); p != nil {
		b.WithAuditProducer(p, topic)
	}

	httpErr := make(chan error, 1)
	go func() {
		httpErr <- runOpsServer(ctx, opsOpts{
			httpAddr: cfg.Bot.HTTPAddr,
			svc:      svc,
			bot:      b,
			cfg:      cfg,
		})
	}()

	botErr := make(chan error, 1)
	go func() {
		slog.Info("bot started", "admin_chat_id", cfg.Bot.AdminChatID, "mirroring", b.Mirroring())
		botErr <- b.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-httpErr:
		return err
	case err := <-botErr:
		return err
	}
}
