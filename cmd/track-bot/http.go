package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/BearBump/TrackChat/config"
	"github.com/BearBump/TrackChat/internal/bot"
	"github.com/BearBump/TrackChat/internal/services/tracker"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type opsOpts struct {
	httpAddr string
	onListen func(httpAddr string)

	svc *tracker.Service
	bot *bot.Bot
	cfg *config.Config
}

func runOpsServer(ctx context.Context, opts opsOpts) error {
	if opts.httpAddr == "" {
		opts.httpAddr = ":8082"
	}

	lis, err := net.Listen("tcp", opts.httpAddr)
	if err != nil {
		return err
	}
	if opts.onListen != nil {
		opts.onListen(lis.Addr().String())
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	})

	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.svc == nil {
			_, _ = w.Write([]byte(`{"error":"tracker not wired"}`))
			return
		}
		out := map[string]any{
			"tracker": opts.svc.Stats(),
		}
		if opts.bot != nil {
			out["mirroring"] = opts.bot.Mirroring()
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	r.Get("/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.cfg == nil {
			_, _ = w.Write([]byte(`{"error":"config not wired"}`))
			return
		}
		// Avoid dumping secrets; show only operational settings.
		out := map[string]any{
			"cacheBackend":        opts.cfg.Cache.Backend,
			"cacheCapacity":       opts.cfg.Cache.Capacity,
			"cacheTTLSeconds":     opts.cfg.Cache.TTLSeconds,
			"fetchTimeoutSeconds": opts.cfg.Maersk.FetchTimeoutSeconds,
			"maxInFlight":         opts.cfg.Maersk.MaxInFlight,
			"pollTimeoutSeconds":  opts.cfg.Telegram.PollTimeoutSeconds,
			"adminChatId":         opts.cfg.Bot.AdminChatID,
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		_ = lis.Close()
	}()

	return srv.Serve(lis)
}
