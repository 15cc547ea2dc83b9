package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/BearBump/TrackChat/internal/cache"
	"github.com/BearBump/TrackChat/internal/ident"
	"github.com/BearBump/TrackChat/internal/integrations/maersk"
	"github.com/BearBump/TrackChat/internal/metrics"
	"github.com/BearBump/TrackChat/internal/render"
)

type Fetcher interface {
	FetchBatch(ctx context.Context, ids []string) []maersk.Response
}

// Reply is the rendered answer for one extracted identifier.
type Reply struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Service runs the tracking pipeline for incoming messages: extract
// identifiers, look up the cache, batch-fetch the rest, parse, render and
// cache the result. Replies come back in extraction order.
type Service struct {
	cache   cache.TextCache
	fetcher Fetcher
	ttl     time.Duration

	totalRequests    atomic.Int64
	totalIdentifiers atomic.Int64
	cacheHits        atomic.Int64
	cacheMisses      atomic.Int64
	fetchErrors      atomic.Int64
}

func New(c cache.TextCache, f Fetcher, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{cache: c, fetcher: f, ttl: ttl}
}

// Track handles one incoming message and returns one reply per extracted
// identifier. Error classifications are cached exactly like successful
// renders, so a transient API error stays sticky for the full TTL.
func (s *Service) Track(ctx context.Context, text string) []Reply {
	ids := ident.Extract(text)
	if len(ids) == 0 {
		return nil
	}
	s.totalRequests.Add(1)
	s.totalIdentifiers.Add(int64(len(ids)))

	replies := make(map[string]string, len(ids))
	var missing []string
	for _, id := range ids {
		txt, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			// Cache backend trouble degrades to a miss.
			slog.Warn("cache get", "id", id, "error", err.Error())
		}
		if ok {
			s.cacheHits.Add(1)
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			replies[id] = txt
			continue
		}
		s.cacheMisses.Add(1)
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		start := time.Now()
		responses := s.fetcher.FetchBatch(ctx, missing)
		metrics.FetchBatchDuration.Observe(time.Since(start).Seconds())

		for i, resp := range responses {
			id := missing[i]
			if resp.Err != nil {
				s.fetchErrors.Add(1)
				slog.Warn("fetch tracking", "id", id, "error", resp.Err.Error())
			}

			out := maersk.Parse(resp)
			var txt string
			if out.Shipment != nil {
				txt = render.ShipmentText(out.Shipment)
				metrics.ParseOutcomesTotal.WithLabelValues("shipment").Inc()
			} else {
				txt = fmt.Sprintf("%s - %s", id, out.Message)
				metrics.ParseOutcomesTotal.WithLabelValues(outcomeLabel(out.Message)).Inc()
			}

			if err := s.cache.Set(ctx, id, txt, s.ttl); err != nil {
				slog.Warn("cache set", "id", id, "error", err.Error())
			}
			replies[id] = txt
		}
	}

	out := make([]Reply, 0, len(ids))
	for _, id := range ids {
		out = append(out, Reply{ID: id, Text: replies[id]})
	}
	return out
}

type Stats struct {
	TotalRequests    int64 `json:"totalRequests"`
	TotalIdentifiers int64 `json:"totalIdentifiers"`
	CacheHits        int64 `json:"cacheHits"`
	CacheMisses      int64 `json:"cacheMisses"`
	FetchErrors      int64 `json:"fetchErrors"`
}

func (s *Service) Stats() Stats {
	return Stats{
		TotalRequests:    s.totalRequests.Load(),
		TotalIdentifiers: s.totalIdentifiers.Load(),
		CacheHits:        s.cacheHits.Load(),
		CacheMisses:      s.cacheMisses.Load(),
		FetchErrors:      s.fetchErrors.Load(),
	}
}

func outcomeLabel(msg string) string {
	switch msg {
	case maersk.MsgNotFound:
		return "not_found"
	case maersk.MsgBadID:
		return "bad_id"
	default:
		return "unavailable"
	}
}
