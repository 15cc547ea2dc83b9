package cache

import (
	"context"
	"time"
)

// TextCache stores rendered reply text keyed by shipment identifier.
// Implementations must be safe for concurrent use.
type TextCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, text string, ttl time.Duration) error
}
