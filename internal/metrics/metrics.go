// Package metrics defines the Prometheus metrics exported by the bot. It is
// the single source of truth for metric names, labels, and help strings.
// Metrics register themselves on the default registry at import time and are
// served by the ops HTTP server under /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trackchat"

// CacheLookupsTotal counts result-cache lookups by outcome ("hit" / "miss").
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of result cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ParseOutcomesTotal counts parsed API responses by classification:
// "shipment" for a structured result, or the error class for everything else
// ("not_found", "bad_id", "unavailable").
var ParseOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parse_outcomes_total",
		Help:      "Total number of parsed tracking responses, labelled by outcome.",
	},
	[]string{"outcome"},
)

// FetchBatchDuration measures how long one batch fetch takes end-to-end,
// including the slowest in-flight request or its timeout.
var FetchBatchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_batch_duration_seconds",
		Help:      "Duration of batched tracking API fetches.",
		Buckets:   prometheus.DefBuckets,
	},
)
