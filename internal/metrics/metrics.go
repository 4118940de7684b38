// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/multierr"
)

var (
	// APILatency measures HTTP request latencies by route pattern.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roadmap_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Moves counts board drops by outcome (changed|noop|error).
	Moves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roadmap_moves_total",
			Help: "Total number of initiative drops on the board",
		},
		[]string{"granularity", "result"},
	)
)

// Move outcomes used as the "result" label of Moves.
const (
	MoveChanged = "changed"
	MoveNoop    = "noop"
	MoveError   = "error"
)

// CountFunc reports how many records a store holds.
type CountFunc func(ctx context.Context) (int, error)

// scrapeTimeout bounds each store count taken during a scrape.
const scrapeTimeout = 2 * time.Second

// RegisterStoreGauges registers roadmap_initiatives and roadmap_teams on reg.
// Both are read from the store on every scrape, so replicas sharing one
// database report the same values. A failed count is logged and exported
// as NaN.
func RegisterStoreGauges(reg prometheus.Registerer, initiatives, teams CountFunc) error {
	return multierr.Combine(
		reg.Register(storeGauge("roadmap_initiatives", "Number of stored initiatives", initiatives)),
		reg.Register(storeGauge("roadmap_teams", "Number of stored teams", teams)),
	)
}

func storeGauge(name, help string, count CountFunc) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
		ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
		defer cancel()
		n, err := count(ctx)
		if err != nil {
			slog.Default().WarnContext(ctx, "store count for metrics failed", "metric", name, "error", err)
			return math.NaN()
		}
		return float64(n)
	})
}
