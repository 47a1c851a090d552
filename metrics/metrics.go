package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "capsule_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Capsule generation
	CapsulesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capsule_generated_total",
			Help: "Total number of capsules generated, by period",
		},
		[]string{"quarter"},
	)

	PlaceholderItems = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "capsule_placeholder_items_total",
			Help: "Capsule slots filled with a placeholder because the catalog had no candidates",
		},
	)

	TemplateFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "capsule_template_fallbacks_total",
			Help: "Times the built-in default templates were used instead of the template file",
		},
	)

	// Item analysis
	Verdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capsule_item_verdicts_total",
			Help: "Purchase verdicts issued, by verdict",
		},
		[]string{"verdict"},
	)

	AlternativesFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "capsule_alternatives_fallbacks_total",
			Help: "Alternatives lookups that failed and returned the static suggestion",
		},
	)

	// Cache
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "capsule_cache_hits_total",
			Help: "Capsule cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "capsule_cache_misses_total",
			Help: "Capsule cache misses",
		},
	)

	// Lookbook export
	LookbookRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capsule_lookbook_renders_total",
			Help: "Lookbook exports, by format and outcome",
		},
		[]string{"format", "outcome"},
	)
)

// ObserveHTTP records one finished HTTP request
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// CacheStatsFunc reports the in-process cache counters at scrape time
type CacheStatsFunc func() (hits, misses, evictions, keys int64)

// RegisterCacheStats exposes in-process cache counters as gauges read on every scrape
func RegisterCacheStats(reg prometheus.Registerer, stats CacheStatsFunc) error {
	gauges := []struct {
		name string
		help string
		pick func(hits, misses, evictions, keys int64) int64
	}{
		{"capsule_memory_cache_hits", "In-process cache hits since start", func(h, _, _, _ int64) int64 { return h }},
		{"capsule_memory_cache_misses", "In-process cache misses since start", func(_, m, _, _ int64) int64 { return m }},
		{"capsule_memory_cache_evictions", "Expired entries dropped by the in-process cache", func(_, _, e, _ int64) int64 { return e }},
		{"capsule_memory_cache_keys", "Entries currently held by the in-process cache", func(_, _, _, k int64) int64 { return k }},
	}

	for _, g := range gauges {
		pick := g.pick
		gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: g.name, Help: g.help}, func() float64 {
			return float64(pick(stats()))
		})
		if err := reg.Register(gauge); err != nil {
			return fmt.Errorf("failed to register %s: %w", g.name, err)
		}
	}
	return nil
}
