// Package metrics wires the Memoization Cache and top-level
// reliability.Propagate runs into Prometheus counters and histograms, the
// way the pack's server-shaped repositories instrument their own hot
// paths with prometheus/client_golang. It is purely an observability
// adapter: no core package depends on it for correctness. A Recorder is
// attached through reliability.WithMetrics; cmd/reliacli does not attach
// one.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder bundles the counters and histograms a single propagation run
// reports into. A nil *Recorder is safe to call methods on — every
// method short-circuits when r is nil, so library callers that never
// construct a Recorder pay no instrumentation cost and need no registry.
type Recorder struct {
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	propagations prometheus.Counter
	duration     prometheus.Histogram
}

// New registers a fresh set of collectors against reg and returns a
// Recorder wrapping them. Pass prometheus.NewRegistry() for an isolated
// registry (tests, multiple instances in one process) or
// prometheus.DefaultRegisterer to expose via the default /metrics
// handler.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reliability_cache_hits_total",
			Help: "Memoization cache hits across all conditioning sub-problems.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reliability_cache_misses_total",
			Help: "Memoization cache misses across all conditioning sub-problems.",
		}),
		propagations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reliability_propagate_runs_total",
			Help: "Completed top-level Propagate invocations.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reliability_propagate_duration_seconds",
			Help:    "Wall-clock duration of top-level Propagate invocations.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(r.cacheHits, r.cacheMisses, r.propagations, r.duration)

	return r
}

// CacheHit increments the cache-hit counter. Satisfies cache.Recorder.
func (r *Recorder) CacheHit() {
	if r == nil {
		return
	}
	r.cacheHits.Inc()
}

// CacheMiss increments the cache-miss counter. Satisfies cache.Recorder.
func (r *Recorder) CacheMiss() {
	if r == nil {
		return
	}
	r.cacheMisses.Inc()
}

// ObservePropagate records one completed Propagate run and its duration.
func (r *Recorder) ObservePropagate(d time.Duration) {
	if r == nil {
		return
	}
	r.propagations.Inc()
	r.duration.Observe(d.Seconds())
}
