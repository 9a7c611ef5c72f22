package reliability

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Temi-Tory/IPM-Working-sub011/belief"
	"github.com/Temi-Tory/IPM-Working-sub011/cache"
	"github.com/Temi-Tory/IPM-Working-sub011/diamond"
	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
	"github.com/Temi-Tory/IPM-Working-sub011/metrics"
	"github.com/Temi-Tory/IPM-Working-sub011/topology"
)

// defaultCacheSize bounds the Memoization Cache when the caller does
// not supply one; 0 would mean unbounded, which is fine for the small
// graphs in the test corpus but not a safe library default.
const defaultCacheSize = 4096

// Option configures Propagate. The zero value of every field in the
// underlying config is a safe default.
type Option func(*config)

type config struct {
	cacheSize   int
	concurrency int
	logger      zerolog.Logger
	recorder    *metrics.Recorder
}

func defaultConfig() config {
	return config{cacheSize: defaultCacheSize, logger: zerolog.Nop()}
}

// WithCacheSize bounds the Memoization Cache's LRU capacity. 0 means
// unbounded.
func WithCacheSize(n int) Option {
	return func(c *config) { c.cacheSize = n }
}

// WithConcurrency bounds per-iteration-set and per-cutset-state
// goroutine fan-out. <= 0 leaves it to errgroup's default (unbounded).
func WithConcurrency(n int) Option {
	return func(c *config) { c.concurrency = n }
}

// WithLogger sets the zerolog.Logger run events are recorded to.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics attaches a Prometheus recorder. A nil Recorder (the
// default) disables instrumentation.
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *config) { c.recorder = r }
}

// Propagate is the module's single entry point: build the Topology,
// identify diamonds, and run the Belief Engine over g, returning the
// per-node reachability belief. It is the only function loaders and
// cmd/reliacli are meant to call — none of them import topology,
// diamond, cutset, or belief directly.
func Propagate(ctx context.Context, g *graphmodel.Graph, opts ...Option) (belief.Map, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	start := time.Now()
	log := cfg.logger.With().Str("component", "reliability.Propagate").Logger()
	log.Info().Int("nodes", g.NodeCount()).Msg("propagation run starting")

	topo, err := topology.Analyze(g)
	if err != nil {
		log.Error().Err(err).Msg("topology analysis failed")

		return nil, err
	}

	diamonds, err := diamond.FindAll(g, topo, nil)
	if err != nil {
		log.Error().Err(err).Msg("diamond identification failed")

		return nil, err
	}

	priors := make(map[graphmodel.NodeID]float64, g.NodeCount())
	for _, n := range g.Nodes() {
		p, _ := g.NodePrior(n)
		priors[n] = p
	}

	c := cache.New[belief.Map](cfg.cacheSize, cfg.recorder)

	result, err := belief.Propagate(ctx, g, topo, diamonds, priors, belief.Options{
		Cache:       c,
		Concurrency: cfg.concurrency,
		Logger:      log,
	})
	if err != nil {
		log.Error().Err(err).Int("cacheEntries", c.Len()).Msg("belief propagation failed")

		return nil, err
	}

	elapsed := time.Since(start)
	cfg.recorder.ObservePropagate(elapsed)
	log.Info().Dur("elapsed", elapsed).Int("cacheEntries", c.Len()).Msg("propagation run complete")

	return result, nil
}
