package montecarlo

import (
	"context"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Temi-Tory/IPM-Working-sub011/belief"
	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
)

// Estimate runs trials independent Monte-Carlo samples of graph
// reachability and returns the per-node fraction of trials in which
// that node ended up alive-and-reachable — sources count themselves as
// reached iff their own coin lands active; every other node counts iff
// it is in the surviving-edge BFS frontier from an active source.
//
// Trials are split evenly across worker goroutines (bounded by
// WithConcurrency, default runtime.GOMAXPROCS(0)); each worker
// accumulates into a goroutine-local counts map, so no synchronization
// is needed until the final, sequential merge.
func Estimate(ctx context.Context, g *graphmodel.Graph, trials int, opts ...Option) (belief.Map, error) {
	if trials <= 0 {
		return nil, ErrInvalidTrials
	}

	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	workers := cfg.concurrency
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > trials {
		workers = trials
	}
	if workers < 1 {
		workers = 1
	}

	nodes := g.Nodes()
	edges := g.Edges()
	sources := g.Sources()

	share := trials / workers
	remainder := trials % workers

	results := make([]map[graphmodel.NodeID]int, workers)

	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		n := share
		if w < remainder {
			n++
		}
		w := w
		eg.Go(func() error {
			local := make(map[graphmodel.NodeID]int, len(nodes))
			for i := 0; i < n; i++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				runTrial(g, nodes, edges, sources, local)
			}
			results[w] = local

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	totals := make(map[graphmodel.NodeID]int, len(nodes))
	for _, r := range results {
		for n, c := range r {
			totals[n] += c
		}
	}

	out := make(belief.Map, len(nodes))
	for _, n := range nodes {
		out[n] = float64(totals[n]) / float64(trials)
	}

	return out, nil
}

func runTrial(g *graphmodel.Graph, nodes []graphmodel.NodeID, edges []graphmodel.EdgeID, sources map[graphmodel.NodeID]struct{}, local map[graphmodel.NodeID]int) {
	active := make(map[graphmodel.NodeID]bool, len(nodes))
	for _, n := range nodes {
		prior, _ := g.NodePrior(n)
		active[n] = rand.Float64() < prior
	}

	adj := make(map[graphmodel.NodeID][]graphmodel.NodeID)
	for _, e := range edges {
		if !active[e.Src] || !active[e.Dst] {
			continue
		}
		prob, _ := g.EdgeProbability(e)
		if rand.Float64() < prob {
			adj[e.Src] = append(adj[e.Src], e.Dst)
		}
	}

	reached := make(map[graphmodel.NodeID]bool, len(nodes))
	queue := make([]graphmodel.NodeID, 0, len(nodes))
	for s := range sources {
		if active[s] {
			reached[s] = true
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, c := range adj[n] {
			if !reached[c] {
				reached[c] = true
				queue = append(queue, c)
			}
		}
	}

	for _, n := range nodes {
		if _, isSource := sources[n]; isSource {
			if active[n] {
				local[n]++
			}

			continue
		}
		if reached[n] {
			local[n]++
		}
	}
}
