package belief

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Temi-Tory/IPM-Working-sub011/cache"
	"github.com/Temi-Tory/IPM-Working-sub011/diamond"
	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
	"github.com/Temi-Tory/IPM-Working-sub011/topology"
)

// Options configures both Propagate and ResolveJoin. The zero value is
// usable: a nil Cache disables memoization (every conditioning
// sub-problem is recomputed), Concurrency <= 0 leaves the per-iteration-set
// and per-cutset-state goroutine fan-out unbounded (errgroup.SetLimit(-1)),
// and a zero Logger (zerolog.Logger{}) writes nowhere.
type Options struct {
	Cache       *cache.Cache[Map]
	Concurrency int
	Logger      zerolog.Logger
}

func (o Options) limit() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}

	return -1
}

// Propagate is the Belief Engine: it walks g's nodes one iteration set at
// a time, in topological order, computing each node's belief from its
// already-finalized parents and, for nodes that sit at the join of one
// or more diamonds, from the Conditioning Solver. priors supplies each
// node's survival prior explicitly rather than reading graphmodel.Graph.NodePrior
// directly, so the Conditioning Solver can override a cutset node's
// prior per enumerated state without mutating g itself.
//
// There is a hard barrier between iteration sets: belief values computed
// within a set are only published to the shared result map after every
// goroutine in that set has returned, so no node can ever observe a
// same-level sibling's belief, and no node can observe a parent's belief
// before it is finalized.
func Propagate(ctx context.Context, g *graphmodel.Graph, topo *topology.Topology, diamonds map[graphmodel.NodeID]diamond.AtJoin, priors map[graphmodel.NodeID]float64, opts Options) (Map, error) {
	total := 0
	for _, set := range topo.Sets {
		total += len(set)
	}
	result := make(Map, total)

	for _, set := range topo.Sets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		type computed struct {
			id  graphmodel.NodeID
			val float64
		}
		out := make([]computed, len(set))

		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(opts.limit())

		for i, v := range set {
			i, v := i, v
			eg.Go(func() error {
				val, err := computeNodeBelief(egCtx, g, topo, diamonds, priors, result, v, opts)
				if err != nil {
					return err
				}
				out[i] = computed{id: v, val: val}

				return nil
			})
		}

		if err := eg.Wait(); err != nil {
			return nil, err
		}

		for _, c := range out {
			result[c.id] = c.val
		}
	}

	return result, nil
}

func computeNodeBelief(ctx context.Context, g *graphmodel.Graph, topo *topology.Topology, diamonds map[graphmodel.NodeID]diamond.AtJoin, priors map[graphmodel.NodeID]float64, finalized Map, v graphmodel.NodeID, opts Options) (float64, error) {
	prior, ok := priors[v]
	if !ok {
		prior, ok = g.NodePrior(v)
		if !ok {
			return 0, ErrMissingParentBelief
		}
	}

	parents := g.Parents(v)
	if len(parents) == 0 {
		return prior, nil
	}

	var contributions []float64

	atJoin, hasEntry := diamonds[v]
	if hasEntry && len(atJoin.Diamonds) > 0 {
		for _, d := range atJoin.Diamonds {
			val, err := ResolveJoin(ctx, g, d, v, finalized, priors, opts)
			if err != nil {
				return 0, err
			}
			contributions = append(contributions, val)
		}

		terms, err := parentTerms(g, finalized, atJoin.NonDiamondParents, v)
		if err != nil {
			return 0, err
		}
		contributions = append(contributions, terms...)
	} else {
		terms, err := parentTerms(g, finalized, parents, v)
		if err != nil {
			return 0, err
		}
		contributions = append(contributions, terms...)
	}

	return prior * combine(contributions), nil
}

func parentTerms(g *graphmodel.Graph, finalized Map, parents map[graphmodel.NodeID]struct{}, v graphmodel.NodeID) ([]float64, error) {
	ids := make([]graphmodel.NodeID, 0, len(parents))
	for p := range parents {
		ids = append(ids, p)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	terms := make([]float64, 0, len(ids))
	for _, p := range ids {
		pBelief, ok := finalized[p]
		if !ok {
			return nil, ErrMissingParentBelief
		}
		prob, ok := g.EdgeProbability(graphmodel.EdgeID{Src: p, Dst: v})
		if !ok {
			return nil, ErrMissingEdgeProbability
		}
		terms = append(terms, pBelief*prob)
	}

	return terms, nil
}

// combine applies inclusion-exclusion over independent contributions:
// the probability that at least one fires. Expanded rather than the
// compact 1-Π(1-cᵢ) form so the arithmetic matches spec worked examples
// term for term; both forms are algebraically identical.
func combine(contributions []float64) float64 {
	switch len(contributions) {
	case 0:
		return 0
	case 1:
		return contributions[0]
	}

	n := len(contributions)
	total := 0.0
	for mask := 1; mask < (1 << n); mask++ {
		product := 1.0
		bits := 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				product *= contributions[i]
				bits++
			}
		}
		if bits%2 == 1 {
			total += product
		} else {
			total -= product
		}
	}

	return total
}
