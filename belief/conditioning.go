package belief

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Temi-Tory/IPM-Working-sub011/cache"
	"github.com/Temi-Tory/IPM-Working-sub011/cutset"
	"github.com/Temi-Tory/IPM-Working-sub011/diamond"
	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
	"github.com/Temi-Tory/IPM-Working-sub011/topology"
)

// ResolveJoin is the Conditioning Solver for a single Diamond d rooted
// (eventually) at join. It finds d's cutset, builds the conditioned
// sub-DAG once, and enumerates every 2^k assignment of the cutset's
// Bernoulli state, recursing into Propagate for each and weighting the
// resulting join belief by that state's probability under
// currentBeliefs.
//
// Cutset nodes are rebuilt as sources in the sub-DAG (their incoming
// edges are dropped): conditioning fixes their state for the duration
// of one enumerated branch, so from the sub-problem's point of view they
// are exactly an independent Bernoulli source whose prior is the
// enumerated 0 or 1. This also prevents the sub-problem from
// rediscovering d itself as a diamond rooted at the very node being
// conditioned on, which would recurse forever; diamond.FindAll is told
// to exclude the cutset from fork-root consideration for the same
// reason.
func ResolveJoin(ctx context.Context, g *graphmodel.Graph, d diamond.Diamond, join graphmodel.NodeID, currentBeliefs Map, basePriors map[graphmodel.NodeID]float64, opts Options) (float64, error) {
	cutNodes := cutset.Find(d, join)

	cutList := make([]graphmodel.NodeID, 0, len(cutNodes))
	for n := range cutNodes {
		cutList = append(cutList, n)
	}
	sort.Slice(cutList, func(i, j int) bool { return cutList[i] < cutList[j] })

	for _, c := range cutList {
		if _, ok := currentBeliefs[c]; !ok {
			return 0, ErrMissingBeliefForCutsetNode
		}
	}

	subGraph, err := buildConditionedGraph(g, d, join, cutNodes)
	if err != nil {
		return 0, err
	}

	subTopo, err := topology.Analyze(subGraph)
	if err != nil {
		return 0, err
	}

	subDiamonds, err := diamond.FindAll(subGraph, subTopo, cutNodes)
	if err != nil {
		return 0, err
	}

	basePriorsForSub, err := baseConditionedPriors(g, d, join, cutNodes, currentBeliefs, basePriors)
	if err != nil {
		return 0, err
	}

	k := len(cutList)
	states := 1 << k

	pool := sync.Pool{
		New: func() any {
			return make(map[graphmodel.NodeID]float64, len(basePriorsForSub))
		},
	}

	partials := make([]float64, states)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.limit())

	for s := 0; s < states; s++ {
		s := s
		eg.Go(func() error {
			scratch := pool.Get().(map[graphmodel.NodeID]float64)
			for n, p := range basePriorsForSub {
				scratch[n] = p
			}

			stateProb := 1.0
			for i, c := range cutList {
				belief := currentBeliefs[c]
				if (s>>uint(i))&1 == 1 {
					scratch[c] = 1.0
					stateProb *= belief
				} else {
					scratch[c] = 0.0
					stateProb *= 1 - belief
				}
			}

			if stateProb == 0 {
				partials[s] = 0
				clearMap(scratch)
				pool.Put(scratch)

				return nil
			}

			key := cache.NewKey(d.EdgeList, scratch)
			subBelief, err := getOrComputeSub(opts.Cache, key, func() (Map, error) {
				return Propagate(egCtx, subGraph, subTopo, subDiamonds, scratch, opts)
			})
			if err != nil {
				clearMap(scratch)
				pool.Put(scratch)

				return err
			}

			jBelief, ok := subBelief[join]
			if !ok {
				clearMap(scratch)
				pool.Put(scratch)

				return ErrMissingParentBelief
			}

			partials[s] = jBelief * stateProb
			clearMap(scratch)
			pool.Put(scratch)

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return 0, err
	}

	total := 0.0
	for _, p := range partials {
		total += p
	}

	return total, nil
}

// buildConditionedGraph copies d's structure into a fresh Graph with
// every cutset node's incoming edges dropped, so it carries no prior
// uncertainty of its own within the sub-problem — its belief is
// injected directly by the per-state enumeration in ResolveJoin.
func buildConditionedGraph(g *graphmodel.Graph, d diamond.Diamond, join graphmodel.NodeID, cutNodes map[graphmodel.NodeID]struct{}) (*graphmodel.Graph, error) {
	sub := graphmodel.NewGraph(graphmodel.WithCapacityHint(len(d.RelevantNodes)))

	nodes := make([]graphmodel.NodeID, 0, len(d.RelevantNodes))
	for n := range d.RelevantNodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	for _, n := range nodes {
		if err := sub.AddNode(n, 0); err != nil {
			return nil, err
		}
	}

	edges := make([]graphmodel.EdgeID, len(d.EdgeList))
	copy(edges, d.EdgeList)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Src != edges[j].Src {
			return edges[i].Src < edges[j].Src
		}

		return edges[i].Dst < edges[j].Dst
	})

	for _, e := range edges {
		if _, blocked := cutNodes[e.Dst]; blocked {
			continue
		}
		prob, ok := g.EdgeProbability(e)
		if !ok {
			return nil, ErrMissingEdgeProbability
		}
		if err := sub.AddEdge(e.Src, e.Dst, prob); err != nil {
			return nil, err
		}
	}

	return sub, nil
}

// baseConditionedPriors assigns every relevant node's prior for the
// conditioned sub-problem, before any per-state cutset override: join
// is forced to 1 (its own prior is applied once, by the caller, after
// ResolveJoin returns), cutset nodes get a placeholder that every state
// overwrites, a highest node outside the cutset inherits its
// already-finalized marginal belief, and everything else keeps its real
// graph prior.
func baseConditionedPriors(g *graphmodel.Graph, d diamond.Diamond, join graphmodel.NodeID, cutNodes map[graphmodel.NodeID]struct{}, currentBeliefs Map, basePriors map[graphmodel.NodeID]float64) (map[graphmodel.NodeID]float64, error) {
	out := make(map[graphmodel.NodeID]float64, len(d.RelevantNodes))

	for n := range d.RelevantNodes {
		switch {
		case n == join:
			out[n] = 1.0
		case isMember(cutNodes, n):
			out[n] = 1.0
		case isMember(d.HighestNodes, n):
			b, ok := currentBeliefs[n]
			if !ok {
				return nil, ErrMissingBeliefForCutsetNode
			}
			out[n] = b
		default:
			p, ok := basePriors[n]
			if !ok {
				p, ok = g.NodePrior(n)
				if !ok {
					return nil, ErrMissingParentBelief
				}
			}
			out[n] = p
		}
	}

	return out, nil
}

func isMember(set map[graphmodel.NodeID]struct{}, n graphmodel.NodeID) bool {
	_, ok := set[n]

	return ok
}

func clearMap(m map[graphmodel.NodeID]float64) {
	for k := range m {
		delete(m, k)
	}
}

// getOrComputeSub routes through opts.Cache when present; with a nil
// Cache (tests, one-shot callers) it computes directly so memoization
// is always optional, never required for correctness.
func getOrComputeSub(c *cache.Cache[Map], key cache.Key, compute func() (Map, error)) (Map, error) {
	if c == nil {
		return compute()
	}

	return c.GetOrCompute(key, compute)
}
