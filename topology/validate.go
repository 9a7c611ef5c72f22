package topology

import (
	"fmt"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
)

// Validate enforces the Graph invariants from spec §3/§4.1 that a single
// traversal can check cheaply: every node has a prior in [0,1], every
// edge has a probability in [0,1], every non-source has at least one
// parent, every source has none, and the iteration sets returned by
// FindIterationSets partition the node set exactly once.
//
// Complexity: O(V+E).
func Validate(g *graphmodel.Graph, sets IterationSets) error {
	nodes := g.Nodes()
	sources := g.Sources()

	seen := make(map[graphmodel.NodeID]struct{}, len(nodes))
	for _, set := range sets {
		for _, v := range set {
			if _, dup := seen[v]; dup {
				return fmt.Errorf("%w: node %d appears in more than one iteration set", ErrInvalidGraph, v)
			}
			seen[v] = struct{}{}
		}
	}
	if len(seen) != len(nodes) {
		return fmt.Errorf("%w: iteration sets do not cover every node", ErrInvalidGraph)
	}

	for _, v := range nodes {
		prior, ok := g.NodePrior(v)
		if !ok {
			return fmt.Errorf("%w: node %d", graphmodel.ErrMissingPrior, v)
		}
		if prior < 0 || prior > 1 {
			return fmt.Errorf("%w: node %d prior %v", graphmodel.ErrOutOfRange, v, prior)
		}

		_, isSource := sources[v]
		hasParents := g.InDegree(v) > 0
		switch {
		case isSource && hasParents:
			return fmt.Errorf("%w: node %d", graphmodel.ErrSourceWithParent, v)
		case !isSource && !hasParents:
			return fmt.Errorf("%w: node %d", graphmodel.ErrNonSourceWithoutParent, v)
		}
	}

	for _, e := range g.Edges() {
		prob, ok := g.EdgeProbability(e)
		if !ok {
			return fmt.Errorf("%w: edge %d->%d", graphmodel.ErrMissingEdgeProbability, e.Src, e.Dst)
		}
		if prob < 0 || prob > 1 {
			return fmt.Errorf("%w: edge %d->%d probability %v", graphmodel.ErrOutOfRange, e.Src, e.Dst, prob)
		}
		if !g.HasNode(e.Src) || !g.HasNode(e.Dst) {
			return fmt.Errorf("%w: edge %d->%d", graphmodel.ErrInconsistentAdjacency, e.Src, e.Dst)
		}
		if _, ok := g.Children(e.Src)[e.Dst]; !ok {
			return fmt.Errorf("%w: edge %d->%d missing from out adjacency", graphmodel.ErrInconsistentAdjacency, e.Src, e.Dst)
		}
		if _, ok := g.Parents(e.Dst)[e.Src]; !ok {
			return fmt.Errorf("%w: edge %d->%d missing from in adjacency", graphmodel.ErrInconsistentAdjacency, e.Src, e.Dst)
		}
	}

	return nil
}
