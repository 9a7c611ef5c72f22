package topology

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
)

// IterationSets is an ordered sequence of disjoint NodeID sets
// partitioning every node of a Graph. Set i holds every node whose
// longest-path distance from any source equals i. Nodes within one set
// have no mutual data dependency and may be processed in any order,
// including concurrently, provided every earlier set has been finalized
// first — see belief.Propagate.
type IterationSets [][]graphmodel.NodeID

// Closure holds the full transitive ancestor and descendant sets for
// every node, keyed by NodeID. Both maps are immutable once returned by
// FindIterationSets.
type Closure struct {
	Ancestors   map[graphmodel.NodeID]map[graphmodel.NodeID]struct{}
	Descendants map[graphmodel.NodeID]map[graphmodel.NodeID]struct{}
}

// FindIterationSets performs a Kahn-style level assignment over g and
// accumulates, for every node, the full set of ancestors and
// descendants. Level(v) = 0 for sources; otherwise 1 + max(Level(parent))
// over v's parents. Ancestors(v) = union of Ancestors(p) ∪ {p} over
// parents p; Descendants is the symmetric accumulation over children in
// reverse level order.
//
// Returns ErrInvalidGraph if any non-source node has zero parents (a
// contradiction with the level assignment, since such a node can never
// be reached) — this indicates a disconnected node in an otherwise
// connected-by-convention input, not a cycle (Build already rejects
// those).
//
// Complexity: O(V+E) for the level assignment; O(V*D) for the closures,
// where D is the average ancestor-set size, since each node's closure
// is built by unioning its parents' already-computed closures.
func FindIterationSets(g *graphmodel.Graph) (IterationSets, Closure, error) {
	nodes := sortedNodes(g)
	sources := g.Sources()

	level := make(map[graphmodel.NodeID]int, len(nodes))
	maxLevel := 0

	// process nodes in topological order derived from Build's guarantee
	// that the graph is acyclic: a simple relaxation pass in ascending
	// NodeID order over multiple iterations would not be O(V+E), so we
	// instead walk a genuine topological order computed via in-degree
	// decrementing (Kahn's algorithm proper).
	order, err := kahnOrder(g, nodes)
	if err != nil {
		return nil, Closure{}, err
	}

	ancestors := make(map[graphmodel.NodeID]map[graphmodel.NodeID]struct{}, len(nodes))
	for _, v := range order {
		parents := sortedKeys(g.Parents(v))
		if len(parents) == 0 {
			if _, isSource := sources[v]; !isSource {
				return nil, Closure{}, fmt.Errorf("%w: node %d has no parents but is not a source", ErrInvalidGraph, v)
			}
			level[v] = 0
			ancestors[v] = map[graphmodel.NodeID]struct{}{}

			continue
		}
		if _, isSource := sources[v]; isSource {
			return nil, Closure{}, fmt.Errorf("%w: node %d is a source but has parents", ErrInvalidGraph, v)
		}

		lvl := 0
		anc := make(map[graphmodel.NodeID]struct{})
		for _, p := range parents {
			if level[p]+1 > lvl {
				lvl = level[p] + 1
			}
			anc[p] = struct{}{}
			maps.Copy(anc, ancestors[p])
		}
		level[v] = lvl
		ancestors[v] = anc
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	sets := make(IterationSets, maxLevel+1)
	for _, v := range nodes {
		sets[level[v]] = append(sets[level[v]], v)
	}
	for i := range sets {
		slices.Sort(sets[i])
	}

	descendants := make(map[graphmodel.NodeID]map[graphmodel.NodeID]struct{}, len(nodes))
	for _, v := range nodes {
		descendants[v] = map[graphmodel.NodeID]struct{}{}
	}
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		for _, c := range sortedKeys(g.Children(v)) {
			descendants[v][c] = struct{}{}
			maps.Copy(descendants[v], descendants[c])
		}
	}

	return sets, Closure{Ancestors: ancestors, Descendants: descendants}, nil
}

// kahnOrder returns a topological order of g's nodes using in-degree
// decrementing, breaking ties by ascending NodeID for determinism.
func kahnOrder(g *graphmodel.Graph, nodes []graphmodel.NodeID) ([]graphmodel.NodeID, error) {
	indeg := make(map[graphmodel.NodeID]int, len(nodes))
	for _, v := range nodes {
		indeg[v] = g.InDegree(v)
	}

	ready := make([]graphmodel.NodeID, 0, len(nodes))
	for _, v := range nodes {
		if indeg[v] == 0 {
			ready = append(ready, v)
		}
	}
	slices.Sort(ready)

	order := make([]graphmodel.NodeID, 0, len(nodes))
	for len(ready) > 0 {
		v := ready[0]
		ready = ready[1:]
		order = append(order, v)

		next := sortedKeys(g.Children(v))
		for _, c := range next {
			indeg[c]--
			if indeg[c] == 0 {
				ready = append(ready, c)
				slices.Sort(ready)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, fmt.Errorf("%w: topological order incomplete, graph is not a DAG", ErrCycleDetected)
	}

	return order, nil
}
