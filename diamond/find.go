package diamond

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
	"github.com/Temi-Tory/IPM-Working-sub011/topology"
)

// FindAll returns DiamondsAtJoin for every join node in the topology,
// iterating joins and, within each join, candidate fork roots in
// ascending NodeID order so the result is deterministic and reproducible
// across runs and across processes.
//
// excludeForks, if non-nil, removes its members from fork-root
// consideration at every join. The Conditioning Solver passes its
// cutset here when re-running diamond identification on a conditioned
// sub-problem: a cutset node's state is already fixed by the
// enumeration, so any re-convergence it would otherwise cause has
// already been accounted for by the outer conditioning, and treating it
// as a fork root again would rediscover the very diamond being resolved
// and recurse forever.
//
// Complexity: O(V*(V+E)) worst case for the branch-reachability sweep
// per (fork, join) pair; bounded in practice by the size of each join's
// ancestor closure.
func FindAll(g *graphmodel.Graph, topo *topology.Topology, excludeForks map[graphmodel.NodeID]struct{}) (map[graphmodel.NodeID]AtJoin, error) {
	if topo == nil {
		return nil, ErrNilTopology
	}

	result := make(map[graphmodel.NodeID]AtJoin, len(topo.Joins))

	joins := make([]graphmodel.NodeID, 0, len(topo.Joins))
	for j := range topo.Joins {
		joins = append(joins, j)
	}
	sort.Slice(joins, func(i, k int) bool { return joins[i] < joins[k] })

	for _, j := range joins {
		result[j] = findAtJoin(g, topo, j, excludeForks)
	}

	return result, nil
}

func findAtJoin(g *graphmodel.Graph, topo *topology.Topology, join graphmodel.NodeID, excludeForks map[graphmodel.NodeID]struct{}) AtJoin {
	ancestorsOfJoin := topo.Close.Ancestors[join]
	allowed := make(map[graphmodel.NodeID]struct{}, len(ancestorsOfJoin)+1)
	for a := range ancestorsOfJoin {
		allowed[a] = struct{}{}
	}
	allowed[join] = struct{}{}

	candidateForks := make([]graphmodel.NodeID, 0)
	for a := range ancestorsOfJoin {
		if _, isFork := topo.Forks[a]; !isFork {
			continue
		}
		if _, excluded := excludeForks[a]; excluded {
			continue
		}
		candidateForks = append(candidateForks, a)
	}
	sort.Slice(candidateForks, func(i, k int) bool { return candidateForks[i] < candidateForks[k] })

	var diamonds []Diamond
	seen := make(map[string]bool)

	for _, f := range candidateForks {
		relevantSet, ok := diamondRootedAt(g, f, join, allowed)
		if !ok {
			continue
		}

		candidate := inducedEdges(g, relevantSet)
		candidate = extendToFixedPoint(g, candidate, topo.Forks)

		key := canonicalKey(candidate)
		if seen[key] {
			continue
		}
		seen[key] = true

		relevant := endpoints(candidate)
		highest := zeroInDegreeWithin(candidate, relevant)
		diamonds = append(diamonds, Diamond{
			EdgeList:      candidate,
			RelevantNodes: relevant,
			HighestNodes:  highest,
		})
	}

	inAnyDiamond := make(map[graphmodel.NodeID]struct{})
	for _, d := range diamonds {
		for _, e := range d.EdgeList {
			if e.Dst == join {
				inAnyDiamond[e.Src] = struct{}{}
			}
		}
	}

	nonDiamondParents := make(map[graphmodel.NodeID]struct{})
	for p := range g.Parents(join) {
		if _, ok := inAnyDiamond[p]; !ok {
			nonDiamondParents[p] = struct{}{}
		}
	}

	return AtJoin{Join: join, Diamonds: diamonds, NonDiamondParents: nonDiamondParents}
}

// diamondRootedAt decides whether f is a genuine diamond root for join:
// it needs at least two children whose downstream reach-sets (restricted
// to allowed, and excluding join itself) are pairwise internally
// node-disjoint and both eventually reach join. Children are considered
// in ascending order and greedily accepted into the disjoint set, which
// is deterministic and, for every diamond shape in the test corpus,
// also maximal.
//
// Returns the relevant node set (f, every selected branch's reach-set,
// and join) and true if f qualifies; otherwise false.
func diamondRootedAt(g *graphmodel.Graph, f, join graphmodel.NodeID, allowed map[graphmodel.NodeID]struct{}) (map[graphmodel.NodeID]struct{}, bool) {
	children := sortedKeys(restrict(g.Children(f), allowed))
	if len(children) < 2 {
		return nil, false
	}

	reach := make(map[graphmodel.NodeID]map[graphmodel.NodeID]struct{}, len(children))
	validChildren := make([]graphmodel.NodeID, 0, len(children))
	for _, c := range children {
		r := restrictedDescendants(g, c, allowed)
		if _, reachesJoin := r[join]; reachesJoin {
			reach[c] = r
			validChildren = append(validChildren, c)
		}
	}
	if len(validChildren) < 2 {
		return nil, false
	}

	used := make(map[graphmodel.NodeID]struct{})
	selected := make([]graphmodel.NodeID, 0, len(validChildren))
	for _, c := range validChildren {
		overlap := false
		for n := range reach[c] {
			if n == join {
				continue
			}
			if _, taken := used[n]; taken {
				overlap = true

				break
			}
		}
		if overlap {
			continue
		}
		selected = append(selected, c)
		for n := range reach[c] {
			if n != join {
				used[n] = struct{}{}
			}
		}
	}
	if len(selected) < 2 {
		return nil, false
	}

	relevant := map[graphmodel.NodeID]struct{}{f: {}, join: {}}
	for _, c := range selected {
		for n := range reach[c] {
			relevant[n] = struct{}{}
		}
	}

	return relevant, true
}

// restrictedDescendants returns {start} ∪ every node reachable from
// start by a directed path through nodes in allowed.
func restrictedDescendants(g *graphmodel.Graph, start graphmodel.NodeID, allowed map[graphmodel.NodeID]struct{}) map[graphmodel.NodeID]struct{} {
	out := map[graphmodel.NodeID]struct{}{start: {}}
	stack := []graphmodel.NodeID{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for c := range g.Children(n) {
			if _, ok := allowed[c]; !ok {
				continue
			}
			if _, visited := out[c]; visited {
				continue
			}
			out[c] = struct{}{}
			stack = append(stack, c)
		}
	}

	return out
}

func restrict(set, allowed map[graphmodel.NodeID]struct{}) map[graphmodel.NodeID]struct{} {
	out := make(map[graphmodel.NodeID]struct{})
	for n := range set {
		if _, ok := allowed[n]; ok {
			out[n] = struct{}{}
		}
	}

	return out
}

// inducedEdges returns every edge of g whose endpoints are both in nodes.
func inducedEdges(g *graphmodel.Graph, nodes map[graphmodel.NodeID]struct{}) []graphmodel.EdgeID {
	set := make(map[graphmodel.EdgeID]struct{})
	for n := range nodes {
		for c := range g.Children(n) {
			if _, ok := nodes[c]; ok {
				set[graphmodel.EdgeID{Src: n, Dst: c}] = struct{}{}
			}
		}
	}

	return sortedEdgeSlice(set)
}

// extendToFixedPoint repeatedly pulls in any additional incoming edge to
// a non-fork node already present in candidate, until no change occurs.
// Fork nodes are never extended upstream since doing so would grow the
// diamond past its own root.
func extendToFixedPoint(g *graphmodel.Graph, candidate []graphmodel.EdgeID, forks map[graphmodel.NodeID]struct{}) []graphmodel.EdgeID {
	set := make(map[graphmodel.EdgeID]struct{}, len(candidate))
	for _, e := range candidate {
		set[e] = struct{}{}
	}
	nodes := endpoints(candidate)

	for {
		changed := false
		current := make([]graphmodel.NodeID, 0, len(nodes))
		for n := range nodes {
			current = append(current, n)
		}
		sort.Slice(current, func(i, k int) bool { return current[i] < current[k] })

		for _, n := range current {
			if _, isFork := forks[n]; isFork {
				continue
			}
			for p := range g.Parents(n) {
				e := graphmodel.EdgeID{Src: p, Dst: n}
				if _, exists := set[e]; exists {
					continue
				}
				set[e] = struct{}{}
				nodes[p] = struct{}{}
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return sortedEdgeSlice(set)
}

func endpoints(edges []graphmodel.EdgeID) map[graphmodel.NodeID]struct{} {
	out := make(map[graphmodel.NodeID]struct{}, 2*len(edges))
	for _, e := range edges {
		out[e.Src] = struct{}{}
		out[e.Dst] = struct{}{}
	}

	return out
}

func zeroInDegreeWithin(edges []graphmodel.EdgeID, relevant map[graphmodel.NodeID]struct{}) map[graphmodel.NodeID]struct{} {
	hasIncoming := make(map[graphmodel.NodeID]struct{})
	for _, e := range edges {
		hasIncoming[e.Dst] = struct{}{}
	}

	out := make(map[graphmodel.NodeID]struct{})
	for n := range relevant {
		if _, has := hasIncoming[n]; !has {
			out[n] = struct{}{}
		}
	}

	return out
}

func sortedKeys(set map[graphmodel.NodeID]struct{}) []graphmodel.NodeID {
	out := make([]graphmodel.NodeID, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func sortedEdgeSlice(set map[graphmodel.EdgeID]struct{}) []graphmodel.EdgeID {
	out := make([]graphmodel.EdgeID, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Src != out[k].Src {
			return out[i].Src < out[k].Src
		}

		return out[i].Dst < out[k].Dst
	})

	return out
}

func canonicalKey(edges []graphmodel.EdgeID) string {
	var b strings.Builder
	for _, e := range edges {
		fmt.Fprintf(&b, "%d>%d;", e.Src, e.Dst)
	}

	return b.String()
}
