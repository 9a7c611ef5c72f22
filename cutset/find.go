package cutset

import (
	"sort"

	"github.com/Temi-Tory/IPM-Working-sub011/diamond"
	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
)

// Find returns a minimal-effort (not minimum) set of internal non-sink
// nodes whose conditioning eliminates every fork-to-join multi-path
// structure inside d. It starts from d.HighestNodes — sufficient by
// construction, since every relevant node sits on >=2 disjoint paths
// from some highest node — then greedily extends the set with any
// deeper internal fork whose multi-path structure survives conditioning
// on what has been cut so far (the nested-diamond case).
//
// Complexity: O(k * (V+E)) where k is the number of fixed-point rounds,
// bounded by the number of internal forks in d.
func Find(d diamond.Diamond, join graphmodel.NodeID) map[graphmodel.NodeID]struct{} {
	fwd := buildForward(d.EdgeList)

	cutset := make(map[graphmodel.NodeID]struct{}, len(d.HighestNodes))
	for n := range d.HighestNodes {
		cutset[n] = struct{}{}
	}

	internalForks := internalForkNodes(fwd, d.RelevantNodes)
	if len(internalForks) == 0 {
		return map[graphmodel.NodeID]struct{}{}
	}

	for {
		changed := false
		candidates := remainingCandidates(internalForks, cutset)

		for _, f := range candidates {
			paths := countDisjointPaths(fwd, f, join, cutset)
			if paths >= 2 {
				cutset[f] = struct{}{}
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return cutset
}

func buildForward(edges []graphmodel.EdgeID) map[graphmodel.NodeID][]graphmodel.NodeID {
	fwd := make(map[graphmodel.NodeID][]graphmodel.NodeID)
	for _, e := range edges {
		fwd[e.Src] = append(fwd[e.Src], e.Dst)
	}
	for k := range fwd {
		sort.Slice(fwd[k], func(i, j int) bool { return fwd[k][i] < fwd[k][j] })
	}

	return fwd
}

func internalForkNodes(fwd map[graphmodel.NodeID][]graphmodel.NodeID, relevant map[graphmodel.NodeID]struct{}) []graphmodel.NodeID {
	out := make([]graphmodel.NodeID, 0)
	for n := range relevant {
		if len(fwd[n]) >= 2 {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func remainingCandidates(forks []graphmodel.NodeID, cutset map[graphmodel.NodeID]struct{}) []graphmodel.NodeID {
	out := make([]graphmodel.NodeID, 0, len(forks))
	for _, f := range forks {
		if _, cut := cutset[f]; !cut {
			out = append(out, f)
		}
	}

	return out
}

// countDisjointPaths counts directed paths from src to dst through the
// forward adjacency fwd, treating any node in blocked (other than src
// itself) as impassable — it is already conditioned on independently
// and must not be traversed through when judging whether src still
// causes re-convergent divergence.
func countDisjointPaths(fwd map[graphmodel.NodeID][]graphmodel.NodeID, src, dst graphmodel.NodeID, blocked map[graphmodel.NodeID]struct{}) int {
	memo := make(map[graphmodel.NodeID]int)

	var count func(v graphmodel.NodeID) int
	count = func(v graphmodel.NodeID) int {
		if v == dst {
			return 1
		}
		if c, ok := memo[v]; ok {
			return c
		}
		total := 0
		for _, next := range fwd[v] {
			if next != dst {
				if _, isBlocked := blocked[next]; isBlocked {
					continue
				}
			}
			total += count(next)
		}
		memo[v] = total

		return total
	}

	return count(src)
}
