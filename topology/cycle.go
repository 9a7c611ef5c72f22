package topology

import (
	"fmt"
	"sort"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
)

// vertex DFS coloring states, mirroring the classic white/gray/black scheme.
const (
	white = iota
	gray
	black
)

// Build validates that g is acyclic. On success it returns nil; on the
// first cycle found it returns ErrCycleDetected wrapping the offending
// cycle as a node sequence (v0 -> v1 -> ... -> v0).
//
// Complexity: O(V+E). Deterministic: nodes are visited in ascending
// NodeID order so the reported cycle is stable across runs.
func Build(g *graphmodel.Graph) error {
	nodes := sortedNodes(g)
	state := make(map[graphmodel.NodeID]int, len(nodes))
	stack := make([]graphmodel.NodeID, 0, len(nodes))

	var visit func(v graphmodel.NodeID) error
	visit = func(v graphmodel.NodeID) error {
		state[v] = gray
		stack = append(stack, v)

		children := sortedKeys(g.Children(v))
		for _, c := range children {
			switch state[c] {
			case white:
				if err := visit(c); err != nil {
					return err
				}
			case gray:
				cycle := extractCycle(stack, c)
				return fmt.Errorf("%w: %v", ErrCycleDetected, cycle)
			case black:
				// already fully explored, no back-edge
			}
		}

		stack = stack[:len(stack)-1]
		state[v] = black

		return nil
	}

	for _, v := range nodes {
		if state[v] == white {
			if err := visit(v); err != nil {
				return err
			}
		}
	}

	return nil
}

// extractCycle returns the suffix of stack starting at the back-edge
// target, closing the loop by repeating that node at the end.
func extractCycle(stack []graphmodel.NodeID, target graphmodel.NodeID) []graphmodel.NodeID {
	idx := 0
	for i, v := range stack {
		if v == target {
			idx = i

			break
		}
	}
	cycle := append([]graphmodel.NodeID{}, stack[idx:]...)
	cycle = append(cycle, target)

	return cycle
}

func sortedNodes(g *graphmodel.Graph) []graphmodel.NodeID {
	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	return nodes
}

func sortedKeys(set map[graphmodel.NodeID]struct{}) []graphmodel.NodeID {
	out := make([]graphmodel.NodeID, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
