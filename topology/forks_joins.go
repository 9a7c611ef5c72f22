package topology

import "github.com/Temi-Tory/IPM-Working-sub011/graphmodel"

// IdentifyForksAndJoins classifies every node of g as a fork (out-degree
// >= 2), a join (in-degree >= 2), both, or neither. A node with no
// incoming edges is never a join even if degenerate inputs somehow gave
// it recorded parents — within Analyze that condition is caught earlier
// by FindIterationSets and Validate.
//
// Complexity: O(V).
func IdentifyForksAndJoins(g *graphmodel.Graph) (forks, joins map[graphmodel.NodeID]struct{}) {
	nodes := g.Nodes()
	forks = make(map[graphmodel.NodeID]struct{})
	joins = make(map[graphmodel.NodeID]struct{})

	for _, v := range nodes {
		if g.OutDegree(v) >= 2 {
			forks[v] = struct{}{}
		}
		if g.InDegree(v) >= 2 {
			joins[v] = struct{}{}
		}
	}

	return forks, joins
}
