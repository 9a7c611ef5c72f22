package diamond

import "github.com/Temi-Tory/IPM-Working-sub011/graphmodel"

// Diamond is a maximal re-convergent sub-DAG: the edges internal to it,
// the nodes those edges touch, and the subset of those nodes acting as
// fork roots (zero in-degree within the diamond's own edge set).
type Diamond struct {
	EdgeList      []graphmodel.EdgeID
	RelevantNodes map[graphmodel.NodeID]struct{}
	HighestNodes  map[graphmodel.NodeID]struct{}
}

// AtJoin groups every diamond rooted (eventually) at Join, plus the
// parents of Join that participate in none of them.
type AtJoin struct {
	Join              graphmodel.NodeID
	Diamonds          []Diamond
	NonDiamondParents map[graphmodel.NodeID]struct{}
}
