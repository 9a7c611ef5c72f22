package cutset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Temi-Tory/IPM-Working-sub011/cutset"
	"github.com/Temi-Tory/IPM-Working-sub011/diamond"
	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
)

// TestClassicDiamond: the cutset of a single diamond is its own fork root.
func TestClassicDiamond(t *testing.T) {
	d := diamond.Diamond{
		EdgeList: []graphmodel.EdgeID{
			{Src: 1, Dst: 2}, {Src: 1, Dst: 3}, {Src: 2, Dst: 4}, {Src: 3, Dst: 4},
		},
		RelevantNodes: map[graphmodel.NodeID]struct{}{1: {}, 2: {}, 3: {}, 4: {}},
		HighestNodes:  map[graphmodel.NodeID]struct{}{1: {}},
	}

	got := cutset.Find(d, 4)

	require.Equal(t, map[graphmodel.NodeID]struct{}{1: {}}, got)
}

// TestNestedDiamond: the downstream diamond 4→{5,6}→7 of the nested
// scenario, with the upstream diamond's edges 1→{2,3}→4 also present in
// the edge list, reduces to its own fork root 4 alone: fork 1 is outside
// RelevantNodes, and once 4 is cut none of its routes reach 7 anyway.
func TestNestedDiamond(t *testing.T) {
	d := diamond.Diamond{
		EdgeList: []graphmodel.EdgeID{
			{Src: 1, Dst: 2}, {Src: 1, Dst: 3},
			{Src: 2, Dst: 4}, {Src: 3, Dst: 4},
			{Src: 4, Dst: 5}, {Src: 4, Dst: 6},
			{Src: 5, Dst: 7}, {Src: 6, Dst: 7},
		},
		RelevantNodes: map[graphmodel.NodeID]struct{}{4: {}, 5: {}, 6: {}, 7: {}},
		HighestNodes:  map[graphmodel.NodeID]struct{}{4: {}},
	}

	got := cutset.Find(d, 7)

	require.Equal(t, map[graphmodel.NodeID]struct{}{4: {}}, got)
}
