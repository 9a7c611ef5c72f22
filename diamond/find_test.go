package diamond_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Temi-Tory/IPM-Working-sub011/diamond"
	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
	"github.com/Temi-Tory/IPM-Working-sub011/topology"
)

func buildTopo(t *testing.T, edges [][2]int64, n int) (*graphmodel.Graph, *topology.Topology) {
	t.Helper()

	g := graphmodel.NewGraph()
	for i := int64(1); i <= int64(n); i++ {
		require.NoError(t, g.AddNode(graphmodel.NodeID(i), 1.0))
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(graphmodel.NodeID(e[0]), graphmodel.NodeID(e[1]), 0.9))
	}

	topo, err := topology.Analyze(g)
	require.NoError(t, err)

	return g, topo
}

// TestClassicDiamond: fork 1, join 4, exactly one diamond with two
// disjoint branches {2} and {3}.
func TestClassicDiamond(t *testing.T) {
	g, topo := buildTopo(t, [][2]int64{{1, 2}, {1, 3}, {2, 4}, {3, 4}}, 4)

	result, err := diamond.FindAll(g, topo, nil)
	require.NoError(t, err)

	atJoin, ok := result[4]
	require.True(t, ok)
	require.Len(t, atJoin.Diamonds, 1)

	d := atJoin.Diamonds[0]
	require.Contains(t, d.RelevantNodes, graphmodel.NodeID(1))
	require.Contains(t, d.RelevantNodes, graphmodel.NodeID(2))
	require.Contains(t, d.RelevantNodes, graphmodel.NodeID(3))
	require.Contains(t, d.RelevantNodes, graphmodel.NodeID(4))
	require.Contains(t, d.HighestNodes, graphmodel.NodeID(1))
}

// TestNoFalseDiamondWithSingleBranch: a fork with only one child reaching
// the join is not a diamond. Join 3 has parents 2 and 5; fork 1 reaches
// it only through child 2.
func TestNoFalseDiamondWithSingleBranch(t *testing.T) {
	g, topo := buildTopo(t, [][2]int64{{1, 2}, {2, 3}, {1, 4}, {5, 3}}, 5)

	result, err := diamond.FindAll(g, topo, nil)
	require.NoError(t, err)

	atJoin, ok := result[3]
	if ok {
		require.Empty(t, atJoin.Diamonds)
	}
}

// TestNestedDiamond: two independent diamonds, rooted at 1 (join 4) and
// at 4 (join 7). Node 1 must NOT also be reported as a fork root for
// join 7, since its two paths to 7 (via 2 and via 3) both funnel back
// through the shared node 4 and are not internally disjoint beyond that
// point.
func TestNestedDiamond(t *testing.T) {
	g, topo := buildTopo(t, [][2]int64{
		{1, 2}, {1, 3}, {2, 4}, {3, 4},
		{4, 5}, {4, 6}, {5, 7}, {6, 7},
	}, 7)

	result, err := diamond.FindAll(g, topo, nil)
	require.NoError(t, err)

	atJoin4, ok := result[4]
	require.True(t, ok)
	require.Len(t, atJoin4.Diamonds, 1)
	require.Contains(t, atJoin4.Diamonds[0].HighestNodes, graphmodel.NodeID(1))

	atJoin7, ok := result[7]
	require.True(t, ok)
	require.Len(t, atJoin7.Diamonds, 1)
	require.Contains(t, atJoin7.Diamonds[0].HighestNodes, graphmodel.NodeID(4))
	require.NotContains(t, atJoin7.Diamonds[0].RelevantNodes, graphmodel.NodeID(1),
		"node 1 is not a disjoint-branch root for join 7: its only routes to 7 converge through node 4 first")
}

// TestExcludeForks removes a candidate fork root from consideration,
// exactly as the Conditioning Solver does for a cutset node re-running
// diamond identification on its own conditioned sub-problem.
func TestExcludeForks(t *testing.T) {
	g, topo := buildTopo(t, [][2]int64{{1, 2}, {1, 3}, {2, 4}, {3, 4}}, 4)

	excluded := map[graphmodel.NodeID]struct{}{1: {}}
	result, err := diamond.FindAll(g, topo, excluded)
	require.NoError(t, err)

	atJoin, ok := result[4]
	if ok {
		require.Empty(t, atJoin.Diamonds)
	}
}
