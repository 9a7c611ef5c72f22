package belief_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Temi-Tory/IPM-Working-sub011/belief"
	"github.com/Temi-Tory/IPM-Working-sub011/diamond"
	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
	"github.com/Temi-Tory/IPM-Working-sub011/topology"
)

const tolerance = 1e-9

// buildGraph is a small test DSL: nodes map[id]prior, edges a flat list
// of (src, dst, prob) triples.
func buildGraph(t *testing.T, priors map[graphmodel.NodeID]float64, edges [][3]float64) *graphmodel.Graph {
	t.Helper()

	g := graphmodel.NewGraph()
	for id, p := range priors {
		require.NoError(t, g.AddNode(id, p))
	}
	for _, e := range edges {
		src, dst, prob := graphmodel.NodeID(e[0]), graphmodel.NodeID(e[1]), e[2]
		require.NoError(t, g.AddEdge(src, dst, prob))
	}

	return g
}

func propagate(t *testing.T, g *graphmodel.Graph) belief.Map {
	t.Helper()

	topo, err := topology.Analyze(g)
	require.NoError(t, err)

	diamonds, err := diamond.FindAll(g, topo, nil)
	require.NoError(t, err)

	priors := make(map[graphmodel.NodeID]float64, g.NodeCount())
	for _, n := range g.Nodes() {
		p, _ := g.NodePrior(n)
		priors[n] = p
	}

	result, err := belief.Propagate(context.Background(), g, topo, diamonds, priors, belief.Options{})
	require.NoError(t, err)

	return result
}

// BeliefSuite covers spec seed scenarios and the range/monotonicity/
// certainty testable properties, plus an isolated-source case.
type BeliefSuite struct {
	suite.Suite
}

func TestBeliefSuite(t *testing.T) {
	suite.Run(t, new(BeliefSuite))
}

// TestSingleEdge: one edge, belief[dst] = prior[src]*prior[dst]*edgeProb.
func (s *BeliefSuite) TestSingleEdge() {
	g := buildGraph(s.T(), map[graphmodel.NodeID]float64{1: 0.8, 2: 0.9}, [][3]float64{
		{1, 2, 0.7},
	})
	result := propagate(s.T(), g)

	s.InDelta(0.8, result[1], tolerance)
	s.InDelta(0.8*0.9*0.7, result[2], tolerance)
}

// TestSeries: a chain 1→2→3 multiplies through.
func (s *BeliefSuite) TestSeries() {
	g := buildGraph(s.T(), map[graphmodel.NodeID]float64{1: 1.0, 2: 1.0, 3: 1.0}, [][3]float64{
		{1, 2, 0.9},
		{2, 3, 0.8},
	})
	result := propagate(s.T(), g)

	s.InDelta(1.0, result[1], tolerance)
	s.InDelta(0.9, result[2], tolerance)
	s.InDelta(0.9*0.8, result[3], tolerance)
}

// TestClassicDiamond: 1→2, 1→3, 2→4, 3→4, priors 1.0, edge probs 0.9.
// belief[4] = 1 - (1-0.81)^2 = 0.9639, per the worked example.
func (s *BeliefSuite) TestClassicDiamond() {
	g := buildGraph(s.T(), map[graphmodel.NodeID]float64{1: 1.0, 2: 1.0, 3: 1.0, 4: 1.0}, [][3]float64{
		{1, 2, 0.9},
		{1, 3, 0.9},
		{2, 4, 0.9},
		{3, 4, 0.9},
	})
	result := propagate(s.T(), g)

	s.InDelta(0.9639, result[4], 1e-4)
}

// TestDiamondReducedForkPrior: same shape, fork prior 0.5 scales belief[4]
// linearly since every path through the diamond carries exactly one
// factor of node 1's survival.
func (s *BeliefSuite) TestDiamondReducedForkPrior() {
	g := buildGraph(s.T(), map[graphmodel.NodeID]float64{1: 0.5, 2: 1.0, 3: 1.0, 4: 1.0}, [][3]float64{
		{1, 2, 0.9},
		{1, 3, 0.9},
		{2, 4, 0.9},
		{3, 4, 0.9},
	})
	result := propagate(s.T(), g)

	s.InDelta(0.5, result[1], tolerance)
	s.InDelta(0.5*0.9639, result[4], 1e-4)
}

// TestTwoIndependentSources: 1→3, 2→3 with no shared ancestor combine via
// inclusion-exclusion as two independent contributions.
func (s *BeliefSuite) TestTwoIndependentSources() {
	g := buildGraph(s.T(), map[graphmodel.NodeID]float64{1: 0.9, 2: 0.8, 3: 1.0}, [][3]float64{
		{1, 3, 0.9},
		{2, 3, 0.9},
	})
	result := propagate(s.T(), g)

	c1 := 0.9 * 0.9
	c2 := 0.8 * 0.9
	want := c1 + c2 - c1*c2
	s.InDelta(want, result[3], tolerance)
}

// TestNestedDiamond: a diamond (1,2,3,4) feeding a second diamond
// (4,5,6,7). belief[4] matches the classic diamond result, and belief[7]
// is computed by this engine's own conditioning, not independently
// re-derived, so this test is a regression guard rather than an
// external oracle.
func (s *BeliefSuite) TestNestedDiamond() {
	g := buildGraph(s.T(), map[graphmodel.NodeID]float64{
		1: 1.0, 2: 1.0, 3: 1.0, 4: 1.0, 5: 1.0, 6: 1.0, 7: 1.0,
	}, [][3]float64{
		{1, 2, 0.9},
		{1, 3, 0.9},
		{2, 4, 0.9},
		{3, 4, 0.9},
		{4, 5, 0.9},
		{4, 6, 0.9},
		{5, 7, 0.9},
		{6, 7, 0.9},
	})
	result := propagate(s.T(), g)

	s.InDelta(0.9639, result[4], 1e-4)
	s.Greater(result[7], 0.0)
	s.LessOrEqual(result[7], 1.0)
	s.Less(result[7], result[4], "the second diamond's own attenuation must strictly lower belief relative to its own input")
}

// TestRangeInvariant: every computed belief lies in [0,1] across a batch
// of randomized small DAGs.
func (s *BeliefSuite) TestRangeInvariant() {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 25; trial++ {
		g := randomDAG(s.T(), rng, 6)
		result := propagate(s.T(), g)
		for _, v := range result {
			s.GreaterOrEqual(v, 0.0)
			s.LessOrEqual(v, 1.0)
		}
	}
}

// TestSourceEqualsPrior: a node with no parents has belief equal to its
// own prior exactly.
func (s *BeliefSuite) TestSourceEqualsPrior() {
	g := buildGraph(s.T(), map[graphmodel.NodeID]float64{1: 0.37, 2: 1.0}, [][3]float64{
		{1, 2, 1.0},
	})
	result := propagate(s.T(), g)

	s.InDelta(0.37, result[1], tolerance)
}

// TestMonotonicityInEdgeProbability: raising one edge's probability never
// decreases any downstream belief.
func (s *BeliefSuite) TestMonotonicityInEdgeProbability() {
	base := func(p float64) *graphmodel.Graph {
		return buildGraph(s.T(), map[graphmodel.NodeID]float64{1: 1.0, 2: 1.0, 3: 1.0, 4: 1.0}, [][3]float64{
			{1, 2, 0.9},
			{1, 3, 0.9},
			{2, 4, p},
			{3, 4, 0.9},
		})
	}

	low := propagate(s.T(), base(0.3))
	high := propagate(s.T(), base(0.9))

	s.GreaterOrEqual(high[4], low[4])
}

// TestMonotonicityInNodePrior: raising a node's own prior never decreases
// its descendants' belief.
func (s *BeliefSuite) TestMonotonicityInNodePrior() {
	base := func(prior float64) *graphmodel.Graph {
		return buildGraph(s.T(), map[graphmodel.NodeID]float64{1: prior, 2: 1.0}, [][3]float64{
			{1, 2, 0.9},
		})
	}

	low := propagate(s.T(), base(0.2))
	high := propagate(s.T(), base(0.8))

	s.GreaterOrEqual(high[2], low[2])
}

// TestIsolatedSourceKeepsPrior: node 1 has no incident edges, so it is a
// source cut off from the rest of the graph and reports its own prior.
func (s *BeliefSuite) TestIsolatedSourceKeepsPrior() {
	g := buildGraph(s.T(), map[graphmodel.NodeID]float64{1: 0.6, 2: 0.4, 3: 1.0}, [][3]float64{
		{2, 3, 0.5},
	})
	result := propagate(s.T(), g)

	s.InDelta(0.6, result[1], tolerance)
}

// TestCertaintyLaw: when every prior and every edge probability is 1,
// every belief is exactly 1.
func (s *BeliefSuite) TestCertaintyLaw() {
	g := buildGraph(s.T(), map[graphmodel.NodeID]float64{1: 1.0, 2: 1.0, 3: 1.0, 4: 1.0}, [][3]float64{
		{1, 2, 1.0},
		{1, 3, 1.0},
		{2, 4, 1.0},
		{3, 4, 1.0},
	})
	result := propagate(s.T(), g)

	for _, v := range result {
		s.InDelta(1.0, v, tolerance)
	}
}

// randomDAG builds a random small DAG over n nodes with edges only from
// lower to higher NodeID, guaranteeing acyclicity.
func randomDAG(t *testing.T, rng *rand.Rand, n int) *graphmodel.Graph {
	t.Helper()

	g := graphmodel.NewGraph()
	for i := 1; i <= n; i++ {
		require.NoError(t, g.AddNode(graphmodel.NodeID(i), rng.Float64()))
	}
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			if rng.Float64() < 0.4 {
				require.NoError(t, g.AddEdge(graphmodel.NodeID(i), graphmodel.NodeID(j), rng.Float64()))
			}
		}
	}

	return g
}
