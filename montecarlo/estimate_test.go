package montecarlo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
	"github.com/Temi-Tory/IPM-Working-sub011/montecarlo"
)

// TestAgreesWithClassicDiamond checks that a large-trial Monte-Carlo
// estimate lands within a generous tolerance of the exact 0.9639 belief
// for the classic diamond, the Monte-Carlo agreement bound property.
func TestAgreesWithClassicDiamond(t *testing.T) {
	g := graphmodel.NewGraph()
	for i := graphmodel.NodeID(1); i <= 4; i++ {
		require.NoError(t, g.AddNode(i, 1.0))
	}
	require.NoError(t, g.AddEdge(1, 2, 0.9))
	require.NoError(t, g.AddEdge(1, 3, 0.9))
	require.NoError(t, g.AddEdge(2, 4, 0.9))
	require.NoError(t, g.AddEdge(3, 4, 0.9))

	result, err := montecarlo.Estimate(context.Background(), g, 50000)
	require.NoError(t, err)

	require.InDelta(t, 0.9639, result[4], 0.02)
}

// TestSourceMatchesOwnPrior: a source node's Monte-Carlo estimate
// converges to its own survival prior.
func TestSourceMatchesOwnPrior(t *testing.T) {
	g := graphmodel.NewGraph()
	require.NoError(t, g.AddNode(1, 0.3))

	result, err := montecarlo.Estimate(context.Background(), g, 20000)
	require.NoError(t, err)

	require.InDelta(t, 0.3, result[1], 0.02)
}

// TestInvalidTrials rejects non-positive trial counts.
func TestInvalidTrials(t *testing.T) {
	g := graphmodel.NewGraph()
	require.NoError(t, g.AddNode(1, 1.0))

	_, err := montecarlo.Estimate(context.Background(), g, 0)
	require.ErrorIs(t, err, montecarlo.ErrInvalidTrials)
}

// TestConcurrencyOption exercises WithConcurrency without changing the
// expected result distribution.
func TestConcurrencyOption(t *testing.T) {
	g := graphmodel.NewGraph()
	require.NoError(t, g.AddNode(1, 1.0))
	require.NoError(t, g.AddNode(2, 1.0))
	require.NoError(t, g.AddEdge(1, 2, 0.5))

	result, err := montecarlo.Estimate(context.Background(), g, 10000, montecarlo.WithConcurrency(2))
	require.NoError(t, err)

	require.InDelta(t, 0.5, result[2], 0.03)
}
