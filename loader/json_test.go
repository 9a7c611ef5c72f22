package loader_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
	"github.com/Temi-Tory/IPM-Working-sub011/loader"
)

func TestFromJSONClassicDiamond(t *testing.T) {
	doc := `{
		"edges": [[1,2],[1,3],[2,4],[3,4]],
		"node_priors": {"1": 1.0},
		"edge_probabilities": {"1-2": 0.9, "1-3": 0.9, "2-4": 0.9, "3-4": 0.9}
	}`

	g, err := loader.FromJSON(strings.NewReader(doc))
	require.NoError(t, err)

	require.Equal(t, 4, g.NodeCount())

	p, ok := g.NodePrior(2)
	require.True(t, ok)
	require.Equal(t, 1.0, p, "a node absent from node_priors defaults to prior 1.0")

	prob, ok := g.EdgeProbability(graphmodel.EdgeID{Src: 1, Dst: 2})
	require.True(t, ok)
	require.Equal(t, 0.9, prob)
}

func TestFromJSONDefaultEdgeProbability(t *testing.T) {
	doc := `{"edges": [[1,2]]}`

	g, err := loader.FromJSON(strings.NewReader(doc))
	require.NoError(t, err)

	prob, ok := g.EdgeProbability(graphmodel.EdgeID{Src: 1, Dst: 2})
	require.True(t, ok)
	require.Equal(t, 1.0, prob)
}

func TestFromJSONMalformedEdgeKey(t *testing.T) {
	doc := `{"edges": [[1,2]], "edge_probabilities": {"bogus": 0.5}}`

	_, err := loader.FromJSON(strings.NewReader(doc))
	require.ErrorIs(t, err, loader.ErrMalformedEdgeKey)
}
