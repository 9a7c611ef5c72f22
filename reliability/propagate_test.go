package reliability_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Temi-Tory/IPM-Working-sub011/loader"
	"github.com/Temi-Tory/IPM-Working-sub011/reliability"
)

// TestPropagateEndToEnd loads a graph through the JSON adapter and runs
// it through the single entry point, exactly the path cmd/reliacli
// takes.
func TestPropagateEndToEnd(t *testing.T) {
	doc := `{
		"edges": [[1,2],[1,3],[2,4],[3,4]],
		"node_priors": {"1": 1.0},
		"edge_probabilities": {"1-2": 0.9, "1-3": 0.9, "2-4": 0.9, "3-4": 0.9}
	}`

	g, err := loader.FromJSON(strings.NewReader(doc))
	require.NoError(t, err)

	result, err := reliability.Propagate(context.Background(), g)
	require.NoError(t, err)

	require.InDelta(t, 0.9639, result[4], 1e-4)
}

// TestPropagateRespectsCacheSizeOption exercises the functional option
// surface without asserting on internals.
func TestPropagateRespectsCacheSizeOption(t *testing.T) {
	doc := `{"edges": [[1,2]], "node_priors": {"1": 0.5}, "edge_probabilities": {"1-2": 0.8}}`

	g, err := loader.FromJSON(strings.NewReader(doc))
	require.NoError(t, err)

	result, err := reliability.Propagate(context.Background(), g, reliability.WithCacheSize(1))
	require.NoError(t, err)

	require.InDelta(t, 0.5, result[1], 1e-9)
	require.InDelta(t, 0.5*0.8, result[2], 1e-9)
}
