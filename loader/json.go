package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
)

// document mirrors the on-disk JSON shape:
//
//	{
//	  "edges": [[1,2],[1,3],...],
//	  "node_priors": {"1": 1.0, "2": 0.9},
//	  "edge_probabilities": {"1-2": 0.9}
//	}
//
// A node referenced only by an edge endpoint and missing from
// node_priors defaults to prior 1.0; an edge missing from
// edge_probabilities defaults to probability 1.0.
type document struct {
	Edges             [][2]int64         `json:"edges"`
	NodePriors        map[string]float64 `json:"node_priors"`
	EdgeProbabilities map[string]float64 `json:"edge_probabilities"`
}

// FromJSON reads r as a document and builds a *graphmodel.Graph. Nodes
// are added in ascending NodeID order so graph construction is
// deterministic regardless of map iteration order in the source JSON.
func FromJSON(r io.Reader) (*graphmodel.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("loader: decoding json: %w", err)
	}

	nodeSet := make(map[graphmodel.NodeID]struct{})
	for k := range doc.NodePriors {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("loader: node_priors key %q: %w", k, err)
		}
		nodeSet[graphmodel.NodeID(id)] = struct{}{}
	}
	for _, e := range doc.Edges {
		nodeSet[graphmodel.NodeID(e[0])] = struct{}{}
		nodeSet[graphmodel.NodeID(e[1])] = struct{}{}
	}

	ids := make([]graphmodel.NodeID, 0, len(nodeSet))
	for id := range nodeSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	g := graphmodel.NewGraph(graphmodel.WithCapacityHint(len(ids)))
	for _, id := range ids {
		prior := 1.0
		if p, ok := doc.NodePriors[strconv.FormatInt(int64(id), 10)]; ok {
			prior = p
		}
		if err := g.AddNode(id, prior); err != nil {
			return nil, fmt.Errorf("loader: node %d: %w", id, err)
		}
	}

	for _, e := range doc.Edges {
		src, dst := graphmodel.NodeID(e[0]), graphmodel.NodeID(e[1])
		prob := 1.0
		key := edgeKey(src, dst)
		if p, ok := doc.EdgeProbabilities[key]; ok {
			prob = p
		}
		if err := g.AddEdge(src, dst, prob); err != nil {
			return nil, fmt.Errorf("loader: edge %s: %w", key, err)
		}
	}

	for key := range doc.EdgeProbabilities {
		if _, _, err := parseEdgeKey(key); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func edgeKey(src, dst graphmodel.NodeID) string {
	return fmt.Sprintf("%d-%d", src, dst)
}

func parseEdgeKey(key string) (graphmodel.NodeID, graphmodel.NodeID, error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedEdgeKey, key)
	}
	src, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedEdgeKey, key)
	}
	dst, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedEdgeKey, key)
	}

	return graphmodel.NodeID(src), graphmodel.NodeID(dst), nil
}
