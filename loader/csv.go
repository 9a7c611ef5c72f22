package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
)

// FromCSV reads a square adjacency-matrix file: row i, column 0 is node
// i's survival prior; columns 1..N are edge_prob[i][j-1] for edge i→j-1.
// A zero or blank cell in columns 1..N means no edge. NodeIDs are
// 0-based row positions.
//
// Complexity: O(N²) for an N-node matrix.
func FromCSV(r io.Reader) (*graphmodel.Graph, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loader: reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedMatrix)
	}

	n := len(records)
	for _, row := range records {
		if len(row) != n+1 {
			return nil, fmt.Errorf("%w: expected %d columns (prior + %d adjacency), got %d", ErrMalformedMatrix, n+1, n, len(row))
		}
	}

	g := graphmodel.NewGraph(graphmodel.WithCapacityHint(n))

	for i, row := range records {
		prior, err := parseCell(row[0])
		if err != nil {
			return nil, fmt.Errorf("loader: row %d prior: %w", i, err)
		}
		if err := g.AddNode(graphmodel.NodeID(i), prior); err != nil {
			return nil, fmt.Errorf("loader: row %d: %w", i, err)
		}
	}

	for i, row := range records {
		for j := 0; j < n; j++ {
			cell := row[j+1]
			if cell == "" {
				continue
			}
			prob, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("loader: cell (%d,%d): %w", i, j, err)
			}
			if prob <= 0 {
				continue
			}
			if err := g.AddEdge(graphmodel.NodeID(i), graphmodel.NodeID(j), prob); err != nil {
				return nil, fmt.Errorf("loader: edge (%d,%d): %w", i, j, err)
			}
		}
	}

	return g, nil
}

func parseCell(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
