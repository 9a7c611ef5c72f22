// Package loader is an external collaborator: it parses CSV or JSON
// documents read from an io.Reader into a *graphmodel.Graph; the core
// never sees the documents directly. Neither format has a third-party parser anywhere in the
// example pack, so both adapters use encoding/csv and encoding/json —
// the one ambient concern this module renders on the standard library
// rather than a pack dependency (see DESIGN.md).
package loader

import "errors"

var (
	// ErrMalformedMatrix indicates an empty CSV file, or a row that does
	// not carry exactly one prior column plus one cell per row.
	ErrMalformedMatrix = errors.New("loader: malformed adjacency matrix")

	// ErrMalformedEdgeKey indicates a JSON edge_probabilities key is not
	// of the form "src-dst".
	ErrMalformedEdgeKey = errors.New("loader: malformed edge_probabilities key")
)
