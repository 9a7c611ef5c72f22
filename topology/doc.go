// Package topology implements the Topology Preprocessor: it turns a raw
// graphmodel.Graph into the derived, read-only structures every other
// package consumes — fork/join classification, topological iteration
// sets, and full ancestor/descendant closures.
//
// Build validates acyclicity via a DFS coloring scheme (the same
// white/gray/black state machine the rest of the lvlath-descended
// packages use for cycle detection), then Analyze performs a Kahn-style
// level assignment and accumulates ancestor/descendant sets bottom-up
// along that order.
//
// Complexity: Build and Analyze are both O(V+E) in the number of nodes
// and edges, plus O(V^2) worst case for the ancestor/descendant closures
// on a graph that is one long antichain-free chain; see FindIterationSets's
// doc comment for the precise bound.
package topology

import "errors"

// ErrCycleDetected indicates the input graph is not acyclic.
var ErrCycleDetected = errors.New("topology: cycle detected")

// ErrInvalidGraph indicates a non-source node has no parents, or a
// source node unexpectedly has one — a contradiction that can only
// arise from a graphmodel.Graph built outside its own invariants.
var ErrInvalidGraph = errors.New("topology: invalid graph")
