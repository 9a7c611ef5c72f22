// Package graphmodel defines the DAG, node, and edge types shared by every
// other package in this module: the raw input graph, its priors and edge
// probabilities, and the sentinel errors that flag a malformed input.
//
// A Graph is built incrementally with AddNode/AddEdge under a write lock
// (useful while a loader is still streaming rows in), then handed to
// topology.Build, which treats it as read-only from that point on. Nothing
// in this package computes belief, ancestry, or diamonds — it only owns the
// data and enforces the invariants from which those computations start.
package graphmodel

import "errors"

// Sentinel errors for graph construction and validation. Callers branch on
// these with errors.Is; they are never wrapped with formatted text at the
// definition site.
var (
	// ErrDuplicateNode indicates AddNode was called twice for the same NodeID.
	ErrDuplicateNode = errors.New("graphmodel: duplicate node")

	// ErrDuplicateEdge indicates AddEdge was called twice for the same (src,dst).
	ErrDuplicateEdge = errors.New("graphmodel: duplicate edge")

	// ErrSelfLoop indicates an edge whose source and destination are equal.
	ErrSelfLoop = errors.New("graphmodel: self-loops are not permitted")

	// ErrUnknownNode indicates an edge referenced a NodeID never added via AddNode.
	ErrUnknownNode = errors.New("graphmodel: edge references unknown node")

	// ErrMissingPrior indicates a node has no entry in NodePrior at validation time.
	ErrMissingPrior = errors.New("graphmodel: missing node prior")

	// ErrMissingEdgeProbability indicates an edge has no entry in EdgeProb.
	ErrMissingEdgeProbability = errors.New("graphmodel: missing edge probability")

	// ErrOutOfRange indicates a prior or probability outside the closed interval [0,1].
	ErrOutOfRange = errors.New("graphmodel: value outside [0,1]")

	// ErrInconsistentAdjacency indicates out_adj and in_adj disagree about an edge.
	ErrInconsistentAdjacency = errors.New("graphmodel: out/in adjacency disagree")

	// ErrNonSourceWithoutParent indicates a node with no incoming edges that
	// was not also declared a source by virtue of having zero parents consistently.
	ErrNonSourceWithoutParent = errors.New("graphmodel: non-source node has no parent")

	// ErrSourceWithParent indicates a node classified as a source still has
	// an incoming edge recorded against it.
	ErrSourceWithParent = errors.New("graphmodel: source node has a parent")

	// ErrCycleDetected indicates the edge set is not acyclic.
	ErrCycleDetected = errors.New("graphmodel: cycle detected")
)
