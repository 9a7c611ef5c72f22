// Package belief implements both the Belief Engine and the Conditioning
// Solver. Spec-wise these are two components (§4.4 and §4.5); in Go they
// live in one package because they are mutually recursive — the engine
// dispatches every diamond join to the solver, and the solver rebuilds a
// conditioned sub-problem and calls straight back into the engine. Per
// the Design Notes, that recursion is a plain top-level function call,
// never a closure capturing solver-local mutable state: ResolveJoin and
// Propagate both take every piece of state they need as an explicit
// argument.
//
// Propagate walks nodes in topological order (one iteration set at a
// time, with a hard barrier between sets so no node observes a
// not-yet-finalized parent belief) and combines contributions from
// non-diamond parents and diamond joins with inclusion-exclusion.
// ResolveJoin builds a diamond's conditioned sub-DAG once, enumerates the
// 2^k states of its cutset, and for each state recurses into Propagate
// with that state's priors, weighting each state's join belief by the
// cutset state's probability.
package belief

import (
	"errors"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
)

// Map is a belief assignment: the probability, per node, that it is
// reachable-and-alive from some alive source.
type Map map[graphmodel.NodeID]float64

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

var (
	// ErrMissingParentBelief indicates the propagation order was violated:
	// a node was processed before one of its parents finished. This is an
	// internal bug, never a user-input condition.
	ErrMissingParentBelief = errors.New("belief: missing parent belief (topological order violated)")

	// ErrMissingEdgeProbability indicates an edge referenced during
	// propagation has no recorded probability in the graph.
	ErrMissingEdgeProbability = errors.New("belief: missing edge probability")

	// ErrCutsetInsufficient indicates the Cutset Finder returned a set that
	// did not eliminate all diamond structure in a conditioned sub-problem —
	// a Cutset Finder bug, not a caller error.
	ErrCutsetInsufficient = errors.New("belief: cutset insufficient to eliminate diamond structure")

	// ErrMissingBeliefForCutsetNode indicates a cutset node's marginal
	// belief was not yet available when the Conditioning Solver needed it
	// to weight a cutset state — implies topological order was violated.
	ErrMissingBeliefForCutsetNode = errors.New("belief: missing belief for cutset node")
)
