// Package diamond implements the Diamond Identifier: for every join node
// it finds every maximal re-convergent sub-DAG ("diamond") rooted at a
// common fork ancestor, so the Belief Engine knows which parent
// contributions cannot simply be summed under independence and must
// instead go through the Conditioning Solver.
//
// A join participates in a diamond iff some fork ancestor f has at least
// two children whose downstream reach-sets, restricted to the join's
// ancestor closure, both reach the join and share no node other than the
// join (internally node-disjoint branches). The induced edges of those
// branches are extended to a fixed point so every internal non-fork
// node's upstream dependencies are captured before the cutset finder
// ever sees them, then deduplicated by canonical edge set.
package diamond

import "errors"

// ErrNilTopology indicates FindAll was called with a nil *topology.Topology.
var ErrNilTopology = errors.New("diamond: topology is nil")
