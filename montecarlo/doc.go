// Package montecarlo is the independent reference implementation the
// belief package's exact results are validated against: sample every
// node and edge's Bernoulli state, BFS forward from surviving sources,
// and average over N trials. It shares no code with package belief by
// design — a bug mirrored in both would never show up as a
// discrepancy.
package montecarlo

import "errors"

// ErrInvalidTrials is returned when Estimate is asked to run zero or a
// negative number of trials.
var ErrInvalidTrials = errors.New("montecarlo: trials must be positive")
