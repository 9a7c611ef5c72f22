// Package cache implements the Memoization Cache: a concurrent,
// insert-once map from a canonicalized (sub-edgelist, conditioned-prior
// vector) key to the full belief map the Conditioning Solver computed
// for that sub-problem. Its purpose is purely to collapse repeated
// conditioned evaluations across the 2^k cutset-state enumeration and
// across recursive conditioning at nested diamonds — a miss only costs
// time, never correctness, since canonicalization never trusts the hash
// alone (entries are looked up by Key.Canon).
//
// Keys hash with xxhash (cespare/xxhash/v2) for speed, but the full
// canonical byte encoding is retained alongside the hash so a collision
// can never silently return the wrong entry.
package cache

import "errors"

// ErrComputeFailed names a failed compute function. GetOrCompute does
// not return it: it passes the compute function's own error through
// unchanged, and does not cache the failure, so a subsequent call
// retries.
var ErrComputeFailed = errors.New("cache: compute function failed")
