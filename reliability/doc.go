// Package reliability is the single entry point the rest of the module
// (loaders, cmd/reliacli) is meant to call: it wires the Topology
// Preprocessor, Diamond Identifier, and Belief Engine into one
// Propagate call, with zerolog logging and Prometheus instrumentation
// at run granularity. No adapter package reaches into topology,
// diamond, cutset, or belief directly.
package reliability
