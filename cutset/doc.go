// Package cutset implements the Cutset Finder: given a diamond sub-DAG
// and its join, it returns a set of "breaking" nodes whose conditioning
// (treating each as an independent Bernoulli source during enumeration)
// eliminates every fork-to-join multi-path structure inside the diamond.
//
// Minimality is a performance concern, not a correctness one: the
// algorithm here starts from the diamond's own fork roots (HighestNodes)
// and then, until nothing changes, adds every internal fork that still
// has two or more directed paths to the join avoiding the nodes already
// cut (the nested-diamond case).
package cutset
