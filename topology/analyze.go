package topology

import "github.com/Temi-Tory/IPM-Working-sub011/graphmodel"

// Topology bundles every derived structure the rest of this module needs:
// the iteration sets, the ancestor/descendant closures, and the fork/join
// classification. It is produced once per propagation run by Analyze and
// is never mutated afterward.
type Topology struct {
	Sets    IterationSets
	Close   Closure
	Forks   map[graphmodel.NodeID]struct{}
	Joins   map[graphmodel.NodeID]struct{}
	Sources map[graphmodel.NodeID]struct{}
}

// Analyze runs the full Topology Preprocessor pipeline: Build (acyclicity),
// FindIterationSets (levels + closures), Validate, and
// IdentifyForksAndJoins, in that order, short-circuiting on the first error.
func Analyze(g *graphmodel.Graph) (*Topology, error) {
	if err := Build(g); err != nil {
		return nil, err
	}

	sets, closure, err := FindIterationSets(g)
	if err != nil {
		return nil, err
	}

	if err := Validate(g, sets); err != nil {
		return nil, err
	}

	forks, joins := IdentifyForksAndJoins(g)

	return &Topology{Sets: sets, Close: closure, Forks: forks, Joins: joins, Sources: g.Sources()}, nil
}
