package graphmodel

import "sync"

// NodeID is an opaque vertex identifier. The range need not be contiguous;
// IterationSets and the adjacency maps work equally well for dense or
// sparse ID spaces, since every package in this module stores per-node
// data in maps keyed by NodeID.
type NodeID int64

// EdgeID is the ordered pair identifying a directed edge. No self-loops
// (Src == Dst) and no duplicates are permitted by construction.
type EdgeID struct {
	Src NodeID
	Dst NodeID
}

// GraphOption configures a Graph at construction time.
type GraphOption func(g *Graph)

// WithCapacityHint preallocates internal maps for the expected node count,
// avoiding rehashing when the caller already knows the graph's size.
func WithCapacityHint(nodes int) GraphOption {
	return func(g *Graph) {
		if nodes > 0 {
			g.nodePrior = make(map[NodeID]float64, nodes)
			g.outAdj = make(map[NodeID]map[NodeID]struct{}, nodes)
			g.inAdj = make(map[NodeID]map[NodeID]struct{}, nodes)
		}
	}
}

// Graph is the raw DAG input: nodes with survival priors, edges with
// conditional transmission probabilities, and the adjacency maps derived
// from them. Graph is mutable only during construction (AddNode/AddEdge);
// every other package in this module treats it as read-only once Validate
// or topology.Build has run. AddNode/AddEdge take the write lock, so a
// loader may build the graph from concurrently-streamed input; every
// accessor takes the read lock, so the core's concurrent readers are safe.
type Graph struct {
	mu sync.RWMutex

	edges     []EdgeID
	edgeSet   map[EdgeID]struct{}
	edgeProb  map[EdgeID]float64
	nodePrior map[NodeID]float64
	outAdj    map[NodeID]map[NodeID]struct{}
	inAdj     map[NodeID]map[NodeID]struct{}
}

// NewGraph constructs an empty Graph, applying each GraphOption in order.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		edgeSet:   make(map[EdgeID]struct{}),
		edgeProb:  make(map[EdgeID]float64),
		nodePrior: make(map[NodeID]float64),
		outAdj:    make(map[NodeID]map[NodeID]struct{}),
		inAdj:     make(map[NodeID]map[NodeID]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// AddNode registers id with the given survival prior. Returns
// ErrDuplicateNode if id was already added, or ErrOutOfRange if prior is
// outside [0,1].
//
// Complexity: O(1). Concurrency: acquires a write lock.
func (g *Graph) AddNode(id NodeID, prior float64) error {
	if prior < 0 || prior > 1 {
		return ErrOutOfRange
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodePrior[id]; exists {
		return ErrDuplicateNode
	}
	g.nodePrior[id] = prior
	if _, ok := g.outAdj[id]; !ok {
		g.outAdj[id] = make(map[NodeID]struct{})
	}
	if _, ok := g.inAdj[id]; !ok {
		g.inAdj[id] = make(map[NodeID]struct{})
	}

	return nil
}

// AddEdge registers a directed edge src→dst with the given transmission
// probability. Both endpoints must already exist via AddNode. Returns
// ErrSelfLoop, ErrUnknownNode, ErrDuplicateEdge, or ErrOutOfRange.
//
// Complexity: O(1). Concurrency: acquires a write lock.
func (g *Graph) AddEdge(src, dst NodeID, prob float64) error {
	if src == dst {
		return ErrSelfLoop
	}
	if prob < 0 || prob > 1 {
		return ErrOutOfRange
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodePrior[src]; !ok {
		return ErrUnknownNode
	}
	if _, ok := g.nodePrior[dst]; !ok {
		return ErrUnknownNode
	}
	e := EdgeID{Src: src, Dst: dst}
	if _, exists := g.edgeSet[e]; exists {
		return ErrDuplicateEdge
	}

	g.edges = append(g.edges, e)
	g.edgeSet[e] = struct{}{}
	g.edgeProb[e] = prob
	g.outAdj[src][dst] = struct{}{}
	g.inAdj[dst][src] = struct{}{}

	return nil
}

// NodeCount returns the number of registered nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodePrior)
}

// HasNode reports whether id was registered via AddNode.
func (g *Graph) HasNode(id NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.nodePrior[id]

	return ok
}

// Nodes returns every registered NodeID in unspecified order.
func (g *Graph) Nodes() []NodeID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]NodeID, 0, len(g.nodePrior))
	for id := range g.nodePrior {
		out = append(out, id)
	}

	return out
}

// Edges returns the edge list in insertion order.
func (g *Graph) Edges() []EdgeID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]EdgeID, len(g.edges))
	copy(out, g.edges)

	return out
}

// NodePrior returns the survival prior of id and whether id is known.
func (g *Graph) NodePrior(id NodeID) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	p, ok := g.nodePrior[id]

	return p, ok
}

// EdgeProbability returns the transmission probability of e and whether e
// is known.
func (g *Graph) EdgeProbability(e EdgeID) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	p, ok := g.edgeProb[e]

	return p, ok
}

// Parents returns the set of nodes with an edge into id. The returned map
// is a defensive copy; mutating it has no effect on the Graph.
func (g *Graph) Parents(id NodeID) map[NodeID]struct{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return cloneSet(g.inAdj[id])
}

// Children returns the set of nodes reachable from id by one edge.
func (g *Graph) Children(id NodeID) map[NodeID]struct{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return cloneSet(g.outAdj[id])
}

// InDegree returns len(Parents(id)).
func (g *Graph) InDegree(id NodeID) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.inAdj[id])
}

// OutDegree returns len(Children(id)).
func (g *Graph) OutDegree(id NodeID) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.outAdj[id])
}

// Sources returns every node with zero parents.
func (g *Graph) Sources() map[NodeID]struct{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[NodeID]struct{})
	for id := range g.nodePrior {
		if len(g.inAdj[id]) == 0 {
			out[id] = struct{}{}
		}
	}

	return out
}

func cloneSet(src map[NodeID]struct{}) map[NodeID]struct{} {
	out := make(map[NodeID]struct{}, len(src))
	for k := range src {
		out[k] = struct{}{}
	}

	return out
}
