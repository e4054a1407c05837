package graph

// Graph owns the nodes and edges of a diagram. Nodes are indexed by ID and
// iterated in insertion order, which keeps every downstream traversal
// deterministic. The zero value is not usable - use New.
//
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes     map[string]*Node
	order     []string // insertion order of node IDs
	edges     []Edge
	finalized bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode inserts a node with the given dimensions. If a node with the same
// ID already exists it is overwritten (last write wins) and keeps its
// position in the iteration order. Adding a node invalidates a previous
// Finalize.
//
// Returns ErrInvalidNodeID for an empty ID and ErrInvalidDimensions for
// non-positive width or height.
func (g *Graph) AddNode(id string, width, height float64) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if _, exists := g.nodes[id]; !exists {
		g.order = append(g.order, id)
	}
	g.nodes[id] = &Node{ID: id, Width: width, Height: height}
	g.finalized = false
	return nil
}

// AddEdge connects two nodes. The call is a silent no-op when either
// endpoint is unknown or when an edge between the same pair (in either
// direction) already exists - malformed edges are expected caller behavior,
// not errors. Adding an edge invalidates a previous Finalize.
func (g *Graph) AddEdge(from, to string) {
	if _, ok := g.nodes[from]; !ok {
		return
	}
	if _, ok := g.nodes[to]; !ok {
		return
	}
	for _, e := range g.edges {
		if e.connects(from, to) {
			return
		}
	}
	g.edges = append(g.edges, Edge{From: from, To: to})
	g.finalized = false
}

// Finalize derives the per-node adjacency lists and radii from the current
// node and edge sets. It must be called after all nodes and edges are added
// and before any layout operation; layout entry points fail with
// ErrNotFinalized otherwise. Finalize is idempotent.
func (g *Graph) Finalize() {
	if g.finalized {
		return
	}
	for _, n := range g.nodes {
		n.neighbors = nil
	}
	for _, e := range g.edges {
		from, to := g.nodes[e.From], g.nodes[e.To]
		from.neighbors = appendNeighbor(from.neighbors, to)
		to.neighbors = appendNeighbor(to.neighbors, from)
	}
	for _, n := range g.nodes {
		n.Radius = n.halfDiagonal()
	}
	g.finalized = true
}

// appendNeighbor adds n to list unless already present.
// Edges are deduplicated, so the scan only guards multi-edge finalization.
func appendNeighbor(list []*Node, n *Node) []*Node {
	for _, existing := range list {
		if existing.ID == n.ID {
			return list
		}
	}
	return append(list, n)
}

// Finalized reports whether Finalize has run since the last mutation.
func (g *Graph) Finalized() bool { return g.finalized }

// Node returns the node with the given ID, or nil if unknown.
func (g *Graph) Node(id string) *Node { return g.nodes[id] }

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// IDs returns all node IDs in insertion order.
func (g *Graph) IDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Edges returns the edge list in insertion order.
// The returned slice is owned by the graph and must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// MaxRadius returns the largest node radius, or 0 for an empty graph.
// Only meaningful after Finalize.
func (g *Graph) MaxRadius() float64 {
	var r float64
	for _, n := range g.nodes {
		if n.Radius > r {
			r = n.Radius
		}
	}
	return r
}
