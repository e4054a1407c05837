package graph

import (
	"errors"
	"math"
)

var (
	// ErrNotFinalized is returned by layout entry points when the graph has
	// not had Finalize called. Adjacency lists and radii are undefined until
	// finalization, so layout on an unfinalized graph is a programming error.
	ErrNotFinalized = errors.New("graph not finalized: call Finalize after adding nodes and edges")

	// ErrInvalidNodeID is returned by AddNode when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrInvalidDimensions is returned by AddNode when width or height is
	// not a positive number.
	ErrInvalidDimensions = errors.New("node width and height must be positive")
)

// Node is a fixed-size rectangular entity to be positioned. Width and Height
// are set at creation and never change. Radius (the half-diagonal of the
// bounding box) and the adjacency list are derived during [Graph.Finalize]
// and must not be read before it runs.
type Node struct {
	ID     string
	Width  float64
	Height float64

	// Radius is the half-diagonal of the node's bounding box,
	// computed by Finalize.
	Radius float64

	// neighbors holds the nodes connected by any edge, in edge discovery
	// order, deduplicated. Populated by Finalize.
	neighbors []*Node
}

// Neighbors returns the nodes connected to n by any edge, in the order the
// connecting edges were added. The returned slice is owned by the graph and
// must not be modified.
func (n *Node) Neighbors() []*Node { return n.neighbors }

// Degree returns the number of distinct nodes connected to n.
func (n *Node) Degree() int { return len(n.neighbors) }

// halfDiagonal computes the radius of the node's bounding circle.
func (n *Node) halfDiagonal() float64 {
	return math.Sqrt(n.Width*n.Width/4 + n.Height*n.Height/4)
}

// Edge is an undirected connection between two nodes. A graph never holds
// two edges for the same unordered pair. Edges are immutable once added.
type Edge struct {
	From string
	To   string
}

// connects reports whether the edge links the same unordered pair as (a, b).
func (e Edge) connects(a, b string) bool {
	return (e.From == a && e.To == b) || (e.From == b && e.To == a)
}
