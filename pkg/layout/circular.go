package layout

import (
	"math"
	"sort"

	"github.com/boxlay/boxlay/pkg/geom"
	"github.com/boxlay/boxlay/pkg/graph"
)

// Circular produces the initial arrangement: nodes placed sequentially
// around a circle, ordered so connected nodes tend to sit next to each
// other. The circle is sized so neighbors are spaced by roughly the largest
// node radius, which bounds the initial overlap and speeds up relaxation.
//
// Returns graph.ErrNotFinalized when called before the graph is finalized.
// An empty graph yields an empty layout.
func Circular(g *graph.Graph) (Layout, error) {
	if !g.Finalized() {
		return Layout{}, graph.ErrNotFinalized
	}
	n := g.NodeCount()
	if n == 0 {
		return New(g, nil), nil
	}

	ordered := clusterOrder(g)

	// Enough circumference to space nodes by the max radius, plus one
	// radius of margin.
	maxRadius := g.MaxRadius()
	radius := float64(n)*maxRadius/(2*math.Pi) + maxRadius
	step := 2 * math.Pi / float64(n)

	positions := make(map[string]geom.Vector, n)
	for i, node := range ordered {
		angle := float64(i) * step
		positions[node.ID] = geom.Vector{
			X: math.Sin(angle) * radius,
			Y: math.Cos(angle) * radius,
		}
	}
	return New(g, positions), nil
}

// clusterOrder returns all nodes in a cluster-then-neighbor traversal:
// a depth-first visit that prefers low-degree, small nodes and descends into
// each visited node's neighborhood before moving on. Connected components
// come out contiguous, so the circular placement groups them together.
func clusterOrder(g *graph.Graph) []*graph.Node {
	order := make([]*graph.Node, 0, g.NodeCount())
	visited := make(map[string]bool, g.NodeCount())

	var visit func(nodes []*graph.Node)
	visit = func(nodes []*graph.Node) {
		for _, n := range sortForTraversal(nodes) {
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			order = append(order, n)
			visit(n.Neighbors())
		}
	}
	visit(g.Nodes())
	return order
}

// sortForTraversal orders nodes by ascending degree, then ascending height,
// then ID. The input slice is not modified.
func sortForTraversal(nodes []*graph.Node) []*graph.Node {
	sorted := make([]*graph.Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Degree() != b.Degree() {
			return a.Degree() < b.Degree()
		}
		if a.Height != b.Height {
			return a.Height < b.Height
		}
		return a.ID < b.ID
	})
	return sorted
}
