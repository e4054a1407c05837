package layout

import (
	"github.com/boxlay/boxlay/pkg/geom"
	"github.com/boxlay/boxlay/pkg/graph"
)

// Placement is one node's position within a layout snapshot. The node's
// dimensions are copied in so rectangle queries never reach back into the
// graph.
type Placement struct {
	ID     string
	Pos    geom.Vector // center position
	Width  float64
	Height float64
}

// Rect returns the node's bounding rectangle, derived from the center
// position and the node dimensions.
func (p Placement) Rect() geom.Rect {
	return geom.Rect{
		Left:   p.Pos.X - p.Width/2,
		Top:    p.Pos.Y - p.Height/2,
		Right:  p.Pos.X + p.Width/2,
		Bottom: p.Pos.Y + p.Height/2,
	}
}

// Padded returns the bounding rectangle expanded by margin on all sides.
// Padded rectangles feed overlap scoring only, never force computation.
func (p Placement) Padded(margin float64) geom.Rect {
	return p.Rect().Expand(margin)
}

// PlacedEdge is an edge with its endpoints' positions and the cached
// Euclidean length at the time the layout snapshot was built.
type PlacedEdge struct {
	From, To string
	FromPos  geom.Vector
	ToPos    geom.Vector
	Length   float64
}

// Layout is an immutable assignment of positions to every node of a graph
// at one point in the algorithm's progression. Layouts are produced
// functionally: every position change builds a brand-new Layout with edge
// lengths recomputed from the new positions. A Layout's node set always
// equals the owning graph's node set, and its edge list is derived 1:1 from
// the graph's edges each time it is built.
type Layout struct {
	order      []string
	placements map[string]Placement
	edges      []PlacedEdge
}

// New builds a layout snapshot from a graph and a full position assignment.
// Edge lengths are computed fresh from the supplied positions. Nodes missing
// from positions are placed at the origin; this never happens when positions
// come from a prior snapshot of the same graph.
func New(g *graph.Graph, positions map[string]geom.Vector) Layout {
	l := Layout{
		order:      g.IDs(),
		placements: make(map[string]Placement, g.NodeCount()),
	}
	for _, n := range g.Nodes() {
		l.placements[n.ID] = Placement{
			ID:     n.ID,
			Pos:    positions[n.ID],
			Width:  n.Width,
			Height: n.Height,
		}
	}
	edges := g.Edges()
	l.edges = make([]PlacedEdge, len(edges))
	for i, e := range edges {
		from, to := l.placements[e.From].Pos, l.placements[e.To].Pos
		l.edges[i] = PlacedEdge{
			From:    e.From,
			To:      e.To,
			FromPos: from,
			ToPos:   to,
			Length:  to.Sub(from).Magnitude(),
		}
	}
	return l
}

// Len returns the number of placed nodes.
func (l Layout) Len() int { return len(l.order) }

// Empty reports whether the layout places no nodes.
func (l Layout) Empty() bool { return len(l.order) == 0 }

// Placement returns the placement for a node ID.
func (l Layout) Placement(id string) (Placement, bool) {
	p, ok := l.placements[id]
	return p, ok
}

// Placements returns all placements in the graph's insertion order.
func (l Layout) Placements() []Placement {
	out := make([]Placement, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.placements[id])
	}
	return out
}

// IDs returns the placed node IDs in the graph's insertion order.
func (l Layout) IDs() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Edges returns the placed edges with their cached lengths.
// The returned slice is owned by the layout and must not be modified.
func (l Layout) Edges() []PlacedEdge { return l.edges }

// Positions returns a copy of the position assignment, suitable for
// mutation when building the next snapshot.
func (l Layout) Positions() map[string]geom.Vector {
	out := make(map[string]geom.Vector, len(l.placements))
	for id, p := range l.placements {
		out[id] = p.Pos
	}
	return out
}

// Bounds returns the bounding box enclosing all unpadded node rectangles.
// The zero rect is returned for an empty layout.
func (l Layout) Bounds() geom.Rect {
	if l.Empty() {
		return geom.Rect{}
	}
	bounds := l.placements[l.order[0]].Rect()
	for _, id := range l.order[1:] {
		bounds = geom.Union(bounds, l.placements[id].Rect())
	}
	return bounds
}

// Move returns a new layout with a single node translated by delta and all
// other nodes held fixed. Edge lengths are recomputed from the new
// positions. Unknown IDs yield an unchanged (but freshly built) snapshot.
func (l Layout) Move(g *graph.Graph, id string, delta geom.Vector) Layout {
	positions := l.Positions()
	if pos, ok := positions[id]; ok {
		positions[id] = pos.Add(delta)
	}
	return New(g, positions)
}

// Translate returns a new layout with every node shifted by delta.
func (l Layout) Translate(g *graph.Graph, delta geom.Vector) Layout {
	positions := l.Positions()
	for id, pos := range positions {
		positions[id] = pos.Add(delta)
	}
	return New(g, positions)
}
