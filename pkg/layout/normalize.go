package layout

import (
	"github.com/boxlay/boxlay/pkg/geom"
	"github.com/boxlay/boxlay/pkg/graph"
)

// DefaultOffset is the margin left between the canvas origin and the
// top-left corner of the normalized layout.
const DefaultOffset = 50.0

// Normalize translates every node so the minimum left/top coordinate across
// all node rectangles sits at (offset, offset). The result has non-negative,
// origin-anchored coordinates suitable for rendering in a bounded canvas.
// Relative positions are unchanged. An empty layout is returned as-is.
func Normalize(g *graph.Graph, l Layout, offset float64) Layout {
	if l.Empty() {
		return l
	}
	bounds := l.Bounds()
	return l.Translate(g, geom.Vector{
		X: offset - bounds.Left,
		Y: offset - bounds.Top,
	})
}
