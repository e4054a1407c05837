package render

import (
	"bytes"
	"fmt"

	"github.com/boxlay/boxlay/pkg/layout"
)

// Default SVG appearance.
const (
	defaultFill       = "#ffffff"
	defaultStroke     = "#2d3748"
	defaultEdgeStroke = "#a0aec0"
	defaultFontSize   = 14.0
	cornerRadius      = 6.0
	canvasMargin      = 50.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	showLabels bool
	fill       string
	stroke     string
	edgeStroke string
	fontSize   float64
}

// WithLabels draws each node's ID centered in its rectangle.
func WithLabels() SVGOption {
	return func(r *svgRenderer) { r.showLabels = true }
}

// WithFill sets the node fill color.
func WithFill(color string) SVGOption {
	return func(r *svgRenderer) { r.fill = color }
}

// WithStroke sets the node outline color.
func WithStroke(color string) SVGOption {
	return func(r *svgRenderer) { r.stroke = color }
}

// SVG renders a layout document as a standalone SVG image. Edges are drawn
// first (under the nodes) as center-to-center lines; nodes as rounded
// rectangles. The viewBox is sized from the document's bounding extent plus
// a margin, so normalized and unnormalized layouts both render fully.
func SVG(doc layout.Document, opts ...SVGOption) []byte {
	r := svgRenderer{
		fill:       defaultFill,
		stroke:     defaultStroke,
		edgeStroke: defaultEdgeStroke,
		fontSize:   defaultFontSize,
	}
	for _, opt := range opts {
		opt(&r)
	}

	width, height := canvasExtent(doc)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	for _, e := range doc.Edges {
		fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			e.FromX, e.FromY, e.ToX, e.ToY, r.edgeStroke)
	}

	for _, n := range doc.Nodes {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			n.Left, n.Top, n.Right-n.Left, n.Bottom-n.Top, cornerRadius, r.fill, r.stroke)
		if r.showLabels {
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="%.0f">%s</text>`+"\n",
				n.X, n.Y, r.fontSize, escapeXML(n.ID))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// canvasExtent returns the drawing area needed to contain every node
// rectangle plus the canvas margin.
func canvasExtent(doc layout.Document) (width, height float64) {
	for _, n := range doc.Nodes {
		if n.Right > width {
			width = n.Right
		}
		if n.Bottom > height {
			height = n.Bottom
		}
	}
	return width + canvasMargin, height + canvasMargin
}

// escapeXML replaces the characters that would break SVG text content.
func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
