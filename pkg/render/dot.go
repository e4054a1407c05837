package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/boxlay/boxlay/pkg/layout"
)

// ToDOT converts a layout document to Graphviz DOT with pinned positions.
// Every node carries a pos attribute (in points, Y flipped to Graphviz's
// upward axis) and a fixed size, so rendering with neato -n preserves the
// computed layout while Graphviz draws the decoration.
func ToDOT(doc layout.Document) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, n := range doc.Nodes {
		fmt.Fprintf(&buf, "  %q [pos=\"%.1f,%.1f!\", width=%.2f, height=%.2f, fixedsize=true];\n",
			n.ID, n.X, -n.Y, (n.Right-n.Left)/72, (n.Bottom-n.Top)/72)
	}

	buf.WriteString("\n")
	for _, e := range doc.Edges {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// DOTRender renders a DOT graph through Graphviz to the requested format
// ("svg" or "png"). This is the alternative engine for comparing boxlay's
// own SVG output against Graphviz's drawing of the same positions.
func DOTRender(ctx context.Context, dot string, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch strings.ToLower(format) {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("unsupported graphviz format: %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
