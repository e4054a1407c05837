package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/boxlay/boxlay/pkg/graph"
)

// Document is the canonical serialization format for a computed layout.
// It is the shape returned by the HTTP API, written by the CLI's layout
// command, stored by layout stores, and cached between pipeline runs.
type Document struct {
	ID    string         `json:"id,omitempty" bson:"_id,omitempty"`
	Name  string         `json:"name,omitempty" bson:"name,omitempty"`
	Graph graph.File     `json:"graph" bson:"graph"`
	Nodes []NodeResult   `json:"nodes" bson:"nodes"`
	Edges []EdgeResult   `json:"edges" bson:"edges"`
	Score float64        `json:"score" bson:"score"`
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// NodeResult is the final placement exposed for one node: center position
// and bounding rectangle.
type NodeResult struct {
	ID     string  `json:"id" bson:"id"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Left   float64 `json:"left" bson:"left"`
	Top    float64 `json:"top" bson:"top"`
	Right  float64 `json:"right" bson:"right"`
	Bottom float64 `json:"bottom" bson:"bottom"`
}

// EdgeResult is the final geometry exposed for one edge: endpoint positions
// for drawing connectors plus the current length.
type EdgeResult struct {
	From   string  `json:"from" bson:"from"`
	To     string  `json:"to" bson:"to"`
	FromX  float64 `json:"from_x" bson:"from_x"`
	FromY  float64 `json:"from_y" bson:"from_y"`
	ToX    float64 `json:"to_x" bson:"to_x"`
	ToY    float64 `json:"to_y" bson:"to_y"`
	Length float64 `json:"length" bson:"length"`
}

// Export converts a layout snapshot and its owning graph into the
// serialization format.
func Export(g *graph.Graph, l Layout) Document {
	doc := Document{
		Graph: graph.Export(g),
		Nodes: make([]NodeResult, 0, l.Len()),
		Edges: make([]EdgeResult, 0, len(l.Edges())),
	}
	for _, p := range l.Placements() {
		r := p.Rect()
		doc.Nodes = append(doc.Nodes, NodeResult{
			ID: p.ID, X: p.Pos.X, Y: p.Pos.Y,
			Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom,
		})
	}
	for _, e := range l.Edges() {
		doc.Edges = append(doc.Edges, EdgeResult{
			From: e.From, To: e.To,
			FromX: e.FromPos.X, FromY: e.FromPos.Y,
			ToX: e.ToPos.X, ToY: e.ToPos.Y,
			Length: e.Length,
		})
	}
	return doc
}

// MarshalDocument converts a document to indented JSON bytes.
func MarshalDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument writes a document as JSON to an io.Writer.
func WriteDocument(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDocument decodes a layout document from an io.Reader.
func ReadDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}
