package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// File is the canonical node-link serialization format for diagram graphs.
// Used for input files, API requests, storage, and caching. The format is
// human-readable and round-trips losslessly through import and export.
type File struct {
	Nodes []NodeJSON `json:"nodes" bson:"nodes"`
	Edges []EdgeJSON `json:"edges" bson:"edges"`
}

// NodeJSON is the serialized form of a node.
type NodeJSON struct {
	ID     string  `json:"id" bson:"id"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// EdgeJSON is the serialized form of an edge.
type EdgeJSON struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// MarshalGraph converts a graph to indented JSON bytes.
// Nodes and edges appear in insertion order for deterministic output.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as JSON to an io.Writer.
// Use MarshalGraph for in-memory serialization or WriteGraphFile for files.
func WriteGraph(g *Graph, w io.Writer) error {
	out := Export(g)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph from an io.Reader and finalizes it.
// Nodes with invalid dimensions fail the read; edges referencing unknown
// nodes or duplicating an existing pair are dropped silently, matching
// AddEdge semantics.
func ReadGraph(r io.Reader) (*Graph, error) {
	var data File
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return Import(data)
}

// ReadGraphFile reads a JSON file and returns the decoded, finalized graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// UnmarshalGraph deserializes JSON bytes to the wire format.
func UnmarshalGraph(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, err
	}
	return f, nil
}

// =============================================================================
// Wire Format Conversion
// =============================================================================

// Export converts a graph to its serialization format.
func Export(g *Graph) File {
	out := File{
		Nodes: make([]NodeJSON, 0, g.NodeCount()),
		Edges: make([]EdgeJSON, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, NodeJSON{ID: n.ID, Width: n.Width, Height: n.Height})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, EdgeJSON{From: e.From, To: e.To})
	}
	return out
}

// Import builds a finalized graph from the wire format.
func Import(f File) (*Graph, error) {
	g := New()
	for _, n := range f.Nodes {
		if err := g.AddNode(n.ID, n.Width, n.Height); err != nil {
			return nil, fmt.Errorf("add node %q: %w", n.ID, err)
		}
	}
	for _, e := range f.Edges {
		g.AddEdge(e.From, e.To)
	}
	g.Finalize()
	return g, nil
}
