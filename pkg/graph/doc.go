// Package graph provides the diagram graph model: rectangular nodes
// connected by undirected, deduplicated edges.
//
// # Construction
//
// Build a graph by adding nodes and edges, then finalize it:
//
//	g := graph.New()
//	g.AddNode("app", 120, 60)
//	g.AddNode("db", 100, 60)
//	g.AddEdge("app", "db")
//	g.Finalize()
//
// Finalize derives each node's adjacency list and bounding radius. Layout
// operations require a finalized graph and return [ErrNotFinalized]
// otherwise.
//
// # Tolerance
//
// Construction favors silent tolerance over hard failure for malformed
// input: an edge with an unknown endpoint is dropped, a duplicate edge
// (either direction) is dropped, and re-adding a node ID overwrites the
// previous definition. Only structurally impossible nodes (empty ID,
// non-positive dimensions) are errors.
//
// # Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "app", "width": 120, "height": 60}],
//	  "edges": [{"from": "app", "to": "db"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("diagram.json")  // File → Graph
//	graph.WriteGraphFile(g, "out.json")          // Graph → File
//	data, _ := graph.MarshalGraph(g)             // Graph → []byte
//
// # Concurrency
//
// A finalized graph is safe for concurrent reads. Construction is not safe
// for concurrent use.
package graph
