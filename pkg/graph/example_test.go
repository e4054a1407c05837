package graph_test

import (
	"fmt"

	"github.com/boxlay/boxlay/pkg/graph"
)

func ExampleGraph() {
	// Build a small service diagram: app talks to db and cache.
	g := graph.New()
	g.AddNode("app", 120, 60)
	g.AddNode("db", 100, 60)
	g.AddNode("cache", 90, 50)
	g.AddEdge("app", "db")
	g.AddEdge("app", "cache")
	g.AddEdge("db", "app") // duplicate (reversed), dropped
	g.Finalize()

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Degree of app:", g.Node("app").Degree())
	// Output:
	// Nodes: 3
	// Edges: 2
	// Degree of app: 2
}

func ExampleGraph_AddEdge() {
	g := graph.New()
	g.AddNode("a", 10, 10)
	g.AddNode("b", 10, 10)

	g.AddEdge("a", "b")
	g.AddEdge("a", "b")     // duplicate, dropped
	g.AddEdge("a", "ghost") // unknown endpoint, dropped

	fmt.Println("Edges:", g.EdgeCount())
	// Output:
	// Edges: 1
}

func ExampleMarshalGraph() {
	g := graph.New()
	g.AddNode("a", 100, 50)
	g.Finalize()

	data, _ := graph.MarshalGraph(g)
	fmt.Println(string(data))
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "a",
	//       "width": 100,
	//       "height": 50
	//     }
	//   ],
	//   "edges": []
	// }
}
