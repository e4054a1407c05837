package graph

import (
	"math"
	"testing"
)

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		w, h    float64
		wantErr error
	}{
		{"Valid", "a", 100, 60, nil},
		{"EmptyID", "", 100, 60, ErrInvalidNodeID},
		{"ZeroWidth", "a", 0, 60, ErrInvalidDimensions},
		{"NegativeHeight", "a", 100, -1, ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			err := g.AddNode(tt.id, tt.w, tt.h)
			if err != tt.wantErr {
				t.Errorf("AddNode = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddNodeOverwrite(t *testing.T) {
	g := New()
	g.AddNode("a", 100, 60)
	g.AddNode("b", 50, 50)
	g.AddNode("a", 200, 80) // last write wins

	if got := g.NodeCount(); got != 2 {
		t.Fatalf("NodeCount = %d, want 2", got)
	}
	if n := g.Node("a"); n.Width != 200 || n.Height != 80 {
		t.Errorf("node a = %vx%v, want 200x80", n.Width, n.Height)
	}
	// Insertion order keeps the original position.
	if ids := g.IDs(); ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs = %v, want [a b]", ids)
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]string
		want  int
	}{
		{"Single", [][2]string{{"a", "b"}}, 1},
		{"DuplicateIdempotent", [][2]string{{"a", "b"}, {"a", "b"}}, 1},
		{"ReversedIsDuplicate", [][2]string{{"a", "b"}, {"b", "a"}}, 1},
		{"UnknownSource", [][2]string{{"x", "b"}}, 0},
		{"UnknownTarget", [][2]string{{"a", "x"}}, 0},
		{"Mixed", [][2]string{{"a", "b"}, {"b", "c"}, {"c", "b"}, {"a", "x"}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.AddNode("a", 10, 10)
			g.AddNode("b", 10, 10)
			g.AddNode("c", 10, 10)
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}
			if got := g.EdgeCount(); got != tt.want {
				t.Errorf("EdgeCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFinalize(t *testing.T) {
	g := New()
	g.AddNode("a", 100, 100)
	g.AddNode("b", 60, 80)
	g.AddNode("c", 30, 40)
	g.AddEdge("a", "b")
	g.AddEdge("c", "a")

	if g.Finalized() {
		t.Fatal("graph finalized before Finalize")
	}
	g.Finalize()
	if !g.Finalized() {
		t.Fatal("graph not finalized after Finalize")
	}

	// Radius = half-diagonal of the bounding box.
	wantRadius := map[string]float64{
		"a": math.Sqrt(100*100+100*100) / 2,
		"b": math.Sqrt(60*60+80*80) / 2, // 50
		"c": math.Sqrt(30*30+40*40) / 2, // 25
	}
	for id, want := range wantRadius {
		if got := g.Node(id).Radius; math.Abs(got-want) > 1e-9 {
			t.Errorf("radius(%s) = %v, want %v", id, got, want)
		}
	}

	// Adjacency covers both directions of each incident edge.
	wantNeighbors := map[string][]string{
		"a": {"b", "c"},
		"b": {"a"},
		"c": {"a"},
	}
	for id, want := range wantNeighbors {
		got := g.Node(id).Neighbors()
		if len(got) != len(want) {
			t.Fatalf("neighbors(%s) = %d nodes, want %d", id, len(got), len(want))
		}
		for i, n := range got {
			if n.ID != want[i] {
				t.Errorf("neighbors(%s)[%d] = %s, want %s", id, i, n.ID, want[i])
			}
		}
	}

	if got := g.MaxRadius(); math.Abs(got-wantRadius["a"]) > 1e-9 {
		t.Errorf("MaxRadius = %v, want %v", got, wantRadius["a"])
	}
}

func TestFinalizeInvalidatedByMutation(t *testing.T) {
	g := New()
	g.AddNode("a", 10, 10)
	g.Finalize()

	g.AddNode("b", 10, 10)
	if g.Finalized() {
		t.Error("AddNode should invalidate finalization")
	}

	g.Finalize()
	g.AddEdge("a", "b")
	if g.Finalized() {
		t.Error("AddEdge should invalidate finalization")
	}
}

func TestDeterministicIteration(t *testing.T) {
	g := New()
	for _, id := range []string{"z", "m", "a", "q"} {
		g.AddNode(id, 10, 10)
	}

	want := []string{"z", "m", "a", "q"}
	for range 10 {
		got := g.IDs()
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("IDs = %v, want %v", got, want)
			}
		}
	}
}

func TestEmptyGraph(t *testing.T) {
	g := New()
	g.Finalize()

	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("empty graph has %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if g.MaxRadius() != 0 {
		t.Errorf("MaxRadius = %v, want 0", g.MaxRadius())
	}
	if !g.Finalized() {
		t.Error("empty graph should finalize")
	}
}
