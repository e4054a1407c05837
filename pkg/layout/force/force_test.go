package force

import (
	"math"
	"testing"

	"github.com/boxlay/boxlay/pkg/geom"
	"github.com/boxlay/boxlay/pkg/graph"
	"github.com/boxlay/boxlay/pkg/layout"
)

func pairGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	g.AddNode("a", 100, 100)
	g.AddNode("b", 100, 100)
	g.AddEdge("a", "b")
	g.Finalize()
	return g
}

func TestRelaxDeterministic(t *testing.T) {
	g := pairGraph(t)
	seed, err := layout.Circular(g)
	if err != nil {
		t.Fatalf("Circular: %v", err)
	}

	first := Relax(g, seed, Defaults())
	second := Relax(g, seed, Defaults())

	for _, id := range g.IDs() {
		p1, _ := first.Placement(id)
		p2, _ := second.Placement(id)
		if p1.Pos != p2.Pos {
			t.Errorf("node %s diverged: %v vs %v", id, p1.Pos, p2.Pos)
		}
	}
}

func TestRelaxConnectedPair(t *testing.T) {
	g := pairGraph(t)
	seed, err := layout.Circular(g)
	if err != nil {
		t.Fatalf("Circular: %v", err)
	}

	relaxed := Relax(g, seed, Defaults())

	a, _ := relaxed.Placement("a")
	b, _ := relaxed.Placement("b")
	dist := b.Pos.Sub(a.Pos).Magnitude()

	// The spring pulls toward 100 while repulsion holds the rectangles
	// apart; the pair settles past the spring target but within a couple
	// of node widths, and never overlapping.
	if dist < 100 {
		t.Errorf("pair overlaps: center distance %v < 100", dist)
	}
	if dist > 400 {
		t.Errorf("pair diverged: center distance %v", dist)
	}
	if got := geom.Intersection(a.Rect(), b.Rect()); got != 0 {
		t.Errorf("overlap area = %v, want 0", got)
	}
}

func TestRelaxIsolatedNode(t *testing.T) {
	g := graph.New()
	g.AddNode("solo", 100, 100)
	g.Finalize()

	seed, err := layout.Circular(g)
	if err != nil {
		t.Fatalf("Circular: %v", err)
	}
	initial := seed.Placements()[0].Pos.Magnitude()

	relaxed := Relax(g, seed, Defaults())
	final := relaxed.Placements()[0].Pos.Magnitude()

	// No spring or repulsion partners: only gravity acts, shrinking the
	// distance to the origin by 1% per step.
	want := initial * math.Pow(0.99, float64(Defaults().Steps))
	if math.Abs(final-want) > 1e-6 {
		t.Errorf("distance after relax = %v, want %v", final, want)
	}
}

func TestStepProducesNewSnapshot(t *testing.T) {
	g := pairGraph(t)
	seed, err := layout.Circular(g)
	if err != nil {
		t.Fatalf("Circular: %v", err)
	}

	next := Step(g, seed, Defaults())

	moved := false
	for _, id := range g.IDs() {
		before, _ := seed.Placement(id)
		after, _ := next.Placement(id)
		if before.Pos != after.Pos {
			moved = true
		}
	}
	if !moved {
		t.Error("step moved no nodes")
	}

	// Input snapshot retains its original edge length.
	if seed.Edges()[0].Length == next.Edges()[0].Length {
		t.Error("edge length unchanged across step")
	}
}

func TestForceClamp(t *testing.T) {
	// Two overlapping nodes produce a repulsion application at the clamp
	// ceiling; a single step must not displace a node further than the
	// total of its clamped applications.
	g := pairGraph(t)
	l := layout.New(g, map[string]geom.Vector{
		"a": {X: 0, Y: 0},
		"b": {X: 1, Y: 0},
	})

	cfg := Defaults()
	next := Step(g, l, cfg)

	for _, id := range g.IDs() {
		before, _ := l.Placement(id)
		after, _ := next.Placement(id)
		displacement := after.Pos.Sub(before.Pos).Magnitude()
		// Three force sources, each individually capped: spring end,
		// two repulsion orderings, gravity.
		limit := 3*cfg.MaxForce + cfg.MaxForce
		if displacement > limit {
			t.Errorf("node %s displaced %v, beyond clamp limit %v", id, displacement, limit)
		}
	}
}

func TestRelaxEmptyLayout(t *testing.T) {
	g := graph.New()
	g.Finalize()
	l := layout.New(g, nil)

	if got := Relax(g, l, Defaults()); !got.Empty() {
		t.Error("expected empty layout")
	}
}
