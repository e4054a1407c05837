// Package force implements the spring relaxation pass: a physics simulation
// that pulls connected nodes toward a target separation, pushes all node
// pairs apart, and drifts everything gently toward the origin.
//
// Each step is a pure function from one immutable [layout.Layout] snapshot
// to the next. The simulation is O(n²) per step in the node count and fully
// deterministic: identical inputs produce identical outputs.
package force

import (
	"github.com/boxlay/boxlay/pkg/geom"
	"github.com/boxlay/boxlay/pkg/graph"
	"github.com/boxlay/boxlay/pkg/layout"
)

// Config holds the tuning constants for the relaxation pass. The zero value
// is not usable - start from [Defaults] and override fields as needed.
type Config struct {
	// SpringLength is the separation each edge relaxes toward.
	SpringLength float64 `json:"spring_length" toml:"spring_length"`

	// SpringStrength scales the Hooke displacement applied per edge.
	SpringStrength float64 `json:"spring_strength" toml:"spring_strength"`

	// Repulsion is the Coulomb constant for pairwise node repulsion.
	//
	// The pair loop visits ordered pairs and applies forces to both nodes
	// of every ordering, so each unordered pair is repelled twice per
	// step. This matches the reference behavior; halve the constant for a
	// single-count formulation of equivalent strength.
	Repulsion float64 `json:"repulsion" toml:"repulsion"`

	// MinSeparation is added to every rectangle distance before the
	// inverse-square falloff, bounding the force between touching nodes.
	MinSeparation float64 `json:"min_separation" toml:"min_separation"`

	// Gravity scales the pull of every node toward the origin.
	Gravity float64 `json:"gravity" toml:"gravity"`

	// MaxForce caps the magnitude of each individual force application
	// (per spring end, per pair ordering, per gravity pull) before it is
	// accumulated. Many small clamped contributions can still sum past
	// the cap.
	MaxForce float64 `json:"max_force" toml:"max_force"`

	// Steps is the number of sequential relaxation steps in a full pass.
	Steps int `json:"steps" toml:"steps"`
}

// Defaults returns the standard tuning.
func Defaults() Config {
	return Config{
		SpringLength:   100,
		SpringStrength: 0.5,
		Repulsion:      500000,
		MinSeparation:  50,
		Gravity:        0.01,
		MaxForce:       100,
		Steps:          50,
	}
}

// accumulator collects per-node force vectors for one step and is discarded
// once the next snapshot is built.
type accumulator struct {
	forces   map[string]geom.Vector
	maxForce float64
}

func newAccumulator(n int, maxForce float64) *accumulator {
	return &accumulator{
		forces:   make(map[string]geom.Vector, n),
		maxForce: maxForce,
	}
}

// apply clamps a single force application to the configured cap and adds it
// to the node's running total.
func (a *accumulator) apply(id string, f geom.Vector) {
	a.forces[id] = a.forces[id].Add(f.Clamp(a.maxForce))
}

// Step runs one relaxation iteration and returns the next snapshot. The
// input layout is not modified. An empty layout is returned unchanged.
func Step(g *graph.Graph, l layout.Layout, cfg Config) layout.Layout {
	if l.Empty() {
		return l
	}

	acc := newAccumulator(l.Len(), cfg.MaxForce)
	applySprings(l, cfg, acc)
	applyRepulsion(l, cfg, acc)
	applyGravity(l, cfg, acc)

	positions := l.Positions()
	for id, f := range acc.forces {
		positions[id] = positions[id].Add(f)
	}
	return layout.New(g, positions)
}

// Relax runs cfg.Steps sequential relaxation steps, each consuming the
// previous immutable snapshot.
func Relax(g *graph.Graph, l layout.Layout, cfg Config) layout.Layout {
	if l.Empty() {
		return l
	}
	for range cfg.Steps {
		l = Step(g, l, cfg)
	}
	return l
}

// applySprings applies Hooke's law along every edge: nodes too far apart
// are pulled together, nodes too close are pushed toward SpringLength.
// Edge lengths come from the snapshot's cache.
func applySprings(l layout.Layout, cfg Config, acc *accumulator) {
	for _, e := range l.Edges() {
		direction := e.ToPos.Sub(e.FromPos).Normalize()
		displacement := cfg.SpringLength - e.Length
		f := direction.Scale(displacement * cfg.SpringStrength)
		acc.apply(e.To, f)
		acc.apply(e.From, f.Scale(-1))
	}
}

// applyRepulsion applies Coulomb's law over every ordered pair of distinct
// nodes. Falloff uses rectangle-to-rectangle distance (not center distance)
// plus MinSeparation, so large nodes repel as strongly at their borders as
// small ones.
func applyRepulsion(l layout.Layout, cfg Config, acc *accumulator) {
	placements := l.Placements()
	for i, n1 := range placements {
		for j, n2 := range placements {
			if i == j {
				continue
			}
			direction := n1.Pos.Sub(n2.Pos).Normalize()
			distance := geom.Distance(n1.Rect(), n2.Rect()) + cfg.MinSeparation
			magnitude := 0.5 * cfg.Repulsion / (distance * distance)
			acc.apply(n1.ID, direction.Scale(magnitude))
			acc.apply(n2.ID, direction.Scale(-magnitude))
		}
	}
}

// applyGravity pulls every node weakly toward the origin, preventing
// disconnected components from drifting unboundedly apart.
func applyGravity(l layout.Layout, cfg Config, acc *accumulator) {
	for _, p := range l.Placements() {
		acc.apply(p.ID, p.Pos.Scale(-cfg.Gravity))
	}
}
