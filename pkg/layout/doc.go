// Package layout defines the immutable layout snapshot and the two
// position-producing passes that bracket the physics pipeline: the circular
// initial arrangement and the final viewbox normalization.
//
// # Snapshots
//
// A [Layout] assigns a center position to every node of a graph at one point
// in the algorithm's progression. Snapshots are never mutated - every
// position change ([Layout.Move], [Layout.Translate], a relaxation step, an
// accepted refinement move) builds a new Layout with per-edge lengths
// recomputed from the new positions. This keeps pre/post-step score
// comparison and the refiner's revert-to-previous stopping rule trivial.
//
// # Pipeline
//
// The full progression is:
//
//	l, err := layout.Circular(g)             // connectivity-aware seed
//	l = force.Relax(g, l, force.Defaults())  // spring relaxation
//	l, _ = refine.Refine(g, l, refine.Defaults())
//	l = layout.Normalize(g, l, layout.DefaultOffset)
//
// Sub-packages force and refine implement the middle passes.
package layout
