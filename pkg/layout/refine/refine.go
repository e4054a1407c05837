// Package refine implements the discrete local-search pass that follows
// spring relaxation: a greedy hill climb over single-node translations,
// driven by an explicit layout score.
//
// The score combines pairwise padded-rectangle overlap with the width and
// height of the overall bounding box, so the search simultaneously removes
// residual overlap and compacts the diagram. Each step generates a fixed
// move set for every node, scores all candidates, and applies the single
// globally best move; the loop stops when a step's improvement falls below
// a minimum benefit, reverting that final step.
package refine

import (
	"sync"

	"github.com/boxlay/boxlay/pkg/geom"
	"github.com/boxlay/boxlay/pkg/graph"
	"github.com/boxlay/boxlay/pkg/layout"
)

// Config holds the tuning constants for the refinement pass. The zero value
// is not usable - start from [Defaults] and override fields as needed.
type Config struct {
	// Margin pads every node rectangle on all four sides for overlap
	// scoring. Forces never see the padding.
	Margin float64 `json:"margin" toml:"margin"`

	// ShiftStep is the axis-aligned move distance.
	ShiftStep float64 `json:"shift_step" toml:"shift_step"`

	// JumpStep is the per-axis distance of the four diagonal moves.
	JumpStep float64 `json:"jump_step" toml:"jump_step"`

	// MaxSteps bounds the number of refinement steps.
	MaxSteps int `json:"max_steps" toml:"max_steps"`

	// MinBenefit is the score improvement below which the search stops
	// and the pre-step layout is kept.
	MinBenefit float64 `json:"min_benefit" toml:"min_benefit"`

	// Workers bounds the goroutines scoring candidates. Zero or negative
	// means scoring runs on the calling goroutine only.
	Workers int `json:"workers,omitempty" toml:"workers"`
}

// Defaults returns the standard tuning.
func Defaults() Config {
	return Config{
		Margin:     20,
		ShiftStep:  20,
		JumpStep:   70,
		MaxSteps:   1000,
		MinBenefit: 1,
	}
}

// Score rates a layout; lower is better. It sums, over every ordered pair
// of distinct nodes, the intersection area of their padded rectangles, then
// adds the width and height of the bounding box of the unpadded rectangles.
//
// The ordered-pair iteration double-counts each unordered pair, matching
// the doubled repulsion convention of the force pass. The relative
// weighting between overlap and compactness is unaffected by scaling both
// halves consistently, so the double count is kept for parity with the
// reference behavior.
func Score(l layout.Layout, margin float64) float64 {
	placements := l.Placements()
	var total float64
	for i, a := range placements {
		padded := a.Padded(margin)
		for j, b := range placements {
			if i == j {
				continue
			}
			total += geom.Intersection(padded, b.Padded(margin))
		}
	}
	bounds := l.Bounds()
	return total + bounds.Width() + bounds.Height()
}

// moves returns the fixed candidate move set: four axis shifts and four
// diagonal jumps.
func (c Config) moves() [8]geom.Vector {
	s, j := c.ShiftStep, c.JumpStep
	return [8]geom.Vector{
		{X: s}, {X: -s}, {Y: s}, {Y: -s},
		{X: j, Y: j}, {X: j, Y: -j}, {X: -j, Y: j}, {X: -j, Y: -j},
	}
}

// candidate pairs a scored move with its generation index for the
// deterministic first-encountered tie-break.
type candidate struct {
	index int
	node  string
	move  geom.Vector
	score float64
}

// Step generates the full candidate set (every node × every move), scores
// each candidate layout, and returns the globally best candidate applied.
// Ties break toward the earliest candidate in the fixed node/move order, so
// the step is deterministic regardless of scoring parallelism.
func Step(g *graph.Graph, l layout.Layout, cfg Config) (layout.Layout, float64) {
	ids := l.IDs()
	moves := cfg.moves()

	jobs := make([]candidate, 0, len(ids)*len(moves))
	for ni, id := range ids {
		for mi, mv := range moves {
			jobs = append(jobs, candidate{index: ni*len(moves) + mi, node: id, move: mv})
		}
	}

	scoreCandidates(g, l, cfg, jobs)

	best := jobs[0]
	for _, c := range jobs[1:] {
		if c.score < best.score || (c.score == best.score && c.index < best.index) {
			best = c
		}
	}
	return l.Move(g, best.node, best.move), best.score
}

// scoreCandidates fills in the score of every candidate. Candidate layouts
// are independent read-only derivations of l, so scoring fans out across a
// bounded worker pool when cfg.Workers > 1.
func scoreCandidates(g *graph.Graph, l layout.Layout, cfg Config, jobs []candidate) {
	score := func(c *candidate) {
		c.score = Score(l.Move(g, c.node, c.move), cfg.Margin)
	}

	if cfg.Workers <= 1 {
		for i := range jobs {
			score(&jobs[i])
		}
		return
	}

	var wg sync.WaitGroup
	work := make(chan *candidate)
	for range cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range work {
				score(c)
			}
		}()
	}
	for i := range jobs {
		work <- &jobs[i]
	}
	close(work)
	wg.Wait()
}

// Refine runs the greedy search until the per-step improvement drops below
// cfg.MinBenefit or cfg.MaxSteps is reached. When a step fails to clear the
// minimum benefit, the pre-step layout is returned, discarding that step.
// An empty layout is returned unchanged.
func Refine(g *graph.Graph, l layout.Layout, cfg Config) (layout.Layout, float64) {
	if l.Empty() {
		return l, 0
	}

	current := Score(l, cfg.Margin)
	for range cfg.MaxSteps {
		next, nextScore := Step(g, l, cfg)
		if current-nextScore < cfg.MinBenefit {
			return l, current
		}
		l, current = next, nextScore
	}
	return l, current
}
