package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/boxlay/boxlay/pkg/cache"
	"github.com/boxlay/boxlay/pkg/graph"
	"github.com/boxlay/boxlay/pkg/layout"
	"github.com/boxlay/boxlay/pkg/layout/force"
	"github.com/boxlay/boxlay/pkg/layout/refine"
	"github.com/boxlay/boxlay/pkg/observability"
	"github.com/boxlay/boxlay/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
// The graph must be finalized.
func (r *Runner) Execute(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("serialize graph: %w", err)
	}
	result.GraphHash = cache.Hash(graphData)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	r.Logger.Debug("starting pipeline", opts.describe()...)

	// Stage 1: Layout
	layoutStart := time.Now()
	doc, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Document = doc
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Score = doc.Score
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"score", doc.Score,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and reports
// whether the result came from the cache. The graphHash must be the content
// hash of g; pass an empty string to have it computed here.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, g *graph.Graph, graphHash string, opts Options) (layout.Document, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	if graphHash == "" {
		data, err := graph.MarshalGraph(g)
		if err != nil {
			return layout.Document{}, false, fmt.Errorf("serialize graph: %w", err)
		}
		graphHash = cache.Hash(data)
	}
	cacheKey := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			doc, err := layout.ReadDocument(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return doc, true, nil
			}
			// Stale or corrupt entry, recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	doc, err := ComputeLayout(ctx, g, opts)
	if err != nil {
		return layout.Document{}, false, err
	}

	if data, err := layout.MarshalDocument(doc); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return doc, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, g *graph.Graph, opts Options) (layout.Document, error) {
	doc, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, "", opts)
	return doc, err
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc layout.Document, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	docData, err := layout.MarshalDocument(doc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	docHash := cache.Hash(docData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[format] = data
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := renderAll(ctx, doc, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc layout.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// ComputeLayout runs the uncached layout stages: seed a circular
// arrangement, relax it with the force simulation, refine with discrete
// moves, and normalize the result into the viewbox.
func ComputeLayout(ctx context.Context, g *graph.Graph, opts Options) (layout.Document, error) {
	opts.SetLayoutDefaults()

	observability.Pipeline().OnLayoutStart(ctx, g.NodeCount())
	start := time.Now()

	seeded, err := layout.Circular(g)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, 0, time.Since(start), err)
		return layout.Document{}, err
	}
	opts.Logger.Debug("seeded circular layout", "nodes", seeded.Len())

	relaxed := force.Relax(g, seeded, opts.Force)
	opts.Logger.Debug("relaxed layout", "steps", opts.Force.Steps)

	refined, score := refine.Refine(g, relaxed, opts.Refine)
	opts.Logger.Debug("refined layout", "score", score)

	final := layout.Normalize(g, refined, opts.Offset)
	doc := layout.Export(g, final)
	doc.Name = opts.Name
	doc.Score = refine.Score(final, opts.Refine.Margin)

	observability.Pipeline().OnLayoutComplete(ctx, doc.Score, time.Since(start), nil)
	return doc, nil
}

// renderAll produces every requested format from a layout document.
func renderAll(ctx context.Context, doc layout.Document, opts Options) (map[string][]byte, error) {
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := render.Artifact(ctx, doc, format, opts.renderOptions())
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, fmt.Errorf("rendering %s: %w", format, err)
		}
		out[format] = data
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return out, nil
}
