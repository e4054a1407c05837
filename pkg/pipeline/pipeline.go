// Package pipeline runs the complete layout pipeline for boxlay.
//
// This package implements the seed → relax → refine → normalize → render
// pipeline shared by the CLI and the HTTP server. Centralizing it here keeps
// caching and option handling consistent across every entry point.
//
// # Architecture
//
// The pipeline has two cached stages:
//
//  1. Layout: seed a circular arrangement, relax it with the force
//     simulation, refine it with discrete moves, normalize into the viewbox
//  2. Render: generate output in the requested formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/boxlay/boxlay/pkg/cache"
	"github.com/boxlay/boxlay/pkg/layout"
	"github.com/boxlay/boxlay/pkg/layout/force"
	"github.com/boxlay/boxlay/pkg/layout/refine"
	"github.com/boxlay/boxlay/pkg/render"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Force  force.Config  `json:"force,omitempty"`
	Refine refine.Config `json:"refine,omitempty"`
	Offset float64       `json:"offset,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Engine  string   `json:"engine,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Name    string   `json:"name,omitempty"`

	// Refresh bypasses the cache and recomputes every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the computed layout with node and edge placements.
	Document layout.Document

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Score      float64
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills zero-valued layout tunings with the defaults.
func (o *Options) SetLayoutDefaults() {
	if o.Force == (force.Config{}) {
		o.Force = force.Defaults()
	}
	if o.Refine == (refine.Config{}) {
		o.Refine = refine.Defaults()
	}
	if o.Offset == 0 {
		o.Offset = layout.DefaultOffset
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults fills zero-valued render options with the defaults.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if o.Engine == "" {
		o.Engine = render.EngineBuiltin
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering only.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return render.ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Force:  o.Force,
		Refine: o.Refine,
		Offset: o.Offset,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Engine: o.Engine,
	}
}

// renderOptions converts the pipeline options to render options.
func (o *Options) renderOptions() render.Options {
	return render.Options{
		Engine: o.Engine,
		Labels: o.Labels,
	}
}

// describe returns the tuning summary logged at the start of a run.
func (o *Options) describe() []any {
	return []any{
		"spring_length", o.Force.SpringLength,
		"force_steps", o.Force.Steps,
		"refine_steps", o.Refine.MaxSteps,
		"formats", fmt.Sprintf("%v", o.Formats),
	}
}
