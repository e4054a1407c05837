// Package render turns computed layout documents into output artifacts.
//
// Two engines are available:
//
//   - The built-in SVG writer ([SVG]): rounded rectangles and straight
//     connector lines, assembled directly from the document geometry.
//   - Graphviz ([ToDOT] + [DOTRender]): positions are pinned into a DOT
//     graph and drawn by neato, which also enables PNG output.
//
// The JSON format is the layout document itself ([layout.MarshalDocument]).
package render

import (
	"context"
	"fmt"

	"github.com/boxlay/boxlay/pkg/layout"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Engines for image output.
const (
	EngineBuiltin = "builtin"
	EngineDOT     = "dot"
)

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options configures artifact generation.
type Options struct {
	// Engine picks the image renderer: "builtin" (default) or "dot".
	// PNG always goes through Graphviz.
	Engine string

	// Labels draws node IDs in the built-in SVG output.
	Labels bool
}

// Artifact produces one output format from a layout document.
func Artifact(ctx context.Context, doc layout.Document, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return layout.MarshalDocument(doc)
	case FormatDOT:
		return []byte(ToDOT(doc)), nil
	case FormatPNG:
		return DOTRender(ctx, ToDOT(doc), FormatPNG)
	case FormatSVG:
		if opts.Engine == EngineDOT {
			return DOTRender(ctx, ToDOT(doc), FormatSVG)
		}
		var svgOpts []SVGOption
		if opts.Labels {
			svgOpts = append(svgOpts, WithLabels())
		}
		return SVG(doc, svgOpts...), nil
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}
