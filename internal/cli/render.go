package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxlay/boxlay/pkg/graph"
	"github.com/boxlay/boxlay/pkg/render"
)

// renderCommand creates the render command for the full pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		engine     string
		labels     bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Compute a layout and render it to SVG, PNG, DOT, or JSON",
		Long: `Compute a layout and render it in one step.

The render command runs the full pipeline: it loads a graph.json file,
computes box positions, and writes the result in the requested formats.
Both the computed layout and the rendered artifacts are cached locally.

The built-in engine draws SVG directly from the layout geometry. With
--engine dot the diagram is drawn by Graphviz instead, with positions
pinned; PNG output always goes through Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := render.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, output, engine, labels, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&engine, "engine", render.EngineBuiltin, "render engine: builtin (default), dot")
	cmd.Flags().BoolVar(&labels, "labels", true, "draw box labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runRender loads the graph, runs the pipeline, and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, output, engine string, labels, noCache, refresh bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipelineOptions(cfg)
	opts.Logger = c.Logger
	opts.Formats = formats
	opts.Engine = engine
	opts.Labels = labels
	opts.Refresh = refresh

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d boxes...", g.NodeCount()))
	spinner.Start()

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Render complete")
	if err := writeArtifacts(result.Artifacts, formats, input, output); err != nil {
		return err
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.Score, result.CacheInfo.LayoutHit)

	return nil
}
