package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkz/pkg/cache"
	"github.com/matzehuels/gridkz/pkg/config"
	"github.com/matzehuels/gridkz/pkg/convert"
	"github.com/matzehuels/gridkz/pkg/kzones"
)

// previewParams holds the resolved preview command flags.
type previewParams struct {
	output   string
	width    float64
	height   float64
	noLabels bool
	noCache  bool
}

// previewCommand creates the preview command for rendering layouts as SVG.
func (c *CLI) previewCommand() *cobra.Command {
	var params previewParams

	cmd := &cobra.Command{
		Use:   "preview [template|layout.json]",
		Short: "Render a template or converted layout as an SVG picture",
		Long: `Render a template or converted layout as an SVG picture.

The preview command accepts either a GridMove template (converted on the
fly) or an already-converted KZones document (.json). Zones are drawn to
scale on a fixed canvas with one-based index labels, showing what KZones
will snap to. Pick --width and --height matching your monitor's aspect
ratio for exact proportions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], params)
		},
	}

	cmd.Flags().StringVarP(&params.output, "output", "o", "", "output file (default: <input>.svg)")
	cmd.Flags().Float64Var(&params.width, "width", kzones.DefaultCanvasWidth, "canvas width in pixels")
	cmd.Flags().Float64Var(&params.height, "height", kzones.DefaultCanvasHeight, "canvas height in pixels")
	cmd.Flags().BoolVar(&params.noLabels, "no-labels", false, "omit zone index labels")
	cmd.Flags().BoolVar(&params.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runPreview renders the input to SVG and writes it out.
func (c *CLI) runPreview(ctx context.Context, input string, params previewParams) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runner, err := c.newRunner(params.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := c.previewSource(ctx, runner, cfg, input)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering preview...")
	spinner.Start()

	svg, cacheHit, err := runner.PreviewWithCacheInfo(ctx, result, convert.PreviewOptions{
		Width:    params.width,
		Height:   params.height,
		NoLabels: params.noLabels,
	})
	if err != nil {
		spinner.StopWithError("Preview failed")
		return fmt.Errorf("render preview: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outPath := params.output
	if outPath == "" {
		outPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}
	if err := os.WriteFile(outPath, svg, 0o644); err != nil {
		return fmt.Errorf("write preview %s: %w", outPath, err)
	}

	printSuccess("Preview complete")
	printSkips(result)
	printFile(outPath)
	printStats(len(result.Layout.Zones), len(result.Stats.Skipped), cacheHit)

	return nil
}

// previewSource turns the input file into a conversion result. A KZones
// document is loaded as-is; anything else is treated as a template and
// converted (through the cache) first.
func (c *CLI) previewSource(ctx context.Context, runner *convert.Runner, cfg config.Config, input string) (*convert.Result, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}

	if isDocument(input) {
		layout, err := kzones.ParseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("load layout %s: %w", input, err)
		}
		return &convert.Result{
			Layout:     layout,
			JSON:       data,
			LayoutHash: cache.Hash(data),
		}, nil
	}

	result, err := runner.Convert(ctx, convert.Options{
		Input:    data,
		BaseName: templateStem(input),
		Vars:     cfg.Variables,
		Padding:  cfg.Convert.Padding,
		Logger:   c.Logger,
	})
	if err != nil {
		printSkips(result)
		return nil, fmt.Errorf("convert %s: %w", input, err)
	}
	return result, nil
}

// isDocument reports whether the input is an already-converted KZones
// document. Extension-based: templates also start with '[', so content
// sniffing cannot tell the two apart.
func isDocument(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
