package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkz/pkg/convert"
)

// convertParams holds the resolved convert command flags.
type convertParams struct {
	output     string // explicit output file, single input only
	outDir     string // directory for converted layouts
	dir        string // directory to scan when no inputs are given
	index      int    // 1-based pick from the scanned candidates
	padding    int
	paddingSet bool // whether --padding was given, so 0 can override config
	noCache    bool
	force      bool
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var params convertParams

	cmd := &cobra.Command{
		Use:   "convert [template...]",
		Short: "Convert GridMove templates into KZones layouts",
		Long: `Convert GridMove templates into KZones layouts.

With file arguments, each template is converted next to itself (or into
--out-dir). With no arguments, the current directory (or --dir) is
scanned for .ini and .txt templates: pick one interactively, or
non-interactively with --index.

Sections the converter cannot evaluate are skipped and reported in the
summary; the layout keeps every zone that did convert. Results are
cached locally for faster subsequent runs.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if params.output != "" && len(args) > 1 {
				return fmt.Errorf("--output only works with a single template; use --out-dir for %d inputs", len(args))
			}
			params.paddingSet = cmd.Flags().Changed("padding")
			return c.runConvert(cmd.Context(), args, params)
		},
	}

	cmd.Flags().StringVarP(&params.output, "output", "o", "", "output file (single template only)")
	cmd.Flags().StringVar(&params.outDir, "out-dir", "", "directory for converted layouts")
	cmd.Flags().StringVar(&params.dir, "dir", "", "directory to scan when no templates are given")
	cmd.Flags().IntVar(&params.index, "index", 0, "pick the Nth discovered template (1-based)")
	cmd.Flags().IntVar(&params.padding, "padding", 0, "zone padding in pixels (overrides config)")
	cmd.Flags().BoolVar(&params.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&params.force, "force", false, "reconvert even when cached")

	return cmd
}

// runConvert resolves inputs and settings, then converts each template.
func (c *CLI) runConvert(ctx context.Context, args []string, params convertParams) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	inputs := args
	if len(inputs) == 0 {
		input, err := c.selectTemplate(params.dir, params.index)
		if err != nil {
			return err
		}
		if input == "" {
			return nil // picker dismissed without a choice
		}
		inputs = []string{input}
	}

	padding := cfg.Convert.Padding
	if params.paddingSet {
		padding = params.padding
	}
	outDir := params.outDir
	if outDir == "" {
		outDir = cfg.Convert.OutDir
	}

	runner, err := c.newRunner(params.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	for i, input := range inputs {
		opts := convert.Options{
			Vars:    cfg.Variables,
			Padding: padding,
			Refresh: params.force,
			Logger:  c.Logger,
		}
		if err := c.runConvertOne(ctx, runner, input, opts, outputPath(input, params.output, outDir)); err != nil {
			return err
		}
		if i < len(inputs)-1 {
			printNewline()
		}
	}

	if len(inputs) == 1 {
		printNewline()
		printNextStep("Preview", "gridkz preview "+outputPath(inputs[0], params.output, outDir))
	}

	return nil
}

// runConvertOne converts a single template and prints the summary.
func (c *CLI) runConvertOne(ctx context.Context, runner *convert.Runner, input string, opts convert.Options, outPath string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read template %s: %w", input, err)
	}
	opts.Input = data
	opts.BaseName = templateStem(input)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %s...", filepath.Base(input)))
	spinner.Start()

	result, err := runner.Convert(ctx, opts)
	if err != nil {
		spinner.StopWithError("Conversion failed")
		printSkips(result)
		return fmt.Errorf("convert %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeDocument(outPath, result.JSON); err != nil {
		return err
	}

	printSuccess("Converted %s", filepath.Base(input))
	printSkips(result)
	if result.Stats.Duplicates > 0 {
		printDetail("Dropped %d duplicate zones", result.Stats.Duplicates)
	}
	printFile(outPath)
	printStats(result.Stats.Zones, len(result.Stats.Skipped), result.CacheInfo.ConvertHit)

	return nil
}

// selectTemplate resolves the no-argument case: scan the directory, honor
// --index, fall back to the interactive picker on a terminal, and
// otherwise list the candidates so scripts can pick with --index.
func (c *CLI) selectTemplate(dir string, index int) (string, error) {
	if dir == "" {
		dir = "."
	}
	candidates, err := discoverTemplates(dir)
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no templates found in %s (looked for *.ini and *.txt)", dir)
	}

	if index != 0 {
		if index < 1 || index > len(candidates) {
			return "", fmt.Errorf("--index must be between 1 and %d", len(candidates))
		}
		return candidates[index-1].Path, nil
	}

	if !isTerminal() {
		names := make([]string, len(candidates))
		for i, cand := range candidates {
			names[i] = fmt.Sprintf("  %2d. %s", i+1, cand.Name)
		}
		return "", fmt.Errorf("no template given and no terminal to pick one; rerun with --index:\n%s", strings.Join(names, "\n"))
	}

	picked, err := pickTemplate(candidates)
	if err != nil {
		return "", err
	}
	if picked == nil {
		printDetail("Nothing selected")
		return "", nil
	}
	return picked.Path, nil
}

// printSkips reports the sections a conversion had to drop.
func printSkips(result *convert.Result) {
	if result == nil {
		return
	}
	for _, sk := range result.Stats.Skipped {
		printWarning("Skipped [%s] line %d: %s", sk.Section, sk.Line, sk.Reason)
	}
}

// writeDocument writes a layout document followed by a newline, creating
// the parent directory when needed.
func writeDocument(path string, doc []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(doc, '\n'), 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
