package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkz/pkg/convert"
)

// watchDebounce is how long to wait after the last write before
// converting, so editors that save in bursts trigger one conversion.
const watchDebounce = 300 * time.Millisecond

// watchParams holds the resolved watch command flags.
type watchParams struct {
	outDir     string
	padding    int
	paddingSet bool
	noCache    bool
}

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var params watchParams

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Convert templates automatically as they change",
		Long: `Convert templates automatically as they change.

The watch command converts every template already in the directory, then
keeps running and reconverts a template whenever it is created or
written. Layouts land next to their templates unless --out-dir (or the
[watch] config section) says otherwise. Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			params.paddingSet = cmd.Flags().Changed("padding")
			return c.runWatch(cmd.Context(), dir, params)
		},
	}

	cmd.Flags().StringVar(&params.outDir, "out-dir", "", "directory for converted layouts")
	cmd.Flags().IntVar(&params.padding, "padding", 0, "zone padding in pixels (overrides config)")
	cmd.Flags().BoolVar(&params.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runWatch converts the directory's existing templates, then follows
// filesystem events until the context is cancelled.
func (c *CLI) runWatch(ctx context.Context, dir string, params watchParams) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if dir == "" {
		dir = cfg.Watch.Dir
	}
	if dir == "" {
		dir = "."
	}
	outDir := params.outDir
	if outDir == "" {
		outDir = cfg.Watch.OutDir
	}
	padding := cfg.Convert.Padding
	if params.paddingSet {
		padding = params.padding
	}

	runner, err := c.newRunner(params.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := convert.Options{
		Vars:    cfg.Variables,
		Padding: padding,
		Logger:  c.Logger,
	}

	// Convert what is already there before following changes.
	candidates, err := discoverTemplates(dir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	for _, cand := range candidates {
		if !isTemplateFile(cand.Name) {
			continue
		}
		c.convertForWatch(ctx, runner, cand.Path, opts, outDir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	printInfo("Watching %s (Ctrl-C to stop)", dir)

	// One timer per path; every event pushes the conversion back by the
	// debounce window, and the fired timer hands the path to the loop.
	ready := make(chan string)
	timers := make(map[string]*time.Timer)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case path := <-ready:
			c.convertForWatch(ctx, runner, path, opts, outDir)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isTemplateFile(filepath.Base(event.Name)) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if t, exists := timers[event.Name]; exists {
				t.Reset(watchDebounce)
				continue
			}
			path := event.Name
			timers[path] = time.AfterFunc(watchDebounce, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watcher error", "err", err)
		}
	}
}

// convertForWatch converts one template for the watch loop. Failures are
// logged and swallowed; a broken save must not stop the loop.
func (c *CLI) convertForWatch(ctx context.Context, runner *convert.Runner, path string, opts convert.Options, outDir string) {
	data, err := os.ReadFile(path)
	if err != nil {
		c.Logger.Warn("read template", "file", path, "err", err)
		return
	}
	opts.Input = data
	opts.BaseName = templateStem(path)

	result, err := runner.Convert(ctx, opts)
	if err != nil {
		c.Logger.Warn("conversion failed", "file", path, "err", err)
		return
	}

	outPath := outputPath(path, "", outDir)
	if err := writeDocument(outPath, result.JSON); err != nil {
		c.Logger.Warn("write layout", "file", outPath, "err", err)
		return
	}

	printSuccess("Converted %s", filepath.Base(path))
	printFile(outPath)
	printStats(result.Stats.Zones, len(result.Stats.Skipped), result.CacheInfo.ConvertHit)
}
