// Package cli implements the gridkz command-line interface.
//
// This package provides commands for converting GridMove window-grid
// templates into KZones layouts, previewing the result as SVG, watching a
// directory for template changes, and running the HTTP conversion service.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - convert: Turn GridMove .ini/.txt templates into KZones layout files
//   - preview: Render a template or converted layout as an SVG picture
//   - watch: Convert templates automatically as they change on disk
//   - serve: Run the HTTP conversion service
//   - cache: Manage the conversion cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/gridkz/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkz/pkg/buildinfo"
	"github.com/matzehuels/gridkz/pkg/cache"
	"github.com/matzehuels/gridkz/pkg/config"
	"github.com/matzehuels/gridkz/pkg/convert"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gridkz"

	// outputSuffix is appended to a template's stem for converted layouts,
	// e.g. xipergrid2.ini -> xipergrid2_kzones.json.
	outputSuffix = "_kzones.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the explicit --config flag value; empty means the
	// default search path.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "gridkz",
		Short:        "Gridkz converts GridMove templates into KZones layouts",
		Long:         `Gridkz is a CLI tool for converting GridMove window-grid templates into KZones zone layouts. Every section the converter can evaluate becomes a zone; the ones it cannot are skipped and reported, never guessed at.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: ~/.config/gridkz/config.toml)")

	// Register all subcommands
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the TOML config from --config or the default path.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a conversion runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*convert.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return convert.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/gridkz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// templateStem strips the directory and extension from a template path,
// leaving the name the converted layout is titled after.
func templateStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outputPath decides where a converted layout lands: an explicit -o wins,
// then --out-dir with the derived file name, then next to the input.
func outputPath(input, explicit, outDir string) string {
	if explicit != "" {
		return explicit
	}
	name := templateStem(input) + outputSuffix
	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

// isTerminal reports whether stdin and stdout are attached to a terminal.
// The interactive picker only makes sense when both are.
func isTerminal() bool {
	stdinStat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	stdoutStat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return stdinStat.Mode()&os.ModeCharDevice != 0 && stdoutStat.Mode()&os.ModeCharDevice != 0
}
