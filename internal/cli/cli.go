// Package cli implements the graphedit command-line interface.
//
// The commands operate on graph documents, named either by a file path
// (anything ending in .json or containing a path separator) or by a name in
// the configured document store:
//
//   - new: create an empty document
//   - edit: open a document in the terminal editor
//   - render: draw a document to SVG, PNG, PDF or DOT
//   - inspect: list the nodes and edges of a document
//   - layout: print the computed edge geometry as JSON
//   - serve: preview a document in the browser with live reload
//   - list, delete: manage stored documents
//   - cache: manage the render cache
//
// All commands support --verbose (-v) for debug-level logging and
// --config to read settings from a TOML file other than the default one.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/buildinfo"
	"github.com/matzehuels/graphedit/pkg/cache"
	"github.com/matzehuels/graphedit/pkg/config"
	apperrors "github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "graphedit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Exit codes returned by [CLI.Run].
const (
	ExitOK          = 0
	ExitError       = 1
	ExitInvalid     = 2 // rejected name, label, format or document
	ExitInterrupted = 130
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	errOut     io.Writer
	verbose    bool
	configPath string
	storeURL   string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), errOut: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "graphedit edits directed graphs",
		Long:         `graphedit is an editor for small directed graphs such as automata and state machines. Nodes are placed by hand; edges, arrowheads and self-loops are laid out automatically.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")
	root.PersistentFlags().StringVar(&c.storeURL, "store", "", "document store: directory, file://, redis:// or mongodb:// URL")

	root.AddCommand(c.newCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Run executes the command line args and returns the process exit code.
// Errors are printed to the writer given to [New].
func (c *CLI) Run(ctx context.Context, args []string) int {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SilenceErrors = true

	err := root.ExecuteContext(ctx)
	code := exitCode(err)
	if err != nil && code != ExitInterrupted {
		fmt.Fprintln(c.errOut, styleIconError.Render(iconError), err)
	}
	return code
}

// exitCode maps a command error to an exit code. Interrupts win over any
// wrapped code; errors tagged INVALID_* mean the input was rejected.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case strings.HasPrefix(string(apperrors.GetCode(err)), "INVALID_"):
		return ExitInvalid
	}
	return ExitError
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config file once. Flags given on the command line
// take precedence over file values.
func (c *CLI) loadConfig() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	for _, key := range cfg.Undecoded {
		c.Logger.Warn("Unknown config key", "key", key)
	}
	if c.storeURL != "" {
		cfg.Store.URL = c.storeURL
	}
	c.cfg = cfg
	return nil
}

// config returns the loaded configuration, or the defaults when commands
// run without the root pre-run hook (as in tests).
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Backends
// =============================================================================

// openStore opens the configured document store.
func (c *CLI) openStore(ctx context.Context) (storage.Store, error) {
	return storage.Open(ctx, c.config().Store.URL, storage.WithLogger(c.Logger))
}

// newCache opens the render cache: Redis when configured, else a file cache
// under the user cache directory. Failures degrade to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}

	cfg := c.config().Cache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err == nil {
			return rc
		}
		c.Logger.Warn("Redis cache unavailable, rendering without cache", "err", err)
		return cache.NewNullCache()
	}

	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache()
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("File cache unavailable", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/graphedit/).
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
