// Package cli implements the graphsig command-line interface.
//
// # Commands
//
//   - signature: signature of one root vertex, or of every vertex with --all
//   - label: canonical labelling induced by a root vertex
//   - classify: symmetry classes, optionally browsed interactively
//   - parse: parse a signature string and optionally rebuild its graph
//   - render: draw a signature DAG, a parsed tree, or a graph
//   - cache: inspect and clear the result cache
//   - serve: run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// carries a per-run id and is passed through context.Context.
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/graphsig/config.toml (or
// --config). Flags given on the command line win over the file.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphsig/pkg/buildinfo"
	"github.com/matzehuels/graphsig/pkg/cache"
	"github.com/matzehuels/graphsig/pkg/observability"
	"github.com/matzehuels/graphsig/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "graphsig"
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
	Config *Config

	configPath  string
	cacheURL    string
	noCache     bool
	verbose     bool
	metricsFile string
	registry    *prometheus.Registry
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "graphsig computes canonical signatures of labeled graphs",
		Long: `graphsig computes rooted vertex signatures: canonical strings that are
equal exactly when two rooted vertices are equivalent under a graph
automorphism. Signatures yield canonical labellings and symmetry classes.`,
		Version:            buildinfo.Version,
		SilenceUsage:       true,
		PersistentPreRunE:  c.preRun,
		PersistentPostRunE: c.postRun,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/graphsig/config.toml)")
	flags.StringVar(&c.cacheURL, "cache", "", "cache URL: none:, memory:, file:///dir, redis://, badger://, mongodb://")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable caching")
	flags.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(c.signatureCommand())
	root.AddCommand(c.labelCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// preRun loads configuration, sets the log level and attaches a run-scoped
// logger to the command context.
func (c *CLI) preRun(cmd *cobra.Command, _ []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}

	cfg, err := loadConfig(c.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	c.Config = cfg

	if c.metricsFile != "" {
		c.registry = prometheus.NewRegistry()
		observability.NewPrometheusHooks(c.registry).Install()
	}

	logger := c.Logger.With("run", uuid.NewString()[:8])
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, logger))
	return nil
}

// postRun writes collected metrics when --metrics-file is set.
func (c *CLI) postRun(*cobra.Command, []string) error {
	if c.registry == nil {
		return nil
	}
	defer observability.Reset()
	if err := observability.WriteTextfile(c.metricsFile, c.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsFile)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, loggerFromContext(ctx))
	runner.TTL = c.Config.Cache.TTL
	return runner, nil
}

// cacheURLOrDefault resolves the cache URL from flags, config and the
// default file cache, in that order.
func (c *CLI) cacheURLOrDefault() (string, error) {
	switch {
	case c.noCache:
		return "none:", nil
	case c.cacheURL != "":
		return c.cacheURL, nil
	case c.Config.Cache.URL != "":
		return c.Config.Cache.URL, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "none:", nil
	}
	return "file://" + filepath.ToSlash(dir), nil
}

func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	u, err := c.cacheURLOrDefault()
	if err != nil {
		return nil, err
	}
	store, err := cache.Open(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", u, err)
	}
	return store, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/graphsig/).
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

// configDir returns the config directory using XDG standard (~/.config/graphsig/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// signatureOptions builds pipeline options from the config file, then lets
// explicitly set flags override it.
func (c *CLI) signatureOptions(cmd *cobra.Command, flags *sigFlags) pipeline.Options {
	opts := pipeline.DefaultOptions()
	sc := c.Config.Signature
	opts.Height = sc.Height
	if sc.Invariant != "" {
		opts.InvariantType = sc.Invariant
	}
	opts.MaxSteps = sc.MaxSteps
	opts.Workers = c.Config.Classify.Workers

	f := cmd.Flags()
	if f.Changed("height") {
		opts.Height = flags.height
	}
	if f.Changed("invariant") {
		opts.InvariantType = flags.invariant
	}
	if f.Changed("max-steps") {
		opts.MaxSteps = flags.maxSteps
	}
	if f.Changed("workers") {
		opts.Workers = flags.workers
	}
	opts.Raw = flags.raw
	opts.Refresh = flags.refresh
	opts.Logger = loggerFromContext(cmd.Context())
	opts.SetDefaults()
	return opts
}

// sigFlags holds the flags shared by the signature commands.
type sigFlags struct {
	height    int
	invariant string
	maxSteps  int
	workers   int
	raw       bool
	refresh   bool
	asJSON    bool
}

// register adds the shared flags to cmd.
func (f *sigFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.height, "height", pipeline.DefaultHeight, "maximum signature height (-1 for the whole component)")
	cmd.Flags().StringVar(&f.invariant, "invariant", pipeline.DefaultInvariantType, "node invariant type: string or int")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", pipeline.DefaultMaxSteps, "canonical search budget (0 for unlimited)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the full result as JSON")
}
