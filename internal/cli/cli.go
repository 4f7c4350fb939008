package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gavtree/pkg/buildinfo"
	"github.com/matzehuels/gavtree/pkg/config"
	"github.com/matzehuels/gavtree/pkg/observability"
	"github.com/matzehuels/gavtree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "gavtree"

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

	configPath string
	noCache    bool
	verbose    bool

	// cfg is loaded once per invocation, before any subcommand runs.
	cfg *config.Config

	// runnerFn builds the pipeline runner; tests swap it for a fake.
	runnerFn func(ctx context.Context, hooks observability.Hooks) (*pipeline.Runner, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	c.runnerFn = c.configuredRunner
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Resolve and audit Maven dependency trees",
		Long: `gavtree resolves the transitive dependency tree of Maven artifacts and
pom.xml manifests, and reports known vulnerabilities and version stability
from public advisory data.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gavtree/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the response cache")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.vulnsCommand())
	root.AddCommand(c.intelCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, settles the log level and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.noCache {
		cfg.Cache.Backend = config.BackendNone
	}
	c.cfg = cfg

	level, err := cfg.Log.ParseLevel()
	if err != nil {
		return err
	}
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// settings returns the loaded configuration, falling back to defaults when a
// command runs without the root pre-run (tests invoking subcommands directly).
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	return c.runnerFn(ctx, observability.Noop())
}

func (c *CLI) configuredRunner(ctx context.Context, hooks observability.Hooks) (*pipeline.Runner, error) {
	return c.settings().NewRunner(ctx, c.Logger, hooks)
}
