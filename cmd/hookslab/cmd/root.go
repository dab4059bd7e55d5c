// Package cmd implements the hookslab CLI commands.
//
// The root command resolves configuration and logging once in its
// persistent pre-run; subcommands (run, switcher, context, planet, serve,
// version) read the result from the shared cli value.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/go-drift/hookslab/internal/config"
	"github.com/go-drift/hookslab/pkg/errors"
	"github.com/go-drift/hookslab/pkg/swapi"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// cli carries flags and resolved state shared by the subcommands.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	overrides  config.Overrides

	cfg    *config.Resolved
	logger *slog.Logger
}

// Execute runs the CLI with os.Args until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree over the given streams.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "hookslab",
		Short: "Hook demos on a headless component tree",
		Long: `hookslab mounts small component trees built with state, effect,
context and request hooks, and prints their outline after every frame.

Use "hookslab <command> --help" for more information about a command.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", config.FileName, "config file")
	flags.StringVar(&c.overrides.BaseURL, "base-url", "", "planet API root (default "+swapi.DefaultBaseURL+")")
	flags.DurationVar(&c.overrides.Timeout, "timeout", 0, "planet request timeout (default "+swapi.DefaultTimeout.String()+")")
	flags.BoolVarP(&c.overrides.Verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		c.demoCmd("run"),
		c.demoCmd("switcher"),
		c.demoCmd("context"),
		c.planetCmd(),
		c.serveCmd(),
		c.versionCmd(),
	)
	return root
}

// setup resolves configuration and installs the logger and error handler.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(c.configPath, Version, c.overrides)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = newLogger(c.errOut, cfg.LogFormat, cfg.LogLevel)
	errors.SetHandler(&errors.LogHandler{Logger: c.logger, Verbose: c.overrides.Verbose})

	c.logger.Debug("config resolved",
		"path", cfg.Path,
		"base_url", cfg.BaseURL,
		"timeout", cfg.Timeout,
		"command", cmd.Name(),
	)
	return nil
}

// client returns a planet client for the resolved configuration.
func (c *cli) client() *swapi.Client {
	return c.clientAt(c.cfg.BaseURL)
}

func (c *cli) clientAt(baseURL string) *swapi.Client {
	return swapi.NewClient(baseURL, c.cfg.Timeout, swapi.WithLogger(c.logger))
}

// newLogger returns a text or JSON logger writing to w.
func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
