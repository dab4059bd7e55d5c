package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/go-drift/hookslab/internal/demo"
	"github.com/go-drift/hookslab/pkg/engine"
)

const (
	traceFrames = 256
	slowFrame   = 16 * time.Millisecond
)

// demoCmd builds the command for the registered demo name.
func (c *cli) demoCmd(name string) *cobra.Command {
	d, ok := demo.Lookup(name)
	if !ok {
		panic("hookslab: unknown demo " + name)
	}

	var (
		classic bool
		offline bool
		latency time.Duration
	)
	cmd := &cobra.Command{
		Use:   d.Name,
		Short: d.Title,
		Long: fmt.Sprintf(`%s.

Reads one command per line from stdin and prints the outline after every
change. Commands: %s, %s.`, d.Title, strings.Join(d.CommandNames(), ", "), demo.QuitCommand),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := demo.Options{
				Classic:             classic || c.cfg.Classic,
				NotificationTimeout: c.cfg.NotificationTimeout,
			}
			if d.Name == "run" {
				client := c.client()
				if offline {
					fixture, err := startFixture("127.0.0.1:0", latency)
					if err != nil {
						return err
					}
					defer fixture.close()
					client = c.clientAt(fixture.baseURL)
				}
				opts.Planets = client
			}

			engineOpts := []engine.Option{engine.WithLogger(c.logger)}
			if c.overrides.Verbose {
				engineOpts = append(engineOpts, engine.WithFrameTrace(traceFrames, slowFrame))
			}
			session := demo.NewSession(d, opts, engineOpts...)
			atexit.Register(session.Close)

			err := session.Run(cmd.Context(), c.in, c.out)
			if trace := session.App().Trace(); trace != nil {
				timeline := trace.Snapshot()
				c.logger.Debug("frame trace",
					"frames", session.App().FrameCount(),
					"sampled", len(timeline.Samples),
					"slow", timeline.SlowFrames,
				)
			}
			if stderrors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	if d.Name == "run" {
		cmd.Flags().BoolVar(&classic, "classic", false, "use the StatefulWidget counter")
		cmd.Flags().BoolVar(&offline, "offline", false, "serve planets from the built-in table")
		cmd.Flags().DurationVar(&latency, "latency", 300*time.Millisecond, "artificial delay with --offline")
	}
	return cmd
}
