package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/go-drift/hookslab/pkg/request"
	"github.com/go-drift/hookslab/pkg/swapi"
)

func (c *cli) planetCmd() *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "planet <id>...",
		Short: "Request planets in quick succession and print what commits",
		Long: `Request each id in order on a single request unit without waiting
between them, the way a fast-changing key does. Earlier requests are
superseded, so only the last id can commit.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, len(args))
			for i, arg := range args {
				id, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid planet id %q: %w", arg, err)
				}
				ids[i] = id
			}

			client := c.client()
			if offline {
				fixture, err := startFixture("127.0.0.1:0", 0)
				if err != nil {
					return err
				}
				defer fixture.close()
				client = c.clientAt(fixture.baseURL)
			}
			return c.requestPlanets(cmd.Context(), client, ids)
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "serve planets from the built-in table")
	return cmd
}

// requestPlanets issues every id on one unit and prints the state that
// finally commits.
func (c *cli) requestPlanets(ctx context.Context, source swapi.PlanetSource, ids []int) error {
	unit := request.New(func(ctx context.Context, id int) (swapi.Planet, error) {
		return source.Planet(ctx, id)
	}, request.WithLogger(c.logger), request.WithContext(ctx))
	atexit.Register(unit.Dispose)
	defer unit.Dispose()

	settled := make(chan request.State[swapi.Planet], len(ids))
	unsubscribe := unit.Subscribe(func(s request.State[swapi.Planet]) {
		if !s.IsLoading() {
			settled <- s
		}
	})
	defer unsubscribe()

	for _, id := range ids {
		unit.Request(id)
		fmt.Fprintf(c.out, "planet %d: %s\n", id, unit.State().Status)
	}

	// Only the last id's attempt can still commit, so the first settled
	// snapshot taken after the loop belongs to it.
	last := ids[len(ids)-1]
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-settled:
		}
		s := unit.State()
		if s.IsLoading() {
			continue
		}
		if s.IsError() {
			fmt.Fprintf(c.out, "planet %d: %s: %v\n", last, s.Status, s.Err)
			return s.Err
		}
		p := s.Data
		fmt.Fprintf(c.out, "planet %d: %s\n", last, p.Name)
		fmt.Fprintf(c.out, "  climate: %s\n  terrain: %s\n  population: %s\n", p.Climate, p.Terrain, p.Population)
		return nil
	}
}
