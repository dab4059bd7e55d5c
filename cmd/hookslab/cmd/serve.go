package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/go-drift/hookslab/pkg/errors"
	"github.com/go-drift/hookslab/pkg/swapi"
)

func (c *cli) serveCmd() *cobra.Command {
	var (
		addr    string
		latency time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the built-in planet table over HTTP",
		Long: `Serve the built-in planet table in the same shape as the public API,
for demos without network access:

  hookslab serve --addr 127.0.0.1:8080 --latency 500ms
  hookslab run --base-url http://127.0.0.1:8080/api`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fixture, err := startFixture(addr, latency)
			if err != nil {
				return err
			}
			atexit.Register(fixture.close)
			defer fixture.close()

			fmt.Fprintf(c.out, "serving planets at %s\n", fixture.baseURL)
			c.logger.Info("fixture server started", "base_url", fixture.baseURL, "latency", latency)

			select {
			case <-cmd.Context().Done():
			case err := <-fixture.errc:
				return err
			}
			c.logger.Info("fixture server stopped", "hits", fixture.handler.Hits())
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().DurationVar(&latency, "latency", 0, "artificial delay per planet response")
	return cmd
}

// fixtureServer is a running swapi.FixtureServer.
type fixtureServer struct {
	handler *swapi.FixtureServer
	server  *http.Server
	baseURL string
	errc    chan error
}

// startFixture serves the planet table on addr. Port 0 picks a free port.
func startFixture(addr string, latency time.Duration) (*fixtureServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	handler := swapi.NewFixtureServer(swapi.WithLatency(latency))
	f := &fixtureServer{
		handler: handler,
		server:  &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second},
		baseURL: "http://" + ln.Addr().String() + "/api",
		errc:    make(chan error, 1),
	}
	go func() {
		defer errors.Guard("serve", func(p *errors.PanicError) { f.errc <- p })
		if err := f.server.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			f.errc <- err
		}
	}()
	return f, nil
}

// close shuts the server down, waiting briefly for requests in flight.
func (f *fixtureServer) close() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := f.server.Shutdown(ctx); err != nil {
		f.server.Close()
	}
}
