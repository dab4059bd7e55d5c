package demo

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-drift/hookslab/pkg/engine"
	"github.com/go-drift/hookslab/pkg/errors"
)

// QuitCommand ends a session.
const QuitCommand = "quit"

// Session hosts one demo on an engine.App and feeds it line commands.
// Every outline that differs from the last one written is printed,
// followed by a blank line.
type Session struct {
	demo   Demo
	app    *engine.App
	logger *slog.Logger

	mu     sync.Mutex
	out    io.Writer
	last   string
	closed bool
}

// NewSession builds d with opts and hosts it on a new App.
func NewSession(d Demo, opts Options, engineOpts ...engine.Option) *Session {
	app := engine.New(d.Builder(opts), engineOpts...)
	return &Session{
		demo:   d,
		app:    app,
		logger: app.Logger().With("demo", d.Name),
	}
}

// App returns the hosting App.
func (s *Session) App() *engine.App {
	return s.app
}

// Close unmounts the tree. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.app.Unmount()
}

// Run renders the demo to out and applies each line read from in until
// in is exhausted, QuitCommand is read or ctx is done. Unknown commands
// are reported to out and otherwise ignored. The tree is unmounted when
// Run returns.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.out = out
	defer s.Close()

	if err := s.render(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		defer errors.Guard("demo.Session.run", func(p *errors.PanicError) { runErr <- p })
		runErr <- s.app.Run(ctx, func(string) { s.flush() })
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		defer errors.Guard("demo.Session.read", nil)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			s.logger.Warn("reading commands", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			<-runErr
			return ctx.Err()
		case err := <-runErr:
			return err
		case line, ok := <-lines:
			if !ok || line == QuitCommand {
				s.Close()
				<-runErr
				return nil
			}
			if line == "" {
				continue
			}
			if err := s.apply(line); err != nil {
				s.printf("%v\n", err)
			}
		}
	}
}

// apply taps the button bound to command and renders the result.
func (s *Session) apply(command string) error {
	label, ok := s.demo.Commands[command]
	if !ok {
		return fmt.Errorf("unknown command %q (try: %s)", command, strings.Join(append(s.demo.CommandNames(), QuitCommand), ", "))
	}
	s.logger.Debug("command", "command", command, "button", label)
	if err := s.app.Tap(label); err != nil {
		return err
	}
	return s.render()
}

// render runs a frame and writes the outline if it changed.
func (s *Session) render() error {
	if err := s.app.Frame(); err != nil {
		return err
	}
	s.flush()
	return nil
}

// flush writes the current outline if it differs from the last one
// written. The outline is read under mu so that a frame finished by Run
// can never overwrite a newer one.
func (s *Session) flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	output := s.app.Output()
	if output == s.last {
		return
	}
	s.last = output
	fmt.Fprintln(s.out, output)
}

func (s *Session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}
