package demo

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-drift/hookslab/pkg/engine"
	hooktest "github.com/go-drift/hookslab/pkg/testing"
)

//go:generate mockgen -destination mock_swapi_test.go -package $GOPACKAGE -write_package_comment=false github.com/go-drift/hookslab/pkg/swapi PlanetSource

const settle = time.Second

// logRecorder keeps the message of every Info or louder record.
type logRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *logRecorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (r *logRecorder) Handle(_ context.Context, record slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, record.Message)
	return nil
}

func (r *logRecorder) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *logRecorder) WithGroup(string) slog.Handler      { return r }

func (r *logRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// newTester returns a tester whose components log into the returned recorder.
func newTester(t *testing.T) (*hooktest.WidgetTester, *logRecorder) {
	t.Helper()
	rec := &logRecorder{}
	return hooktest.NewWidgetTesterWithT(t, engine.WithLogger(slog.New(rec))), rec
}

func waitForText(t *testing.T, tester *hooktest.WidgetTester, text string) {
	t.Helper()
	err := tester.PumpUntil(func() bool { return tester.FindText(text) }, settle)
	require.NoError(t, err, "waiting for %q, output:\n%s", text, tester.Output())
}
