package testing

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-drift/hookslab/pkg/core"
	"github.com/go-drift/hookslab/pkg/engine"
)

// frameDuration is how far PumpAndSettle advances the fake clock per frame.
const frameDuration = 16 * time.Millisecond

var (
	// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
	ErrSettleTimeout = errors.New("PumpAndSettle timed out: tree did not settle")
	// ErrPumpTimeout is returned when PumpUntil's condition never held.
	ErrPumpTimeout = errors.New("PumpUntil timed out: condition not met")
	// ErrNotMounted is returned by operations that need a pumped widget.
	ErrNotMounted = errors.New("no widget pumped")
)

// WidgetTester drives a component tree through an engine.App backed by a
// FakeClock, so timers only fire when the test advances time.
type WidgetTester struct {
	app    *engine.App
	clock  *FakeClock
	logger *slog.Logger
	opts   []engine.Option
}

// NewWidgetTester creates a tester. Options are applied to every App the
// tester creates, after the fake clock and a discarding logger.
// Call Cleanup() when done, or use NewWidgetTesterWithT() instead.
func NewWidgetTester(opts ...engine.Option) *WidgetTester {
	return &WidgetTester{
		clock:  NewFakeClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		opts:   opts,
	}
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t testing.TB, opts ...engine.Option) *WidgetTester {
	tester := NewWidgetTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the current tree.
func (t *WidgetTester) Cleanup() {
	if t.app != nil {
		t.app.Unmount()
	}
}

// Clock returns the fake clock for advancing time in tests.
func (t *WidgetTester) Clock() *FakeClock {
	return t.clock
}

// App returns the App hosting the current tree, or nil before PumpWidget.
func (t *WidgetTester) App() *engine.App {
	return t.app
}

// PumpWidget mounts (or remounts) a widget and runs one full frame.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	if t.app != nil {
		t.app.Unmount()
	}
	opts := append([]engine.Option{engine.WithClock(t.clock), engine.WithLogger(t.logger)}, t.opts...)
	t.app = engine.New(widget, opts...)
	return t.Pump()
}

// Pump runs a single frame: dispatched callbacks, builds and effects,
// repeated until the tree is quiet or the update-depth limit is hit.
func (t *WidgetTester) Pump() error {
	if t.app == nil {
		return ErrNotMounted
	}
	return t.app.Frame()
}

// PumpAndSettle runs frames until nothing is pending or the timeout is
// reached. Each frame advances the fake clock by 16ms, so timers inside
// the timeout fire.
func (t *WidgetTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.app.Owner().NeedsWork() && t.clock.PendingTimers() == 0 {
			return nil
		}
		t.clock.Advance(frameDuration)
		elapsed += frameDuration
	}
	return ErrSettleTimeout
}

// PumpUntil pumps frames until cond holds, waiting in real time for work
// dispatched by other goroutines (for example a finished fetch). The fake
// clock is not advanced.
func (t *WidgetTester) PumpUntil(cond func() bool, timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		if err := t.Pump(); err != nil {
			return err
		}
		if cond() {
			return nil
		}
		select {
		case <-t.app.Owner().Wake():
		case <-deadline.C:
			if err := t.Pump(); err != nil {
				return err
			}
			if cond() {
				return nil
			}
			return ErrPumpTimeout
		}
	}
}

// Dispatch queues a callback for the next frame, mirroring engine.App.Dispatch.
func (t *WidgetTester) Dispatch(fn func()) {
	if t.app != nil {
		t.app.Dispatch(fn)
	}
}

// RootElement returns the root element of the mounted tree.
func (t *WidgetTester) RootElement() core.Element {
	if t.app == nil {
		return nil
	}
	return t.app.Root()
}

// Output returns the rendered outline of the current tree.
func (t *WidgetTester) Output() string {
	if t.app == nil {
		return ""
	}
	return t.app.Output()
}

// Find evaluates a finder against the current element tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	root := t.RootElement()
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(root),
		finder:   finder,
	}
}

// FindText reports whether a Text with exactly this content is mounted.
func (t *WidgetTester) FindText(content string) bool {
	return t.Find(ByText(content)).Exists()
}

// FindButton reports whether a button with this label is mounted.
func (t *WidgetTester) FindButton(label string) bool {
	return t.Find(ByLabel(label)).Exists()
}

// Tap taps the first enabled button with the given label and pumps a frame.
func (t *WidgetTester) Tap(label string) error {
	if t.app == nil {
		return ErrNotMounted
	}
	if err := t.app.Tap(label); err != nil {
		return err
	}
	return t.Pump()
}

// Unmount tears down the current tree, running every effect cleanup.
func (t *WidgetTester) Unmount() {
	if t.app != nil {
		t.app.Unmount()
	}
}
