package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/hookslab/pkg/core"
	"github.com/go-drift/hookslab/pkg/errors"
	"github.com/go-drift/hookslab/pkg/widgets"
)

var (
	// ErrUpdateDepth is wrapped by the KindUpdateDepth error a frame
	// returns when effects keep scheduling updates.
	ErrUpdateDepth = stderrors.New("maximum update depth exceeded")
	// ErrUnmounted is returned by Frame after Unmount.
	ErrUnmounted = stderrors.New("app unmounted")
	// ErrNoButton is returned by Tap when no enabled button has the label.
	ErrNoButton = stderrors.New("no button with label")
)

// App hosts one component tree and drives its frames. The goroutine
// holding the frame lock acts as the UI thread: Frame, Tap and Unmount
// take it, and work finished elsewhere arrives through Dispatch.
type App struct {
	frameLock sync.Mutex
	owner     *core.BuildOwner
	root      core.Element
	userApp   core.Widget
	clock     Clock
	logger    *slog.Logger
	maxDepth  int
	trace     *FrameTraceBuffer
	frames    atomic.Uint64
	unmounted bool

	wake chan struct{}
	done chan struct{}
}

// New creates an App for root. The tree is mounted by the first Frame.
func New(root core.Widget, opts ...Option) *App {
	a := &App{
		owner:    core.NewBuildOwner(),
		userApp:  root,
		clock:    SystemClock{},
		logger:   slog.Default(),
		maxDepth: DefaultMaxUpdateDepth,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.owner.OnNeedsFrame = a.RequestFrame
	return a
}

// Owner returns the BuildOwner of the tree.
func (a *App) Owner() *core.BuildOwner { return a.owner }

// Clock returns the clock provided to components.
func (a *App) Clock() Clock { return a.clock }

// Logger returns the App's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Trace returns the frame trace buffer, or nil when tracing is disabled.
func (a *App) Trace() *FrameTraceBuffer { return a.trace }

// FrameCount returns the number of frames run so far.
func (a *App) FrameCount() uint64 { return a.frames.Load() }

// Root returns the root element, or nil before the first frame.
func (a *App) Root() core.Element {
	a.frameLock.Lock()
	defer a.frameLock.Unlock()
	return a.root
}

// Output returns the rendered outline of the tree.
func (a *App) Output() string {
	a.frameLock.Lock()
	defer a.frameLock.Unlock()
	return core.Render(a.root)
}

// Dispatch queues fn to run at the start of the next frame.
// It is safe to call from any goroutine.
func (a *App) Dispatch(fn func()) {
	a.owner.Dispatch(fn)
}

// RequestFrame wakes Run without queuing work.
func (a *App) RequestFrame() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *App) wrap() core.Widget {
	return ClockContext.Provide(a.clock, LoggerContext.Provide(a.logger, a.userApp))
}

// Frame mounts the tree if needed, then repeatedly drains dispatched
// callbacks, flushes builds and runs effects until nothing is pending.
//
// A frame that needs more than the update-depth limit of passes stops,
// reports a KindUpdateDepth error and returns it. The remaining work stays
// queued for the next frame.
func (a *App) Frame() error {
	a.frameLock.Lock()
	defer a.frameLock.Unlock()

	if a.unmounted {
		return ErrUnmounted
	}

	start := time.Now()
	if a.root == nil {
		a.root = core.MountRoot(a.wrap(), a.owner)
	}

	var counts FrameCounts
	var frameErr error
	for {
		if counts.Passes >= a.maxDepth {
			frameErr = a.depthExceeded(counts.Passes)
			break
		}
		counts.Passes++
		counts.Dispatched += a.owner.RunDispatched()
		a.owner.FlushBuild()
		counts.EffectsRun += a.owner.FlushEffects()
		if !a.owner.NeedsWork() {
			break
		}
	}

	frame := a.frames.Add(1)
	elapsed := time.Since(start)
	a.logger.Debug("frame",
		"frame", frame,
		"passes", counts.Passes,
		"dispatched", counts.Dispatched,
		"effects", counts.EffectsRun,
		"elapsed", elapsed,
	)
	if a.trace != nil {
		counts.ElementCount = countElementTree(a.root)
		counts.PendingAtFinish = a.owner.PendingDispatches()
		a.trace.Add(FrameSample{
			Timestamp:     start.UnixMilli(),
			FrameMs:       durationToMillis(elapsed),
			Counts:        counts,
			DepthExceeded: frameErr != nil,
		}, elapsed)
	}
	return frameErr
}

func (a *App) depthExceeded(passes int) error {
	err := &errors.HookError{
		Op:        "engine.Frame",
		Kind:      errors.KindUpdateDepth,
		Err:       fmt.Errorf("%w after %d passes", ErrUpdateDepth, passes),
		Timestamp: time.Now(),
	}
	if core.DebugMode {
		err.StackTrace = errors.CaptureStack()
	}
	errors.Report(err)
	return err
}

// Tap taps the first enabled button labelled label. The resulting updates
// are picked up by the next frame.
func (a *App) Tap(label string) error {
	a.frameLock.Lock()
	if a.unmounted {
		a.frameLock.Unlock()
		return ErrUnmounted
	}
	var target *widgets.Button
	core.Walk(a.root, func(e core.Element) bool {
		if button, ok := e.Widget().(widgets.Button); ok && button.Label == label && !button.Disabled {
			target = &button
			return false
		}
		return true
	})
	if target == nil {
		a.frameLock.Unlock()
		return fmt.Errorf("%w %q", ErrNoButton, label)
	}
	target.Tap()
	a.frameLock.Unlock()

	a.RequestFrame()
	return nil
}

// Run renders frames until ctx is done or the App is unmounted. After
// each frame whose outline differs from the previous one, onFrame receives
// the new outline. Between frames Run sleeps until work is dispatched or a
// frame is requested.
//
// Update-depth errors are logged and do not stop the loop.
func (a *App) Run(ctx context.Context, onFrame func(output string)) error {
	var last string
	first := true
	for {
		err := a.Frame()
		switch {
		case stderrors.Is(err, ErrUnmounted):
			return nil
		case err != nil:
			a.logger.Warn("frame did not settle", "err", err)
		}

		if onFrame != nil {
			if output := a.Output(); first || output != last {
				first = false
				last = output
				onFrame(output)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.done:
			return nil
		case <-a.wake:
		case <-a.owner.Wake():
		}
	}
}

// Unmount tears the tree down, running every effect cleanup. Callbacks
// still queued are dropped. Calling Unmount again is a no-op.
func (a *App) Unmount() {
	a.frameLock.Lock()
	defer a.frameLock.Unlock()
	if a.unmounted {
		return
	}
	a.unmounted = true
	if a.root != nil {
		a.root.Unmount()
		a.root = nil
	}
	if dropped := a.owner.PendingDispatches(); dropped > 0 {
		a.logger.Debug("dropping dispatched callbacks", "count", dropped)
	}
	close(a.done)
}

// Unmounted reports whether Unmount was called.
func (a *App) Unmounted() bool {
	a.frameLock.Lock()
	defer a.frameLock.Unlock()
	return a.unmounted
}
