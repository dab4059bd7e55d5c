package engine

import (
	"log/slog"
	"time"
)

// DefaultMaxUpdateDepth bounds the dispatch, build and effect passes a
// single frame may run before it gives up.
const DefaultMaxUpdateDepth = 50

// Option configures an App.
type Option func(*App)

// WithClock sets the clock provided to components. Defaults to SystemClock.
func WithClock(clock Clock) Option {
	return func(a *App) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithLogger sets the logger used by the App and provided to components.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMaxUpdateDepth overrides DefaultMaxUpdateDepth.
func WithMaxUpdateDepth(depth int) Option {
	return func(a *App) {
		if depth > 0 {
			a.maxDepth = depth
		}
	}
}

// WithFrameTrace records a sample per frame into a ring buffer of the
// given capacity. Frames slower than threshold are counted as slow.
func WithFrameTrace(capacity int, threshold time.Duration) Option {
	return func(a *App) {
		a.trace = NewFrameTraceBuffer(capacity, threshold)
	}
}
