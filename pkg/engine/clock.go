package engine

import (
	"log/slog"
	"time"

	"github.com/go-drift/hookslab/pkg/core"
)

// Timer is a pending callback scheduled by a Clock.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer, false if it already fired or was stopped.
	Stop() bool
}

// Clock is the time source components schedule against. Callbacks passed
// to AfterFunc may run on any goroutine, so they must dispatch their state
// changes back to the tree.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is a Clock backed by the time package.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// AfterFunc wraps time.AfterFunc.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ClockContext provides the App's clock to components.
//
//	clock := core.UseContext(c, engine.ClockContext)
//	timer := clock.AfterFunc(time.Second, ...)
var ClockContext = core.NewContext[Clock](SystemClock{})

// LoggerContext provides the App's logger to components.
var LoggerContext = core.NewContext(slog.Default())
