package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// stackDepth bounds the frames kept by CaptureStack.
const stackDepth = 32

var current atomic.Pointer[ErrorHandler]

// SetHandler installs h as the process-wide handler. nil restores the
// default LogHandler, which writes through slog.Default().
func SetHandler(h ErrorHandler) {
	if h == nil {
		current.Store(nil)
		return
	}
	current.Store(&h)
}

// Handler returns the installed handler.
func Handler() ErrorHandler {
	if h := current.Load(); h != nil {
		return *h
	}
	return &LogHandler{}
}

// Report sends err to the handler, stamping it if Timestamp is zero.
func Report(err *HookError) {
	if err != nil {
		stamp(&err.Timestamp)
		Handler().HandleError(err)
	}
}

// ReportPanic sends a recovered panic to the handler.
func ReportPanic(err *PanicError) {
	if err != nil {
		stamp(&err.Timestamp)
		Handler().HandlePanic(err)
	}
}

// ReportBuildError sends a failed component build to the handler.
func ReportBuildError(err *BuildError) {
	if err != nil {
		stamp(&err.Timestamp)
		Handler().HandleBuildError(err)
	}
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Guard recovers a panic on the goroutine it is deferred on, reports it
// as a PanicError for op and passes it to onPanic when non-nil. Every
// goroutine the framework starts defers one:
//
//	go func() {
//		defer errors.Guard("demo.Session.read", nil)
//		...
//	}()
func Guard(op string, onPanic func(*PanicError)) {
	r := recover()
	if r == nil {
		return
	}
	p := &PanicError{Op: op, Value: r, StackTrace: CaptureStack()}
	ReportPanic(p)
	if onPanic != nil {
		onPanic(p)
	}
}

// CaptureStack formats the caller's stack, one "function\n\tfile:line"
// entry per frame, leaving out CaptureStack and its direct caller.
func CaptureStack() string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(3, pcs)
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for more := true; more; {
		var frame runtime.Frame
		frame, more = frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
	}
	return sb.String()
}
