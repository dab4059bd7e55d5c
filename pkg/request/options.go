package request

import (
	"context"
	"log/slog"
)

// Dispatcher runs callbacks on the UI thread. core.BuildOwner and
// engine.App implement it.
type Dispatcher interface {
	Dispatch(fn func())
}

type options struct {
	dispatcher Dispatcher
	logger     *slog.Logger
	ctx        context.Context
}

// Option configures a Unit.
type Option func(*options)

// WithDispatcher routes commits through d. Without one, commits run on the
// fetching goroutine.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) {
		o.dispatcher = d
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithContext sets the parent context of every attempt. Cancelling it
// cancels in-flight fetches; their results are still subject to the
// usual commit rules.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
