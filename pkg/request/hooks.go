package request

import (
	"context"
	stderrors "errors"

	"github.com/go-drift/hookslab/pkg/core"
	"github.com/go-drift/hookslab/pkg/engine"
)

// ErrNoCallback is the failure committed by UseRequest for a nil handle.
var ErrNoCallback = stderrors.New("request: nil callback")

// Use binds a Unit to the calling component. The unit is created on the
// first render, requests key from an effect whenever key changes and is
// disposed when the component is torn down. The latest fetch is used for
// every new attempt, so an inline closure is fine here.
//
//	state := request.Use(c, id, func(ctx context.Context, id int) (swapi.Planet, error) {
//	    return source.Planet(ctx, id)
//	})
func Use[K comparable, T any](c *core.BuildContext, key K, fetch Fetcher[K, T]) State[T] {
	logger := core.UseContext(c, engine.LoggerContext)
	unit := core.UseController(c, func() *Unit[K, T] {
		opts := []Option{WithLogger(logger)}
		if owner := c.Owner(); owner != nil {
			opts = append(opts, WithDispatcher(owner))
		}
		return New(fetch, opts...)
	})
	state := core.UseState(c, unit.State())

	core.UseEffect(c, func() func() {
		return unit.Subscribe(state.Set)
	}, core.Deps())
	core.UseEffect(c, func() func() {
		unit.SetFetcher(fetch)
		return nil
	}, nil)
	core.UseEffect(c, func() func() {
		unit.Request(key)
		return nil
	}, core.Deps(key))

	return state.Value()
}

// UseRequest runs the memoized request cb and re-runs it whenever the
// handle changes. The handle's identity is the key: pass the result of
// core.UseCallback so that it only changes with its deps. A fresh handle
// on every render would restart the request on every render.
//
//	cb := core.UseCallback(c, func(ctx context.Context) (swapi.Planet, error) {
//	    return source.Planet(ctx, id)
//	}, core.Deps(id))
//	state := request.UseRequest(c, cb)
func UseRequest[T any](c *core.BuildContext, cb *core.Callback[func(context.Context) (T, error)]) State[T] {
	return Use[*core.Callback[func(context.Context) (T, error)], T](c, cb, runCallback[T])
}

func runCallback[T any](ctx context.Context, cb *core.Callback[func(context.Context) (T, error)]) (T, error) {
	if cb == nil || cb.Fn() == nil {
		var zero T
		return zero, ErrNoCallback
	}
	return cb.Fn()(ctx)
}
