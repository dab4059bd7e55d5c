package request

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/go-drift/hookslab/pkg/errors"
)

// Fetcher performs one attempt for key. It should return promptly once ctx
// is cancelled, but a late return is harmless: superseded results are
// discarded.
type Fetcher[K comparable, T any] func(ctx context.Context, key K) (T, error)

// flight is one issued attempt.
type flight[K comparable, T any] struct {
	id        string
	gen       uint64
	key       K
	fetch     Fetcher[K, T]
	ctx       context.Context
	cancel    context.CancelFunc
	cancelled bool
	started   time.Time
}

type listener[T any] struct {
	fn func(State[T])
}

// Unit issues a fetch whenever its key changes and tracks the outcome as
// a State. Only the latest attempt may commit: a result that arrives after
// the key changed again, after Refresh, or after Dispose is dropped.
//
// Request, Refresh and Dispose are meant to be called from the UI thread.
// Listeners run on the UI thread when a Dispatcher is configured, and on
// the fetching goroutine otherwise. Deliveries are serialized with state
// changes: a listener never sees a transition out of order, and none is
// called once Dispose has returned. Listeners must not call Request,
// Refresh or Dispose.
type Unit[K comparable, T any] struct {
	// deliver is held from a state change until its listeners return.
	// It is taken before mu.
	deliver   sync.Mutex
	mu        sync.Mutex
	fetch     Fetcher[K, T]
	opts      options
	state     State[T]
	key       K
	hasKey    bool
	gen       uint64
	current   *flight[K, T]
	listeners []*listener[T]
	disposed  bool
}

// New creates a Unit in the Loading state with no key.
func New[K comparable, T any](fetch Fetcher[K, T], opts ...Option) *Unit[K, T] {
	o := options{
		logger: slog.Default(),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Unit[K, T]{
		fetch: fetch,
		opts:  o,
		state: loading[T](),
	}
}

// State returns the current snapshot.
func (u *Unit[K, T]) State() State[T] {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Key returns the current key and whether one was requested.
func (u *Unit[K, T]) Key() (K, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.key, u.hasKey
}

// Disposed reports whether Dispose was called.
func (u *Unit[K, T]) Disposed() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.disposed
}

// SetFetcher replaces the function used by later attempts. Attempts
// already in flight keep the fetcher they started with.
func (u *Unit[K, T]) SetFetcher(fetch Fetcher[K, T]) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.fetch = fetch
}

// Subscribe registers fn to receive every committed transition. The
// returned function unsubscribes; calling it more than once is safe.
func (u *Unit[K, T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	l := &listener[T]{fn: fn}
	u.mu.Lock()
	if !u.disposed {
		u.listeners = append(u.listeners, l)
	}
	u.mu.Unlock()

	return func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		for i, existing := range u.listeners {
			if existing == l {
				u.listeners = append(u.listeners[:i:i], u.listeners[i+1:]...)
				return
			}
		}
	}
}

// Request moves the unit to key. Requesting the current key again is a
// no-op; use Refresh to re-fetch it. Otherwise the in-flight attempt is
// cancelled, the state becomes Loading and one new fetch starts.
func (u *Unit[K, T]) Request(key K) {
	u.deliver.Lock()
	defer u.deliver.Unlock()
	u.mu.Lock()
	if u.disposed || (u.hasKey && u.key == key) {
		u.mu.Unlock()
		return
	}
	u.key, u.hasKey = key, true
	u.launchLocked()
}

// Refresh re-issues the current key: the state becomes Loading again and
// a new fetch starts. Nothing is cached. Without a key it does nothing.
func (u *Unit[K, T]) Refresh() {
	u.deliver.Lock()
	defer u.deliver.Unlock()
	u.mu.Lock()
	if u.disposed || !u.hasKey {
		u.mu.Unlock()
		return
	}
	u.launchLocked()
}

// launchLocked supersedes the current flight and starts a new one. It
// must be called with u.deliver and u.mu held and releases u.mu.
func (u *Unit[K, T]) launchLocked() {
	u.cancelLocked("superseded")

	u.gen++
	ctx, cancel := context.WithCancel(u.opts.ctx)
	f := &flight[K, T]{
		id:      xid.New().String(),
		gen:     u.gen,
		key:     u.key,
		fetch:   u.fetch,
		ctx:     ctx,
		cancel:  cancel,
		started: time.Now(),
	}
	u.current = f

	wasLoading := u.state.Status == Loading
	u.state = loading[T]()
	state, listeners := u.state, u.snapshotListenersLocked()
	u.mu.Unlock()

	u.opts.logger.Debug("request started", "id", f.id, "gen", f.gen, "key", f.key)
	if !wasLoading {
		notify(listeners, state)
	}
	go u.run(f)
}

// cancelLocked marks the current flight cancelled and cancels its context.
func (u *Unit[K, T]) cancelLocked(reason string) {
	f := u.current
	if f == nil || f.cancelled {
		return
	}
	f.cancelled = true
	f.cancel()
	u.opts.logger.Debug("request cancelled", "id", f.id, "gen", f.gen, "reason", reason)
}

// run waits for f on its own goroutine. Without a dispatcher the commit,
// and so every listener, runs here too.
func (u *Unit[K, T]) run(f *flight[K, T]) {
	defer errors.Guard("request.deliver", nil)
	data, err := callFetcher(f)

	if reason := u.staleReason(f); reason != "" {
		u.discard(f, reason)
		return
	}
	commit := func() { u.commit(f, data, err) }
	if u.opts.dispatcher != nil {
		u.opts.dispatcher.Dispatch(commit)
		return
	}
	commit()
}

// callFetcher runs the attempt, turning a panic into an error.
func callFetcher[K comparable, T any](f *flight[K, T]) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("request: fetch panicked: %v", r)
			errors.Report(&errors.HookError{
				Op:         "request.fetch",
				Kind:       errors.KindRequest,
				Err:        err,
				StackTrace: errors.CaptureStack(),
			})
		}
	}()
	if f.fetch == nil {
		return data, fmt.Errorf("request: no fetcher for key %v", f.key)
	}
	return f.fetch(f.ctx, f.key)
}

// staleReason explains why f may no longer commit, or returns "".
func (u *Unit[K, T]) staleReason(f *flight[K, T]) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.staleReasonLocked(f)
}

func (u *Unit[K, T]) staleReasonLocked(f *flight[K, T]) string {
	switch {
	case u.disposed:
		return "disposed"
	case f.cancelled:
		return "cancelled"
	case f.gen != u.gen:
		return "superseded"
	default:
		return ""
	}
}

func (u *Unit[K, T]) discard(f *flight[K, T], reason string) {
	u.opts.logger.Debug("request result discarded",
		"id", f.id,
		"gen", f.gen,
		"key", f.key,
		"reason", reason,
	)
}

// commit applies the outcome of f if it is still the latest attempt.
func (u *Unit[K, T]) commit(f *flight[K, T], data T, err error) {
	u.deliver.Lock()
	defer u.deliver.Unlock()
	u.mu.Lock()
	if reason := u.staleReasonLocked(f); reason != "" {
		u.mu.Unlock()
		u.discard(f, reason)
		return
	}
	f.cancel()
	u.current = nil
	if err != nil {
		u.state = failed[T](err)
	} else {
		u.state = succeeded(data)
	}
	state, listeners := u.state, u.snapshotListenersLocked()
	u.mu.Unlock()

	u.opts.logger.Debug("request committed",
		"id", f.id,
		"gen", f.gen,
		"key", f.key,
		"status", state.Status.String(),
		"elapsed", time.Since(f.started),
	)
	notify(listeners, state)
}

// Dispose tears the unit down: the in-flight attempt is cancelled and no
// later Request, Refresh or commit has any effect. A delivery already in
// progress finishes first. Calling it again is safe.
func (u *Unit[K, T]) Dispose() {
	u.deliver.Lock()
	defer u.deliver.Unlock()
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.disposed {
		return
	}
	u.cancelLocked("disposed")
	u.disposed = true
	u.listeners = nil
}

func (u *Unit[K, T]) snapshotListenersLocked() []*listener[T] {
	if len(u.listeners) == 0 {
		return nil
	}
	return append([]*listener[T](nil), u.listeners...)
}

func notify[T any](listeners []*listener[T], state State[T]) {
	for _, l := range listeners {
		l.fn(state)
	}
}
