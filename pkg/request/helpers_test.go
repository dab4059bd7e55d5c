package request

import (
	"context"
	"sync"
	"sync/atomic"
)

type planet struct {
	Name string
}

type outcome struct {
	data planet
	err  error
}

// call is one blocked invocation of a gatedFetcher.
type call struct {
	key     int
	ctx     context.Context
	release chan outcome
}

func (c *call) succeed(name string) { c.release <- outcome{data: planet{Name: name}} }

func (c *call) fail(err error) { c.release <- outcome{err: err} }

// gatedFetcher blocks every fetch until the test releases it, ignoring
// cancellation so that late results can be observed.
type gatedFetcher struct {
	calls chan *call
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{calls: make(chan *call, 16)}
}

func (g *gatedFetcher) fetch(ctx context.Context, key int) (planet, error) {
	c := &call{key: key, ctx: ctx, release: make(chan outcome, 1)}
	g.calls <- c
	o := <-c.release
	return o.data, o.err
}

// recorder collects the states delivered to a listener.
type recorder struct {
	mu     sync.Mutex
	states []State[planet]
}

func (r *recorder) record(s State[planet]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) all() []State[planet] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State[planet](nil), r.states...)
}

func (r *recorder) statuses() []Status {
	var result []Status
	for _, s := range r.all() {
		result = append(result, s.Status)
	}
	return result
}

// stallingListener holds up the delivery of every settled state until the
// test releases it.
type stallingListener struct {
	calls   atomic.Int32
	stalled chan State[planet]
	release chan struct{}
	once    sync.Once
}

func newStallingListener() *stallingListener {
	return &stallingListener{
		stalled: make(chan State[planet], 4),
		release: make(chan struct{}),
	}
}

func (l *stallingListener) record(s State[planet]) {
	l.calls.Add(1)
	if s.IsLoading() {
		return
	}
	l.stalled <- s
	<-l.release
}

func (l *stallingListener) unblock() { l.once.Do(func() { close(l.release) }) }
