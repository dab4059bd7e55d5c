// Package testbed provides internal test widgets for the testing framework.
package testbed

import (
	"fmt"
	"time"

	"github.com/go-drift/hookslab/pkg/core"
	"github.com/go-drift/hookslab/pkg/engine"
	"github.com/go-drift/hookslab/pkg/widgets"
)

// Counter is a stateful widget that displays a count and increments when
// its "+" button is tapped.
type Counter struct {
	core.StatefulBase
	Initial int
	OnTap   func(count int)
}

func (c Counter) CreateState() core.State {
	return &counterState{}
}

type counterState struct {
	core.StateBase
	count int
	onTap func(int)
}

func (s *counterState) InitState() {
	w := s.Element().Widget().(Counter)
	s.count = w.Initial
	s.onTap = w.OnTap
}

func (s *counterState) Build(ctx *core.BuildContext) core.Widget {
	return widgets.Column{Children: []core.Widget{
		widgets.Text{Content: fmt.Sprintf("%d", s.count)},
		widgets.Button{
			Label: "+",
			OnTap: func() {
				s.SetState(func() {
					s.count++
				})
				if s.onTap != nil {
					s.onTap(s.count)
				}
			},
		},
	}}
}

func (s *counterState) DidUpdateWidget(oldWidget core.StatefulWidget) {
	if w, ok := s.Element().Widget().(Counter); ok {
		s.onTap = w.OnTap
	}
}

// Delayed shows Before until After has elapsed on the engine clock.
func Delayed(before, after string, delay time.Duration) core.Widget {
	return core.Func("Delayed", func(c *core.BuildContext) core.Widget {
		done := core.UseState(c, false)
		clock := core.UseContext(c, engine.ClockContext)
		core.UseEffect(c, func() func() {
			timer := clock.AfterFunc(delay, func() {
				c.Dispatch(func() { done.Set(true) })
			})
			return func() { timer.Stop() }
		}, core.Deps())
		if done.Value() {
			return widgets.Text{Content: after}
		}
		return widgets.Text{Content: before}
	})
}

// Async shows "waiting" until result is closed or receives, then shows
// the received string. The receive happens on its own goroutine.
func Async(result <-chan string) core.Widget {
	return core.Func("Async", func(c *core.BuildContext) core.Widget {
		value := core.UseState(c, "waiting")
		core.UseEffect(c, func() func() {
			go func() {
				v := <-result
				c.Dispatch(func() { value.Set(v) })
			}()
			return nil
		}, core.Deps())
		return widgets.Text{Content: value.Value()}
	})
}
