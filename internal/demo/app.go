package demo

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-drift/hookslab/pkg/core"
	"github.com/go-drift/hookslab/pkg/engine"
	"github.com/go-drift/hookslab/pkg/widgets"
)

// DefaultNotificationTimeout is how long Notification shows its message.
const DefaultNotificationTimeout = 4 * time.Second

// App is the counter page: a notification, the -, + and hide buttons, a
// counter and the planet for the current value. Hiding it leaves only a
// show button, which tears the rest of the tree down.
func App(opts Options) core.Widget {
	return core.Func("App", func(c *core.BuildContext) core.Widget {
		value := core.UseState(c, 1)
		visible := core.UseState(c, true)

		if !visible.Value() {
			return widgets.ButtonOf("show", func() { visible.Set(true) })
		}

		var counter core.Widget = HookCounter(value.Value())
		if opts.Classic {
			counter = ClassCounter{Value: value.Value()}
		}
		return widgets.ColumnOf(
			Notification(opts.NotificationTimeout),
			widgets.ButtonOf("-", func() { value.Update(decrement) }),
			widgets.ButtonOf("+", func() { value.Update(increment) }),
			widgets.ButtonOf("hide", func() { visible.Set(false) }),
			counter,
			PlanetInfo(value.Value()),
		)
	})
}

func increment(v int) int { return v + 1 }

// decrement never goes below 1, the first planet id.
func decrement(v int) int {
	if v <= 1 {
		return 1
	}
	return v - 1
}

// Notification shows "Hello" until timeout elapses on the engine clock.
// The timer is stopped if the component goes away first.
func Notification(timeout time.Duration) core.Widget {
	if timeout <= 0 {
		timeout = DefaultNotificationTimeout
	}
	return core.Func("Notification", func(c *core.BuildContext) core.Widget {
		visible := core.UseState(c, true)
		clock := core.UseContext(c, engine.ClockContext)

		core.UseEffect(c, func() func() {
			timer := clock.AfterFunc(timeout, func() {
				c.Dispatch(func() { visible.Set(false) })
			})
			return func() { timer.Stop() }
		}, core.Deps())

		return widgets.Show(visible.Value(), widgets.TextOf("Hello"))
	})
}

// HookCounter renders "id: N". It logs mount once, update after every
// render and unmount on teardown.
func HookCounter(value int) core.Widget {
	return core.Func("HookCounter", func(c *core.BuildContext) core.Widget {
		logger := core.UseContext(c, engine.LoggerContext).With("component", "HookCounter")

		core.UseEffect(c, func() func() {
			logger.Info("mount")
			return func() { logger.Info("unmount") }
		}, core.Deps())
		core.UseEffect(c, func() func() {
			logger.Info("update", "value", value)
			return nil
		}, nil)

		return widgets.TextOf(fmt.Sprintf("id: %d", value))
	})
}

// ClassCounter is HookCounter written against the StatefulWidget
// lifecycle.
type ClassCounter struct {
	core.StatefulBase
	Value int
}

func (ClassCounter) CreateState() core.State {
	return &classCounterState{}
}

type classCounterState struct {
	core.StateBase
	logger  *slog.Logger
	mounted bool
}

func (s *classCounterState) Build(ctx *core.BuildContext) core.Widget {
	s.logger = core.UseContext(ctx, engine.LoggerContext).With("component", "ClassCounter")
	if !s.mounted {
		s.mounted = true
		s.logger.Info("class: mount")
	}
	return widgets.TextOf(fmt.Sprint(s.Element().Widget().(ClassCounter).Value))
}

func (s *classCounterState) DidUpdateWidget(core.StatefulWidget) {
	if s.logger != nil {
		s.logger.Info("class: update")
	}
}

func (s *classCounterState) Dispose() {
	if s.logger != nil {
		s.logger.Info("class: unmount")
	}
	s.StateBase.Dispose()
}
