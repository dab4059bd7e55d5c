// Package core provides the component tree, its lifecycle, and hooks.
//
// This package defines the foundational types for building declarative
// component trees: Widget, Element, BuildContext, and BuildOwner. Widgets
// describe what the tree should look like; elements are their live
// instances and carry state across rebuilds.
//
// # Function Components
//
// A FuncWidget renders from a function. State and side effects are attached
// with hooks, which must be called unconditionally and in the same order on
// every render:
//
//	counter := core.Func("Counter", func(c *core.BuildContext) core.Widget {
//	    value := core.UseState(c, 1)
//	    core.UseEffect(c, func() func() {
//	        log.Println("mount")
//	        return func() { log.Println("unmount") }
//	    }, core.Deps())
//	    return widgets.Text{Content: fmt.Sprintf("id: %d", value.Value())}
//	})
//
// # Hooks
//
//   - UseState registers an independent state slot. Set replaces the value.
//   - UseEffect schedules work after the render is committed, with an
//     optional cleanup that runs before the next run and on teardown.
//   - UseMemo and UseCallback cache a value or a function handle between
//     renders while their dependencies are unchanged.
//   - UseRef keeps a mutable box that never triggers rebuilds.
//   - UseContext reads the nearest provider of a Context.
//
// # Stateful Components
//
// For the class-style lifecycle, embed StateBase in a state struct and
// implement StatefulWidget. InitState, DidUpdateWidget and Dispose mirror
// mount, update and unmount.
//
// # Threading
//
// The tree is single-threaded. Work finished on other goroutines must be
// handed back with BuildOwner.Dispatch (or BuildContext.Dispatch); the host
// loop drains dispatched callbacks, flushes builds, then flushes effects.
package core
