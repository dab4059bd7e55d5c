package core

import (
	"fmt"
	"time"

	"github.com/go-drift/hookslab/pkg/errors"
)

// BuildContext is handed to every Render and Build call. For function
// components it also carries the hook slots; hooks must be called in the
// same order on every render and only from the Render function itself.
type BuildContext struct {
	element   Element
	slots     []hookSlot
	cursor    int
	rendered  bool // at least one render completed
	rendering bool
	disposed  bool
	providers map[*InheritedElement]struct{}
}

func newBuildContext(e *FuncElement) *BuildContext {
	return &BuildContext{element: e}
}

// Element returns the element this context belongs to.
func (c *BuildContext) Element() Element {
	return c.element
}

// Owner returns the BuildOwner scheduling this tree, or nil when detached.
func (c *BuildContext) Owner() *BuildOwner {
	if base, ok := c.element.(interface{ owner() *BuildOwner }); ok {
		return base.owner()
	}
	return nil
}

// Dispatch schedules fn on the UI thread. It is safe to call from any
// goroutine. Returns false if the tree has no owner.
func (c *BuildContext) Dispatch(fn func()) bool {
	owner := c.Owner()
	if owner == nil || fn == nil {
		return false
	}
	owner.Dispatch(fn)
	return true
}

// Mounted reports whether the component is still part of the tree.
func (c *BuildContext) Mounted() bool {
	if m, ok := c.element.(interface{ isMounted() bool }); ok {
		return m.isMounted()
	}
	return false
}

func (e *elementBase) owner() *BuildOwner {
	return e.buildOwner
}

// hookSlot is one entry in a component's hook list.
type hookSlot interface {
	hookName() string
}

func (c *BuildContext) beginRender() {
	c.cursor = 0
	c.rendering = true
}

func (c *BuildContext) endRender() {
	if c.rendered && c.cursor != len(c.slots) {
		panic(fmt.Sprintf("core: %s rendered %d hooks, previous render had %d; hooks must not be called conditionally",
			widgetName(c.element.Widget()), c.cursor, len(c.slots)))
	}
	c.rendering = false
	c.rendered = true
}

// useSlot returns the slot at the current cursor, creating it on the first
// render. It panics when the hook order differs from the previous render.
func useSlot[S hookSlot](c *BuildContext, create func() S) S {
	if _, ok := c.element.(*FuncElement); !ok {
		panic("core: hooks can only be called from function components")
	}
	if !c.rendering {
		panic("core: hooks can only be called while rendering")
	}
	index := c.cursor
	c.cursor++
	if index < len(c.slots) {
		slot, ok := c.slots[index].(S)
		if !ok {
			var want S
			panic(fmt.Sprintf("core: %s hook %d changed from %s to %s between renders",
				widgetName(c.element.Widget()), index, c.slots[index].hookName(), want.hookName()))
		}
		return slot
	}
	if c.rendered {
		panic(fmt.Sprintf("core: %s rendered more hooks than during the previous render",
			widgetName(c.element.Widget())))
	}
	slot := create()
	c.slots = append(c.slots, slot)
	return slot
}

// hasPendingEffects reports whether the last render queued effects. Effects
// queued by a render that panicked are dropped.
func (c *BuildContext) hasPendingEffects() bool {
	pending := false
	for _, slot := range c.slots {
		if effect, ok := slot.(*effectSlot); ok && effect.pending {
			if c.rendering {
				effect.pending = false
				continue
			}
			pending = true
		}
	}
	c.rendering = false
	return pending
}

// runCleanups runs the cleanup of every effect scheduled to re-run.
func (c *BuildContext) runCleanups() {
	for _, slot := range c.slots {
		if effect, ok := slot.(*effectSlot); ok && effect.pending {
			c.guard("cleanup", effect.runCleanup)
		}
	}
}

// runEffects runs every pending effect in declaration order.
func (c *BuildContext) runEffects() {
	for _, slot := range c.slots {
		if effect, ok := slot.(*effectSlot); ok && effect.pending {
			c.guard("effect", effect.run)
		}
	}
}

// dispose runs all remaining cleanups in declaration order and detaches
// from any providers.
func (c *BuildContext) dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	for provider := range c.providers {
		provider.RemoveDependent(c.element)
	}
	c.providers = nil
	for _, slot := range c.slots {
		if effect, ok := slot.(*effectSlot); ok {
			effect.pending = false
			c.guard("cleanup", effect.runCleanup)
		}
	}
}

// guard runs fn, reporting a panic as an effect error instead of unwinding
// through the frame.
func (c *BuildContext) guard(phase string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			errors.Report(&errors.HookError{
				Op:         "core." + phase,
				Kind:       errors.KindEffect,
				Component:  widgetName(c.element.Widget()),
				Err:        fmt.Errorf("%s panicked: %v", phase, r),
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
	}()
	fn()
}
