package core

// rebuilder is satisfied by anything that can schedule its own rebuild:
// FuncElement for hooks and StateBase for stateful components.
type rebuilder interface {
	requestBuild()
}

func (e *FuncElement) requestBuild() {
	if !e.mounted {
		return
	}
	e.MarkNeedsBuild()
}

func (s *StateBase) requestBuild() {
	s.SetState(nil)
}

// Managed holds a value and triggers rebuilds when it changes.
//
// Set replaces the whole value; nothing is merged. Calls made after the
// owning component was torn down are ignored.
//
// Managed is NOT thread-safe. It must only be accessed from the UI thread.
// To update from a background goroutine, dispatch the update:
//
//	go func() {
//	    result := doExpensiveWork()
//	    c.Dispatch(func() {
//	        data.Set(result) // Safe - runs on UI thread
//	    })
//	}()
type Managed[T any] struct {
	owner rebuilder
	value T
}

func (*Managed[T]) hookName() string { return "UseState" }

// UseState registers a state slot holding initial on the first render and
// returns the same slot on every later render.
//
//	color := core.UseState(c, "white")
//	fontSize := core.UseState(c, 14)
//	fontSize.Update(func(s int) int { return s + 2 })
func UseState[T any](c *BuildContext, initial T) *Managed[T] {
	return useSlot(c, func() *Managed[T] {
		return &Managed[T]{owner: c.element.(*FuncElement), value: initial}
	})
}

// NewManaged creates a managed value owned by a stateful component.
// Changes to this value will automatically trigger a rebuild.
func NewManaged[T any](s stateBase, initial T) *Managed[T] {
	return &Managed[T]{
		owner: s.state(),
		value: initial,
	}
}

// Value returns the current value.
func (m *Managed[T]) Value() T {
	return m.value
}

// Set updates the value and triggers a rebuild.
func (m *Managed[T]) Set(value T) {
	if gone, ok := m.owner.(interface{ isMounted() bool }); ok && !gone.isMounted() {
		return
	}
	m.value = value
	m.owner.requestBuild()
}

// Update applies a transformation to the current value and triggers a rebuild.
func (m *Managed[T]) Update(transform func(T) T) {
	m.Set(transform(m.value))
}

// Deps builds a dependency list. Deps() with no arguments is the empty list:
// the effect or memo is computed once. Passing nil instead of a list means
// "no dependency list", so the effect runs after every render.
func Deps(values ...any) []any {
	if values == nil {
		return []any{}
	}
	return values
}

type effectSlot struct {
	effect  func() func()
	deps    []any
	cleanup func()
	ran     bool
	pending bool
}

func (*effectSlot) hookName() string { return "UseEffect" }

func (s *effectSlot) runCleanup() {
	cleanup := s.cleanup
	s.cleanup = nil
	if cleanup != nil {
		cleanup()
	}
}

func (s *effectSlot) run() {
	s.pending = false
	s.ran = true
	if s.effect != nil {
		s.cleanup = s.effect()
	}
}

// UseEffect registers a side effect that runs after the render is committed.
//
//   - deps == nil: the effect runs after every render.
//   - Deps(): the effect runs once, after the first render.
//   - Deps(a, b): the effect runs after the first render and whenever a or b changed.
//
// The function returned by effect, if any, is the cleanup. It runs before
// the effect runs again and when the component is torn down.
func UseEffect(c *BuildContext, effect func() func(), deps []any) {
	slot := useSlot(c, func() *effectSlot { return &effectSlot{} })
	if slot.ran && deps != nil && !depsChanged(slot.deps, deps) {
		return
	}
	slot.effect = effect
	slot.deps = deps
	slot.pending = true
}

type memoSlot[T any] struct {
	value    T
	deps     []any
	computed bool
}

func (*memoSlot[T]) hookName() string { return "UseMemo" }

// UseMemo returns the value computed by compute, recomputing it only when
// deps changed. Nil deps recompute on every render.
func UseMemo[T any](c *BuildContext, compute func() T, deps []any) T {
	slot := useSlot(c, func() *memoSlot[T] { return &memoSlot[T]{} })
	if !slot.computed || deps == nil || depsChanged(slot.deps, deps) {
		slot.value = compute()
		slot.deps = deps
		slot.computed = true
	}
	return slot.value
}

// Callback is a stable handle to a memoized function. Go functions cannot be
// compared, so the handle's pointer identity stands in for the function's:
// UseCallback returns the same handle while its deps are unchanged, and the
// handle itself can be listed as a dependency of other hooks.
type Callback[F any] struct {
	fn F
}

// Fn returns the wrapped function.
func (cb *Callback[F]) Fn() F {
	return cb.fn
}

type callbackSlot[F any] struct {
	handle *Callback[F]
	deps   []any
}

func (*callbackSlot[F]) hookName() string { return "UseCallback" }

// UseCallback memoizes fn. The returned handle stays the same as long as
// deps are equal, so effects that depend on it do not re-run needlessly.
func UseCallback[F any](c *BuildContext, fn F, deps []any) *Callback[F] {
	slot := useSlot(c, func() *callbackSlot[F] { return &callbackSlot[F]{} })
	if slot.handle == nil || deps == nil || depsChanged(slot.deps, deps) {
		slot.handle = &Callback[F]{fn: fn}
		slot.deps = deps
	}
	return slot.handle
}

// Ref is a mutable box that survives renders without triggering them.
type Ref[T any] struct {
	Current T
}

func (*Ref[T]) hookName() string { return "UseRef" }

// UseRef returns the same Ref on every render.
func UseRef[T any](c *BuildContext, initial T) *Ref[T] {
	return useSlot(c, func() *Ref[T] { return &Ref[T]{Current: initial} })
}

// UseController creates a controller once and disposes it when the
// component is torn down.
func UseController[C Disposable](c *BuildContext, create func() C) C {
	controller := UseMemo(c, create, Deps())
	UseEffect(c, func() func() {
		return controller.Dispose
	}, Deps())
	return controller
}

// Disposable is implemented by controllers that hold resources.
type Disposable interface {
	Dispose()
}
