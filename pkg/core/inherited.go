package core

// Context carries a value down the tree without threading it through every
// component. Create one at package level and share it:
//
//	var Greeting = core.NewContext("")
//
//	root := Greeting.Provide("Hello World 123", child)
//
//	// inside child's Render:
//	text := core.UseContext(c, Greeting)
type Context[T any] struct {
	defaultValue T
}

// NewContext creates a context whose consumers read defaultValue when no
// provider is above them.
func NewContext[T any](defaultValue T) *Context[T] {
	return &Context[T]{defaultValue: defaultValue}
}

// Default returns the value read when no provider is found.
func (ctx *Context[T]) Default() T {
	return ctx.defaultValue
}

// Provide wraps child so that every descendant reads value from ctx.
func (ctx *Context[T]) Provide(value T, child Widget) Widget {
	return Provider[T]{Context: ctx, Value: value, Child: child}
}

// Provider is the widget form of Context.Provide.
type Provider[T any] struct {
	Context *Context[T]
	Value   T
	Child   Widget
}

// CreateElement returns a new InheritedElement.
func (p Provider[T]) CreateElement() Element { return NewInheritedElement() }

// Key returns nil (no key).
func (p Provider[T]) Key() any { return nil }

func (p Provider[T]) contextKey() any     { return p.Context }
func (p Provider[T]) providedValue() any  { return p.Value }
func (p Provider[T]) ChildWidget() Widget { return p.Child }

// UpdateShouldNotify reports whether dependents must rebuild after the
// provider was rebuilt with old.
func (p Provider[T]) UpdateShouldNotify(old InheritedWidget) bool {
	prev, ok := old.(Provider[T])
	if !ok {
		return true
	}
	return !sameValue(any(prev.Value), any(p.Value))
}

// InheritedWidget is implemented by widgets hosted by an InheritedElement.
type InheritedWidget interface {
	Widget
	ChildWidget() Widget
	UpdateShouldNotify(old InheritedWidget) bool
	contextKey() any
	providedValue() any
}

// InheritedElement is the element that hosts an [InheritedWidget] and manages
// the dependency tracking for descendant components.
//
// When a descendant calls [UseContext], it registers as a dependent of this
// element. When the provider is rebuilt and [InheritedWidget.UpdateShouldNotify]
// returns true, all registered dependents are scheduled for rebuild.
type InheritedElement struct {
	elementBase
	child      Element
	dependents map[Element]struct{}
}

// NewInheritedElement creates an InheritedElement.
// The widget and build owner are set later by the runtime during inflation.
func NewInheritedElement() *InheritedElement {
	return &InheritedElement{
		dependents: make(map[Element]struct{}),
	}
}

func (e *InheritedElement) Mount(parent Element, slot any) {
	e.attach(parent, slot)
	e.RebuildIfNeeded()
}

func (e *InheritedElement) Update(newWidget Widget) {
	oldWidget := e.widget.(InheritedWidget)
	e.widget = newWidget
	if newWidget.(InheritedWidget).UpdateShouldNotify(oldWidget) {
		for dependent := range e.dependents {
			dependent.MarkNeedsBuild()
		}
	}
	e.MarkNeedsBuild()
}

func (e *InheritedElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.dependents = nil
}

func (e *InheritedElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	inherited := e.widget.(InheritedWidget)
	e.child = updateChild(e.child, inherited.ChildWidget(), e, e.buildOwner)
}

func (e *InheritedElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// AddDependent registers an element as depending on this provider.
func (e *InheritedElement) AddDependent(dependent Element) {
	if e.dependents == nil {
		e.dependents = make(map[Element]struct{})
	}
	e.dependents[dependent] = struct{}{}
}

// RemoveDependent unregisters an element.
func (e *InheritedElement) RemoveDependent(dependent Element) {
	delete(e.dependents, dependent)
}

// DependentCount returns the number of registered dependents.
func (e *InheritedElement) DependentCount() int {
	return len(e.dependents)
}

// UseContext returns the value of the nearest provider of ctx above the
// component, or ctx's default. The component rebuilds whenever that
// provider is rebuilt with a different value.
func UseContext[T any](c *BuildContext, ctx *Context[T]) T {
	provider := findProvider(c.element, ctx)
	if provider == nil {
		return ctx.defaultValue
	}
	provider.AddDependent(c.element)
	if c.providers == nil {
		c.providers = make(map[*InheritedElement]struct{})
	}
	c.providers[provider] = struct{}{}
	// A provided nil interface value has no dynamic type to assert.
	v, _ := provider.widget.(InheritedWidget).providedValue().(T)
	return v
}

// findProvider walks up the element tree to the nearest InheritedElement
// providing key.
func findProvider(element Element, key any) *InheritedElement {
	var current Element
	if base, ok := element.(interface{ parentElement() Element }); ok {
		current = base.parentElement()
	}
	for current != nil {
		if inherited, ok := current.(*InheritedElement); ok {
			if inherited.widget.(InheritedWidget).contextKey() == key {
				return inherited
			}
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}
