package core

// Widget is an immutable description of part of the component tree.
type Widget interface {
	// CreateElement returns a fresh element that will host this widget.
	CreateElement() Element
	// Key distinguishes siblings of the same type. Nil means positional identity.
	Key() any
}

// Element is the instantiation of a Widget at a particular location in the tree.
type Element interface {
	Widget() Widget
	Mount(parent Element, slot any)
	Update(newWidget Widget)
	Unmount()
	RebuildIfNeeded()
	MarkNeedsBuild()
	VisitChildren(visitor func(Element) bool)
	Depth() int
}

// FuncWidget is a function component. Its Render function is called on every
// build and may call the Use* hooks on the provided BuildContext.
//
// Two FuncWidgets at the same position are the same component when their
// names and keys match; otherwise the old one is unmounted and the new one
// mounted with fresh hook state.
type FuncWidget struct {
	Name   string
	Render func(c *BuildContext) Widget
	key    any
}

// Func creates a function component.
//
//	counter := core.Func("Counter", func(c *core.BuildContext) core.Widget {
//	    count := core.UseState(c, 0)
//	    return widgets.Button{
//	        Label: fmt.Sprintf("clicked %d times", count.Value()),
//	        OnTap: func() { count.Update(func(n int) int { return n + 1 }) },
//	    }
//	})
func Func(name string, render func(c *BuildContext) Widget) FuncWidget {
	return FuncWidget{Name: name, Render: render}
}

// WithKey returns a copy of the component identified by key.
func (w FuncWidget) WithKey(key any) FuncWidget {
	w.key = key
	return w
}

// CreateElement returns a new FuncElement.
func (w FuncWidget) CreateElement() Element { return &FuncElement{} }

// Key returns the component key.
func (w FuncWidget) Key() any { return w.key }

// StatefulWidget is the class-style component: its State object survives
// rebuilds and receives explicit lifecycle callbacks instead of hooks.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// State is the mutable half of a StatefulWidget.
type State interface {
	InitState()
	Build(ctx *BuildContext) Widget
	DidUpdateWidget(oldWidget StatefulWidget)
	Dispose()
}

// StatefulBase provides CreateElement and Key for StatefulWidget
// implementations:
//
//	type Counter struct {
//	    core.StatefulBase
//	}
//
//	func (Counter) CreateState() core.State { return &counterState{} }
type StatefulBase struct{}

// CreateElement returns a new StatefulElement.
func (StatefulBase) CreateElement() Element { return &StatefulElement{} }

// Key returns nil (no key).
func (StatefulBase) Key() any { return nil }

// RenderBase provides CreateElement and Key for leaf and container widgets
// that produce output instead of building other widgets.
type RenderBase struct{}

// CreateElement returns a new RenderElement.
func (RenderBase) CreateElement() Element { return &RenderElement{} }

// Key returns nil (no key).
func (RenderBase) Key() any { return nil }

// Painter is implemented by widgets that contribute a line to the rendered
// outline. An empty string contributes nothing.
type Painter interface {
	Paint() string
}

// MultiChildWidget is implemented by container widgets hosted by a RenderElement.
type MultiChildWidget interface {
	ChildWidgets() []Widget
}

// widgetName returns a readable name for diagnostics.
func widgetName(w Widget) string {
	switch typed := w.(type) {
	case nil:
		return "<nil>"
	case FuncWidget:
		return typed.Name
	case interface{ Name() string }:
		return typed.Name()
	default:
		return typeName(w)
	}
}
