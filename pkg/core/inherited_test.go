package core

import (
	"testing"
)

var greeting = NewContext("default greeting")

func greetingChild(renders *int) Widget {
	return Func("Child", func(c *BuildContext) Widget {
		if renders != nil {
			*renders++
		}
		return testText{content: UseContext(c, greeting)}
	})
}

func TestUseContext_ReadsNearestProvider(t *testing.T) {
	h := mount(greeting.Provide("outer", testColumn{children: []Widget{
		greetingChild(nil),
		greeting.Provide("Hello World 123", greetingChild(nil)),
	}}))

	if got := h.output(); got != "outer\nHello World 123\n" {
		t.Errorf("output = %q", got)
	}
}

type greeter interface{ Greet() string }

type fixedGreeter string

func (g fixedGreeter) Greet() string { return string(g) }

var greeterContext = NewContext[greeter](fixedGreeter("default"))

func TestUseContext_NilInterfaceValue(t *testing.T) {
	h := mount(greeterContext.Provide(nil, Func("Child", func(c *BuildContext) Widget {
		g := UseContext(c, greeterContext)
		if g == nil {
			return testText{content: "no greeter"}
		}
		return testText{content: g.Greet()}
	})))

	if got := h.output(); got != "no greeter\n" {
		t.Errorf("output = %q", got)
	}
}

func TestUseContext_DefaultWithoutProvider(t *testing.T) {
	h := mount(greetingChild(nil))

	if got := h.output(); got != "default greeting\n" {
		t.Errorf("output = %q", got)
	}
	if greeting.Default() != "default greeting" {
		t.Errorf("Default() = %q", greeting.Default())
	}
}

func TestUseContext_RebuildsOnValueChange(t *testing.T) {
	var value *Managed[string]
	renders := 0
	h := mount(Func("App", func(c *BuildContext) Widget {
		value = UseState(c, "first")
		return greeting.Provide(value.Value(), greetingChild(&renders))
	}))

	value.Set("second")
	h.pump()

	if got := h.output(); got != "second\n" {
		t.Errorf("output = %q", got)
	}
	if renders != 2 {
		t.Errorf("renders = %d, want 2", renders)
	}
}

func TestUseContext_DependentRemovedOnUnmount(t *testing.T) {
	var visible *Managed[bool]
	h := mount(greeting.Provide("v", Func("Toggle", func(c *BuildContext) Widget {
		visible = UseState(c, true)
		if !visible.Value() {
			return nil
		}
		return greetingChild(nil)
	})))

	provider := h.root.(*InheritedElement)
	if provider.DependentCount() != 1 {
		t.Fatalf("DependentCount = %d, want 1", provider.DependentCount())
	}

	visible.Set(false)
	h.pump()

	if provider.DependentCount() != 0 {
		t.Errorf("DependentCount after unmount = %d, want 0", provider.DependentCount())
	}
}

func TestProvider_UpdateShouldNotify(t *testing.T) {
	a := Provider[string]{Context: greeting, Value: "a"}
	b := Provider[string]{Context: greeting, Value: "b"}

	if a.UpdateShouldNotify(a) {
		t.Error("same value should not notify")
	}
	if !b.UpdateShouldNotify(a) {
		t.Error("changed value should notify")
	}
}
