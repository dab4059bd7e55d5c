package testing

import (
	"fmt"
	"reflect"

	"github.com/go-drift/hookslab/pkg/core"
	"github.com/go-drift/hookslab/pkg/widgets"
)

// Finder selects elements of a mounted tree.
type Finder struct {
	desc  string
	match func(core.Element) bool
}

// String describes the finder for failure messages.
func (f Finder) String() string { return f.desc }

// Evaluate returns the matches under root in outline order.
func (f Finder) Evaluate(root core.Element) []core.Element {
	var found []core.Element
	core.Walk(root, func(e core.Element) bool {
		if f.match(e) {
			found = append(found, e)
		}
		return true
	})
	return found
}

// FinderResult holds the matches of one Find.
type FinderResult struct {
	elements []core.Element
	finder   Finder
}

// Exists reports whether anything matched.
func (r FinderResult) Exists() bool { return len(r.elements) > 0 }

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.elements) }

// First returns the first match. It panics when nothing matched.
func (r FinderResult) First() core.Element {
	if len(r.elements) == 0 {
		panic(fmt.Sprintf("no element matches %s", r.finder))
	}
	return r.elements[0]
}

// Widgets returns the widget of every match.
func (r FinderResult) Widgets() []core.Widget {
	result := make([]core.Widget, len(r.elements))
	for i, e := range r.elements {
		result[i] = e.Widget()
	}
	return result
}

// ByType matches widgets of type T, such as a StatefulWidget struct.
func ByType[T core.Widget]() Finder {
	want := reflect.TypeFor[T]()
	return Finder{
		desc:  "ByType(" + want.String() + ")",
		match: func(e core.Element) bool { return reflect.TypeOf(e.Widget()) == want },
	}
}

// ByText matches a [widgets.Text] with exactly this content.
func ByText(content string) Finder {
	return Finder{
		desc: fmt.Sprintf("ByText(%q)", content),
		match: func(e core.Element) bool {
			t, ok := e.Widget().(widgets.Text)
			return ok && t.Content == content
		},
	}
}

// ByLabel matches a [widgets.Button], enabled or not, by label.
func ByLabel(label string) Finder {
	return Finder{
		desc: fmt.Sprintf("ByLabel(%q)", label),
		match: func(e core.Element) bool {
			b, ok := e.Widget().(widgets.Button)
			return ok && b.Label == label
		},
	}
}

// ByName matches function components created with core.Func(name, ...).
func ByName(name string) Finder {
	return Finder{
		desc: fmt.Sprintf("ByName(%q)", name),
		match: func(e core.Element) bool {
			w, ok := e.Widget().(core.FuncWidget)
			return ok && w.Name == name
		},
	}
}
