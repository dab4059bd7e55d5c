package widgets

import "github.com/go-drift/hookslab/pkg/core"

// Column stacks its children vertically. Nil children are skipped.
type Column struct {
	core.RenderBase
	Children []core.Widget
}

// ColumnOf creates a column from the given children.
func ColumnOf(children ...core.Widget) Column {
	return Column{Children: children}
}

// ChildWidgets returns the non-nil children.
func (c Column) ChildWidgets() []core.Widget {
	children := make([]core.Widget, 0, len(c.Children))
	for _, child := range c.Children {
		if child != nil {
			children = append(children, child)
		}
	}
	return children
}

// Empty renders nothing. Components return it where they have no output,
// for example a dismissed notification.
type Empty struct {
	core.RenderBase
}

// Paint returns an empty line, which the outline omits.
func (Empty) Paint() string { return "" }

// Show returns child when cond holds and Empty otherwise.
func Show(cond bool, child core.Widget) core.Widget {
	if cond {
		return child
	}
	return Empty{}
}
