package widgets

import "github.com/go-drift/hookslab/pkg/core"

// Button is a tappable label.
//
//	widgets.Button{
//	    Label: "+",
//	    OnTap: func() { count.Update(func(n int) int { return n + 1 }) },
//	}
//
// Buttons appear in the outline as "[Label]". A disabled button keeps its
// label but ignores Tap.
type Button struct {
	core.RenderBase
	// Label is the text displayed on the button.
	Label string
	// OnTap is called when the button is tapped.
	OnTap func()
	// Disabled disables the button when true.
	Disabled bool
}

// ButtonOf creates a button with the given label and tap handler.
func ButtonOf(label string, onTap func()) Button {
	return Button{Label: label, OnTap: onTap}
}

// WithDisabled returns a copy of the button with the disabled flag set.
func (b Button) WithDisabled(disabled bool) Button {
	b.Disabled = disabled
	return b
}

// Tap invokes OnTap unless the button is disabled or has no handler.
// It reports whether the handler ran.
func (b Button) Tap() bool {
	if b.Disabled || b.OnTap == nil {
		return false
	}
	b.OnTap()
	return true
}

// Paint writes the label in brackets.
func (b Button) Paint() string {
	if b.Disabled {
		return "[" + b.Label + " (disabled)]"
	}
	return "[" + b.Label + "]"
}
