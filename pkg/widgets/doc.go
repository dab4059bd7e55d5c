// Package widgets provides the leaf and container widgets the demos build
// from.
//
// Every widget here is hosted by a core.RenderElement and contributes at
// most one line to the outline returned by core.Render:
//
//	widgets.Column{Children: []core.Widget{
//	    widgets.Text{Content: "Hello"},
//	    widgets.Button{Label: "+", OnTap: increment},
//	}}
//
// renders as
//
//	Hello
//	[+]
//
// Struct literals are the primary way to construct widgets. The XxxOf
// helpers exist for the common short forms.
package widgets
