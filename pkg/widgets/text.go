package widgets

import (
	"strconv"
	"strings"

	"github.com/go-drift/hookslab/pkg/core"
)

// TextStyle controls how a Text is presented. The zero value means
// "inherit", and only set fields appear in the outline.
type TextStyle struct {
	// Color is the foreground color.
	Color Color
	// Background fills behind the text.
	Background Color
	// FontSize in logical pixels. Zero leaves the size unspecified.
	FontSize float64
}

// IsZero reports whether no style field is set.
func (s TextStyle) IsZero() bool {
	return s == TextStyle{}
}

// String formats the set fields as "color=black background=white size=14".
func (s TextStyle) String() string {
	var parts []string
	if s.Color != 0 {
		parts = append(parts, "color="+s.Color.String())
	}
	if s.Background != 0 {
		parts = append(parts, "background="+s.Background.String())
	}
	if s.FontSize != 0 {
		parts = append(parts, "size="+strconv.FormatFloat(s.FontSize, 'f', -1, 64))
	}
	return strings.Join(parts, " ")
}

// Text displays a string with a single style.
//
//	widgets.Text{Content: "Hello"}
//	widgets.Text{Content: "Lorem", Style: widgets.TextStyle{FontSize: 16}}
type Text struct {
	core.RenderBase
	// Content is the text string to display.
	Content string
	// Style controls the color, background and size.
	Style TextStyle
}

// TextOf creates a Text with the given content and no style.
func TextOf(content string) Text {
	return Text{Content: content}
}

// WithStyle returns a copy of the text with the given style.
func (t Text) WithStyle(style TextStyle) Text {
	t.Style = style
	return t
}

// Paint writes the content, followed by the style in braces when one is set.
func (t Text) Paint() string {
	if t.Style.IsZero() {
		return t.Content
	}
	return t.Content + " {" + t.Style.String() + "}"
}
