package demo

import (
	"github.com/go-drift/hookslab/pkg/core"
	"github.com/go-drift/hookslab/pkg/widgets"
)

const (
	loremIpsum = "Lorem ipsum dolor sit amet consectetur adipisicing elit. Omnis, quam."

	defaultFontSize = 14
	fontSizeStep    = 2
)

// HooksSwitcher keeps the background color and the font size in two
// independent state slots. The text is drawn in the opposite color.
func HooksSwitcher() core.Widget {
	return core.Func("HooksSwitcher", func(c *core.BuildContext) core.Widget {
		color := core.UseState(c, widgets.ColorWhite)
		fontSize := core.UseState(c, float64(defaultFontSize))

		textColor := widgets.ColorBlack
		if color.Value() == widgets.ColorBlack {
			textColor = widgets.ColorWhite
		}

		return widgets.ColumnOf(
			widgets.TextOf(loremIpsum).WithStyle(widgets.TextStyle{
				Color:      textColor,
				Background: color.Value(),
				FontSize:   fontSize.Value(),
			}),
			widgets.ButtonOf("Dark", func() { color.Set(widgets.ColorBlack) }),
			widgets.ButtonOf("Light", func() { color.Set(widgets.ColorWhite) }),
			widgets.ButtonOf("+", func() {
				fontSize.Update(func(s float64) float64 { return s + fontSizeStep })
			}),
			widgets.ButtonOf("-", func() {
				fontSize.Update(func(s float64) float64 { return s - fontSizeStep })
			}),
		)
	})
}

// GreetingContext carries the ContextDemo message.
var GreetingContext = core.NewContext("")

// ContextDemo provides "Hello World 123" to a child that reads it.
func ContextDemo() core.Widget {
	return GreetingContext.Provide("Hello World 123", core.Func("Child", func(c *core.BuildContext) core.Widget {
		return widgets.TextOf(core.UseContext(c, GreetingContext))
	}))
}
