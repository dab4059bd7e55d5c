package widgets

import "fmt"

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return Color(uint32(0xFF)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Alpha returns the alpha byte.
func (c Color) Alpha() uint8 {
	return uint8(c >> 24)
}

// String returns the color's name when it has one, otherwise #rrggbb.
// Translucent colors are written as #rrggbbaa.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	if c.Alpha() != 0xFF {
		return fmt.Sprintf("#%06x%02x", uint32(c)&0x00FFFFFF, c.Alpha())
	}
	return fmt.Sprintf("#%06x", uint32(c)&0x00FFFFFF)
}

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)

var colorNames = map[Color]string{
	ColorTransparent: "transparent",
	ColorBlack:       "black",
	ColorWhite:       "white",
	ColorRed:         "red",
	ColorGreen:       "green",
	ColorBlue:        "blue",
}
