package core

import "reflect"

// DebugMode controls whether debug information is painted by error placeholders.
// When true, placeholders show the build error message.
// When false, they show a bare "error" line.
var DebugMode = true

// SetDebugMode enables or disables debug mode for the runtime.
func SetDebugMode(debug bool) {
	DebugMode = debug
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
