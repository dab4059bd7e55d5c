package core

import "strings"

// Render returns the plain-text outline of the tree under root: one line
// per painting widget, in depth-first order.
func Render(root Element) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	var visit func(Element) bool
	visit = func(e Element) bool {
		if painter, ok := e.Widget().(Painter); ok {
			if line := painter.Paint(); line != "" {
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
		}
		e.VisitChildren(visit)
		return true
	}
	visit(root)
	return sb.String()
}

// Walk visits root and every descendant depth-first until visitor returns false.
func Walk(root Element, visitor func(Element) bool) {
	if root == nil {
		return
	}
	stop := false
	var visit func(Element) bool
	visit = func(e Element) bool {
		if stop {
			return false
		}
		if !visitor(e) {
			stop = true
			return false
		}
		e.VisitChildren(visit)
		return !stop
	}
	visit(root)
}
