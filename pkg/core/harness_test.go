package core

import "fmt"

// testText is a minimal painting leaf.
type testText struct {
	RenderBase
	content string
}

func (t testText) Paint() string { return t.content }

// testColumn is a minimal container.
type testColumn struct {
	RenderBase
	children []Widget
}

func (c testColumn) ChildWidgets() []Widget { return c.children }

// harness mounts a tree on a private BuildOwner and drives frames the way
// the engine does.
type harness struct {
	owner *BuildOwner
	root  Element
}

func mount(w Widget) *harness {
	h := &harness{owner: NewBuildOwner()}
	h.root = MountRoot(w, h.owner)
	h.pump()
	return h
}

func (h *harness) pump() {
	for range 50 {
		h.owner.RunDispatched()
		h.owner.FlushBuild()
		if h.owner.FlushEffects() == 0 && !h.owner.NeedsWork() {
			return
		}
	}
	panic("harness: tree did not settle")
}

func (h *harness) output() string {
	return Render(h.root)
}

func (h *harness) unmount() {
	h.root.Unmount()
}

type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) reset() {
	r.events = nil
}
