package core

import (
	"slices"
	"sync"
)

// BuildOwner tracks dirty elements that need rebuilding, components whose
// effects are waiting to run, and callbacks dispatched from other goroutines.
//
// Everything except Dispatch and Wake must be called from the UI thread.
type BuildOwner struct {
	dirty    []Element
	dirtySet map[Element]bool
	effects  []*FuncElement
	mu       sync.Mutex

	dispatchMu    sync.Mutex
	dispatchQueue []func()
	wake          chan struct{}

	// OnNeedsFrame is called when a new element is scheduled for rebuild,
	// signalling the host that a frame should be run.
	OnNeedsFrame func()
}

// NewBuildOwner creates a new BuildOwner.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{
		wake: make(chan struct{}, 1),
	}
}

// ScheduleBuild marks an element as needing rebuild.
func (b *BuildOwner) ScheduleBuild(element Element) {
	added := func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.dirtySet[element] {
			return false
		}
		if b.dirtySet == nil {
			b.dirtySet = make(map[Element]bool)
		}
		b.dirtySet[element] = true
		b.dirty = append(b.dirty, element)
		return true
	}()

	if added && b.OnNeedsFrame != nil {
		b.OnNeedsFrame()
	}
}

// NeedsWork returns true if there are dirty elements, pending effects or
// dispatched callbacks.
func (b *BuildOwner) NeedsWork() bool {
	b.mu.Lock()
	busy := len(b.dirty) > 0 || len(b.effects) > 0
	b.mu.Unlock()
	if busy {
		return true
	}
	return b.PendingDispatches() > 0
}

// FlushBuild rebuilds all dirty elements in depth order.
func (b *BuildOwner) FlushBuild() {
	for {
		b.mu.Lock()
		if len(b.dirty) == 0 {
			b.mu.Unlock()
			return
		}

		slices.SortFunc(b.dirty, func(a, b Element) int {
			return a.Depth() - b.Depth()
		})

		dirty := b.dirty
		b.dirty = nil
		clear(b.dirtySet)
		b.mu.Unlock()

		for _, element := range dirty {
			if mountable, ok := element.(interface{ isMounted() bool }); ok && !mountable.isMounted() {
				continue
			}
			element.RebuildIfNeeded()
		}
	}
}

func (b *BuildOwner) scheduleEffects(e *FuncElement) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if slices.Contains(b.effects, e) {
		return
	}
	b.effects = append(b.effects, e)
}

// FlushEffects runs the effects queued by the last builds. All cleanups run
// before any new effect, each pass in commit order. Components torn down in
// the meantime are skipped; their cleanups already ran on unmount.
// Returns the number of components whose effects ran.
func (b *BuildOwner) FlushEffects() int {
	b.mu.Lock()
	pending := b.effects
	b.effects = nil
	b.mu.Unlock()

	live := pending[:0]
	for _, e := range pending {
		if e.mounted {
			live = append(live, e)
		}
	}
	for _, e := range live {
		e.context.runCleanups()
	}
	for _, e := range live {
		e.context.runEffects()
	}
	return len(live)
}

// Dispatch queues fn to run on the UI thread during the next frame.
// It is safe to call from any goroutine.
func (b *BuildOwner) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	b.dispatchMu.Lock()
	b.dispatchQueue = append(b.dispatchQueue, fn)
	b.dispatchMu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// RunDispatched runs every callback queued so far, in order, and returns
// how many ran. Callbacks queued while running wait for the next call.
func (b *BuildOwner) RunDispatched() int {
	b.dispatchMu.Lock()
	queue := b.dispatchQueue
	b.dispatchQueue = nil
	b.dispatchMu.Unlock()

	for _, fn := range queue {
		fn()
	}
	return len(queue)
}

// PendingDispatches returns the number of queued callbacks.
func (b *BuildOwner) PendingDispatches() int {
	b.dispatchMu.Lock()
	defer b.dispatchMu.Unlock()
	return len(b.dispatchQueue)
}

// Wake returns a channel that receives after Dispatch queued work.
// Several dispatches may be coalesced into one receive.
func (b *BuildOwner) Wake() <-chan struct{} {
	return b.wake
}
