// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import (
	"slices"
	"sync"

	"github.com/gogpu/glass/geom"
)

// HostWindow is an in-memory Window around a Node tree.
type HostWindow struct {
	mu        sync.Mutex
	width     float64
	height    float64
	scale     float64
	hidden    bool
	root      *Node
	nextID    int
	listeners map[int]func(*geom.Rect)
}

var _ Window = (*HostWindow)(nil)

// NewHostWindow creates a visible window of the given client size.
func NewHostWindow(width, height, scale float64, root *Node) *HostWindow {
	if scale <= 0 {
		scale = 1
	}
	w := &HostWindow{
		width:     width,
		height:    height,
		scale:     scale,
		root:      root,
		listeners: make(map[int]func(*geom.Rect)),
	}
	if root != nil {
		root.window = w
	}
	return w
}

// ClientSize implements Window.
func (w *HostWindow) ClientSize() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// RenderScale implements Window.
func (w *HostWindow) RenderScale() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scale
}

// Root implements Window.
func (w *HostWindow) Root() Visual {
	if w.root == nil {
		return nil
	}
	return w.root.Self()
}

// IsVisible implements Window.
func (w *HostWindow) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.hidden
}

// SetVisible shows or hides the window.
func (w *HostWindow) SetVisible(v bool) {
	w.mu.Lock()
	w.hidden = !v
	w.mu.Unlock()
	if v {
		w.Invalidate(nil)
	}
}

// Resize changes the client size and scale and invalidates everything.
func (w *HostWindow) Resize(width, height, scale float64) {
	w.mu.Lock()
	w.width, w.height = width, height
	if scale > 0 {
		w.scale = scale
	}
	w.mu.Unlock()
	w.Invalidate(nil)
}

// OnInvalidated implements Window.
func (w *HostWindow) OnInvalidated(fn func(dirty *geom.Rect)) (detach func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.listeners, id)
			w.mu.Unlock()
		})
	}
}

// Listeners returns the number of attached invalidation listeners.
func (w *HostWindow) Listeners() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners)
}

// Invalidate notifies listeners in registration order.
func (w *HostWindow) Invalidate(dirty *geom.Rect) {
	w.mu.Lock()
	ids := make([]int, 0, len(w.listeners))
	for id := range w.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(*geom.Rect), len(ids))
	for i, id := range ids {
		fns[i] = w.listeners[id]
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(dirty)
	}
}
