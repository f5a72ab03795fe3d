// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/glass/canvas"
	"github.com/gogpu/glass/effect"
	"github.com/gogpu/glass/geom"
	"github.com/gogpu/glass/visual"
)

// Overlays sort after and before any content child.
const (
	frontZ       = 1 << 20
	interactiveZ = -frontZ
)

// FrontOverlay draws the rim highlight and inner shadow of its surface
// above the surface's content. It always covers the surface bounds.
type FrontOverlay struct {
	*visual.Node
	owner *Surface
}

func newFrontOverlay(owner *Surface) *FrontOverlay {
	o := &FrontOverlay{Node: visual.NewNode("front", ownerRect(owner)), owner: owner}
	o.SetZIndex(frontZ)
	o.Bind(o)
	return o
}

// Bounds follows the owner's size.
func (o *FrontOverlay) Bounds() geom.Rect { return ownerRect(o.owner) }

// Render implements visual.Visual.
func (o *FrontOverlay) Render(c canvas.Canvas) { o.owner.overlay(c, effect.StageFront) }

// InteractiveOverlay draws the press glow of its surface under the
// surface's content.
type InteractiveOverlay struct {
	*visual.Node
	owner *Surface
}

func newInteractiveOverlay(owner *Surface) *InteractiveOverlay {
	o := &InteractiveOverlay{Node: visual.NewNode("interactive", ownerRect(owner)), owner: owner}
	o.SetZIndex(interactiveZ)
	o.Bind(o)
	return o
}

// Bounds follows the owner's size.
func (o *InteractiveOverlay) Bounds() geom.Rect { return ownerRect(o.owner) }

// Render implements visual.Visual.
func (o *InteractiveOverlay) Render(c canvas.Canvas) {
	if o.owner.interaction == nil {
		return
	}
	o.owner.overlay(c, effect.StageInteractive)
}

func ownerRect(s *Surface) geom.Rect {
	b := s.Bounds()
	return geom.SizeRect(b.Width(), b.Height())
}
