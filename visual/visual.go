// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/glass/canvas"
	"github.com/gogpu/glass/geom"
)

// Visual is a node of the host scene.
type Visual interface {
	// Bounds is the layout rectangle in the parent's coordinate space.
	Bounds() geom.Rect

	// RenderTransform returns the render transform, if any. It is applied
	// around TransformOrigin.
	RenderTransform() (gg.Matrix, bool)
	TransformOrigin() RelativePoint

	// ClipToBounds reports whether children are clipped to the bounds.
	ClipToBounds() bool

	// Clip is an optional geometry clip in local coordinates.
	Clip() *gg.Path

	Opacity() float64

	// OpacityMask is an optional alpha image stretched over the bounds.
	OpacityMask() *gg.Pixmap

	IsVisible() bool

	// Mirrored reports a right-to-left horizontal flip.
	Mirrored() bool

	ZIndex() int
	Children() []Visual
	Parent() Visual

	// Render paints the visual's own content in local coordinates.
	Render(c canvas.Canvas)
}

// ClipRadiusProvider is implemented by visuals that round their
// clip-to-bounds rectangle.
type ClipRadiusProvider interface {
	ClipRadius() geom.CornerRadius
}

// Invalidator is implemented by visuals that can request a repaint.
type Invalidator interface {
	Invalidate()
}

// Window is the host window owning a visual tree.
type Window interface {
	// ClientSize returns the client area in device-independent units.
	ClientSize() (width, height float64)

	// RenderScale converts device-independent units to pixels.
	RenderScale() float64

	Root() Visual
	IsVisible() bool

	// OnInvalidated registers fn for scene invalidations. dirty is the
	// invalidated window-space rectangle, or nil when unknown. The returned
	// func detaches fn.
	OnInvalidated(fn func(dirty *geom.Rect)) (detach func())
}

// Unit selects how a RelativePoint is resolved.
type Unit uint8

const (
	// UnitRelative resolves against the visual size (0.5 is the center).
	UnitRelative Unit = iota

	// UnitAbsolute is in local units.
	UnitAbsolute
)

// RelativePoint is a point that may be relative to a size.
type RelativePoint struct {
	X, Y float64
	Unit Unit
}

// Center is the default transform origin.
var Center = RelativePoint{X: 0.5, Y: 0.5, Unit: UnitRelative}

// Resolve returns the point in local units for a visual of the given size.
func (p RelativePoint) Resolve(width, height float64) gg.Point {
	if p.Unit == UnitAbsolute {
		return gg.Pt(p.X, p.Y)
	}
	return gg.Pt(p.X*width, p.Y*height)
}

// Set is a set of visuals.
type Set map[Visual]struct{}

// NewSet returns a set holding vs.
func NewSet(vs ...Visual) Set {
	s := make(Set, len(vs))
	for _, v := range vs {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s Set) Has(v Visual) bool {
	_, ok := s[v]
	return ok
}

// LocalTransform maps v's local coordinates into its parent's, placing v at
// pos. The render transform is applied around the resolved origin.
func LocalTransform(v Visual, pos gg.Point) gg.Matrix {
	b := v.Bounds()
	m := gg.Translate(pos.X, pos.Y)
	if rt, ok := v.RenderTransform(); ok {
		o := v.TransformOrigin().Resolve(b.Width(), b.Height())
		m = m.Multiply(gg.Translate(o.X, o.Y)).Multiply(rt).Multiply(gg.Translate(-o.X, -o.Y))
	}
	return m
}

// mirrorTransform flips horizontally within width.
func mirrorTransform(width float64) gg.Matrix {
	return gg.Matrix{A: -1, C: width, E: 1}
}

// TransformToRoot maps v's local coordinates into the space of the root of
// its tree. The root's own position is not applied.
func TransformToRoot(v Visual) gg.Matrix {
	m := gg.Identity()
	for cur := v; cur != nil && cur.Parent() != nil; cur = cur.Parent() {
		local := LocalTransform(cur, cur.Bounds().Origin())
		if cur.Mirrored() {
			local = local.Multiply(mirrorTransform(cur.Bounds().Width()))
		}
		m = local.Multiply(m)
	}
	return m
}

// EffectivelyVisible reports whether v and all its ancestors are visible
// with non-zero opacity.
func EffectivelyVisible(v Visual) bool {
	for cur := v; cur != nil; cur = cur.Parent() {
		if !cur.IsVisible() || cur.Opacity() <= 0 {
			return false
		}
	}
	return true
}

// IsAncestor reports whether a is v or one of v's ancestors.
func IsAncestor(a, v Visual) bool {
	for cur := v; cur != nil; cur = cur.Parent() {
		if cur == a {
			return true
		}
	}
	return false
}
