// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import (
	"cmp"
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/canvas"
	"github.com/gogpu/glass/geom"
)

// Walker repaints visual trees onto a canvas.
type Walker struct{}

// Render paints root's subtree clipped to clip, a rectangle in root space,
// with clip's origin moved to (0, 0). Visuals in excluded are skipped along
// with their descendants.
func (w Walker) Render(c canvas.Canvas, root Visual, clip geom.Rect, excluded Set) {
	if root == nil || clip.IsEmpty() {
		return
	}
	c.Save()
	defer c.Restore()

	c.Concat(gg.Translate(-clip.MinX, -clip.MinY))
	c.ClipRect(geom.SizeRect(clip.Width(), clip.Height()))

	w.render(c, root, gg.Pt(0, 0), gg.Identity(), geom.SizeRect(clip.Width(), clip.Height()), excluded)
}

// render paints v placed at pos in a parent whose total transform is
// parentTotal, against an active clip in the same space.
func (w Walker) render(c canvas.Canvas, v Visual, pos gg.Point, parentTotal gg.Matrix, clip geom.Rect, excluded Set) {
	if excluded.Has(v) {
		return
	}
	if !v.IsVisible() || v.Opacity() <= 0 {
		return
	}

	b := v.Bounds()
	rect := geom.SizeRect(b.Width(), b.Height())
	transform := LocalTransform(v, pos)

	pushes := 0
	push := func() {
		c.Save()
		pushes++
	}
	defer func() {
		for range pushes {
			c.Restore()
		}
	}()

	push()
	c.Concat(transform)

	if v.Mirrored() {
		c.Concat(mirrorTransform(b.Width()))
	}

	if op := v.Opacity(); op < 1 {
		c.SaveLayer(canvas.Layer{Opacity: op})
		pushes++
	}

	if v.ClipToBounds() {
		push()
		if rp, ok := v.(ClipRadiusProvider); ok && !rp.ClipRadius().IsZero() {
			c.ClipRoundRect(geom.NewRoundRect(rect, rp.ClipRadius()))
		} else {
			c.ClipRect(rect)
		}
	}

	if p := v.Clip(); p != nil {
		push()
		c.ClipPath(p)
	}

	if m := v.OpacityMask(); m != nil {
		c.SaveLayer(canvas.Layer{Opacity: 1, Mask: &canvas.OpacityMask{Image: m, Rect: rect}})
		pushes++
	}

	total := parentTotal.Multiply(transform)
	if rect.TransformBounds(total).Intersects(clip) {
		v.Render(c)
	}

	if v.ClipToBounds() {
		total = gg.Identity()
		clip = rect
	}
	for _, child := range orderedChildren(v) {
		w.render(c, child, child.Bounds().Origin(), total, clip, excluded)
	}
}

// orderedChildren sorts by z-index only when indices differ.
func orderedChildren(v Visual) []Visual {
	children := v.Children()
	if len(children) < 2 {
		return children
	}
	z := children[0].ZIndex()
	uniform := true
	for _, ch := range children[1:] {
		if ch.ZIndex() != z {
			uniform = false
			break
		}
	}
	if uniform {
		return children
	}
	sorted := slices.Clone(children)
	slices.SortStableFunc(sorted, func(a, b Visual) int {
		return cmp.Compare(a.ZIndex(), b.ZIndex())
	})
	return sorted
}
