// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import (
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/canvas"
	"github.com/gogpu/glass/geom"
)

// Painter draws a node's own content in local coordinates.
type Painter func(c canvas.Canvas, size gg.Point)

// FillPainter paints the node rectangle with a solid color.
func FillPainter(color gg.RGBA) Painter {
	return func(c canvas.Canvas, size gg.Point) {
		c.DrawRect(geom.SizeRect(size.X, size.Y), canvas.Fill(color))
	}
}

// ImagePainter stretches img over the node rectangle.
func ImagePainter(img *gg.Pixmap) Painter {
	return func(c canvas.Canvas, size gg.Point) {
		c.DrawImage(img, geom.SizeRect(size.X, size.Y), canvas.Paint{})
	}
}

// Node is a minimal retained visual. The zero value is not usable; create
// nodes with NewNode.
type Node struct {
	name         string
	bounds       geom.Rect
	transform    *gg.Matrix
	origin       RelativePoint
	clipToBounds bool
	clipRadius   geom.CornerRadius
	clip         *gg.Path
	opacity      float64
	mask         *gg.Pixmap
	hidden       bool
	mirrored     bool
	z            int
	painter      Painter

	outer    Visual
	parent   *Node
	children []*Node
	window   *HostWindow
	renders  int
}

var (
	_ Visual             = (*Node)(nil)
	_ ClipRadiusProvider = (*Node)(nil)
	_ Invalidator        = (*Node)(nil)
)

// NewNode creates a visible, opaque node.
func NewNode(name string, bounds geom.Rect) *Node {
	return &Node{
		name:    name,
		bounds:  bounds,
		origin:  Center,
		opacity: 1,
	}
}

// Name returns the debug name.
func (n *Node) Name() string { return n.name }

func (n *Node) String() string { return "visual.Node(" + n.name + ")" }

// Bounds implements Visual.
func (n *Node) Bounds() geom.Rect { return n.bounds }

// RenderTransform implements Visual.
func (n *Node) RenderTransform() (gg.Matrix, bool) {
	if n.transform == nil {
		return gg.Matrix{}, false
	}
	return *n.transform, true
}

// TransformOrigin implements Visual.
func (n *Node) TransformOrigin() RelativePoint { return n.origin }

// ClipToBounds implements Visual.
func (n *Node) ClipToBounds() bool { return n.clipToBounds }

// ClipRadius implements ClipRadiusProvider.
func (n *Node) ClipRadius() geom.CornerRadius { return n.clipRadius }

// Clip implements Visual.
func (n *Node) Clip() *gg.Path { return n.clip }

// Opacity implements Visual.
func (n *Node) Opacity() float64 { return n.opacity }

// OpacityMask implements Visual.
func (n *Node) OpacityMask() *gg.Pixmap { return n.mask }

// IsVisible implements Visual.
func (n *Node) IsVisible() bool { return !n.hidden }

// Mirrored implements Visual.
func (n *Node) Mirrored() bool { return n.mirrored }

// ZIndex implements Visual.
func (n *Node) ZIndex() int { return n.z }

// Children implements Visual.
func (n *Node) Children() []Visual {
	out := make([]Visual, len(n.children))
	for i, ch := range n.children {
		out[i] = ch.Self()
	}
	return out
}

// Parent implements Visual.
func (n *Node) Parent() Visual {
	if n.parent == nil {
		return nil
	}
	return n.parent.Self()
}

// Bind makes n report outer as its identity to parents and walkers. Types
// that embed a Node and override Render bind themselves so the tree sees
// the outer value.
func (n *Node) Bind(outer Visual) *Node {
	n.outer = outer
	return n
}

// Self returns the bound outer visual, or n.
func (n *Node) Self() Visual {
	if n.outer != nil {
		return n.outer
	}
	return n
}

// Render implements Visual.
func (n *Node) Render(c canvas.Canvas) {
	n.renders++
	if n.painter != nil {
		n.painter(c, n.bounds.Size())
	}
}

// RenderCount returns how many times Render ran.
func (n *Node) RenderCount() int { return n.renders }

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	for _, ch := range children {
		if ch.parent != nil {
			ch.parent.Remove(ch)
		}
		ch.parent = n
		n.children = append(n.children, ch)
		ch.Invalidate()
	}
	return n
}

// Remove detaches child from n.
func (n *Node) Remove(child *Node) {
	i := slices.Index(n.children, child)
	if i < 0 {
		return
	}
	child.Invalidate()
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
}

// SetBounds moves or resizes the node.
func (n *Node) SetBounds(r geom.Rect) *Node {
	n.Invalidate()
	n.bounds = r
	n.Invalidate()
	return n
}

// SetRenderTransform sets the render transform around origin.
func (n *Node) SetRenderTransform(m gg.Matrix, origin RelativePoint) *Node {
	n.transform = &m
	n.origin = origin
	n.Invalidate()
	return n
}

// ClearRenderTransform removes the render transform.
func (n *Node) ClearRenderTransform() *Node {
	n.transform = nil
	n.Invalidate()
	return n
}

// SetClipToBounds clips children to the bounds, rounded by radius.
func (n *Node) SetClipToBounds(clip bool, radius geom.CornerRadius) *Node {
	n.clipToBounds = clip
	n.clipRadius = radius
	n.Invalidate()
	return n
}

// SetClip sets a geometry clip in local coordinates.
func (n *Node) SetClip(p *gg.Path) *Node {
	n.clip = p
	n.Invalidate()
	return n
}

// SetOpacity sets the opacity.
func (n *Node) SetOpacity(v float64) *Node {
	n.opacity = v
	n.Invalidate()
	return n
}

// SetOpacityMask sets an alpha mask stretched over the bounds.
func (n *Node) SetOpacityMask(m *gg.Pixmap) *Node {
	n.mask = m
	n.Invalidate()
	return n
}

// SetVisible shows or hides the node.
func (n *Node) SetVisible(v bool) *Node {
	n.hidden = !v
	n.Invalidate()
	return n
}

// SetMirrored flips the node horizontally.
func (n *Node) SetMirrored(v bool) *Node {
	n.mirrored = v
	n.Invalidate()
	return n
}

// SetZIndex sets the paint order among siblings.
func (n *Node) SetZIndex(z int) *Node {
	n.z = z
	n.Invalidate()
	return n
}

// SetPainter sets the content painter.
func (n *Node) SetPainter(p Painter) *Node {
	n.painter = p
	n.Invalidate()
	return n
}

// Invalidate implements Invalidator. The window owning the tree, if any, is
// notified with the node's root-space bounds.
func (n *Node) Invalidate() {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	if root.window == nil {
		return
	}
	dirty := geom.SizeRect(n.bounds.Width(), n.bounds.Height()).TransformBounds(TransformToRoot(n))
	root.window.Invalidate(&dirty)
}
