// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/geom"
)

func TestRelativePointResolve(t *testing.T) {
	tests := []struct {
		name string
		p    RelativePoint
		want gg.Point
	}{
		{"center", Center, gg.Pt(50, 20)},
		{"relative corner", RelativePoint{X: 1, Y: 1}, gg.Pt(100, 40)},
		{"absolute", RelativePoint{X: 3, Y: 4, Unit: UnitAbsolute}, gg.Pt(3, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Resolve(100, 40); got != tt.want {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformToRoot(t *testing.T) {
	root := NewNode("root", geom.NewRect(5, 5, 200, 200))
	panel := NewNode("panel", geom.NewRect(10, 20, 100, 100))
	leaf := NewNode("leaf", geom.NewRect(3, 4, 10, 10))
	panel.Add(leaf)
	root.Add(panel)

	p := TransformToRoot(leaf).TransformPoint(gg.Pt(0, 0))
	if p != gg.Pt(13, 24) {
		t.Errorf("leaf origin in root = %v, want (13, 24)", p)
	}

	panel.SetRenderTransform(gg.Scale(2, 2), RelativePoint{Unit: UnitAbsolute})
	p = TransformToRoot(leaf).TransformPoint(gg.Pt(0, 0))
	if p != gg.Pt(16, 28) {
		t.Errorf("scaled leaf origin = %v, want (16, 28)", p)
	}

	if !TransformToRoot(root).IsIdentity() {
		t.Error("root transform is not identity")
	}
}

func TestTransformToRootMirrored(t *testing.T) {
	root := NewNode("root", geom.NewRect(0, 0, 100, 100))
	rtl := NewNode("rtl", geom.NewRect(0, 0, 100, 100)).SetMirrored(true)
	leaf := NewNode("leaf", geom.NewRect(10, 0, 20, 20))
	rtl.Add(leaf)
	root.Add(rtl)

	b := geom.SizeRect(20, 20).TransformBounds(TransformToRoot(leaf))
	if math.Abs(b.MinX-70) > 1e-9 || math.Abs(b.MaxX-90) > 1e-9 {
		t.Errorf("mirrored bounds = %+v, want x 70..90", b)
	}
}

func TestEffectivelyVisible(t *testing.T) {
	root := NewNode("root", geom.NewRect(0, 0, 10, 10))
	mid := NewNode("mid", geom.NewRect(0, 0, 10, 10))
	leaf := NewNode("leaf", geom.NewRect(0, 0, 10, 10))
	mid.Add(leaf)
	root.Add(mid)

	if !EffectivelyVisible(leaf) {
		t.Fatal("leaf should be visible")
	}
	mid.SetOpacity(0)
	if EffectivelyVisible(leaf) {
		t.Error("leaf visible under transparent parent")
	}
	mid.SetOpacity(1)
	root.SetVisible(false)
	if EffectivelyVisible(leaf) {
		t.Error("leaf visible under hidden root")
	}
}

func TestIsAncestor(t *testing.T) {
	root := NewNode("root", geom.NewRect(0, 0, 10, 10))
	a := NewNode("a", geom.NewRect(0, 0, 10, 10))
	b := NewNode("b", geom.NewRect(0, 0, 10, 10))
	root.Add(a, b)

	if !IsAncestor(root, a) || !IsAncestor(a, a) {
		t.Error("expected root and self to be ancestors")
	}
	if IsAncestor(b, a) {
		t.Error("sibling reported as ancestor")
	}
}

func TestNodeReparent(t *testing.T) {
	a := NewNode("a", geom.NewRect(0, 0, 10, 10))
	b := NewNode("b", geom.NewRect(0, 0, 10, 10))
	c := NewNode("c", geom.NewRect(0, 0, 1, 1))
	a.Add(c)
	b.Add(c)
	if len(a.Children()) != 0 || len(b.Children()) != 1 {
		t.Errorf("children = %d, %d, want 0, 1", len(a.Children()), len(b.Children()))
	}
	if c.Parent() != Visual(b) {
		t.Error("parent not updated")
	}
	b.Remove(c)
	if c.Parent() != nil {
		t.Error("Parent() non-nil after Remove")
	}
}

func TestHostWindowInvalidation(t *testing.T) {
	root := NewNode("root", geom.NewRect(0, 0, 100, 100))
	child := NewNode("child", geom.NewRect(10, 10, 20, 20))
	root.Add(child)
	w := NewHostWindow(100, 100, 2, root)

	var got []*geom.Rect
	detach := w.OnInvalidated(func(dirty *geom.Rect) { got = append(got, dirty) })
	if w.Listeners() != 1 {
		t.Fatalf("Listeners = %d", w.Listeners())
	}

	child.SetPainter(FillPainter(red))
	if len(got) != 1 || got[0] == nil || *got[0] != geom.NewRect(10, 10, 20, 20) {
		t.Fatalf("dirty = %v, want child bounds", got)
	}

	w.Resize(200, 100, 1)
	if len(got) != 2 || got[1] != nil {
		t.Errorf("resize dirty = %v, want nil", got)
	}
	if sw, sh := w.ClientSize(); sw != 200 || sh != 100 || w.RenderScale() != 1 {
		t.Errorf("size = %vx%v @%v", sw, sh, w.RenderScale())
	}

	detach()
	detach()
	child.SetZIndex(3)
	if len(got) != 2 {
		t.Errorf("listener fired after detach")
	}
	if w.Listeners() != 0 {
		t.Errorf("Listeners = %d after detach", w.Listeners())
	}
}

func TestHostWindowVisibility(t *testing.T) {
	w := NewHostWindow(10, 10, 0, nil)
	if w.Root() != nil {
		t.Error("Root() non-nil for nil root")
	}
	if w.RenderScale() != 1 {
		t.Errorf("RenderScale = %v, want fallback 1", w.RenderScale())
	}
	w.SetVisible(false)
	if w.IsVisible() {
		t.Error("window still visible")
	}
}
