// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/backdrop"
	"github.com/gogpu/glass/effect"
	"github.com/gogpu/glass/geom"
	"github.com/gogpu/glass/visual"
)

func TestSpringSettles(t *testing.T) {
	tests := []struct {
		name      string
		from, to  float64
		threshold float64
	}{
		{"progress up", 0, 1, progressThreshold},
		{"progress down", 1, 0, progressThreshold},
		{"position", 10, 150, positionThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := spring{threshold: tt.threshold}
			s.snapTo(tt.from)
			s.target = tt.to
			steps := 0
			for s.step(1.0 / 60) {
				steps++
				if steps > 1000 {
					t.Fatal("spring did not settle")
				}
			}
			if s.value != tt.to || s.velocity != 0 {
				t.Errorf("settled at %v (velocity %v), want %v", s.value, s.velocity, tt.to)
			}
		})
	}
}

// run steps the surface at 60 fps until it settles.
func run(t *testing.T, is *InteractiveSurface) {
	t.Helper()
	for range 600 {
		if !is.Step(16 * time.Millisecond) {
			return
		}
	}
	t.Fatal("interaction did not settle")
}

func TestInteractivePressRelease(t *testing.T) {
	sc := newScene(t, 400, 300)
	is := sc.addInteractive(t, geom.NewRect(100, 100, 200, 100))

	if !is.Press(gg.Pt(50, 50)) {
		t.Fatal("Press rejected")
	}
	if is.Press(gg.Pt(60, 60)) {
		t.Error("second Press accepted while pressed")
	}
	if !is.Animating() {
		t.Error("press did not start the animation")
	}
	run(t, is)
	if is.Progress() != 1 {
		t.Fatalf("Progress() = %v, want 1", is.Progress())
	}

	m, ok := is.Deformation()
	if !ok || !approx(m.A, 1.04, 1e-9) || !approx(m.E, 1.04, 1e-9) || m.C != 0 || m.F != 0 {
		t.Errorf("pressed deformation = %+v, %v", m, ok)
	}
	if _, ok := is.RenderTransform(); !ok {
		t.Error("render transform not applied")
	}

	is.Move(gg.Pt(150, 50))
	m, _ = is.Deformation()
	if !approx(m.C, 100*math.Tanh(0.05), 1e-9) || m.F != 0 {
		t.Errorf("drag translation = (%v, %v)", m.C, m.F)
	}
	if !approx(m.A, 1.06, 1e-9) || !approx(m.E, 1.04, 1e-9) {
		t.Errorf("drag scale = (%v, %v), want (1.06, 1.04)", m.A, m.E)
	}
	if got := is.Position(); got != gg.Pt(150, 50) {
		t.Errorf("Position() = %v", got)
	}

	is.Release()
	if is.Pressed() {
		t.Error("still pressed after Release")
	}
	run(t, is)
	if is.Progress() != 0 || is.Position() != gg.Pt(50, 50) {
		t.Errorf("rest state: progress %v position %v", is.Progress(), is.Position())
	}
	if _, ok := is.RenderTransform(); ok {
		t.Error("render transform left at rest")
	}
}

func TestInteractiveCancel(t *testing.T) {
	sc := newScene(t, 200, 200)
	is := sc.addInteractive(t, geom.NewRect(0, 0, 100, 100))
	is.Press(gg.Pt(10, 10))
	is.Cancel()
	if is.Pressed() {
		t.Error("still pressed after Cancel")
	}
	is.Move(gg.Pt(90, 90))
	if got := is.Position(); got != gg.Pt(10, 10) {
		t.Errorf("Move after Cancel changed the position to %v", got)
	}
}

func TestInteractiveDisabled(t *testing.T) {
	sc := newScene(t, 200, 200)
	is := sc.addInteractive(t, geom.NewRect(0, 0, 100, 100))
	is.SetInteractive(false)
	if is.Press(gg.Pt(10, 10)) {
		t.Error("Press accepted on a non-interactive surface")
	}
	if _, ok := is.Deformation(); ok {
		t.Error("deformation on a non-interactive surface")
	}
}

func TestInteractiveStepClamp(t *testing.T) {
	sc := newScene(t, 200, 200)
	a := sc.addInteractive(t, geom.NewRect(0, 0, 100, 100))
	b := sc.addInteractive(t, geom.NewRect(0, 0, 100, 100))
	a.Press(gg.Pt(10, 10))
	b.Press(gg.Pt(10, 10))

	a.Step(10 * time.Second)
	b.Step(50 * time.Millisecond)
	if a.Progress() != b.Progress() {
		t.Errorf("long step progress %v, want %v", a.Progress(), b.Progress())
	}
	before := a.Progress()
	a.Step(-time.Second)
	if a.Progress() != before {
		t.Error("negative step moved the spring")
	}
}

func TestInteractiveHighlightParameters(t *testing.T) {
	sc := newScene(t, 400, 300)
	is := sc.addInteractive(t, geom.NewRect(100, 100, 200, 100))
	is.Press(gg.Pt(40, 30))
	run(t, is)

	p := is.DrawParameters()
	if p.InteractiveProgress != 1 || p.InteractivePosition != gg.Pt(40, 30) {
		t.Errorf("interactive parameters = %v at %v", p.InteractiveProgress, p.InteractivePosition)
	}

	sc.settle(t)
	if !slices.Contains(is.LastPasses(), effect.PassInteractiveHighlight) {
		t.Errorf("passes = %v, want the press glow", is.LastPasses())
	}

	is.SetHighlightEnabled(false)
	if got := is.DrawParameters().InteractiveProgress; got != 0 {
		t.Errorf("InteractiveProgress = %v with the highlight off", got)
	}
}

func TestInteractiveAnimationTick(t *testing.T) {
	sc := newScene(t, 200, 200)
	is := sc.addInteractive(t, geom.NewRect(0, 0, 100, 100))
	is.Press(gg.Pt(50, 50))

	sc.clock.Advance(16 * time.Millisecond)
	is.tick()
	if p := is.Progress(); p <= 0 || p >= 1 {
		t.Errorf("Progress() = %v after one frame", p)
	}

	is.Close()
	if is.Animating() {
		t.Error("animation still running after Close")
	}
	before := is.Progress()
	sc.clock.Advance(16 * time.Millisecond)
	is.tick()
	if is.Progress() != before {
		t.Error("tick after Close moved the spring")
	}
}

func TestInteractiveSurfaceSubscription(t *testing.T) {
	sc := newScene(t, 200, 200)
	is := sc.addInteractive(t, geom.NewRect(50, 50, 100, 100))
	is.SetPainter(visual.FillPainter(red))

	if got := backdrop.Inflate(is); got != 36 {
		t.Errorf("Inflate = %v, want 36", got)
	}
	if sc.root.Children()[0] != visual.Visual(is) || is.FrontOverlay().Parent() != visual.Visual(is) {
		t.Error("interactive surface identity not bound")
	}

	sc.settle(t)
	snap := sc.sched.TryGetSnapshot()
	if snap == nil {
		t.Fatal("no snapshot")
	}
	if got := pixelAt(snap.Image, 100-snap.Origin.X, 100-snap.Origin.Y); got != [4]uint8{0, 0, 255, 255} {
		t.Errorf("snapshot under the surface = %v, want blue", got)
	}
}
