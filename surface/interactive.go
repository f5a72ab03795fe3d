// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/backdrop"
	"github.com/gogpu/glass/geom"
	"github.com/gogpu/glass/internal/dispatch"
	"github.com/gogpu/glass/visual"
)

const (
	frameInterval     = 16 * time.Millisecond
	maxStep           = 0.05
	progressThreshold = 0.001
	positionThreshold = 0.5

	// dragResistance is the slope of the drag translation at rest.
	dragResistance = 0.05
)

// InteractiveSurface is a Surface that stretches towards the pointer while
// pressed and shows a glow under the content.
type InteractiveSurface struct {
	*Surface

	interactive bool
	highlight   bool
	maxScale    float64

	pressed  bool
	start    gg.Point
	progress spring
	position spring2

	anim     *ticker
	lastTick time.Time
}

// NewInteractiveSurface creates an interactive surface subscribed to sched.
func NewInteractiveSurface(sched *backdrop.Scheduler, name string, bounds geom.Rect, opts ...Option) *InteractiveSurface {
	s := newSurface(sched, name, bounds, opts)
	is := &InteractiveSurface{
		Surface:     s,
		interactive: true,
		highlight:   true,
		maxScale:    s.opts.maxScale,
		progress:    spring{threshold: progressThreshold},
		position:    newSpring2(positionThreshold),
	}
	s.interaction = is.interactionState
	s.attach(is)
	return is
}

// SetInteractive enables or disables pointer handling and deformation.
func (is *InteractiveSurface) SetInteractive(v bool) {
	is.interactive = v
	if !v {
		is.pressed = false
	}
	is.applyDeformation()
	is.Invalidate()
}

// SetHighlightEnabled shows or hides the press glow.
func (is *InteractiveSurface) SetHighlightEnabled(v bool) {
	is.highlight = v
	is.Invalidate()
}

// SetMaxScale sets the vertical press growth in DIPs.
func (is *InteractiveSurface) SetMaxScale(dip float64) {
	is.maxScale = max(dip, 0)
	is.applyDeformation()
}

// Pressed reports whether a press is active.
func (is *InteractiveSurface) Pressed() bool { return is.pressed }

// Progress returns the animated press progress in [0, 1].
func (is *InteractiveSurface) Progress() float64 { return clamp(is.progress.value, 0, 1) }

// Position returns the animated pointer position in local units.
func (is *InteractiveSurface) Position() gg.Point { return is.position.value() }

// Press starts an interaction at p, in local units. It returns false when
// the surface is not interactive or a press is already active.
func (is *InteractiveSurface) Press(p gg.Point) bool {
	if !is.interactive || is.pressed || is.closed {
		return false
	}
	is.pressed = true
	is.start = p
	is.position.snapTo(p)
	is.position.setTarget(p)
	is.progress.target = 1
	is.changed()
	return true
}

// Move follows the pointer while pressed.
func (is *InteractiveSurface) Move(p gg.Point) {
	if !is.pressed {
		return
	}
	is.position.snapTo(p)
	is.position.setTarget(p)
	is.changed()
}

// Release ends the press; the surface springs back to rest.
func (is *InteractiveSurface) Release() { is.end() }

// Cancel ends the press like Release, for lost pointer capture.
func (is *InteractiveSurface) Cancel() { is.end() }

func (is *InteractiveSurface) end() {
	if !is.pressed {
		return
	}
	is.pressed = false
	is.progress.target = 0
	is.position.setTarget(is.start)
	is.changed()
}

func (is *InteractiveSurface) changed() {
	is.applyDeformation()
	is.Invalidate()
	is.startAnimation()
}

// Step advances the springs by dt, clamped to 50ms, and reports whether
// they are still moving.
func (is *InteractiveSurface) Step(dt time.Duration) bool {
	sec := clamp(dt.Seconds(), 0, maxStep)
	moving := is.progress.step(sec)
	if is.position.step(sec) {
		moving = true
	}
	is.applyDeformation()
	is.Invalidate()
	return moving
}

func (is *InteractiveSurface) startAnimation() {
	if is.anim != nil || is.closed {
		return
	}
	is.lastTick = is.now()
	is.anim = startTicker(frameInterval, func() {
		is.sched.Post(dispatch.PriorityRender, is.tick)
	})
}

func (is *InteractiveSurface) stopAnimation() {
	if is.anim == nil {
		return
	}
	is.anim.Stop()
	is.anim = nil
}

// tick runs on the UI goroutine for each animation frame.
func (is *InteractiveSurface) tick() {
	if is.anim == nil {
		return
	}
	now := is.now()
	dt := now.Sub(is.lastTick)
	is.lastTick = now
	if !is.Step(dt) {
		is.stopAnimation()
	}
}

// Animating reports whether the animation ticker runs.
func (is *InteractiveSurface) Animating() bool { return is.anim != nil }

func (is *InteractiveSurface) interactionState() (float64, gg.Point) {
	if !is.interactive || !is.highlight {
		return 0, is.Position()
	}
	return is.Progress(), is.Position()
}

// Deformation returns the press transform, applied around the center.
// It reports false at rest.
func (is *InteractiveSurface) Deformation() (gg.Matrix, bool) {
	b := is.Bounds()
	w, h := b.Width(), b.Height()
	if !is.interactive || w <= 0 || h <= 0 {
		return gg.Identity(), false
	}

	progress := is.Progress()
	scale := 1 + is.maxScale/h*progress

	offset := is.position.value().Sub(is.start)
	minDim, maxDim := math.Min(w, h), math.Max(w, h)
	tx := minDim * math.Tanh(dragResistance*offset.X/minDim)
	ty := minDim * math.Tanh(dragResistance*offset.Y/minDim)

	maxDrag := is.maxScale / h
	angle := math.Atan2(offset.Y, offset.X)
	aspectX := math.Min(w/h, 1)
	aspectY := math.Min(h/w, 1)
	sx := scale + maxDrag*math.Abs(math.Cos(angle)*offset.X/maxDim)*aspectX
	sy := scale + maxDrag*math.Abs(math.Sin(angle)*offset.Y/maxDim)*aspectY

	if math.Abs(tx) < 0.01 && math.Abs(ty) < 0.01 && math.Abs(sx-1) < 0.0005 && math.Abs(sy-1) < 0.0005 {
		return gg.Identity(), false
	}
	return gg.Translate(tx, ty).Multiply(gg.Scale(sx, sy)), true
}

func (is *InteractiveSurface) applyDeformation() {
	if m, ok := is.Deformation(); ok {
		is.SetRenderTransform(m, visual.Center)
	} else if _, has := is.RenderTransform(); has {
		is.ClearRenderTransform()
	}
}

// Close stops the animation and unsubscribes the surface.
func (is *InteractiveSurface) Close() {
	is.stopAnimation()
	is.Surface.Close()
}
