// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass"
	"github.com/gogpu/glass/backdrop"
	"github.com/gogpu/glass/canvas"
	"github.com/gogpu/glass/effect"
	"github.com/gogpu/glass/geom"
	"github.com/gogpu/glass/internal/dispatch"
	"github.com/gogpu/glass/visual"
)

var defaultPipeline = sync.OnceValue(func() *effect.Pipeline { return effect.NewPipeline() })

// Surface is a glass visual. It embeds a visual.Node, so it is placed and
// styled like any other node; its painter draws content between the
// backdrop and the front overlay.
type Surface struct {
	*visual.Node

	sched *backdrop.Scheduler
	pipe  *effect.Pipeline
	token backdrop.Token
	opts  options

	params effect.Parameters

	front *FrontOverlay
	press *InteractiveOverlay

	// interaction reports press progress and position; set by
	// InteractiveSurface.
	interaction func() (float64, gg.Point)

	adaptive  bool
	luminance float64
	sampler   *LuminanceSampler

	lastPasses []effect.PassKind
	closed     bool
}

var _ backdrop.SamplingMarginProvider = (*Surface)(nil)

// NewSurface creates a surface and subscribes it to sched. Add its Node to
// the scene and Close it when it leaves.
func NewSurface(sched *backdrop.Scheduler, name string, bounds geom.Rect, opts ...Option) *Surface {
	s := newSurface(sched, name, bounds, opts)
	s.attach(s)
	return s
}

func newSurface(sched *backdrop.Scheduler, name string, bounds geom.Rect, opts []Option) *Surface {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.pipeline == nil {
		o.pipeline = defaultPipeline()
	}
	s := &Surface{
		Node:     visual.NewNode(name, bounds),
		sched:    sched,
		pipe:     o.pipeline,
		opts:     o,
		params:   o.params,
		adaptive: o.adaptive,
	}
	s.press = newInteractiveOverlay(s)
	s.front = newFrontOverlay(s)
	s.Add(s.press.Node, s.front.Node)
	return s
}

// attach binds the node identity to outer and subscribes it.
func (s *Surface) attach(outer visual.Visual) {
	s.Bind(outer)
	s.token = s.sched.Subscribe(outer)
	if s.adaptive {
		s.startSampler()
	}
}

// Token returns the scheduler subscription.
func (s *Surface) Token() backdrop.Token { return s.token }

// Scheduler returns the scheduler the surface is subscribed to.
func (s *Surface) Scheduler() *backdrop.Scheduler { return s.sched }

// Parameters returns the configured parameters.
func (s *Surface) Parameters() effect.Parameters { return s.params }

// SetParameters replaces the parameters and repaints.
func (s *Surface) SetParameters(p effect.Parameters) {
	s.params = p
	s.Invalidate()
}

// FrontOverlay returns the overlay drawn above the content.
func (s *Surface) FrontOverlay() *FrontOverlay { return s.front }

// InteractiveOverlay returns the overlay drawing the press glow.
func (s *Surface) InteractiveOverlay() *InteractiveOverlay { return s.press }

// DrawParameters returns the parameters used for drawing: the configured
// ones with adaptive luminance and press state applied.
func (s *Surface) DrawParameters() effect.Parameters {
	p := s.params
	if s.adaptive {
		p = AdaptParameters(p, s.luminance)
	}
	if s.interaction != nil {
		p.InteractiveProgress, p.InteractivePosition = s.interaction()
	}
	return p
}

// SamplingParams implements backdrop.SamplingMarginProvider.
func (s *Surface) SamplingParams() backdrop.Sampling {
	return s.DrawParameters().Sampling()
}

// LastPasses returns the passes of the most recent Render.
func (s *Surface) LastPasses() []effect.PassKind { return slices.Clone(s.lastPasses) }

// Render draws the shadow and the backdrop, then the node's content.
func (s *Surface) Render(c canvas.Canvas) {
	if backdrop.IsCapturing() || s.closed {
		return
	}
	size := s.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	s.updateSampleRect()
	s.sched.EnsureSnapshot(s.token)

	pl := s.pipe.Build(s.sched.TryGetSnapshot(), s.DrawParameters(), effect.Geometry{Width: size.X, Height: size.Y})
	pl.DrawStage(c, effect.StageBack)
	s.lastPasses = pl.Passes()
	pl.Release()

	s.Node.Render(c)
}

// overlay builds a snapshot-free plan for the overlays.
func (s *Surface) overlay(c canvas.Canvas, stage effect.Stage) {
	if backdrop.IsCapturing() || s.closed {
		return
	}
	size := s.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	pl := s.pipe.Build(nil, s.DrawParameters(), effect.Geometry{Width: size.X, Height: size.Y})
	pl.DrawStage(c, stage)
	pl.Release()
}

// Luminance returns the smoothed backdrop luminance in [0, 1].
func (s *Surface) Luminance() float64 { return s.luminance }

// AdaptiveLuminance reports whether adaptive luminance is enabled.
func (s *Surface) AdaptiveLuminance() bool { return s.adaptive }

// SetAdaptiveLuminance starts or stops luminance sampling.
func (s *Surface) SetAdaptiveLuminance(enabled bool) {
	if enabled == s.adaptive {
		return
	}
	s.adaptive = enabled
	if enabled && !s.closed {
		s.startSampler()
	} else {
		s.stopSampler()
	}
	s.Invalidate()
}

func (s *Surface) startSampler() {
	if s.sampler != nil {
		return
	}
	s.updateSampleRect()
	s.sampler = NewLuminanceSampler(s.sched.TryGetSnapshot, s.opts.interval, func(l float64, ok bool) {
		s.sched.Post(dispatch.PriorityBackground, func() { s.tickLuminance(l, ok) })
	})
	s.sampler.Start()
}

func (s *Surface) stopSampler() {
	if s.sampler == nil {
		return
	}
	s.sampler.Stop()
	s.sampler = nil
}

// tickLuminance runs on the UI goroutine after each sampling attempt.
func (s *Surface) tickLuminance(sample float64, ok bool) {
	if !s.adaptive || s.closed || backdrop.IsCapturing() {
		return
	}
	s.sched.EnsureSnapshot(s.token)
	s.updateSampleRect()
	if ok {
		s.applyLuminance(sample)
	}
}

// applyLuminance blends sample into the current luminance and repaints
// when the result moved.
func (s *Surface) applyLuminance(sample float64) bool {
	next := s.luminance + (clamp(sample, 0, 1)-s.luminance)*s.opts.smoothing
	if math.Abs(next-s.luminance) <= 0.0005 {
		return false
	}
	s.luminance = next
	glass.Logger().Debug("surface: luminance", "name", s.Name(), "luminance", next)
	s.Invalidate()
	return true
}

func (s *Surface) updateSampleRect() {
	if s.sampler == nil {
		return
	}
	if r, ok := s.PixelRect(); ok {
		s.sampler.SetRect(r)
	}
}

// PixelRect returns the surface bounds in window pixels.
func (s *Surface) PixelRect() (image.Rectangle, bool) {
	b := s.Bounds()
	if b.Width() <= 0 || b.Height() <= 0 {
		return image.Rectangle{}, false
	}
	scale := s.sched.Window().RenderScale()
	if scale <= 0 {
		scale = 1
	}
	r := geom.SizeRect(b.Width(), b.Height()).TransformBounds(visual.TransformToRoot(s.Self())).Scale(scale)
	px := image.Rect(
		int(math.Floor(r.MinX)), int(math.Floor(r.MinY)),
		int(math.Ceil(r.MaxX)), int(math.Ceil(r.MaxY)),
	)
	return px, !px.Empty()
}

// Close unsubscribes the surface and stops its background work. It is
// safe to call more than once.
func (s *Surface) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.stopSampler()
	s.sched.Unsubscribe(s.token)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*clamp(t, 0, 1)
}

// now returns the surface clock.
func (s *Surface) now() time.Time { return s.opts.now() }
