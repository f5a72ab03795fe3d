// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backdrop

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass"
	"github.com/gogpu/glass/canvas"
	"github.com/gogpu/glass/geom"
	"github.com/gogpu/glass/internal/dispatch"
	"github.com/gogpu/glass/visual"
	"github.com/gogpu/gputypes"
)

var (
	// ErrUnsupportedFormat is returned when the capture target uses a pixel
	// format other than RGBA8 or BGRA8.
	ErrUnsupportedFormat = errors.New("backdrop: unsupported pixel format")

	// ErrNoSubscribers is returned by CaptureNow when nothing is subscribed.
	ErrNoSubscribers = errors.New("backdrop: no subscribers")
)

// DefaultMinInterval is the minimum time between captures triggered by
// scene invalidations that do not need a larger capture area.
const DefaultMinInterval = 33 * time.Millisecond

// Token identifies a subscription.
type Token uint64

// Dispatcher posts work to the UI goroutine.
type Dispatcher interface {
	Post(p dispatch.Priority, fn func()) bool
}

// SceneWalker renders a visual tree into a canvas.
type SceneWalker interface {
	Render(c canvas.Canvas, root visual.Visual, clip geom.Rect, excluded visual.Set)
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock sets the time source.
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDispatcher sets the queue captures are posted to. Without it the
// scheduler owns a private queue drained by Pump.
func WithDispatcher(d Dispatcher) SchedulerOption {
	return func(s *Scheduler) {
		if d != nil {
			s.dispatcher = d
		}
	}
}

// WithTargetFactory sets the factory for off-screen capture targets.
func WithTargetFactory(f canvas.TargetFactory) SchedulerOption {
	return func(s *Scheduler) {
		if f != nil {
			s.factory = f
		}
	}
}

// WithMinInterval sets the invalidation throttle.
func WithMinInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d >= 0 {
			s.minInterval = d
		}
	}
}

// WithWalker sets the renderer used to draw the scene behind subscribers.
func WithWalker(w SceneWalker) SchedulerOption {
	return func(s *Scheduler) {
		if w != nil {
			s.walker = w
		}
	}
}

type subscription struct {
	token  Token
	visual visual.Visual
}

// Scheduler captures the backdrop of one window for its glass surfaces.
//
// Except for TryGetSnapshot and IsCapturing, methods must be called from
// the UI goroutine that drains the dispatcher.
type Scheduler struct {
	window      visual.Window
	walker      SceneWalker
	factory     canvas.TargetFactory
	dispatcher  Dispatcher
	queue       *dispatch.Queue
	now         func() time.Time
	minInterval time.Duration

	subs      []subscription
	nextToken Token
	detach    func()

	snapshot atomic.Pointer[Snapshot]

	target      canvas.Target
	targetScale float64
	buf         []byte

	fingerprint uint64
	pixelSize   image.Point
	origin      image.Point
	scale       float64

	lastRect    geom.Rect
	hasLastRect bool
	lastCapture time.Time
	queued      bool
	capturing   bool
	captures    int
	publishes   int
}

// NewScheduler creates a scheduler for window.
func NewScheduler(window visual.Window, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		window:      window,
		walker:      visual.Walker{},
		factory:     canvas.NewRasterFactory(),
		now:         time.Now,
		minInterval: DefaultMinInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dispatcher == nil {
		s.queue = dispatch.NewQueue()
		s.dispatcher = s.queue
	}
	return s
}

// Pump runs the captures posted to the scheduler's private queue and
// returns how many tasks ran. It does nothing when a dispatcher was
// supplied with WithDispatcher.
func (s *Scheduler) Pump() int {
	if s.queue == nil {
		return 0
	}
	return s.queue.RunPending()
}

// Post runs fn on the UI goroutine through the scheduler's dispatcher. It
// is safe to call from any goroutine.
func (s *Scheduler) Post(p dispatch.Priority, fn func()) bool {
	return s.dispatcher.Post(p, fn)
}

// Window returns the captured window.
func (s *Scheduler) Window() visual.Window { return s.window }

// Subscribe registers v as a glass surface. Subscribing the same visual
// twice returns the existing token.
func (s *Scheduler) Subscribe(v visual.Visual) Token {
	for _, sub := range s.subs {
		if sub.visual == v {
			return sub.token
		}
	}
	s.nextToken++
	tok := s.nextToken
	s.subs = append(s.subs, subscription{token: tok, visual: v})
	if s.detach == nil {
		s.detach = s.window.OnInvalidated(s.Invalidated)
		glass.Logger().Info("backdrop: scheduler attached")
	}
	return tok
}

// Unsubscribe removes a subscription. Removing the last one tears the
// scheduler down.
func (s *Scheduler) Unsubscribe(tok Token) {
	for i, sub := range s.subs {
		if sub.token == tok {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			break
		}
	}
	if len(s.subs) == 0 && !s.capturing {
		s.teardown()
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Scheduler) Subscribers() int { return len(s.subs) }

func (s *Scheduler) lookup(tok Token) visual.Visual {
	for _, sub := range s.subs {
		if sub.token == tok {
			return sub.visual
		}
	}
	return nil
}

// TryGetSnapshot returns the last published snapshot, or nil.
// The caller must lease it before reading pixels.
func (s *Scheduler) TryGetSnapshot() *Snapshot { return s.snapshot.Load() }

// IsCapturing reports whether any capture is in flight.
func (s *Scheduler) IsCapturing() bool { return IsCapturing() }

// LastCaptureRect returns the window-space rectangle of the last capture.
func (s *Scheduler) LastCaptureRect() (geom.Rect, bool) { return s.lastRect, s.hasLastRect }

// EnsureSnapshot queues a capture when the subscriber behind tok has no
// usable snapshot: none exists, the render scale changed, or its sampling
// area reaches outside the last capture.
func (s *Scheduler) EnsureSnapshot(tok Token) {
	if IsCapturing() || s.lookup(tok) == nil {
		return
	}
	scale := s.renderScale()
	snap := s.snapshot.Load()
	if snap == nil || snap.Scale != scale {
		s.RequestCapture()
		return
	}
	if desired, _ := s.captureRect(scale); s.needsGrowth(desired) {
		s.RequestCapture()
	}
}

// RequestCapture posts a capture to the dispatcher. Requests made while
// one is pending or running are dropped.
func (s *Scheduler) RequestCapture() {
	if s.queued || IsCapturing() {
		return
	}
	s.queued = true
	ok := s.dispatcher.Post(dispatch.PriorityBackground, func() {
		s.queued = false
		if err := s.CaptureNow(); err != nil {
			if errors.Is(err, ErrNoSubscribers) {
				glass.Logger().Debug("backdrop: capture skipped", "reason", err)
				return
			}
			glass.Logger().Error("backdrop: capture failed", "err", err)
		}
	})
	if !ok {
		s.queued = false
	}
}

// Invalidated handles a scene invalidation. dirty is the invalidated
// window-space rectangle, or nil when unknown.
func (s *Scheduler) Invalidated(dirty *geom.Rect) {
	if IsCapturing() || !s.window.IsVisible() {
		return
	}
	if len(s.subs) == 0 {
		s.teardown()
		return
	}

	desired, _ := s.captureRect(s.renderScale())
	if !s.needsGrowth(desired) {
		if s.now().Sub(s.lastCapture) < s.minInterval {
			glass.Logger().Debug("backdrop: invalidation throttled")
			return
		}
		if dirty != nil && s.hasLastRect && !dirty.Intersects(s.lastRect) {
			glass.Logger().Debug("backdrop: invalidation outside capture", "dirty", *dirty)
			return
		}
	}
	s.RequestCapture()
}

func (s *Scheduler) needsGrowth(desired geom.Rect) bool {
	if desired.IsEmpty() {
		return false
	}
	return !s.hasLastRect || !s.lastRect.ContainsRect(desired)
}

// CaptureNow renders the scene behind the subscribers and publishes a new
// snapshot unless nothing changed since the previous capture.
func (s *Scheduler) CaptureNow() error {
	if IsCapturing() {
		return nil
	}
	if len(s.subs) == 0 {
		s.teardown()
		return ErrNoSubscribers
	}

	scale := s.renderScale()
	rect, px := s.captureRect(scale)
	if rect.IsEmpty() || px.Empty() {
		return nil
	}
	s.lastRect = rect
	s.hasLastRect = true

	published, err := s.capture(rect, px, scale)
	if err != nil {
		return err
	}
	// The walk may have removed the last subscriber.
	if len(s.subs) == 0 {
		s.teardown()
		return ErrNoSubscribers
	}
	if published {
		s.invalidateSubscribers()
	}
	return nil
}

func (s *Scheduler) capture(rect geom.Rect, px image.Rectangle, scale float64) (bool, error) {
	enterCapture()
	s.capturing = true
	defer func() {
		s.capturing = false
		exitCapture()
	}()

	s.captures++
	w, h := px.Dx(), px.Dy()
	if s.target == nil || s.target.Width() != w || s.target.Height() != h || s.targetScale != scale {
		s.releaseTarget()
		t, err := s.factory.NewTarget(w, h, 96*scale)
		if err != nil {
			return false, fmt.Errorf("backdrop: capture target: %w", err)
		}
		s.target = t
		s.targetScale = scale
	}

	format := s.target.Format()
	if format != gputypes.TextureFormatRGBA8Unorm && format != gputypes.TextureFormatBGRA8Unorm {
		return false, fmt.Errorf("backdrop: capture format %v: %w", format, ErrUnsupportedFormat)
	}

	c := s.target.Canvas()
	c.DrawPaint(canvas.Paint{Blend: canvas.BlendClear})
	c.Save()
	c.Concat(gg.Scale(scale, scale))
	s.walker.Render(c, s.window.Root(), rect, s.excluded())
	c.Restore()

	n := w * h * 4
	if cap(s.buf) < n {
		s.buf = make([]byte, n)
	}
	s.buf = s.buf[:n]
	if err := s.target.ReadPixels(s.buf); err != nil {
		return false, fmt.Errorf("backdrop: read pixels: %w", err)
	}

	now := s.now()
	origin := px.Min
	size := image.Pt(w, h)
	fp := Fingerprint(s.buf, w*4, w, h)
	old := s.snapshot.Load()
	sameConfig := old != nil && s.scale == scale && s.pixelSize == size && s.origin == origin
	if sameConfig && fp == s.fingerprint {
		s.lastCapture = now
		glass.Logger().Debug("backdrop: capture unchanged", "rect", rect, "fingerprint", fp)
		return false, nil
	}

	img := decodePixels(s.buf, w, h, format)
	snap := NewSnapshot(img, origin, scale, now)
	s.fingerprint = fp
	s.pixelSize = size
	s.origin = origin
	s.scale = scale
	s.lastCapture = now
	s.snapshot.Store(snap)
	s.publishes++
	old.RequestDispose()

	glass.Logger().Debug("backdrop: snapshot published",
		"seq", snap.Seq, "origin", origin, "size", size, "scale", scale)
	return true, nil
}

// renderScale returns the window scale, or 1 when it is not positive.
func (s *Scheduler) renderScale() float64 {
	scale := s.window.RenderScale()
	if scale <= 0 || math.IsNaN(scale) {
		return 1
	}
	return scale
}

// Stats returns how many captures ran and how many of them published.
func (s *Scheduler) Stats() (captures, publishes int) { return s.captures, s.publishes }

func (s *Scheduler) excluded() visual.Set {
	set := make(visual.Set, len(s.subs))
	root := s.window.Root()
	for _, sub := range s.subs {
		if root != nil && visual.IsAncestor(root, sub.visual) && visual.EffectivelyVisible(sub.visual) {
			set[sub.visual] = struct{}{}
		}
	}
	return set
}

func (s *Scheduler) invalidateSubscribers() {
	for _, sub := range append([]subscription(nil), s.subs...) {
		if inv, ok := sub.visual.(visual.Invalidator); ok {
			inv.Invalidate()
		}
	}
}

// captureRect returns the union of the subscribers' sampling areas in
// window DIPs, snapped to the pixel grid, and the same area in pixels.
func (s *Scheduler) captureRect(scale float64) (geom.Rect, image.Rectangle) {
	root := s.window.Root()
	if root == nil {
		return geom.Rect{}, image.Rectangle{}
	}

	var union geom.Rect
	for _, sub := range s.subs {
		v := sub.visual
		b := v.Bounds()
		if b.Width() <= 0 || b.Height() <= 0 {
			continue
		}
		if !visual.IsAncestor(root, v) || !visual.EffectivelyVisible(v) {
			continue
		}
		m := visual.TransformToRoot(v)
		global := geom.SizeRect(b.Width(), b.Height()).TransformBounds(m)
		inflate := Inflate(v)
		sx := math.Hypot(m.A, m.B)
		sy := math.Hypot(m.D, m.E)
		union = union.Union(global.Inflate(inflate*math.Max(1, sx), inflate*math.Max(1, sy)))
	}

	cw, ch := s.window.ClientSize()
	clip := union.Intersect(geom.SizeRect(cw, ch))
	if clip.IsEmpty() {
		return geom.Rect{}, image.Rectangle{}
	}

	p := clip.Scale(scale).RoundOut()
	px := image.Rect(int(p.MinX), int(p.MinY), int(p.MaxX), int(p.MaxY))
	return p.Scale(1 / scale), px
}

func (s *Scheduler) teardown() {
	if s.detach != nil {
		s.detach()
		s.detach = nil
		glass.Logger().Info("backdrop: scheduler detached")
	}
	if old := s.snapshot.Swap(nil); old != nil {
		old.RequestDispose()
	}
	s.releaseTarget()
	s.hasLastRect = false
	s.lastRect = geom.Rect{}
	s.fingerprint = 0
	s.pixelSize = image.Point{}
}

func (s *Scheduler) releaseTarget() {
	if s.target != nil {
		s.target.Release()
		s.target = nil
	}
	s.buf = nil
}

// decodePixels copies target bytes into a premultiplied RGBA pixmap.
func decodePixels(buf []byte, w, h int, format gputypes.TextureFormat) *gg.Pixmap {
	img := gg.NewPixmap(w, h)
	dst := img.Data()
	copy(dst, buf[:w*h*4])
	if format == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i+3 < len(dst); i += 4 {
			dst[i], dst[i+2] = dst[i+2], dst[i]
		}
	}
	return img
}
