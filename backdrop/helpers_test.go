// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backdrop

import (
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/canvas"
	"github.com/gogpu/glass/geom"
	"github.com/gogpu/glass/internal/dispatch"
	"github.com/gogpu/glass/visual"
	"github.com/gogpu/gputypes"
)

var (
	red  = gg.RGBA{R: 1, A: 1}
	blue = gg.RGBA{B: 1, A: 1}
)

type testClock struct{ t time.Time }

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// marginNode is a node that reports its own sampling margin.
type marginNode struct {
	*visual.Node
	sampling Sampling
}

func newMarginNode(name string, bounds geom.Rect, s Sampling) *marginNode {
	m := &marginNode{Node: visual.NewNode(name, bounds), sampling: s}
	m.Bind(m)
	return m
}

func (m *marginNode) SamplingParams() Sampling { return m.sampling }

type scene struct {
	win   *visual.HostWindow
	root  *visual.Node
	queue *dispatch.Queue
	clock *testClock
	sched *Scheduler
}

func newScene(t *testing.T, w, h, scale float64, opts ...SchedulerOption) *scene {
	t.Helper()
	root := visual.NewNode("root", geom.SizeRect(w, h)).SetPainter(visual.FillPainter(blue))
	sc := &scene{
		root:  root,
		win:   visual.NewHostWindow(w, h, scale, root),
		queue: dispatch.NewQueue(),
		clock: newTestClock(),
	}
	opts = append([]SchedulerOption{WithClock(sc.clock.Now), WithDispatcher(sc.queue)}, opts...)
	sc.sched = NewScheduler(sc.win, opts...)
	return sc
}

// addGlass adds a red subscriber that must never show up in captures.
func (sc *scene) addGlass(bounds geom.Rect, s Sampling) (*marginNode, Token) {
	g := newMarginNode("glass", bounds, s)
	g.SetPainter(visual.FillPainter(red))
	sc.root.Add(g.Node)
	return g, sc.sched.Subscribe(g)
}

func mustCapture(t *testing.T, s *Scheduler) {
	t.Helper()
	if err := s.CaptureNow(); err != nil {
		t.Fatalf("CaptureNow: %v", err)
	}
}

func pixelAt(p *gg.Pixmap, x, y int) [4]uint8 {
	i := (y*p.Width() + x) * 4
	d := p.Data()
	return [4]uint8{d[i], d[i+1], d[i+2], d[i+3]}
}

func rectsClose(a, b geom.Rect) bool {
	const eps = 1e-9
	d := func(x, y float64) bool { return x-y < eps && y-x < eps }
	return d(a.MinX, b.MinX) && d(a.MinY, b.MinY) && d(a.MaxX, b.MaxX) && d(a.MaxY, b.MaxY)
}

// formatTarget reports a fixed pixel format over a plain raster.
type formatTarget struct {
	*canvas.Raster
	format gputypes.TextureFormat
}

func (t *formatTarget) Format() gputypes.TextureFormat { return t.format }

type formatFactory struct {
	format  gputypes.TextureFormat
	created int
}

func (f *formatFactory) NewTarget(w, h int, _ float64) (canvas.Target, error) {
	r, err := canvas.NewRaster(w, h)
	if err != nil {
		return nil, err
	}
	f.created++
	return &formatTarget{Raster: r, format: f.format}, nil
}

// walkerFunc adapts a function to SceneWalker.
type walkerFunc func(c canvas.Canvas, root visual.Visual, clip geom.Rect, excluded visual.Set)

func (f walkerFunc) Render(c canvas.Canvas, root visual.Visual, clip geom.Rect, excluded visual.Set) {
	f(c, root, clip, excluded)
}
