// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"math"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/backdrop"
	"github.com/gogpu/glass/canvas"
	"github.com/gogpu/glass/effect"
	"github.com/gogpu/glass/geom"
	"github.com/gogpu/glass/internal/dispatch"
	"github.com/gogpu/glass/shader"
	"github.com/gogpu/glass/visual"
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

// stubCompiler accepts any source without invoking naga.
func stubCompiler(string) ([]byte, error) {
	return []byte{0x03, 0x02, 0x23, 0x07}, nil
}

func testPipeline() *effect.Pipeline {
	return effect.NewPipeline(effect.WithLibrary(shader.NewLibrary(shader.WithCompiler(stubCompiler))))
}

type scene struct {
	w, h  int
	win   *visual.HostWindow
	root  *visual.Node
	queue *dispatch.Queue
	clock *testClock
	sched *backdrop.Scheduler
}

func newScene(t *testing.T, w, h int) *scene {
	t.Helper()
	root := visual.NewNode("root", geom.SizeRect(float64(w), float64(h))).SetPainter(visual.FillPainter(blue))
	sc := &scene{
		w:     w,
		h:     h,
		root:  root,
		win:   visual.NewHostWindow(float64(w), float64(h), 1, root),
		queue: dispatch.NewQueue(),
		clock: newTestClock(),
	}
	sc.sched = backdrop.NewScheduler(sc.win, backdrop.WithClock(sc.clock.Now), backdrop.WithDispatcher(sc.queue))
	return sc
}

// options returns the options every test surface uses.
func (sc *scene) options(extra ...Option) []Option {
	return append([]Option{WithPipeline(testPipeline()), WithClock(sc.clock.Now)}, extra...)
}

func (sc *scene) addSurface(t *testing.T, bounds geom.Rect, extra ...Option) *Surface {
	t.Helper()
	s := NewSurface(sc.sched, "glass", bounds, sc.options(extra...)...)
	sc.root.Add(s.Node)
	t.Cleanup(s.Close)
	return s
}

func (sc *scene) addInteractive(t *testing.T, bounds geom.Rect, extra ...Option) *InteractiveSurface {
	t.Helper()
	s := NewInteractiveSurface(sc.sched, "button", bounds, sc.options(extra...)...)
	sc.root.Add(s.Node)
	t.Cleanup(s.Close)
	return s
}

// frame paints the window the way the host would.
func (sc *scene) frame(t *testing.T) *gg.Pixmap {
	t.Helper()
	r, err := canvas.NewRaster(sc.w, sc.h)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	visual.Walker{}.Render(r, sc.win.Root(), geom.SizeRect(float64(sc.w), float64(sc.h)), nil)
	return r.Pixmap()
}

// settle paints a frame, runs the capture it requested and paints again.
func (sc *scene) settle(t *testing.T) *gg.Pixmap {
	t.Helper()
	sc.frame(t)
	sc.queue.RunPending()
	return sc.frame(t)
}

func pixelAt(p *gg.Pixmap, x, y int) [4]uint8 {
	i := (y*p.Width() + x) * 4
	d := p.Data()
	return [4]uint8{d[i], d[i+1], d[i+2], d[i+3]}
}

func solidSnapshot(w, h int, c gg.RGBA, origin image.Point) *backdrop.Snapshot {
	p := gg.NewPixmap(w, h)
	p.Clear(c)
	return backdrop.NewSnapshot(p, origin, 1, time.Time{})
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
