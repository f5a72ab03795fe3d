// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/backdrop"
	"github.com/gogpu/glass/canvas"
	"github.com/gogpu/glass/shader"
)

var (
	red   = gg.RGBA{R: 1, A: 1}
	blue  = gg.RGBA{B: 1, A: 1}
	green = gg.RGBA{G: 1, A: 1}
)

// stubCompiler accepts any source without invoking naga.
func stubCompiler(string) ([]byte, error) {
	return []byte{0x03, 0x02, 0x23, 0x07}, nil
}

func failingCompiler(string) ([]byte, error) {
	return nil, errors.New("no device")
}

func newTestPipeline(opts ...shader.LibraryOption) *Pipeline {
	lib := shader.NewLibrary(append([]shader.LibraryOption{shader.WithCompiler(stubCompiler)}, opts...)...)
	return NewPipeline(WithLibrary(lib))
}

// splitSnapshot returns a w×h snapshot whose left half is red and right
// half is blue, placed at origin in window pixels.
func splitSnapshot(w, h int, origin image.Point) *backdrop.Snapshot {
	p := gg.NewPixmap(w, h)
	for y := range h {
		for x := range w {
			c := red
			if x >= w/2 {
				c = blue
			}
			p.SetPixel(x, y, c)
		}
	}
	return backdrop.NewSnapshot(p, origin, 1, time.Time{})
}

func newTestRaster(t testing.TB, w, h int) *canvas.Raster {
	t.Helper()
	r, err := canvas.NewRaster(w, h)
	if err != nil {
		t.Fatalf("NewRaster(%d, %d): %v", w, h, err)
	}
	return r
}

// drawAt draws pl into a fresh w×h raster with the surface's top-left at
// (x, y).
func drawAt(t testing.TB, pl *Plan, w, h int, x, y float64, stage Stage) *gg.Pixmap {
	t.Helper()
	r := newTestRaster(t, w, h)
	r.Concat(gg.Translate(x, y))
	pl.DrawStage(r, stage)
	return r.Pixmap()
}

func pixelAt(p *gg.Pixmap, x, y int) [4]uint8 {
	i := (y*p.Width() + x) * 4
	d := p.Data()
	return [4]uint8{d[i], d[i+1], d[i+2], d[i+3]}
}

func approxPixel(a, b [4]uint8, tolerance int) bool {
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < -tolerance || d > tolerance {
			return false
		}
	}
	return true
}

// plainParameters disables every pass except the raw backdrop.
func plainParameters() Parameters {
	p := DefaultParameters()
	p.ShadowEnabled = false
	p.HighlightEnabled = false
	p.RefractionHeight = 0
	p.Blur = 0
	p.Vibrancy = 1
	return p
}

func passNames(kinds []PassKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}

