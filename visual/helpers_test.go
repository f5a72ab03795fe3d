// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/canvas"
)

var (
	red   = gg.RGBA{R: 1, A: 1}
	green = gg.RGBA{G: 1, A: 1}
	blue  = gg.RGBA{B: 1, A: 1}
)

func newRaster(t *testing.T, w, h int) *canvas.Raster {
	t.Helper()
	r, err := canvas.NewRaster(w, h)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	return r
}

func pixelAt(p *gg.Pixmap, x, y int) [4]uint8 {
	i := (y*p.Width() + x) * 4
	d := p.Data()
	return [4]uint8{d[i], d[i+1], d[i+2], d[i+3]}
}

// countingCanvas tracks the save stack depth of a wrapped canvas.
type countingCanvas struct {
	canvas.Canvas
	saves    int
	restores int
	maxDepth int
}

func (c *countingCanvas) Save() {
	c.Canvas.Save()
	c.push()
}

func (c *countingCanvas) SaveLayer(l canvas.Layer) {
	c.Canvas.SaveLayer(l)
	c.push()
}

func (c *countingCanvas) Restore() {
	c.Canvas.Restore()
	c.restores++
}

func (c *countingCanvas) push() {
	c.saves++
	c.maxDepth = max(c.maxDepth, c.saves-c.restores)
}
