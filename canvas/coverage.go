// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass"
	"github.com/gogpu/glass/filter"
)

// rasterizeCoverage renders p, mapped through m, into an 8-bit coverage mask
// of size w x h using gg's anti-aliased software rasterizer.
func rasterizeCoverage(w, h int, p *gg.Path, m gg.Matrix, stroke *Stroke) *gg.Mask {
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()

	for _, e := range p.Transform(m).Elements() {
		switch e := e.(type) {
		case gg.MoveTo:
			dc.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			dc.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			dc.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			dc.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			dc.ClosePath()
		}
	}
	dc.SetRGBA(1, 1, 1, 1)

	var err error
	if stroke != nil {
		dc.SetLineWidth(stroke.Width * matrixScale(m))
		dc.SetLineJoin(stroke.Join)
		dc.SetLineCap(stroke.Cap)
		err = dc.Stroke()
	} else {
		err = dc.Fill()
	}
	if err != nil {
		glass.Logger().Debug("canvas: path rasterization failed", "err", err)
	}
	return gg.NewMaskFromAlpha(dc.Image())
}

// matrixScale returns the geometric mean scale of m.
func matrixScale(m gg.Matrix) float64 {
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

// maskBounds returns the bounding box of the non-zero coverage of m.
func maskBounds(m *gg.Mask) image.Rectangle {
	w, h := m.Width(), m.Height()
	data := m.Data()
	minX, minY, maxX, maxY := w, h, -1, -1
	for y := 0; y < h; y++ {
		row := data[y*w : (y+1)*w]
		for x, v := range row {
			if v == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// intersectMasks multiplies b into a in place. A nil a is treated as fully
// covered, in which case b is returned.
func intersectMasks(a, b *gg.Mask) *gg.Mask {
	if a == nil {
		return b
	}
	ad, bd := a.Data(), b.Data()
	for i := range ad {
		ad[i] = mulDiv255(ad[i], bd[i])
	}
	return a
}

// blurCoverage applies a Gaussian mask filter of sigma local units.
func blurCoverage(m *gg.Mask, sigma float64, mat gg.Matrix) {
	if sigma > 0 {
		filter.BlurMask(m, sigma*matrixScale(mat))
	}
}
