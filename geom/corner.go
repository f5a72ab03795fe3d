// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// kappa is the cubic Bezier control distance for a quarter circle of radius 1.
const kappa = 0.5522847498307936

// CornerRadius holds one radius per corner, clockwise from the top-left.
type CornerRadius struct {
	TopLeft     float64
	TopRight    float64
	BottomRight float64
	BottomLeft  float64
}

// UniformRadius returns a CornerRadius with the same radius on every corner.
func UniformRadius(r float64) CornerRadius {
	return CornerRadius{TopLeft: r, TopRight: r, BottomRight: r, BottomLeft: r}
}

// IsZero reports whether all radii are zero or negative.
func (c CornerRadius) IsZero() bool {
	return c.TopLeft <= 0 && c.TopRight <= 0 && c.BottomRight <= 0 && c.BottomLeft <= 0
}

// Clamp limits every radius to [0, limit]. Non-finite radii become 0.
func (c CornerRadius) Clamp(limit float64) CornerRadius {
	f := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0
		}
		return math.Min(v, math.Max(limit, 0))
	}
	return CornerRadius{
		TopLeft:     f(c.TopLeft),
		TopRight:    f(c.TopRight),
		BottomRight: f(c.BottomRight),
		BottomLeft:  f(c.BottomLeft),
	}
}

// Vec4 returns the radii in shader order: top-left, top-right,
// bottom-right, bottom-left.
func (c CornerRadius) Vec4() [4]float64 {
	return [4]float64{c.TopLeft, c.TopRight, c.BottomRight, c.BottomLeft}
}

// RoundRect is a rectangle with per-corner radii.
type RoundRect struct {
	Rect  Rect
	Radii CornerRadius
}

// NewRoundRect clamps radii to half of the smaller side.
func NewRoundRect(r Rect, radii CornerRadius) RoundRect {
	return RoundRect{Rect: r, Radii: radii.Clamp(math.Min(r.Width(), r.Height()) / 2)}
}

// Translate returns the rounded rect moved by (dx, dy).
func (rr RoundRect) Translate(dx, dy float64) RoundRect {
	return RoundRect{Rect: rr.Rect.Offset(dx, dy), Radii: rr.Radii}
}

// Path returns the outline as a closed path. Corners with a zero radius
// are sharp.
func (rr RoundRect) Path() *gg.Path {
	r := rr.Rect
	if rr.Radii.IsZero() {
		return r.Path()
	}
	c := rr.Radii.Clamp(math.Min(r.Width(), r.Height()) / 2)
	p := gg.NewPath()

	p.MoveTo(r.MinX+c.TopLeft, r.MinY)
	p.LineTo(r.MaxX-c.TopRight, r.MinY)
	if c.TopRight > 0 {
		k := c.TopRight * kappa
		p.CubicTo(r.MaxX-c.TopRight+k, r.MinY, r.MaxX, r.MinY+c.TopRight-k, r.MaxX, r.MinY+c.TopRight)
	}
	p.LineTo(r.MaxX, r.MaxY-c.BottomRight)
	if c.BottomRight > 0 {
		k := c.BottomRight * kappa
		p.CubicTo(r.MaxX, r.MaxY-c.BottomRight+k, r.MaxX-c.BottomRight+k, r.MaxY, r.MaxX-c.BottomRight, r.MaxY)
	}
	p.LineTo(r.MinX+c.BottomLeft, r.MaxY)
	if c.BottomLeft > 0 {
		k := c.BottomLeft * kappa
		p.CubicTo(r.MinX+c.BottomLeft-k, r.MaxY, r.MinX, r.MaxY-c.BottomLeft+k, r.MinX, r.MaxY-c.BottomLeft)
	}
	p.LineTo(r.MinX, r.MinY+c.TopLeft)
	if c.TopLeft > 0 {
		k := c.TopLeft * kappa
		p.CubicTo(r.MinX, r.MinY+c.TopLeft-k, r.MinX+c.TopLeft-k, r.MinY, r.MinX+c.TopLeft, r.MinY)
	}
	p.Close()
	return p
}
