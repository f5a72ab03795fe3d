// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"math"

	"github.com/gogpu/gg"
)

// TileMode selects how an image shader samples outside its image.
type TileMode uint8

const (
	// TileClamp repeats the border pixels.
	TileClamp TileMode = iota

	// TileDecal returns transparent outside the image.
	TileDecal
)

// ImageShader samples a premultiplied pixmap with bilinear filtering.
type ImageShader struct {
	img  *gg.Pixmap
	tile TileMode
	inv  gg.Matrix
}

// NewImageShader returns a shader drawing img, where m maps image pixel
// coordinates to local coordinates.
func NewImageShader(img *gg.Pixmap, m gg.Matrix, tile TileMode) *ImageShader {
	return &ImageShader{img: img, tile: tile, inv: m.Invert()}
}

// Image returns the sampled pixmap.
func (s *ImageShader) Image() *gg.Pixmap { return s.img }

// Sample implements Shader.
func (s *ImageShader) Sample(x, y float64) gg.RGBA {
	p := s.inv.TransformPoint(gg.Pt(x, y))
	return SampleBilinear(s.img, p.X, p.Y, s.tile)
}

// SampleBilinear samples img at pixel coordinates (x, y), where pixel
// centers sit at half-integers. The result is premultiplied.
func SampleBilinear(img *gg.Pixmap, x, y float64, tile TileMode) gg.RGBA {
	if img == nil || img.Width() == 0 || img.Height() == 0 {
		return gg.Transparent
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return gg.Transparent
	}
	fx := x - 0.5
	fy := y - 0.5
	x0 := math.Floor(fx)
	y0 := math.Floor(fy)
	tx := fx - x0
	ty := fy - y0
	ix, iy := int(x0), int(y0)

	c00 := texel(img, ix, iy, tile)
	c10 := texel(img, ix+1, iy, tile)
	c01 := texel(img, ix, iy+1, tile)
	c11 := texel(img, ix+1, iy+1, tile)

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }
	var out [4]float64
	for i := range out {
		top := lerp(c00[i], c10[i], tx)
		bot := lerp(c01[i], c11[i], tx)
		out[i] = lerp(top, bot, ty)
	}
	return gg.RGBA{R: out[0], G: out[1], B: out[2], A: out[3]}
}

func texel(img *gg.Pixmap, x, y int, tile TileMode) [4]float64 {
	w, h := img.Width(), img.Height()
	if x < 0 || y < 0 || x >= w || y >= h {
		if tile == TileDecal {
			return [4]float64{}
		}
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
	}
	i := (y*w + x) * 4
	d := img.Data()
	return [4]float64{
		float64(d[i]) / 255,
		float64(d[i+1]) / 255,
		float64(d[i+2]) / 255,
		float64(d[i+3]) / 255,
	}
}

// premultipliedBytes converts a straight-alpha color to premultiplied bytes.
func premultipliedBytes(c gg.RGBA) [4]byte {
	a := clamp01(c.A)
	return [4]byte{
		toByte(clamp01(c.R) * a),
		toByte(clamp01(c.G) * a),
		toByte(clamp01(c.B) * a),
		toByte(a),
	}
}

// shaderBytes converts a premultiplied shader color to bytes, keeping
// every channel at or below alpha.
func shaderBytes(c gg.RGBA) [4]byte {
	a := toByte(clamp01(c.A))
	return [4]byte{
		min(toByte(clamp01(c.R)), a),
		min(toByte(clamp01(c.G)), a),
		min(toByte(clamp01(c.B)), a),
		a,
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toByte(v float64) byte {
	return byte(v*255 + 0.5)
}
