// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"math"

	"github.com/gogpu/gg"
)

// EdgeMode selects how a blur samples outside the source image.
type EdgeMode uint8

const (
	// EdgeClamp repeats the nearest border pixel. Glass backdrops use it so
	// the edges of the capture do not darken.
	EdgeClamp EdgeMode = iota

	// EdgeDecal treats pixels outside the image as transparent.
	EdgeDecal
)

// String returns the edge mode name.
func (m EdgeMode) String() string {
	switch m {
	case EdgeClamp:
		return "clamp"
	case EdgeDecal:
		return "decal"
	default:
		return "unknown"
	}
}

// Blur applies a separable Gaussian blur.
type Blur struct {
	// Sigma is the standard deviation in pixels. Zero is the identity.
	Sigma float64

	// Edge selects out-of-bounds sampling.
	Edge EdgeMode
}

// NewBlur returns a blur filter with the given sigma and edge mode.
func NewBlur(sigma float64, edge EdgeMode) *Blur {
	return &Blur{Sigma: sigma, Edge: edge}
}

// IsIdentity reports whether the blur leaves its input unchanged.
func (f *Blur) IsIdentity() bool {
	return !(f.Sigma > 0) || math.IsInf(f.Sigma, 0)
}

// Apply blurs src into dst. Both pixmaps must have the same size.
// src and dst may be the same pixmap.
func (f *Blur) Apply(src, dst *gg.Pixmap) {
	if src == nil || dst == nil {
		return
	}
	if f.IsIdentity() {
		copyPixmap(src, dst)
		return
	}
	w, h := src.Width(), src.Height()
	if w == 0 || h == 0 || dst.Width() != w || dst.Height() != h {
		return
	}

	kernel := CachedGaussianKernel(f.Sigma)
	buf := getTempBuffer(w * h * 4)
	defer putTempBuffer(buf)

	blurRows(src.Data(), buf.data, w, h, kernel, f.Edge)
	blurColumns(buf.data, dst.Data(), w, h, kernel, f.Edge)
}

// blurRows convolves each row of src into the float buffer tmp.
func blurRows(src []uint8, tmp []float32, w, h int, kernel []float32, edge EdgeMode) {
	half := len(kernel) / 2
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				sx := x + k - half
				if sx < 0 || sx >= w {
					if edge == EdgeDecal {
						continue
					}
					sx = min(max(sx, 0), w-1)
				}
				i := (row + sx) * 4
				r += float32(src[i]) * weight
				g += float32(src[i+1]) * weight
				b += float32(src[i+2]) * weight
				a += float32(src[i+3]) * weight
			}
			o := (row + x) * 4
			tmp[o], tmp[o+1], tmp[o+2], tmp[o+3] = r, g, b, a
		}
	}
}

// blurColumns convolves each column of tmp into dst.
func blurColumns(tmp []float32, dst []uint8, w, h int, kernel []float32, edge EdgeMode) {
	half := len(kernel) / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				sy := y + k - half
				if sy < 0 || sy >= h {
					if edge == EdgeDecal {
						continue
					}
					sy = min(max(sy, 0), h-1)
				}
				i := (sy*w + x) * 4
				r += tmp[i] * weight
				g += tmp[i+1] * weight
				b += tmp[i+2] * weight
				a += tmp[i+3] * weight
			}
			// Premultiplied color can never exceed alpha.
			ab := clampUint8(a)
			o := (y*w + x) * 4
			dst[o] = min(clampUint8(r), ab)
			dst[o+1] = min(clampUint8(g), ab)
			dst[o+2] = min(clampUint8(b), ab)
			dst[o+3] = ab
		}
	}
}

// BlurMask blurs an 8-bit coverage mask in place with transparent edges.
// It implements Gaussian mask filters on path coverage.
func BlurMask(m *gg.Mask, sigma float64) {
	if m == nil || !(sigma > 0) {
		return
	}
	w, h := m.Width(), m.Height()
	if w == 0 || h == 0 {
		return
	}
	kernel := CachedGaussianKernel(sigma)
	half := len(kernel) / 2
	data := m.Data()

	buf := getTempBuffer(w * h)
	defer putTempBuffer(buf)
	tmp := buf.data

	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var v float32
			for k, weight := range kernel {
				sx := x + k - half
				if sx >= 0 && sx < w {
					v += float32(data[row+sx]) * weight
				}
			}
			tmp[row+x] = v
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var v float32
			for k, weight := range kernel {
				sy := y + k - half
				if sy >= 0 && sy < h {
					v += tmp[sy*w+x] * weight
				}
			}
			data[y*w+x] = clampUint8(v)
		}
	}
}

// copyPixmap copies src into dst when both have the same size.
func copyPixmap(src, dst *gg.Pixmap) {
	if src == dst || src.Width() != dst.Width() || src.Height() != dst.Height() {
		return
	}
	copy(dst.Data(), src.Data())
}
