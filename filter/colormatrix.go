// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"math"

	"github.com/gogpu/gg"
)

// Luminance weights used by the color-controls matrix.
const (
	lumR = 0.213
	lumG = 0.715
	lumB = 0.072
)

// ColorMatrix applies a 4x5 matrix to unpremultiplied, normalized color.
type ColorMatrix struct {
	// M is row-major: [0-4] red, [5-9] green, [10-14] blue, [15-19] alpha.
	M [20]float32
}

// IdentityMatrix returns the pass-through matrix.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix{M: [20]float32{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}}
}

// ColorControls returns the combined saturation, contrast and brightness
// matrix. Saturation blends between luminance (0) and the source color (1),
// contrast scales around mid-gray and brightness is an additive offset.
func ColorControls(brightness, contrast, saturation float64) ColorMatrix {
	inv := 1 - saturation
	r := lumR * inv
	g := lumG * inv
	b := lumB * inv
	c := contrast
	s := saturation
	t := 0.5 - c*0.5 + brightness

	return ColorMatrix{M: [20]float32{
		float32(c*r + c*s), float32(c * g), float32(c * b), 0, float32(t),
		float32(c * r), float32(c*g + c*s), float32(c * b), 0, float32(t),
		float32(c * r), float32(c * g), float32(c*b + c*s), 0, float32(t),
		0, 0, 0, 1, 0,
	}}
}

// Exposure scales RGB by 2^(ev/2.2).
func Exposure(ev float64) ColorMatrix {
	k := float32(math.Pow(2, ev/2.2))
	return ColorMatrix{M: [20]float32{
		k, 0, 0, 0, 0,
		0, k, 0, 0, 0,
		0, 0, k, 0, 0,
		0, 0, 0, 1, 0,
	}}
}

// Opacity scales alpha by a.
func Opacity(a float64) ColorMatrix {
	m := IdentityMatrix()
	m.M[18] = float32(a)
	return m
}

// IsIdentity reports whether m equals the identity within 1e-6.
func (m ColorMatrix) IsIdentity() bool {
	id := IdentityMatrix()
	for i := range m.M {
		if math.Abs(float64(m.M[i]-id.M[i])) > 1e-6 {
			return false
		}
	}
	return true
}

// Transform maps one unpremultiplied color through the matrix.
// The result is clamped to [0, 1].
func (m ColorMatrix) Transform(c gg.RGBA) gg.RGBA {
	r, g, b, a := float32(c.R), float32(c.G), float32(c.B), float32(c.A)
	return gg.RGBA{
		R: float64(clamp01(m.M[0]*r + m.M[1]*g + m.M[2]*b + m.M[3]*a + m.M[4])),
		G: float64(clamp01(m.M[5]*r + m.M[6]*g + m.M[7]*b + m.M[8]*a + m.M[9])),
		B: float64(clamp01(m.M[10]*r + m.M[11]*g + m.M[12]*b + m.M[13]*a + m.M[14])),
		A: float64(clamp01(m.M[15]*r + m.M[16]*g + m.M[17]*b + m.M[18]*a + m.M[19])),
	}
}

// Apply transforms every pixel of src into dst. src and dst may alias.
func (m ColorMatrix) Apply(src, dst *gg.Pixmap) {
	if src == nil || dst == nil || src.Width() != dst.Width() || src.Height() != dst.Height() {
		return
	}
	s, d := src.Data(), dst.Data()
	for i := 0; i+3 < len(s); i += 4 {
		pa := s[i+3]
		var r, g, b, a float32
		if pa > 0 {
			a = float32(pa) / 255
			inv := 1 / (255 * a)
			r = float32(s[i]) * inv
			g = float32(s[i+1]) * inv
			b = float32(s[i+2]) * inv
		}
		nr := clamp01(m.M[0]*r + m.M[1]*g + m.M[2]*b + m.M[3]*a + m.M[4])
		ng := clamp01(m.M[5]*r + m.M[6]*g + m.M[7]*b + m.M[8]*a + m.M[9])
		nb := clamp01(m.M[10]*r + m.M[11]*g + m.M[12]*b + m.M[13]*a + m.M[14])
		na := clamp01(m.M[15]*r + m.M[16]*g + m.M[17]*b + m.M[18]*a + m.M[19])

		d[i] = clampUint8(nr * na * 255)
		d[i+1] = clampUint8(ng * na * 255)
		d[i+2] = clampUint8(nb * na * 255)
		d[i+3] = clampUint8(na * 255)
	}
}

func clamp01(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
