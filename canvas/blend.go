// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import "math"

// BlendMode selects how source pixels combine with the destination.
// The zero value is source-over.
type BlendMode uint8

const (
	// BlendSourceOver composites source over destination: S + D*(1-Sa).
	BlendSourceOver BlendMode = iota

	// BlendSource replaces the destination with the source.
	BlendSource

	// BlendClear clears the destination to transparent.
	BlendClear

	// BlendPlus adds source and destination, clamped.
	BlendPlus

	// BlendHue takes the hue of the source with the saturation and
	// luminosity of the destination (W3C non-separable Hue).
	BlendHue
)

// String returns the blend mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendSourceOver:
		return "SourceOver"
	case BlendSource:
		return "Source"
	case BlendClear:
		return "Clear"
	case BlendPlus:
		return "Plus"
	case BlendHue:
		return "Hue"
	default:
		return "Unknown"
	}
}

// blendFunc combines premultiplied source and destination bytes.
type blendFunc func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

func (m BlendMode) fn() blendFunc {
	switch m {
	case BlendSource:
		return blendSource
	case BlendClear:
		return blendClear
	case BlendPlus:
		return blendPlus
	case BlendHue:
		return blendHue
	default:
		return blendSourceOver
	}
}

func blendClear(_, _, _, _, _, _, _, _ byte) (byte, byte, byte, byte) {
	return 0, 0, 0, 0
}

func blendSource(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	inv := 255 - sa
	return addClamp(sr, mulDiv255(dr, inv)),
		addClamp(sg, mulDiv255(dg, inv)),
		addClamp(sb, mulDiv255(db, inv)),
		addClamp(sa, mulDiv255(da, inv))
}

func blendPlus(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return addClamp(sr, dr), addClamp(sg, dg), addClamp(sb, db), addClamp(sa, da)
}

// blendHue implements Result = (1-Sa)*D + (1-Da)*S + Sa*Da*B(Cs, Cb)
// with B = SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb)).
func blendHue(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}
	sfa, dfa := float32(sa), float32(da)
	cr, cg, cb := float32(sr)/sfa, float32(sg)/sfa, float32(sb)/sfa
	br, bg, bb := float32(dr)/dfa, float32(dg)/dfa, float32(db)/dfa

	r, g, b := setSat(cr, cg, cb, sat(br, bg, bb))
	r, g, b = setLum(r, g, b, lum(br, bg, bb))

	invSa, invDa := 255-sa, 255-da
	k := (sfa / 255) * (dfa / 255) * 255
	outR := addClamp(addClamp(mulDiv255(dr, invSa), mulDiv255(sr, invDa)), roundByte(r*k))
	outG := addClamp(addClamp(mulDiv255(dg, invSa), mulDiv255(sg, invDa)), roundByte(g*k))
	outB := addClamp(addClamp(mulDiv255(db, invSa), mulDiv255(sb, invDa)), roundByte(b*k))
	outA := addClamp(sa, mulDiv255(da, invSa))
	return outR, outG, outB, outA
}

func lum(r, g, b float32) float32 { return 0.30*r + 0.59*g + 0.11*b }

func sat(r, g, b float32) float32 {
	return max(r, g, b) - min(r, g, b)
}

func clipColor(r, g, b float32) (float32, float32, float32) {
	l := lum(r, g, b)
	n := min(r, g, b)
	x := max(r, g, b)
	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

func setLum(r, g, b, l float32) (float32, float32, float32) {
	d := l - lum(r, g, b)
	return clipColor(r+d, g+d, b+d)
}

func setSat(r, g, b, s float32) (float32, float32, float32) {
	lo, mid, hi := sortChannels(&r, &g, &b)
	if *hi > *lo {
		*mid = (*mid - *lo) * s / (*hi - *lo)
		*hi = s
	} else {
		*mid, *hi = 0, 0
	}
	*lo = 0
	return r, g, b
}

func sortChannels(r, g, b *float32) (lo, mid, hi *float32) {
	switch {
	case *r <= *g && *g <= *b:
		return r, g, b
	case *r <= *b && *b <= *g:
		return r, b, g
	case *b <= *r && *r <= *g:
		return b, r, g
	case *g <= *r && *r <= *b:
		return g, r, b
	case *g <= *b && *b <= *r:
		return g, b, r
	default:
		return b, g, r
	}
}

// mulDiv255 multiplies two bytes as fractions of 255 with rounding.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

func addClamp(a, b byte) byte {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return byte(s)
}

func roundByte(v float32) byte {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(math.Round(float64(v)))
}

// lerpByte moves d toward b by coverage c (0..255).
func lerpByte(d, b, c byte) byte {
	if c == 255 {
		return b
	}
	v := int(d) + (int(b)-int(d))*int(c)/255
	return byte(v)
}
