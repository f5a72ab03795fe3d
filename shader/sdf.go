// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "github.com/chewxy/math32"

// cornerRadius picks the radius of the quadrant containing (px, py), with
// the origin at the shape center. Radii are ordered top-left, top-right,
// bottom-right, bottom-left.
func cornerRadius(px, py float32, r [4]float32) float32 {
	switch {
	case px < 0 && py < 0:
		return r[0]
	case px < 0:
		return r[3]
	case py < 0:
		return r[1]
	default:
		return r[2]
	}
}

// sdRoundRect is the signed distance to a rounded rectangle of half extents
// (hx, hy), negative inside.
func sdRoundRect(px, py, hx, hy, r float32) float32 {
	qx := math32.Abs(px) - hx + r
	qy := math32.Abs(py) - hy + r
	outside := math32.Hypot(math32.Max(qx, 0), math32.Max(qy, 0))
	return math32.Min(math32.Max(qx, qy), 0) + outside - r
}

// sdGradient is the normalized central-difference gradient of sdRoundRect.
func sdGradient(px, py, hx, hy, r float32) (float32, float32) {
	const e = 0.5
	dx := sdRoundRect(px+e, py, hx, hy, r) - sdRoundRect(px-e, py, hx, hy, r)
	dy := sdRoundRect(px, py+e, hx, hy, r) - sdRoundRect(px, py-e, hx, hy, r)
	l := math32.Hypot(dx, dy)
	if l < 1e-6 {
		return 0, 0
	}
	return dx / l, dy / l
}

// edgeNormal is the outward normal of the nearest edge or corner arc.
func edgeNormal(px, py, hx, hy, r float32) (float32, float32) {
	qx := math32.Abs(px) - (hx - r)
	qy := math32.Abs(py) - (hy - r)
	var nx, ny float32
	switch {
	case qx > 0 && qy > 0:
		l := math32.Hypot(qx, qy)
		nx, ny = qx/l, qy/l
	case qx > qy:
		nx = 1
	default:
		ny = 1
	}
	if px < 0 {
		nx = -nx
	}
	if py < 0 {
		ny = -ny
	}
	return nx, ny
}

func smoothstep(e0, e1, x float32) float32 {
	if e1 <= e0 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
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
