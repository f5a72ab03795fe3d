// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import "github.com/gogpu/gg"

// createTestPixmap creates a pixmap filled with the premultiplied form of c.
func createTestPixmap(w, h int, c gg.RGBA) *gg.Pixmap {
	p := gg.NewPixmap(w, h)
	p.Clear(c.Premultiply())
	return p
}

// pixel returns the premultiplied bytes at (x, y).
func pixel(p *gg.Pixmap, x, y int) [4]uint8 {
	i := (y*p.Width() + x) * 4
	d := p.Data()
	return [4]uint8{d[i], d[i+1], d[i+2], d[i+3]}
}

// setPixel writes premultiplied bytes at (x, y).
func setPixel(p *gg.Pixmap, x, y int, v [4]uint8) {
	i := (y*p.Width() + x) * 4
	copy(p.Data()[i:i+4], v[:])
}

// byteApproxEqual compares two pixels with a per-channel tolerance.
func byteApproxEqual(a, b [4]uint8, tolerance int) bool {
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < -tolerance || d > tolerance {
			return false
		}
	}
	return true
}
