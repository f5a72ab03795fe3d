// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import "github.com/gogpu/gg"

// Filter transforms src into dst. Both pixmaps have the same size and may be
// the same pixmap.
type Filter interface {
	Apply(src, dst *gg.Pixmap)
}

// Chain applies filters in order. An empty chain copies src into dst.
type Chain []Filter

// Apply runs every filter, feeding each output into the next filter.
func (c Chain) Apply(src, dst *gg.Pixmap) {
	if src == nil || dst == nil {
		return
	}
	if len(c) == 0 {
		copyPixmap(src, dst)
		return
	}
	c[0].Apply(src, dst)
	for _, f := range c[1:] {
		f.Apply(dst, dst)
	}
}

// Render allocates a new pixmap the size of src and applies f into it.
// The result always starts at the origin of src.
func Render(f Filter, src *gg.Pixmap) *gg.Pixmap {
	dst := gg.NewPixmap(src.Width(), src.Height())
	if f == nil {
		copyPixmap(src, dst)
		return dst
	}
	f.Apply(src, dst)
	return dst
}
