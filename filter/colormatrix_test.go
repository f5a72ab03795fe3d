// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func TestColorControlsIdentity(t *testing.T) {
	if !ColorControls(0, 1, 1).IsIdentity() {
		t.Error("ColorControls(0, 1, 1) should be the identity")
	}
	if !Exposure(0).IsIdentity() {
		t.Error("Exposure(0) should be the identity")
	}
	if !Opacity(1).IsIdentity() {
		t.Error("Opacity(1) should be the identity")
	}
	if ColorControls(0.1, 1, 1).IsIdentity() {
		t.Error("non-zero brightness must not be the identity")
	}
}

func TestColorControlsTransform(t *testing.T) {
	tests := []struct {
		name                 string
		brightness, contrast float64
		saturation           float64
		in, want             gg.RGBA
	}{
		{"brightness", 0.25, 1, 1, gg.RGB(0.5, 0.5, 0.5), gg.RGB(0.75, 0.75, 0.75)},
		{"zero contrast", 0, 0, 1, gg.RGB(0.9, 0.1, 0.3), gg.RGB(0.5, 0.5, 0.5)},
		{"desaturate", 0, 1, 0, gg.RGB(1, 0, 0), gg.RGB(0.213, 0.213, 0.213)},
		{"clamped", 1, 1, 1, gg.RGB(0.5, 0.5, 0.5), gg.RGB(1, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorControls(tt.brightness, tt.contrast, tt.saturation).Transform(tt.in)
			if math.Abs(got.R-tt.want.R) > 1e-3 || math.Abs(got.G-tt.want.G) > 1e-3 ||
				math.Abs(got.B-tt.want.B) > 1e-3 {
				t.Errorf("Transform = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExposureScale(t *testing.T) {
	got := Exposure(2.2).Transform(gg.RGB(0.25, 0.25, 0.25))
	if math.Abs(got.R-0.5) > 1e-4 {
		t.Errorf("Exposure(2.2) red = %v, want 0.5", got.R)
	}
}

func TestColorMatrixApplyPremultiplied(t *testing.T) {
	src := createTestPixmap(2, 2, gg.RGBA{R: 1, G: 0, B: 0, A: 0.5})
	dst := gg.NewPixmap(2, 2)

	Opacity(0.5).Apply(src, dst)

	got := pixel(dst, 0, 0)
	if !byteApproxEqual(got, [4]uint8{64, 0, 0, 64}, 1) {
		t.Errorf("opacity result = %v, want ~[64 0 0 64]", got)
	}
}

func TestChainOrder(t *testing.T) {
	src := createTestPixmap(4, 4, gg.RGB(0.5, 0.5, 0.5))
	dst := gg.NewPixmap(4, 4)

	Chain{ColorControls(0.5, 1, 1), Opacity(0.5)}.Apply(src, dst)

	got := pixel(dst, 1, 1)
	if !byteApproxEqual(got, [4]uint8{128, 128, 128, 128}, 1) {
		t.Errorf("chain result = %v, want ~[128 128 128 128]", got)
	}

	out := Render(nil, src)
	if out == src || pixel(out, 0, 0) != pixel(src, 0, 0) {
		t.Error("Render(nil) should copy into a fresh pixmap")
	}
}
