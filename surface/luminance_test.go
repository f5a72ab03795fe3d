// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/backdrop"
	"github.com/gogpu/glass/effect"
)

func TestSampleLuminance(t *testing.T) {
	gray := gg.RGBA{R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255, A: 1}
	tests := []struct {
		name   string
		color  gg.RGBA
		rect   image.Rectangle
		want   float64
		wantOK bool
	}{
		{"gray", gray, image.Rect(20, 20, 60, 60), 128.0 / 255, true},
		{"red", red, image.Rect(20, 20, 60, 60), 0.2126, true},
		{"partly outside", gray, image.Rect(-50, -50, 30, 30), 128.0 / 255, true},
		{"outside", gray, image.Rect(200, 200, 260, 260), 0, false},
		{"one pixel wide", gray, image.Rect(20, 20, 21, 60), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := solidSnapshot(100, 100, tt.color, image.Pt(10, 10))
			got, ok := SampleLuminance(snap, tt.rect)
			if ok != tt.wantOK || !approx(got, tt.want, 1e-9) {
				t.Errorf("SampleLuminance = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
			if snap.Leases() != 0 {
				t.Errorf("lease leaked: %d", snap.Leases())
			}
		})
	}

	if _, ok := SampleLuminance(nil, image.Rect(0, 0, 10, 10)); ok {
		t.Error("nil snapshot sampled")
	}
	snap := solidSnapshot(10, 10, gray, image.Point{})
	snap.RequestDispose()
	if _, ok := SampleLuminance(snap, image.Rect(0, 0, 10, 10)); ok {
		t.Error("disposed snapshot sampled")
	}
}

func TestSampleLuminanceGrid(t *testing.T) {
	// Left columns white, the rest black: the grid hits x = 0, 25, 50, 74, 99
	// over a 100 pixel wide rect, so exactly one column in five is white.
	p := gg.NewPixmap(100, 20)
	for y := range 20 {
		for x := range 10 {
			p.SetPixel(x, y, gg.RGBA{R: 1, G: 1, B: 1, A: 1})
		}
		for x := 10; x < 100; x++ {
			p.SetPixel(x, y, gg.RGBA{A: 1})
		}
	}
	snap := backdrop.NewSnapshot(p, image.Point{}, 1, time.Time{})
	got, ok := SampleLuminance(snap, image.Rect(0, 0, 100, 20))
	if !ok || !approx(got, 0.2, 1e-9) {
		t.Errorf("SampleLuminance = %v, %v; want 0.2", got, ok)
	}
}

func TestAdaptParameters(t *testing.T) {
	tests := []struct {
		l                          float64
		brightness, contrast, blur float64
	}{
		{0.5, 0.1, 1, 8},
		{1, 0.5, 0, 16},
		{0, -0.2, 1, 2},
		{0.75, 0.2, 0.75, 10},
		{0.25, 0.025, 1, 6.5},
		{2, 0.5, 0, 16},
	}
	for _, tt := range tests {
		p := AdaptParameters(effect.DefaultParameters(), tt.l)
		if !approx(p.Brightness, tt.brightness, 1e-9) || !approx(p.Contrast, tt.contrast, 1e-9) ||
			!approx(p.Blur, tt.blur, 1e-9) || p.Vibrancy != 1.5 {
			t.Errorf("AdaptParameters(%v) = brightness %v contrast %v blur %v vibrancy %v",
				tt.l, p.Brightness, p.Contrast, p.Blur, p.Vibrancy)
		}
	}
}

func TestLuminanceSamplerRuns(t *testing.T) {
	snap := solidSnapshot(64, 64, gg.RGBA{R: 1, G: 1, B: 1, A: 1}, image.Point{})
	results := make(chan float64, 1)
	l := NewLuminanceSampler(func() *backdrop.Snapshot { return snap }, time.Millisecond, func(v float64, ok bool) {
		if !ok {
			return
		}
		select {
		case results <- v:
		default:
		}
	})
	if l.Interval() != MinLuminanceInterval {
		t.Errorf("Interval() = %v, want the %v floor", l.Interval(), MinLuminanceInterval)
	}
	l.SetRect(image.Rect(0, 0, 64, 64))
	l.Start()
	l.Start()
	defer l.Stop()

	select {
	case v := <-results:
		if !approx(v, 1, 1e-9) {
			t.Errorf("sample = %v, want 1", v)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no sample delivered")
	}
	l.Stop()
	l.Stop()
}

func TestLuminanceSamplerNeedsRect(t *testing.T) {
	snap := solidSnapshot(8, 8, red, image.Point{})
	l := NewLuminanceSampler(func() *backdrop.Snapshot { return snap }, 0, nil)
	if l.Interval() != DefaultLuminanceInterval {
		t.Errorf("Interval() = %v", l.Interval())
	}
	if _, ok := l.Sample(); ok {
		t.Error("sampled without a rect")
	}
}
