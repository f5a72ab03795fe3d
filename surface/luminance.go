// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/glass/backdrop"
	"github.com/gogpu/glass/effect"
)

// luminanceGrid is the number of samples per axis.
const luminanceGrid = 5

// SampleLuminance returns the mean Rec. 709 luminance of a 5×5 grid over
// rect, in window pixels, within snap. It reports false when snap is nil,
// disposed, or overlaps rect by at most one pixel per axis.
func SampleLuminance(snap *backdrop.Snapshot, rect image.Rectangle) (float64, bool) {
	if snap == nil || !snap.TryAcquireLease() {
		return 0, false
	}
	defer snap.ReleaseLease()

	img := snap.Image
	if img == nil {
		return 0, false
	}
	iw, ih := img.Width(), img.Height()
	rel := rect.Sub(snap.Origin)
	x0 := clampInt(rel.Min.X, 0, iw-1)
	y0 := clampInt(rel.Min.Y, 0, ih-1)
	x1 := clampInt(rel.Max.X, 0, iw)
	y1 := clampInt(rel.Max.Y, 0, ih)
	w, h := x1-x0, y1-y0
	if w <= 1 || h <= 1 {
		return 0, false
	}

	data := img.Data()
	var sum float64
	for sy := range luminanceGrid {
		y := y0 + int(math.RoundToEven(float64(sy*(h-1))/(luminanceGrid-1)))
		for sx := range luminanceGrid {
			x := x0 + int(math.RoundToEven(float64(sx*(w-1))/(luminanceGrid-1)))
			i := (y*iw + x) * 4
			r := float64(data[i]) / 255
			g := float64(data[i+1]) / 255
			b := float64(data[i+2]) / 255
			sum += 0.2126*r + 0.7152*g + 0.0722*b
		}
	}
	return sum / (luminanceGrid * luminanceGrid), true
}

// AdaptParameters tone-maps p for a backdrop of luminance l in [0, 1]:
// bright backdrops get a brighter, flatter and blurrier glass, dark ones
// a darker and sharper one.
func AdaptParameters(p effect.Parameters, l float64) effect.Parameters {
	v := clamp(l, 0, 1)*2 - 1
	v = math.Copysign(v*v, v)

	p.Vibrancy = 1.5
	if v > 0 {
		p.Brightness = lerp(0.1, 0.5, v)
		p.Contrast = lerp(1, 0, v)
		p.Blur = lerp(8, 16, v)
	} else {
		p.Brightness = lerp(0.1, -0.2, -v)
		p.Contrast = 1
		p.Blur = lerp(8, 2, -v)
	}
	return p
}

// LuminanceSampler samples backdrop luminance on its own goroutine. The
// region is set from the UI goroutine with SetRect; results are handed to
// the callback, which typically posts them back to the UI.
type LuminanceSampler struct {
	source   func() *backdrop.Snapshot
	interval time.Duration
	onSample func(l float64, ok bool)

	rect atomic.Pointer[image.Rectangle]

	mu      sync.Mutex
	running *ticker
}

// NewLuminanceSampler creates a stopped sampler reading snapshots from
// source every interval (at least MinLuminanceInterval).
func NewLuminanceSampler(source func() *backdrop.Snapshot, interval time.Duration, onSample func(l float64, ok bool)) *LuminanceSampler {
	if interval <= 0 {
		interval = DefaultLuminanceInterval
	}
	return &LuminanceSampler{
		source:   source,
		interval: max(interval, MinLuminanceInterval),
		onSample: onSample,
	}
}

// Interval returns the sampling period.
func (l *LuminanceSampler) Interval() time.Duration { return l.interval }

// SetRect sets the sampled region in window pixels.
func (l *LuminanceSampler) SetRect(r image.Rectangle) { l.rect.Store(&r) }

// Sample takes one sample. It reports false while a capture runs or
// before a region and snapshot are available.
func (l *LuminanceSampler) Sample() (float64, bool) {
	if backdrop.IsCapturing() {
		return 0, false
	}
	r := l.rect.Load()
	if r == nil {
		return 0, false
	}
	return SampleLuminance(l.source(), *r)
}

// Start begins periodic sampling. Starting a running sampler does nothing.
func (l *LuminanceSampler) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running != nil {
		return
	}
	l.running = startTicker(l.interval, func() {
		v, ok := l.Sample()
		if l.onSample != nil {
			l.onSample(v, ok)
		}
	})
}

// Stop ends sampling and waits for the goroutine to exit.
func (l *LuminanceSampler) Stop() {
	l.mu.Lock()
	t := l.running
	l.running = nil
	l.mu.Unlock()
	if t != nil {
		t.Stop()
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
