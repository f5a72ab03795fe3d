// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backdrop

import (
	"math"

	"github.com/gogpu/glass/visual"
)

// DefaultInflate is the sampling margin, in DIPs, used for subscribers that
// do not describe their own sampling.
const DefaultInflate = 32

// Sampling describes how far outside its bounds a surface reads the
// backdrop.
type Sampling struct {
	Blur                float64
	RefractionAmount    float64
	ChromaticAberration bool
	Zoom                float64
	OffsetX, OffsetY    float64
}

// SamplingMarginProvider is implemented by subscribers whose effect reads
// backdrop pixels beyond their bounds.
type SamplingMarginProvider interface {
	SamplingParams() Sampling
}

// Inflate returns the capture margin for v in its local units.
func Inflate(v visual.Visual) float64 {
	p, ok := v.(SamplingMarginProvider)
	if !ok {
		return DefaultInflate
	}
	b := v.Bounds()
	return p.SamplingParams().Margin(b.Width(), b.Height())
}

// Margin returns the sampling margin for a surface of the given size.
func (s Sampling) Margin(width, height float64) float64 {
	zoom := s.Zoom
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) || zoom <= 0.0005 {
		zoom = 1
	}
	zoom = math.Min(math.Max(zoom, 0.1), 10)

	offsetMargin := math.Max(math.Abs(s.OffsetX), math.Abs(s.OffsetY)) / zoom
	var zoomOutMargin float64
	if zoom < 1 {
		zoomOutMargin = (1/zoom - 1) * math.Max(width, height) / 2
	}
	refraction := math.Abs(s.RefractionAmount)
	if s.ChromaticAberration {
		refraction *= 2
	}

	m := refraction + 3*s.Blur + 6 + offsetMargin + zoomOutMargin
	if math.IsNaN(m) || m < DefaultInflate {
		return DefaultInflate
	}
	return m
}
