// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/backdrop"
	"github.com/gogpu/glass/geom"
)

// tolerance below which a parameter counts as its identity value.
const tolerance = 0.0005

// Parameters configure one glass surface. The zero value is not useful;
// start from DefaultParameters.
type Parameters struct {
	CornerRadius geom.CornerRadius `yaml:"-"`

	// Zoom and Offset transform the backdrop before refraction.
	Zoom   float64  `yaml:"zoom"`
	Offset gg.Point `yaml:"offset"`

	RefractionHeight    float64 `yaml:"refraction_height"`
	RefractionAmount    float64 `yaml:"refraction_amount"`
	DepthEffect         bool    `yaml:"depth_effect"`
	ChromaticAberration bool    `yaml:"chromatic_aberration"`

	// Blur is the backdrop blur sigma in DIPs.
	Blur       float64 `yaml:"blur"`
	Vibrancy   float64 `yaml:"vibrancy"`
	Brightness float64 `yaml:"brightness"`
	Contrast   float64 `yaml:"contrast"`
	Exposure   float64 `yaml:"exposure"`
	Gamma      float64 `yaml:"gamma"`
	Opacity    float64 `yaml:"opacity"`

	Tint         Color `yaml:"tint"`
	SurfaceColor Color `yaml:"surface_color"`

	ProgressiveEnabled   bool    `yaml:"progressive_enabled"`
	ProgressiveStart     float64 `yaml:"progressive_start"`
	ProgressiveEnd       float64 `yaml:"progressive_end"`
	ProgressiveTint      Color   `yaml:"progressive_tint"`
	ProgressiveIntensity float64 `yaml:"progressive_intensity"`

	HighlightEnabled bool    `yaml:"highlight_enabled"`
	HighlightWidth   float64 `yaml:"highlight_width"`
	HighlightBlur    float64 `yaml:"highlight_blur"`
	HighlightOpacity float64 `yaml:"highlight_opacity"`
	// HighlightAngle is in degrees.
	HighlightAngle   float64 `yaml:"highlight_angle"`
	HighlightFalloff float64 `yaml:"highlight_falloff"`

	// InteractiveProgress and InteractivePosition are driven by pointer
	// input, not configuration.
	InteractiveProgress float64  `yaml:"-"`
	InteractivePosition gg.Point `yaml:"-"`

	ShadowEnabled bool     `yaml:"shadow_enabled"`
	ShadowRadius  float64  `yaml:"shadow_radius"`
	ShadowOffset  gg.Point `yaml:"shadow_offset"`
	ShadowColor   Color    `yaml:"shadow_color"`
	ShadowOpacity float64  `yaml:"shadow_opacity"`

	InnerShadowEnabled bool     `yaml:"inner_shadow_enabled"`
	InnerShadowRadius  float64  `yaml:"inner_shadow_radius"`
	InnerShadowOffset  gg.Point `yaml:"inner_shadow_offset"`
	InnerShadowColor   Color    `yaml:"inner_shadow_color"`
	InnerShadowOpacity float64  `yaml:"inner_shadow_opacity"`
}

// DefaultParameters returns the parameters of a freshly created surface.
func DefaultParameters() Parameters {
	return Parameters{
		Zoom:             1,
		RefractionHeight: 12,
		RefractionAmount: 24,
		Blur:             2,
		Vibrancy:         1.5,
		Contrast:         1,
		Gamma:            1,
		Opacity:          1,

		ProgressiveStart:     0.5,
		ProgressiveEnd:       1,
		ProgressiveIntensity: 0.8,

		HighlightEnabled: true,
		HighlightWidth:   0.5,
		HighlightBlur:    0.25,
		HighlightOpacity: 0.5,
		HighlightAngle:   45,
		HighlightFalloff: 1,

		ShadowEnabled: true,
		ShadowRadius:  24,
		ShadowOffset:  gg.Pt(0, 4),
		ShadowColor:   ARGB(26, 0, 0, 0),
		ShadowOpacity: 1,

		InnerShadowRadius:  24,
		InnerShadowOffset:  gg.Pt(0, 24),
		InnerShadowColor:   ARGB(38, 0, 0, 0),
		InnerShadowOpacity: 1,
	}
}

// Sampling describes how far the backdrop chain reads outside the surface.
func (p Parameters) Sampling() backdrop.Sampling {
	return backdrop.Sampling{
		Blur:                p.Blur,
		RefractionAmount:    p.RefractionAmount,
		ChromaticAberration: p.ChromaticAberration,
		Zoom:                p.Zoom,
		OffsetX:             p.Offset.X,
		OffsetY:             p.Offset.Y,
	}
}

// ZoomFactor returns the effective backdrop zoom: 1 for non-finite or
// non-positive values, otherwise clamped to [0.1, 10].
func (p Parameters) ZoomFactor() float64 {
	z := p.Zoom
	if math.IsNaN(z) || math.IsInf(z, 0) || z <= tolerance {
		return 1
	}
	return clamp(z, 0.1, 10)
}

// colorControls holds the clamped inputs of the filtered backdrop.
type colorControls struct {
	brightness, contrast, saturation, exposure, opacity float64
}

func (p Parameters) colorControls() colorControls {
	return colorControls{
		brightness: clampOr(p.Brightness, -1, 1, 0),
		contrast:   clampOr(p.Contrast, 0, 4, 1),
		saturation: clampOr(p.Vibrancy, 0, 4, 1),
		exposure:   clampOr(p.Exposure, -8, 8, 0),
		opacity:    clampOr(p.Opacity, 0, 1, 1),
	}
}

func (cc colorControls) needsMatrix() bool {
	return math.Abs(cc.brightness) > tolerance ||
		math.Abs(cc.contrast-1) > tolerance ||
		math.Abs(cc.saturation-1) > tolerance
}

func (cc colorControls) needsExposure() bool { return math.Abs(cc.exposure) > tolerance }
func (cc colorControls) needsOpacity() bool  { return math.Abs(cc.opacity-1) > tolerance }

// clamp limits v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampOr is clamp with a fallback for non-finite input.
func clampOr(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return clamp(v, lo, hi)
}

func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
