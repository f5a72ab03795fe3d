// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"time"

	"github.com/gogpu/glass/effect"
)

const (
	// DefaultLuminanceInterval is the adaptive luminance sampling period.
	DefaultLuminanceInterval = 250 * time.Millisecond

	// MinLuminanceInterval bounds how often luminance is sampled.
	MinLuminanceInterval = 16 * time.Millisecond

	// DefaultLuminanceSmoothing is the fraction of a new sample blended
	// into the current luminance.
	DefaultLuminanceSmoothing = 0.2

	// DefaultMaxScale is how far, in DIPs, a pressed interactive surface
	// grows vertically.
	DefaultMaxScale = 4.0
)

// Option configures a Surface.
type Option func(*options)

type options struct {
	params    effect.Parameters
	pipeline  *effect.Pipeline
	adaptive  bool
	interval  time.Duration
	smoothing float64
	now       func() time.Time
	maxScale  float64
}

func defaultOptions() options {
	return options{
		params:    effect.DefaultParameters(),
		interval:  DefaultLuminanceInterval,
		smoothing: DefaultLuminanceSmoothing,
		now:       time.Now,
		maxScale:  DefaultMaxScale,
	}
}

// WithParameters sets the initial effect parameters.
func WithParameters(p effect.Parameters) Option {
	return func(o *options) {
		o.params = p
	}
}

// WithPipeline sets the effect pipeline. Surfaces share a default
// pipeline backed by shader.Default otherwise.
func WithPipeline(p *effect.Pipeline) Option {
	return func(o *options) {
		if p != nil {
			o.pipeline = p
		}
	}
}

// WithAdaptiveLuminance enables tone mapping from the sampled backdrop
// luminance.
func WithAdaptiveLuminance(enabled bool) Option {
	return func(o *options) {
		o.adaptive = enabled
	}
}

// WithLuminanceInterval sets the luminance sampling period. Values below
// MinLuminanceInterval are raised to it.
func WithLuminanceInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = max(d, MinLuminanceInterval)
	}
}

// WithLuminanceSmoothing sets the blend factor of new luminance samples,
// clamped to [0, 1].
func WithLuminanceSmoothing(v float64) Option {
	return func(o *options) {
		o.smoothing = clamp(v, 0, 1)
	}
}

// WithClock sets the time source of animations.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithMaxScale sets the press growth of an InteractiveSurface in DIPs.
func WithMaxScale(dip float64) Option {
	return func(o *options) {
		o.maxScale = max(dip, 0)
	}
}
