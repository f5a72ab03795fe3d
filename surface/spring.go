// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"

	"github.com/gogpu/gg"
)

const (
	springStiffness    = 300.0
	springDampingRatio = 0.5
)

// spring is a damped spring integrated with semi-implicit Euler.
type spring struct {
	value     float64
	velocity  float64
	target    float64
	threshold float64
}

func (s *spring) snapTo(v float64) {
	s.value = v
	s.velocity = 0
}

// step advances the spring by dt seconds and reports whether it is still
// moving. A settled spring snaps to its target.
func (s *spring) step(dt float64) bool {
	k := springStiffness
	c := 2 * springDampingRatio * math.Sqrt(k)

	a := -k*(s.value-s.target) - c*s.velocity
	s.velocity += a * dt
	s.value += s.velocity * dt

	if math.Abs(s.value-s.target) <= s.threshold && math.Abs(s.velocity) <= s.threshold {
		s.value = s.target
		s.velocity = 0
		return false
	}
	return true
}

// spring2 animates a point with one spring per axis.
type spring2 struct {
	x, y spring
}

func newSpring2(threshold float64) spring2 {
	return spring2{x: spring{threshold: threshold}, y: spring{threshold: threshold}}
}

func (s *spring2) value() gg.Point { return gg.Pt(s.x.value, s.y.value) }

func (s *spring2) setTarget(p gg.Point) {
	s.x.target = p.X
	s.y.target = p.Y
}

func (s *spring2) snapTo(p gg.Point) {
	s.x.snapTo(p.X)
	s.y.snapTo(p.Y)
}

func (s *spring2) step(dt float64) bool {
	mx := s.x.step(dt)
	my := s.y.step(dt)
	return mx || my
}
