// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "github.com/gogpu/glass/canvas"

// Uniforms maps uniform names to scalar or vector values.
type Uniforms map[string][]float32

// Set stores v under name and returns u for chaining.
func (u Uniforms) Set(name string, v ...float32) Uniforms {
	u[name] = append([]float32(nil), v...)
	return u
}

// Float returns the first component of name, or 0.
func (u Uniforms) Float(name string) float32 {
	return u.at(name, 0)
}

// Vec2 returns the first two components of name.
func (u Uniforms) Vec2(name string) (x, y float32) {
	return u.at(name, 0), u.at(name, 1)
}

// Vec4 returns the first four components of name.
func (u Uniforms) Vec4(name string) [4]float32 {
	return [4]float32{u.at(name, 0), u.at(name, 1), u.at(name, 2), u.at(name, 3)}
}

func (u Uniforms) at(name string, i int) float32 {
	v := u[name]
	if i >= len(v) {
		return 0
	}
	return v[i]
}

// Children maps child shader names to shaders.
type Children map[string]canvas.Shader
