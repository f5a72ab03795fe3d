// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"fmt"
	"maps"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/canvas"
)

// Program is a loaded runtime program.
type Program struct {
	name     string
	source   string
	spirv    []byte
	eval     bindFunc
	children []string
}

// Name returns the program name.
func (p *Program) Name() string { return p.name }

// Source returns the WGSL the program was compiled from.
func (p *Program) Source() string { return p.source }

// SPIRV returns the compiled module.
func (p *Program) SPIRV() []byte { return p.spirv }

// ChildNames returns the child shaders the program samples.
func (p *Program) ChildNames() []string { return p.children }

// Shader binds uniforms and children and returns a shader sampling in the
// local coordinates of the drawn shape. Every child the program samples
// must be present.
func (p *Program) Shader(u Uniforms, children Children) (canvas.Shader, error) {
	for _, name := range p.children {
		if children[name] == nil {
			return nil, fmt.Errorf("shader: %s: %q: %w", p.name, name, ErrMissingChild)
		}
	}
	f := p.eval(maps.Clone(u), maps.Clone(children))
	return canvas.ShaderFunc(func(x, y float64) gg.RGBA {
		return f(float32(x), float32(y))
	}), nil
}

// bindFunc resolves uniforms once and returns the per-pixel evaluator.
// Outputs are premultiplied.
type bindFunc func(u Uniforms, ch Children) func(x, y float32) gg.RGBA

type definition struct {
	eval     bindFunc
	children []string
}

var evaluators = map[string]definition{
	BackdropTransform:    {eval: bindBackdropTransform, children: []string{"content"}},
	Lens:                 {eval: bindLens, children: []string{"content"}},
	Progressive:          {eval: bindProgressive, children: []string{"content"}},
	Gamma:                {eval: bindGamma, children: []string{"content"}},
	Highlight:            {eval: bindHighlight},
	InteractiveHighlight: {eval: bindInteractiveHighlight},
}
