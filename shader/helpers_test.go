// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass/canvas"
)

// stubCompiler accepts any source without invoking naga.
func stubCompiler(string) ([]byte, error) {
	return []byte{0x03, 0x02, 0x23, 0x07}, nil
}

func newTestLibrary(opts ...LibraryOption) *Library {
	return NewLibrary(append([]LibraryOption{WithCompiler(stubCompiler)}, opts...)...)
}

func mustShader(t *testing.T, lib *Library, name string, u Uniforms, ch Children) canvas.Shader {
	t.Helper()
	p, err := lib.Load(name)
	if err != nil {
		t.Fatalf("Load(%s): %v", name, err)
	}
	s, err := p.Shader(u, ch)
	if err != nil {
		t.Fatalf("Shader(%s): %v", name, err)
	}
	return s
}

// coordShader encodes the sampled position into R and G (divided by 100).
var coordShader = canvas.ShaderFunc(func(x, y float64) gg.RGBA {
	return gg.RGBA{R: x / 100, G: y / 100, A: 1}
})

func solidShader(c gg.RGBA) canvas.Shader {
	return canvas.ShaderFunc(func(float64, float64) gg.RGBA { return c })
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
