// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/gogpu/glass"
	"github.com/gogpu/naga"
)

// TestShaderSourcesContainExpectedContent verifies every program ships WGSL
// with the expected entry points and bindings.
func TestShaderSourcesContainExpectedContent(t *testing.T) {
	tests := []struct {
		name     string
		required []string
	}{
		{BackdropTransform, []string{"@vertex", "@fragment", "vs_main", "fs_main", "texture_2d<f32>", "sampler", "zoom"}},
		{Lens, []string{"@fragment", "fs_main", "texture_2d<f32>", "sd_round_rect", "corner_radii"}},
		{Progressive, []string{"@fragment", "fs_main", "texture_2d<f32>", "smoothstep", "tint"}},
		{Gamma, []string{"@fragment", "fs_main", "texture_2d<f32>", "pow"}},
		{Highlight, []string{"@fragment", "fs_main", "edge_normal", "corner_radii"}},
		{InteractiveHighlight, []string{"@fragment", "fs_main", "radius"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Source(tt.name)
			if err != nil {
				t.Fatalf("Source: %v", err)
			}
			if len(src) < 100 {
				t.Errorf("source suspiciously short: %d bytes", len(src))
			}
			for _, req := range tt.required {
				if !contains(src, req) {
					t.Errorf("missing required element %q", req)
				}
			}
		})
	}
}

func TestNamesMatchEmbeddedSources(t *testing.T) {
	names := Names()
	if len(names) != 6 {
		t.Fatalf("Names() = %v, want 6 programs", names)
	}
	for _, name := range names {
		if _, err := Source(name); err != nil {
			t.Errorf("Source(%s): %v", name, err)
		}
	}
	if _, err := Source("nope"); !errors.Is(err, ErrMissingSource) {
		t.Errorf("Source(nope) err = %v, want ErrMissingSource", err)
	}
}

// TestShaderCompilation compiles every embedded program with naga.
func TestShaderCompilation(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			src, err := Source(name)
			if err != nil {
				t.Fatalf("Source: %v", err)
			}
			spirv, err := naga.Compile(src)
			if err != nil {
				errStr := err.Error()
				if contains(errStr, "not yet implemented") || contains(errStr, "not supported") || contains(errStr, "unsupported") {
					t.Skipf("Skipping: naga feature not yet implemented: %v", err)
				}
				t.Fatalf("naga.Compile: %v", err)
			}
			if len(spirv) < 4 {
				t.Fatalf("SPIR-V too short: %d bytes", len(spirv))
			}
		})
	}
}

func TestLibraryLoadCaches(t *testing.T) {
	var calls atomic.Int32
	lib := NewLibrary(WithCompiler(func(src string) ([]byte, error) {
		calls.Add(1)
		return stubCompiler(src)
	}))

	p1, err := lib.Load(Gamma)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p2, err := lib.Load(Gamma)
	if err != nil {
		t.Fatalf("Load again: %v", err)
	}
	if p1 != p2 {
		t.Error("Load returned different programs for the same name")
	}
	if calls.Load() != 1 {
		t.Errorf("compiler called %d times, want 1", calls.Load())
	}
	if p1.Name() != Gamma || len(p1.SPIRV()) == 0 || p1.Source() == "" {
		t.Errorf("program = %q, %d bytes SPIR-V", p1.Name(), len(p1.SPIRV()))
	}
}

func TestLibraryErrors(t *testing.T) {
	errCompile := errors.New("bad wgsl")
	tests := []struct {
		name    string
		lib     *Library
		program string
		want    error
	}{
		{"unknown", newTestLibrary(), "swirl", ErrUnknownProgram},
		{"empty source", newTestLibrary(WithSource(Lens, "")), Lens, ErrMissingSource},
		{"compile failure", NewLibrary(WithCompiler(func(string) ([]byte, error) { return nil, errCompile })), Lens, errCompile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.lib.Load(tt.program); !errors.Is(err, tt.want) {
				t.Errorf("Load err = %v, want %v", err, tt.want)
			}
		})
	}
}

type countingHandler struct {
	warns atomic.Int32
}

func (h *countingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *countingHandler) Handle(_ context.Context, r slog.Record) error {
	if r.Level == slog.LevelWarn {
		h.warns.Add(1)
	}
	return nil
}
func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *countingHandler) WithGroup(string) slog.Handler      { return h }

func TestLibraryFailureLoggedOnce(t *testing.T) {
	h := &countingHandler{}
	glass.SetLogger(slog.New(h))
	defer glass.SetLogger(nil)

	var calls atomic.Int32
	lib := NewLibrary(WithCompiler(func(string) ([]byte, error) {
		calls.Add(1)
		return nil, errors.New("syntax error")
	}))
	for range 3 {
		if _, err := lib.Load(Highlight); err == nil {
			t.Fatal("expected error")
		}
	}
	if got := h.warns.Load(); got != 1 {
		t.Errorf("warnings = %d, want 1", got)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("compiles = %d, want 1", got)
	}
}

func TestProgramMissingChild(t *testing.T) {
	p, err := newTestLibrary().Load(Lens)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := p.Shader(Uniforms{}, nil); !errors.Is(err, ErrMissingChild) {
		t.Errorf("Shader err = %v, want ErrMissingChild", err)
	}
	if got := p.ChildNames(); len(got) != 1 || got[0] != "content" {
		t.Errorf("ChildNames = %v", got)
	}
}

func TestDefaultLibrarySingleton(t *testing.T) {
	if Default() != Default() {
		t.Error("Default returned different libraries")
	}
}
