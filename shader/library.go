// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/glass"
	"github.com/gogpu/naga"
)

// Program names.
const (
	BackdropTransform    = "backdrop_transform"
	Lens                 = "lens"
	Progressive          = "progressive"
	Gamma                = "gamma"
	Highlight            = "highlight"
	InteractiveHighlight = "interactive_highlight"
)

var (
	// ErrUnknownProgram is returned for a program name with no evaluator.
	ErrUnknownProgram = errors.New("shader: unknown program")

	// ErrMissingSource is returned when a program has no WGSL source.
	ErrMissingSource = errors.New("shader: missing source")

	// ErrMissingChild is returned when a required child shader is not bound.
	ErrMissingChild = errors.New("shader: missing child shader")
)

//go:embed shaders/*.wgsl
var shaderFS embed.FS

// Source returns the embedded WGSL source of the named program.
func Source(name string) (string, error) {
	b, err := shaderFS.ReadFile("shaders/" + name + ".wgsl")
	if err != nil {
		return "", fmt.Errorf("shader: %s: %w", name, ErrMissingSource)
	}
	return string(b), nil
}

// Compiler turns WGSL into SPIR-V.
type Compiler func(wgsl string) ([]byte, error)

// LibraryOption configures a Library.
type LibraryOption func(*Library)

// WithCompiler replaces the naga compiler.
func WithCompiler(c Compiler) LibraryOption {
	return func(l *Library) {
		if c != nil {
			l.compile = c
		}
	}
}

// WithSource overrides the embedded WGSL of the named program. An empty
// source makes the program fail with ErrMissingSource.
func WithSource(name, wgsl string) LibraryOption {
	return func(l *Library) {
		l.sources[name] = wgsl
	}
}

// Library loads and caches programs.
// It is safe for concurrent use.
type Library struct {
	compile Compiler
	sources map[string]string

	mu       sync.Mutex
	programs map[string]*Program
	failures map[string]error
}

// NewLibrary creates a library compiling with naga unless overridden.
func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{
		compile:  naga.Compile,
		sources:  make(map[string]string),
		programs: make(map[string]*Program),
		failures: make(map[string]error),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var defaultLibrary = sync.OnceValue(func() *Library { return NewLibrary() })

// Default returns the process-wide library.
func Default() *Library {
	return defaultLibrary()
}

// Names returns the known program names in sorted order.
func Names() []string {
	names := make([]string, 0, len(evaluators))
	for name := range evaluators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load returns the named program, compiling it on first use. A failure is
// logged once and returned again on later calls without recompiling.
func (l *Library) Load(name string) (*Program, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p, ok := l.programs[name]; ok {
		return p, nil
	}
	if err, ok := l.failures[name]; ok {
		return nil, err
	}

	p, err := l.build(name)
	if err != nil {
		l.failures[name] = err
		glass.Logger().Warn("shader: program unavailable", "program", name, "err", err)
		return nil, err
	}
	l.programs[name] = p
	glass.Logger().Debug("shader: program loaded", "program", name, "spirv_bytes", len(p.spirv))
	return p, nil
}

func (l *Library) build(name string) (*Program, error) {
	def, ok := evaluators[name]
	if !ok {
		return nil, fmt.Errorf("shader: %s: %w", name, ErrUnknownProgram)
	}

	src, overridden := l.sources[name]
	if !overridden {
		var err error
		if src, err = Source(name); err != nil {
			return nil, err
		}
	}
	if src == "" {
		return nil, fmt.Errorf("shader: %s: %w", name, ErrMissingSource)
	}

	spirv, err := l.compile(src)
	if err != nil {
		return nil, fmt.Errorf("shader: compile %s: %w", name, err)
	}
	return &Program{
		name:     name,
		source:   src,
		spirv:    spirv,
		eval:     def.eval,
		children: def.children,
	}, nil
}
