// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader holds the runtime programs used by the glass pipeline.
//
// Each program ships as embedded WGSL and is validated with naga when it is
// first loaded. Rendering happens on the CPU: every program has a Go
// evaluator mirroring its fragment stage, exposed as a canvas.Shader built
// from named uniforms and named child shaders.
//
// Programs that fail to load are reported once through the glass logger and
// then keep failing fast, so callers can fall back to a placeholder draw.
package shader
