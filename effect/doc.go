// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package effect turns a backdrop snapshot and a set of glass parameters
// into drawing passes.
//
// [Pipeline.Build] resolves everything that does not depend on the target
// canvas: it leases the snapshot, clamps the parameters, renders (or reuses)
// the filtered backdrop and loads the shader programs. The returned [Plan]
// is drawn with [Plan.Draw] or, one stage at a time, [Plan.DrawStage], and
// must be released when done.
//
// The backdrop chain is
//
//	filtered backdrop -> backdrop transform -> lens -> progressive -> gamma
//
// sampled through the surface's rounded rectangle, followed by the tint and
// surface color fills. Shadow, highlight, inner shadow and the interactive
// highlight are separate passes.
package effect
