// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package visual models the boundary to the host UI tree and walks it.
//
// Visual and Window describe what the glass engine reads from a retained
// scene: bounds, transforms, clips, opacity, z-order and invalidation.
// Walker repaints a sub-rectangle of a tree onto a canvas.Canvas while
// skipping an exclusion set, which is how a backdrop is captured without
// the glass surfaces that consume it.
//
// Node and HostWindow are small concrete implementations used by tests and
// the demo command.
package visual
