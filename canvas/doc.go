// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package canvas defines the drawing boundary the glass engine renders
// through, and Raster, a software implementation on top of gg pixmaps.
//
// A Canvas is an immediate-mode 2D surface with a save/restore stack of
// transform, clip and layer state. Layers composite on Restore with their
// opacity, opacity mask, image filter and blend mode. Paints fill or stroke
// paths with a solid color or a Shader, optionally through a Gaussian mask
// filter.
//
// Pixel data is premultiplied RGBA8 throughout. Paint colors are given with
// straight alpha and premultiplied on use.
package canvas
