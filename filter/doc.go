// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package filter implements the image filters used by the glass pipeline.
//
// All filters read and write premultiplied RGBA8 pixmaps of identical size.
// Color matrices operate on unpremultiplied, normalized color, matching the
// 4x5 matrix convention of 2D canvas backends:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
//
// The fifth column is a bias in the [0, 1] range.
//
// Blur is separable Gaussian blur with a choice of edge handling:
// EdgeClamp extends border pixels outward, EdgeDecal treats everything outside
// the image as transparent.
package filter
