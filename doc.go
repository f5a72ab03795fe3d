// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glass renders translucent "glass" surfaces over arbitrary UI content.
//
// # Overview
//
// A glass surface shows a processed copy of whatever is painted behind it.
// Every frame the surface asks the backdrop scheduler for the current
// snapshot of the scene behind it, then hands that snapshot together with
// its effect parameters to the effect pipeline, which returns the draw
// passes for the final visual.
//
// # Architecture
//
// The module is organized leaf first:
//   - geom: rectangles, corner radii and rounded-rect paths
//   - canvas: the drawing boundary and a software raster target
//   - filter: Gaussian blur, color matrices and filter chains
//   - shader: WGSL programs validated with naga and evaluated on the CPU
//   - visual: host visual tree interfaces and the scene walker
//   - backdrop: reference-counted snapshots and the capture scheduler
//   - effect: effect parameters and the multi-pass pipeline
//   - surface: drawable glass surfaces, overlays and adaptive luminance
//
// # Threading
//
// Drawing, scene walking and capture run on a single UI goroutine driven by a
// cooperative task queue. Snapshots may be read by draw plans and background
// samplers after a newer capture replaced them; a lease protocol guarantees
// their pixels stay alive until the last reader releases them.
//
// # Coordinate System
//
// Layout happens in device-independent units (DIPs). A window's render scale
// converts DIPs to device pixels. Snapshots are stored in device pixels
// together with their pixel origin in window space.
package glass

// Version information
const (
	// Version is the current version of the module
	Version = "0.3.0"
)
