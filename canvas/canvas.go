// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/glass/filter"
	"github.com/gogpu/glass/geom"
)

// Canvas is an immediate-mode drawing surface with a save/restore stack.
//
// Every Save or SaveLayer must be balanced by a Restore. Clips only ever
// shrink until the matching Restore.
type Canvas interface {
	// Width and Height return the device size in pixels.
	Width() int
	Height() int

	// Save pushes the current transform and clip.
	Save()

	// SaveLayer pushes state and redirects drawing into an offscreen layer
	// that is composited on the matching Restore.
	SaveLayer(l Layer)

	// Restore pops the most recent Save or SaveLayer.
	Restore()

	// SaveCount returns the depth of the save stack.
	SaveCount() int

	// Concat pre-multiplies the current transform by m, so m applies first.
	Concat(m gg.Matrix)

	// Matrix returns the current local-to-device transform.
	Matrix() gg.Matrix

	// ClipRect, ClipRoundRect and ClipPath intersect the clip with a shape
	// given in local coordinates.
	ClipRect(r geom.Rect)
	ClipRoundRect(rr geom.RoundRect)
	ClipPath(p *gg.Path)

	// DrawPath fills or strokes p with paint.
	DrawPath(p *gg.Path, paint Paint)
	DrawRect(r geom.Rect, paint Paint)
	DrawRoundRect(rr geom.RoundRect, paint Paint)

	// DrawPaint fills the whole clip with paint.
	DrawPaint(paint Paint)

	// DrawImage draws img scaled into dst, given in local coordinates.
	DrawImage(img *gg.Pixmap, dst geom.Rect, paint Paint)
}

// Shader produces a color for a point in local coordinates.
// The returned color is premultiplied.
type Shader interface {
	Sample(x, y float64) gg.RGBA
}

// ShaderFunc adapts a function to the Shader interface.
type ShaderFunc func(x, y float64) gg.RGBA

// Sample calls f(x, y).
func (f ShaderFunc) Sample(x, y float64) gg.RGBA { return f(x, y) }

// Stroke describes how a path outline is stroked.
type Stroke struct {
	Width float64
	Join  gg.LineJoin
	Cap   gg.LineCap
}

// Paint describes how a shape is drawn.
type Paint struct {
	// Color is the solid color with straight alpha. Ignored when Shader
	// is set.
	Color gg.RGBA

	// Shader, when set, supplies per-pixel color.
	Shader Shader

	// Blend selects the compositing operator.
	Blend BlendMode

	// Stroke strokes the outline instead of filling it.
	Stroke *Stroke

	// MaskBlur is the sigma, in local units, of a Gaussian mask filter
	// applied to the shape coverage.
	MaskBlur float64
}

// Fill returns a source-over fill paint.
func Fill(c gg.RGBA) Paint {
	return Paint{Color: c}
}

// OpacityMask multiplies a layer's alpha by the alpha of Image stretched
// over Rect (local coordinates at SaveLayer time).
type OpacityMask struct {
	Image *gg.Pixmap
	Rect  geom.Rect
}

// Layer configures an offscreen layer.
type Layer struct {
	// Bounds limits the layer, in local coordinates. Nil means the
	// whole clip.
	Bounds *geom.Rect

	// Opacity scales the layer alpha when it is composited.
	Opacity float64

	// Filter runs over the layer pixels before compositing.
	Filter filter.Filter

	// Mask is an optional opacity mask.
	Mask *OpacityMask

	// Blend is the operator used to composite the layer.
	Blend BlendMode
}

// OpaqueLayer returns a fully opaque source-over layer limited to bounds.
func OpaqueLayer(bounds *geom.Rect) Layer {
	return Layer{Bounds: bounds, Opacity: 1}
}
