// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass"
	"github.com/gogpu/glass/geom"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Raster is a software Canvas and Target backed by a gg.Pixmap.
type Raster struct {
	width, height int
	dpi           float64
	format        gputypes.TextureFormat

	base   *gg.Pixmap
	cur    state
	stack  []state
	layers []*layer
}

type state struct {
	matrix gg.Matrix
	// clip is device-sized coverage; nil means unclipped. Masks are never
	// mutated once installed, so saved states can share them.
	clip       *gg.Mask
	layerDepth int
}

type layer struct {
	pix    *gg.Pixmap
	params Layer
	matrix gg.Matrix
	clip   *gg.Mask
	bounds image.Rectangle
}

var (
	_ Canvas = (*Raster)(nil)
	_ Target = (*Raster)(nil)
)

// NewRaster creates a transparent raster of the given pixel size.
func NewRaster(width, height int, opts ...RasterOption) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	o := defaultRasterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Raster{
		width:  width,
		height: height,
		dpi:    o.dpi,
		format: o.format,
		base:   gg.NewPixmap(width, height),
		cur:    state{matrix: gg.Identity()},
	}, nil
}

// Width returns the width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the height in pixels.
func (r *Raster) Height() int { return r.height }

// DPI returns the resolution the raster was created for.
func (r *Raster) DPI() float64 { return r.dpi }

// Pixmap returns the backing pixmap. Pending layers are not included.
func (r *Raster) Pixmap() *gg.Pixmap { return r.base }

// Clear fills the base pixmap with c and resets the state stack.
func (r *Raster) Clear(c gg.RGBA) {
	r.base.Clear(c.Premultiply())
	r.stack = r.stack[:0]
	r.layers = r.layers[:0]
	r.cur = state{matrix: gg.Identity()}
}

// Save implements Canvas.
func (r *Raster) Save() {
	r.stack = append(r.stack, r.cur)
}

// SaveLayer implements Canvas.
func (r *Raster) SaveLayer(l Layer) {
	r.stack = append(r.stack, r.cur)

	bounds := image.Rect(0, 0, r.width, r.height)
	if l.Bounds != nil {
		dev := l.Bounds.TransformBounds(r.cur.matrix).RoundOut()
		bounds = bounds.Intersect(image.Rect(int(dev.MinX), int(dev.MinY), int(dev.MaxX), int(dev.MaxY)))
	}
	r.layers = append(r.layers, &layer{
		pix:    gg.NewPixmap(r.width, r.height),
		params: l,
		matrix: r.cur.matrix,
		clip:   r.cur.clip,
		bounds: bounds,
	})
	r.cur.layerDepth = len(r.layers)
}

// Restore implements Canvas.
func (r *Raster) Restore() {
	n := len(r.stack)
	if n == 0 {
		glass.Logger().Warn("canvas: unbalanced Restore")
		return
	}
	prev := r.stack[n-1]
	r.stack = r.stack[:n-1]
	for len(r.layers) > prev.layerDepth {
		l := r.layers[len(r.layers)-1]
		r.layers = r.layers[:len(r.layers)-1]
		r.compositeLayer(l)
	}
	r.cur = prev
}

// SaveCount implements Canvas.
func (r *Raster) SaveCount() int { return len(r.stack) }

// Concat implements Canvas.
func (r *Raster) Concat(m gg.Matrix) {
	r.cur.matrix = r.cur.matrix.Multiply(m)
}

// Matrix implements Canvas.
func (r *Raster) Matrix() gg.Matrix { return r.cur.matrix }

// ClipRect implements Canvas.
func (r *Raster) ClipRect(rect geom.Rect) {
	r.ClipPath(rect.Path())
}

// ClipRoundRect implements Canvas.
func (r *Raster) ClipRoundRect(rr geom.RoundRect) {
	r.ClipPath(rr.Path())
}

// ClipPath implements Canvas.
func (r *Raster) ClipPath(p *gg.Path) {
	cov := rasterizeCoverage(r.width, r.height, p, r.cur.matrix, nil)
	if r.cur.clip != nil {
		cov = intersectMasks(cov, r.cur.clip)
	}
	r.cur.clip = cov
}

// DrawPath implements Canvas.
func (r *Raster) DrawPath(p *gg.Path, paint Paint) {
	cov := rasterizeCoverage(r.width, r.height, p, r.cur.matrix, paint.Stroke)
	blurCoverage(cov, paint.MaskBlur, r.cur.matrix)
	r.fill(cov, r.paintSource(paint), paint.Blend)
}

// DrawRect implements Canvas.
func (r *Raster) DrawRect(rect geom.Rect, paint Paint) {
	r.DrawPath(rect.Path(), paint)
}

// DrawRoundRect implements Canvas.
func (r *Raster) DrawRoundRect(rr geom.RoundRect, paint Paint) {
	r.DrawPath(rr.Path(), paint)
}

// DrawPaint implements Canvas.
func (r *Raster) DrawPaint(paint Paint) {
	r.fill(nil, r.paintSource(paint), paint.Blend)
}

// DrawImage implements Canvas. The image is resampled with bilinear
// filtering through the current transform.
func (r *Raster) DrawImage(img *gg.Pixmap, dst geom.Rect, paint Paint) {
	if img == nil || img.Width() == 0 || img.Height() == 0 || dst.IsEmpty() {
		return
	}
	iw, ih := img.Width(), img.Height()
	m := r.cur.matrix.
		Multiply(gg.Translate(dst.MinX, dst.MinY)).
		Multiply(gg.Scale(dst.Width()/float64(iw), dst.Height()/float64(ih)))

	src := &image.RGBA{Pix: img.Data(), Stride: iw * 4, Rect: image.Rect(0, 0, iw, ih)}
	tmp := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.BiLinear.Transform(tmp, f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}, src, src.Bounds(), draw.Src, nil)

	cov := rasterizeCoverage(r.width, r.height, dst.Path(), r.cur.matrix, nil)
	r.fill(cov, func(x, y int) [4]byte {
		i := y*tmp.Stride + x*4
		return [4]byte{tmp.Pix[i], tmp.Pix[i+1], tmp.Pix[i+2], tmp.Pix[i+3]}
	}, paint.Blend)
}

// target returns the pixmap currently drawn into.
func (r *Raster) target() *gg.Pixmap {
	if n := len(r.layers); n > 0 {
		return r.layers[n-1].pix
	}
	return r.base
}

// paintSource returns the per-pixel premultiplied source color for paint.
func (r *Raster) paintSource(paint Paint) func(x, y int) [4]byte {
	if paint.Shader == nil {
		c := premultipliedBytes(paint.Color)
		return func(int, int) [4]byte { return c }
	}
	inv := r.cur.matrix.Invert()
	sh := paint.Shader
	return func(x, y int) [4]byte {
		p := inv.TransformPoint(gg.Pt(float64(x)+0.5, float64(y)+0.5))
		return shaderBytes(sh.Sample(p.X, p.Y))
	}
}

// fill blends src into the current target wherever cov and the clip allow.
// A nil cov covers the whole canvas.
func (r *Raster) fill(cov *gg.Mask, src func(x, y int) [4]byte, mode BlendMode) {
	bounds := image.Rect(0, 0, r.width, r.height)
	if cov != nil {
		bounds = bounds.Intersect(maskBounds(cov))
	}
	if n := len(r.layers); n > 0 {
		bounds = bounds.Intersect(r.layers[n-1].bounds)
	}
	r.blendRegion(r.target(), bounds, cov, r.cur.clip, src, mode)
}

// blendRegion is the single compositing loop shared by fills and layers.
func (r *Raster) blendRegion(dst *gg.Pixmap, bounds image.Rectangle, cov, clip *gg.Mask,
	src func(x, y int) [4]byte, mode BlendMode) {
	if bounds.Empty() {
		return
	}
	fn := mode.fn()
	data := dst.Data()
	w := r.width
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := byte(255)
			if cov != nil {
				c = cov.Data()[y*w+x]
			}
			if clip != nil && c != 0 {
				c = mulDiv255(c, clip.Data()[y*w+x])
			}
			if c == 0 {
				continue
			}
			s := src(x, y)
			i := (y*w + x) * 4
			dr, dg, db, da := data[i], data[i+1], data[i+2], data[i+3]
			br, bg, bb, ba := fn(s[0], s[1], s[2], s[3], dr, dg, db, da)
			data[i] = lerpByte(dr, br, c)
			data[i+1] = lerpByte(dg, bg, c)
			data[i+2] = lerpByte(db, bb, c)
			data[i+3] = lerpByte(da, ba, c)
		}
	}
}

// compositeLayer runs the layer filter, applies opacity and mask, and blends
// the result into the target below it.
func (r *Raster) compositeLayer(l *layer) {
	pix := l.pix
	if l.params.Filter != nil {
		out := gg.NewPixmap(r.width, r.height)
		l.params.Filter.Apply(pix, out)
		pix = out
	}

	opacity := clamp01(l.params.Opacity)
	if opacity == 0 {
		return
	}
	alpha := byte(opacity*255 + 0.5)

	var maskAt func(x, y int) byte
	if m := l.params.Mask; m != nil && m.Image != nil && !m.Rect.IsEmpty() {
		inv := l.matrix.Invert()
		sx := float64(m.Image.Width()) / m.Rect.Width()
		sy := float64(m.Image.Height()) / m.Rect.Height()
		maskAt = func(x, y int) byte {
			p := inv.TransformPoint(gg.Pt(float64(x)+0.5, float64(y)+0.5))
			c := SampleBilinear(m.Image, (p.X-m.Rect.MinX)*sx, (p.Y-m.Rect.MinY)*sy, TileDecal)
			return toByte(clamp01(c.A))
		}
	}

	data := pix.Data()
	w := r.width
	src := func(x, y int) [4]byte {
		i := (y*w + x) * 4
		k := alpha
		if maskAt != nil {
			k = mulDiv255(k, maskAt(x, y))
		}
		if k == 255 {
			return [4]byte{data[i], data[i+1], data[i+2], data[i+3]}
		}
		return [4]byte{
			mulDiv255(data[i], k),
			mulDiv255(data[i+1], k),
			mulDiv255(data[i+2], k),
			mulDiv255(data[i+3], k),
		}
	}

	bounds := l.bounds
	if n := len(r.layers); n > 0 {
		bounds = bounds.Intersect(r.layers[n-1].bounds)
	}
	r.blendRegion(r.target(), bounds, nil, l.clip, src, l.params.Blend)
}
