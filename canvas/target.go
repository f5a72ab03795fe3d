// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// ErrInvalidSize is returned when a target is requested with a non-positive
// dimension.
var ErrInvalidSize = errors.New("canvas: invalid target size")

// Target is an offscreen render target that can be read back into memory.
type Target interface {
	Canvas() Canvas
	Width() int
	Height() int

	// Format reports the byte order ReadPixels produces.
	Format() gputypes.TextureFormat

	// ReadPixels copies Width*Height*4 premultiplied bytes into dst.
	ReadPixels(dst []byte) error

	// Release frees the target. It is safe to call more than once.
	Release()
}

// TargetFactory creates render targets.
type TargetFactory interface {
	NewTarget(width, height int, dpi float64) (Target, error)
}

// RasterOption configures rasters created by NewRaster or a RasterFactory.
type RasterOption func(*rasterOptions)

type rasterOptions struct {
	format gputypes.TextureFormat
	dpi    float64
}

func defaultRasterOptions() rasterOptions {
	return rasterOptions{
		format: gputypes.TextureFormatRGBA8Unorm,
		dpi:    96,
	}
}

// WithFormat sets the readback byte order. Only RGBA8Unorm and BGRA8Unorm
// are produced by the software rasterizer; anything else is kept as-is so
// consumers can reject it.
func WithFormat(f gputypes.TextureFormat) RasterOption {
	return func(o *rasterOptions) {
		o.format = f
	}
}

// WithDeviceProvider takes the readback format from the provider's surface
// format, falling back to RGBA8Unorm when the surface has none.
func WithDeviceProvider(p gpucontext.DeviceProvider) RasterOption {
	return func(o *rasterOptions) {
		if p == nil {
			return
		}
		if f := p.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			o.format = f
		}
	}
}

func withDPI(dpi float64) RasterOption {
	return func(o *rasterOptions) {
		if dpi > 0 {
			o.dpi = dpi
		}
	}
}

// RasterFactory creates software Raster targets.
type RasterFactory struct {
	opts []RasterOption
}

// NewRasterFactory returns a factory applying opts to every raster.
func NewRasterFactory(opts ...RasterOption) *RasterFactory {
	return &RasterFactory{opts: opts}
}

// NewTarget implements TargetFactory.
func (f *RasterFactory) NewTarget(width, height int, dpi float64) (Target, error) {
	opts := append([]RasterOption{withDPI(dpi)}, f.opts...)
	r, err := NewRaster(width, height, opts...)
	if err != nil {
		return nil, fmt.Errorf("canvas: new target %dx%d: %w", width, height, err)
	}
	return r, nil
}

// Canvas implements Target.
func (r *Raster) Canvas() Canvas { return r }

// Format implements Target.
func (r *Raster) Format() gputypes.TextureFormat { return r.format }

// ReadPixels implements Target. Open layers are not flushed.
func (r *Raster) ReadPixels(dst []byte) error {
	src := r.base.Data()
	if len(dst) < len(src) {
		return fmt.Errorf("canvas: read pixels: buffer %d bytes, need %d", len(dst), len(src))
	}
	if r.format != gputypes.TextureFormatBGRA8Unorm {
		copy(dst, src)
		return nil
	}
	for i := 0; i+3 < len(src); i += 4 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
		dst[i+3] = src[i+3]
	}
	return nil
}

// Release implements Target.
func (r *Raster) Release() {
	r.stack = nil
	r.layers = nil
}
