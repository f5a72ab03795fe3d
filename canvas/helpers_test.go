// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func newTestRaster(t testing.TB, w, h int, opts ...RasterOption) *Raster {
	t.Helper()
	r, err := NewRaster(w, h, opts...)
	if err != nil {
		t.Fatalf("NewRaster(%d, %d): %v", w, h, err)
	}
	return r
}

func pixelAt(p *gg.Pixmap, x, y int) [4]uint8 {
	i := (y*p.Width() + x) * 4
	d := p.Data()
	return [4]uint8{d[i], d[i+1], d[i+2], d[i+3]}
}

func approxPixel(a, b [4]uint8, tolerance int) bool {
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < -tolerance || d > tolerance {
			return false
		}
	}
	return true
}

func solidPixmap(w, h int, c gg.RGBA) *gg.Pixmap {
	p := gg.NewPixmap(w, h)
	p.Clear(c.Premultiply())
	return p
}

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

type mockProvider struct {
	device  gpucontext.Device
	queue   gpucontext.Queue
	adapter gpucontext.Adapter
	format  gputypes.TextureFormat
}

func newMockProvider(format gputypes.TextureFormat) *mockProvider {
	return &mockProvider{
		device:  &mockDevice{},
		queue:   &mockQueue{},
		adapter: &mockAdapter{},
		format:  format,
	}
}

func (m *mockProvider) Device() gpucontext.Device             { return m.device }
func (m *mockProvider) Queue() gpucontext.Queue               { return m.queue }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return m.adapter }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }

var _ gpucontext.DeviceProvider = (*mockProvider)(nil)
