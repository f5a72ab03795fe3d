// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backdrop

import (
	"image"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/glass"
)

// maxFiltered bounds the filtered cache of a snapshot.
const maxFiltered = 8

// leasesClosed marks a snapshot whose disposal has started.
const leasesClosed = math.MinInt64

// snapshotSeq provides monotonic snapshot ids.
var snapshotSeq atomic.Uint64

// Filtered is a derived raster stored in a snapshot's cache.
type Filtered struct {
	Image  *gg.Pixmap
	Origin image.Point
}

// SnapshotOption configures a Snapshot.
type SnapshotOption func(*Snapshot)

// OnDispose registers fn to run once the snapshot is disposed.
func OnDispose(fn func()) SnapshotOption {
	return func(s *Snapshot) {
		s.onDispose = fn
	}
}

// WithRasterRelease registers fn to receive every raster the snapshot
// gives up: replaced or evicted filtered entries, and on disposal the
// cached entries followed by the raw image.
func WithRasterRelease(fn func(*gg.Pixmap)) SnapshotOption {
	return func(s *Snapshot) {
		s.release = fn
	}
}

// Snapshot is an immutable backdrop capture.
//
// Image holds premultiplied RGBA pixels. Origin is the position of the
// image's top-left pixel in window pixel coordinates, Scale the render
// scale it was captured at.
type Snapshot struct {
	Image      *gg.Pixmap
	Origin     image.Point
	Scale      float64
	Seq        uint64
	CapturedAt time.Time

	leases           atomic.Int64
	disposeRequested atomic.Bool
	disposed         atomic.Bool

	mu       sync.Mutex
	filtered map[FilteredKey]Filtered
	order    []FilteredKey

	onDispose func()
	release   func(*gg.Pixmap)
}

// NewSnapshot wraps a captured image.
func NewSnapshot(img *gg.Pixmap, origin image.Point, scale float64, at time.Time, opts ...SnapshotOption) *Snapshot {
	s := &Snapshot{
		Image:      img,
		Origin:     origin,
		Scale:      scale,
		Seq:        snapshotSeq.Add(1),
		CapturedAt: at,
		filtered:   make(map[FilteredKey]Filtered),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PixelSize returns the image size in pixels.
func (s *Snapshot) PixelSize() image.Point {
	if s.Image == nil {
		return image.Point{}
	}
	return image.Pt(s.Image.Width(), s.Image.Height())
}

// PixelRect returns the area covered by the image in window pixels.
func (s *Snapshot) PixelRect() image.Rectangle {
	return image.Rectangle{Min: s.Origin, Max: s.Origin.Add(s.PixelSize())}
}

// TryAcquireLease takes a lease on the snapshot. It returns false once the
// snapshot is disposed or about to be. Every successful call must be paired
// with ReleaseLease.
func (s *Snapshot) TryAcquireLease() bool {
	for {
		cur := s.leases.Load()
		if cur < 0 || s.disposed.Load() {
			return false
		}
		if s.leases.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

// ReleaseLease returns a lease. The snapshot is disposed when the last
// lease is returned after RequestDispose. Extra releases are ignored.
func (s *Snapshot) ReleaseLease() {
	for {
		cur := s.leases.Load()
		if cur <= 0 {
			return
		}
		if s.leases.CompareAndSwap(cur, cur-1) {
			if cur == 1 && s.disposeRequested.Load() {
				s.tryClose()
			}
			return
		}
	}
}

// RequestDispose marks the snapshot for disposal. It is disposed at once
// when no lease is outstanding. Safe to call on a nil snapshot.
func (s *Snapshot) RequestDispose() {
	if s == nil {
		return
	}
	s.disposeRequested.Store(true)
	s.tryClose()
}

// tryClose moves an unleased snapshot to the closed state, after which no
// lease is granted, and disposes it.
func (s *Snapshot) tryClose() {
	if s.leases.CompareAndSwap(0, leasesClosed) {
		s.dispose()
	}
}

// Disposed reports whether the snapshot has been disposed.
func (s *Snapshot) Disposed() bool { return s.disposed.Load() }

// Leases returns the number of outstanding leases.
func (s *Snapshot) Leases() int64 { return max(s.leases.Load(), 0) }

func (s *Snapshot) dispose() {
	if s.disposed.Swap(true) {
		return
	}

	s.mu.Lock()
	entries := make([]*gg.Pixmap, 0, len(s.order))
	for _, k := range s.order {
		if e, ok := s.filtered[k]; ok {
			entries = append(entries, e.Image)
		}
	}
	s.filtered = nil
	s.order = nil
	s.mu.Unlock()

	for _, img := range entries {
		s.releaseRaster(img)
	}
	s.releaseRaster(s.Image)

	glass.Logger().Debug("backdrop: snapshot disposed", "seq", s.Seq, "filtered", len(entries))
	if s.onDispose != nil {
		s.onDispose()
	}
}

func (s *Snapshot) releaseRaster(img *gg.Pixmap) {
	if img != nil && s.release != nil {
		s.release(img)
	}
}

// TryGetFiltered returns the cached derivative for key.
func (s *Snapshot) TryGetFiltered(key FilteredKey) (Filtered, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filtered == nil {
		return Filtered{}, false
	}
	f, ok := s.filtered[key]
	return f, ok
}

// StoreFiltered caches img under key. Storing the raw image is ignored.
// At most 8 entries are kept; the oldest are evicted first and the entry
// just stored is never evicted.
func (s *Snapshot) StoreFiltered(key FilteredKey, img *gg.Pixmap, origin image.Point) {
	if img == nil || img == s.Image {
		return
	}

	var released []*gg.Pixmap
	s.mu.Lock()
	if s.filtered == nil {
		s.mu.Unlock()
		s.releaseRaster(img)
		return
	}
	if old, ok := s.filtered[key]; ok {
		if old.Image != img {
			released = append(released, old.Image)
		}
		s.filtered[key] = Filtered{Image: img, Origin: origin}
		s.mu.Unlock()
		for _, r := range released {
			s.releaseRaster(r)
		}
		return
	}

	s.filtered[key] = Filtered{Image: img, Origin: origin}
	s.order = append(s.order, key)
	for len(s.filtered) > maxFiltered && len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		if oldest == key {
			continue
		}
		if e, ok := s.filtered[oldest]; ok {
			delete(s.filtered, oldest)
			released = append(released, e.Image)
		}
	}
	s.mu.Unlock()

	if len(released) > 0 {
		glass.Logger().Debug("backdrop: filtered cache eviction", "seq", s.Seq, "evicted", len(released))
	}
	for _, r := range released {
		s.releaseRaster(r)
	}
}

// FilteredLen returns the number of cached derivatives.
func (s *Snapshot) FilteredLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filtered)
}
