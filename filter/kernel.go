// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"math"
	"sync"
)

// GaussianKernel generates a normalized 1D Gaussian kernel for sigma.
// The kernel has 2*ceil(3*sigma)+1 taps. For sigma <= 0 it returns the
// identity kernel [1].
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 || math.IsNaN(sigma) {
		return []float32{1}
	}
	half := int(math.Ceil(sigma * 3))
	kernel := make([]float32, half*2+1)

	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// kernelCache keeps recently used kernels keyed by sigma*1000.
// Slider drags reuse a handful of quantized sigmas, so the cache stays small.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[int64][]float32
	maxLen int
}

var defaultKernels = &kernelCache{cache: make(map[int64][]float32), maxLen: 64}

func (c *kernelCache) get(sigma float64) []float32 {
	key := int64(math.Round(sigma * 1000))

	c.mu.RLock()
	k, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return k
	}

	k = GaussianKernel(sigma)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		clear(c.cache)
	}
	c.cache[key] = k
	c.mu.Unlock()
	return k
}

// CachedGaussianKernel returns a shared kernel for sigma. The returned slice
// must not be modified.
func CachedGaussianKernel(sigma float64) []float32 {
	return defaultKernels.get(sigma)
}

// floatBuffer wraps a slice for sync.Pool.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any { return &floatBuffer{} },
}

// getTempBuffer returns a zeroed buffer with at least n elements.
func getTempBuffer(n int) *floatBuffer {
	b := tempBufferPool.Get().(*floatBuffer)
	if cap(b.data) < n {
		b.data = make([]float32, n)
	}
	b.data = b.data[:n]
	clear(b.data)
	return b
}

func putTempBuffer(b *floatBuffer) {
	// Keep at most ~64MB per pooled buffer.
	if cap(b.data) <= 16*1024*1024 {
		tempBufferPool.Put(b)
	}
}

// clampUint8 rounds v to the nearest byte value.
func clampUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
