// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backdrop

import (
	"encoding/binary"
	"hash/fnv"
)

// Fingerprint hashes an 8x8 grid of 4-byte pixels sampled from pix, then
// the dimensions. It is a cheap change detector, not a content hash.
func Fingerprint(pix []byte, stride, width, height int) uint64 {
	h := fnv.New64a()
	if width > 0 && height > 0 {
		maxX := width - 1
		maxY := height - 1
		for sy := range 8 {
			row := sy * maxY / 7 * stride
			for sx := range 8 {
				i := row + sx*maxX/7*4
				if i+4 > len(pix) {
					continue
				}
				_, _ = h.Write(pix[i : i+4]) // fnv.Write never returns an error
			}
		}
	}
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:], uint32(int32(width)))
	binary.LittleEndian.PutUint32(dims[4:], uint32(int32(height)))
	_, _ = h.Write(dims[:])
	return h.Sum64()
}
