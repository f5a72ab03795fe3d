// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backdrop

import "math"

// FilteredKey identifies a filtered derivative of a snapshot.
// Every field is the quantized value round(v*1000), so float noise below
// 0.0005 maps to the same key.
type FilteredKey struct {
	Brightness int64
	Contrast   int64
	Saturation int64
	Exposure   int64
	Opacity    int64
	BlurSigma  int64
}

// NewFilteredKey quantizes the filter inputs. blurSigma is in pixels.
func NewFilteredKey(brightness, contrast, saturation, exposure, opacity, blurSigma float64) FilteredKey {
	return FilteredKey{
		Brightness: quantize(brightness),
		Contrast:   quantize(contrast),
		Saturation: quantize(saturation),
		Exposure:   quantize(exposure),
		Opacity:    quantize(opacity),
		BlurSigma:  quantize(blurSigma),
	}
}

func quantize(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	return int64(math.Round(v * 1000))
}
