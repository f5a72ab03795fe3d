// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

import (
	"github.com/gogpu/glass/backdrop"
	"github.com/gogpu/glass/filter"
)

// filteredBackdrop returns the color-adjusted, blurred snapshot image for
// p, reusing the snapshot's cache when an identical one exists. The raw
// image is returned when every filter is an identity.
func filteredBackdrop(snap *backdrop.Snapshot, p Parameters) backdrop.Filtered {
	raw := backdrop.Filtered{Image: snap.Image, Origin: snap.Origin}
	cc := p.colorControls()
	scale := snap.Scale
	if scale <= 0 {
		scale = 1
	}
	sigma := clampOr(p.Blur, 0, 256, 0) * scale

	var chain filter.Chain
	if cc.needsMatrix() {
		chain = append(chain, filter.ColorControls(cc.brightness, cc.contrast, cc.saturation))
	}
	if cc.needsExposure() {
		chain = append(chain, filter.Exposure(cc.exposure))
	}
	if cc.needsOpacity() {
		chain = append(chain, filter.Opacity(cc.opacity))
	}
	if sigma > tolerance {
		chain = append(chain, filter.NewBlur(sigma, filter.EdgeClamp))
	}
	if len(chain) == 0 || snap.Image == nil {
		return raw
	}

	key := backdrop.NewFilteredKey(cc.brightness, cc.contrast, cc.saturation, cc.exposure, cc.opacity, sigma)
	if f, ok := snap.TryGetFiltered(key); ok {
		return f
	}
	img := filter.Render(chain, snap.Image)
	snap.StoreFiltered(key, img, snap.Origin)
	return backdrop.Filtered{Image: img, Origin: snap.Origin}
}
