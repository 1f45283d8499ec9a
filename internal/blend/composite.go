// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package blend

// Composite blends src onto dst in place. Both slices hold premultiplied
// RGBA8 pixels; only the first min(len(dst), len(src))/4 pixels are touched.
// The source is scaled by opacity (clamped to [0, 1]) before blending.
func Composite(dst, src []byte, opacity float64, mode Mode) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	op := byte(opacity*255 + 0.5)
	fn := GetFunc(mode)

	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		sa := src[i+3]
		if sa == 0 {
			continue
		}
		sr, sg, sb := src[i], src[i+1], src[i+2]
		if op != 255 {
			sr, sg, sb, sa = mulDiv255(sr, op), mulDiv255(sg, op), mulDiv255(sb, op), mulDiv255(sa, op)
			if sa == 0 {
				continue
			}
		}
		dst[i], dst[i+1], dst[i+2], dst[i+3] = fn(sr, sg, sb, sa, dst[i], dst[i+1], dst[i+2], dst[i+3])
	}
}
