// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package filter implements the non-destructive layer filters and the
// drop-shadow silhouette used by the compositor.
//
// The package contains:
//   - 4x5 color matrices (brightness, contrast, saturate, sepia, grayscale,
//     hue-rotate) with CSS filter semantics
//   - Gaussian blur (separable, cached kernels)
//   - Drop shadow (alpha extract + offset + blur + colorize)
//
// Filters operate on premultiplied [raster.Pixmap] data and may be applied
// in place (src == dst).
package filter

import (
	"image"

	"github.com/gogpu/compositor/raster"
)

// Filter transforms the pixels of src inside bounds and writes them to dst.
type Filter interface {
	Apply(src, dst *raster.Pixmap, bounds image.Rectangle)
}

// Chain applies each filter in order, in place on pm.
func Chain(pm *raster.Pixmap, bounds image.Rectangle, filters ...Filter) {
	for _, f := range filters {
		if f != nil {
			f.Apply(pm, pm, bounds)
		}
	}
}

// clampRect intersects r with the pixmap bounds of both src and dst.
func clampRect(r image.Rectangle, src, dst *raster.Pixmap) image.Rectangle {
	return r.Intersect(src.Bounds()).Intersect(dst.Bounds())
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
