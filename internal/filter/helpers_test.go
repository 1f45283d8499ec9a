// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import "github.com/gogpu/compositor/raster"

// filled creates a pixmap filled with the given color.
func filled(w, h int, color raster.RGBA) *raster.Pixmap {
	p := raster.NewPixmap(w, h)
	p.Clear(color)
	return p
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
