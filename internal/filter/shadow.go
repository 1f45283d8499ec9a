// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"math"

	"github.com/gogpu/compositor/raster"
)

// DropShadow builds the colored silhouette cast by a layer.
//
// The shadow is produced as a separate buffer so the caller can blend it
// with the same mode and opacity as the content that casts it.
type DropShadow struct {
	// OffsetX is the horizontal shadow offset in pixels.
	OffsetX float64

	// OffsetY is the vertical shadow offset in pixels.
	OffsetY float64

	// Blur is the blur extent in pixels. The Gaussian standard deviation
	// is half of it, matching canvas shadowBlur.
	Blur float64

	// Color is the shadow color; its alpha scales the silhouette.
	Color raster.RGBA
}

// Render writes the shadow of src into dst, which is resized to match src.
// The algorithm:
//  1. Extract the alpha channel of src, shifted by the offset
//  2. Blur the alpha channel
//  3. Colorize it with the premultiplied shadow color
func (f *DropShadow) Render(src, dst *raster.Pixmap) {
	if src == nil || dst == nil {
		return
	}
	width, height := src.Width(), src.Height()
	dst.Reset(width, height)
	if f.Color.A <= 0 {
		return
	}

	alpha := make([]float32, width*height)
	extractAlpha(src, alpha, int(math.Round(f.OffsetX)), int(math.Round(f.OffsetY)))

	if f.Blur > 0 {
		blurred := make([]float32, width*height)
		blurAlphaChannel(alpha, blurred, width, height, f.Blur/2)
		alpha = blurred
	}

	colorize(dst, alpha, f.Color)
}

// extractAlpha copies the source alpha into a float buffer, shifted so
// that output (x, y) reads source (x-offsetX, y-offsetY).
func extractAlpha(src *raster.Pixmap, alpha []float32, offsetX, offsetY int) {
	width, height := src.Width(), src.Height()
	data := src.Data()

	for y := 0; y < height; y++ {
		srcY := y - offsetY
		for x := 0; x < width; x++ {
			srcX := x - offsetX
			if srcX < 0 || srcX >= width || srcY < 0 || srcY >= height {
				alpha[y*width+x] = 0
				continue
			}
			alpha[y*width+x] = float32(data[(srcY*width+srcX)*4+3]) / 255
		}
	}
}

// blurAlphaChannel applies Gaussian blur to a single-channel buffer.
// Samples beyond the buffer are treated as transparent.
func blurAlphaChannel(src, dst []float32, width, height int, sigma float64) {
	kernel := CachedGaussianKernel(sigma)
	half := len(kernel) / 2
	temp := make([]float32, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float32
			for k, w := range kernel {
				kx := x + k - half
				if kx < 0 || kx >= width {
					continue
				}
				sum += src[y*width+kx] * w
			}
			temp[y*width+x] = sum
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float32
			for k, w := range kernel {
				ky := y + k - half
				if ky < 0 || ky >= height {
					continue
				}
				sum += temp[ky*width+x] * w
			}
			dst[y*width+x] = sum
		}
	}
}

func colorize(dst *raster.Pixmap, alpha []float32, color raster.RGBA) {
	r, g, b, a := color.Bytes()
	data := dst.Data()
	for i, cov := range alpha {
		if cov <= 0 {
			continue
		}
		cov = min(cov, 1)
		j := i * 4
		data[j+0] = clampUint8(float32(r) * cov)
		data[j+1] = clampUint8(float32(g) * cov)
		data[j+2] = clampUint8(float32(b) * cov)
		data[j+3] = clampUint8(float32(a) * cov)
	}
}
