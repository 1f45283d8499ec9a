// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/compositor/raster"
)

// Pixelate downsamples pm to ceil(w/blockSize) x ceil(h/blockSize) and
// scales it back up with nearest-neighbor sampling.
// It does nothing when blockSize <= 1.
func Pixelate(pm *raster.Pixmap, blockSize int) {
	if blockSize <= 1 {
		return
	}
	w, h := pm.Width(), pm.Height()
	sw := (w + blockSize - 1) / blockSize
	sh := (h + blockSize - 1) / blockSize

	small := image.NewRGBA(image.Rect(0, 0, sw, sh))
	dst := pm.RGBA()
	xdraw.ApproxBiLinear.Scale(small, small.Rect, dst, dst.Rect, xdraw.Src, nil)
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, small, small.Rect, xdraw.Src, nil)
}

// Vignette darkens pm with a radial gradient centered on the buffer.
// The gradient is clear inside 0.2*R and reaches amount/100 black at R,
// where R = max(w, h) * size / 100, and stays at that level beyond R.
// Only existing content is darkened; alpha is left unchanged.
// It does nothing when amount <= 0.
func Vignette(pm *raster.Pixmap, amount, size float64) {
	if amount <= 0 {
		return
	}
	w, h := pm.Width(), pm.Height()
	outer := float64(max(w, h)) * size / 100
	inner := outer * 0.2
	peak := math.Min(amount/100, 1)
	cx, cy := float64(w)/2, float64(h)/2

	data := pm.Data()
	for y := 0; y < h; y++ {
		dy := float64(y) + 0.5 - cy
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			if data[i+3] == 0 {
				continue
			}
			d := math.Hypot(float64(x)+0.5-cx, dy)
			var t float64
			switch {
			case d <= inner:
				continue
			case d >= outer:
				t = 1
			default:
				t = (d - inner) / (outer - inner)
			}
			darken(data[i:i+3], 1-t*peak)
		}
	}
}

// Scanlines darkens every spacing-th row of pm by intensity percent,
// starting at row 0. Only existing content is darkened.
// It does nothing when intensity <= 0.
func Scanlines(pm *raster.Pixmap, intensity float64, spacing int) {
	if intensity <= 0 {
		return
	}
	spacing = max(spacing, 1)
	keep := 1 - math.Min(intensity/100, 1)
	w := pm.Width()
	data := pm.Data()
	for y := 0; y < pm.Height(); y += spacing {
		row := data[y*w*4 : (y+1)*w*4]
		for x := 0; x < w; x++ {
			darken(row[x*4:x*4+3], keep)
		}
	}
}

// Glitch shifts the red channel right and the blue channel left by offset
// pixels: red at x is read from x-offset, blue from x+offset. Samples that
// fall outside the row leave the channel unchanged. Green and alpha are
// untouched. It does nothing when offset <= 0.
func Glitch(pm *raster.Pixmap, offset int) {
	if offset <= 0 {
		return
	}
	w := pm.Width()
	data := pm.Data()
	src := make([]uint8, len(data))
	copy(src, data)

	for y := 0; y < pm.Height(); y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			i := row + x*4
			a := src[i+3]
			if a == 0 {
				continue
			}
			r := straight(src[i], a)
			b := straight(src[i+2], a)
			if lx := x - offset; lx >= 0 {
				j := row + lx*4
				r = straight(src[j], src[j+3])
			}
			if rx := x + offset; rx < w {
				j := row + rx*4
				b = straight(src[j+2], src[j+3])
			}
			data[i] = premul(r, a)
			data[i+2] = premul(b, a)
		}
	}
}

func darken(rgb []uint8, keep float64) {
	for k := range rgb {
		rgb[k] = uint8(math.Round(float64(rgb[k]) * keep))
	}
}

func straight(c, a uint8) float64 {
	if a == 0 {
		return 0
	}
	return math.Min(float64(c)*255/float64(a), 255)
}

func premul(c float64, a uint8) uint8 {
	return uint8(math.Round(c * float64(a) / 255))
}
