// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"
	"math"
	"sync"

	"github.com/gogpu/compositor/raster"
)

// Blur applies separable Gaussian blur to an image.
// The horizontal and vertical passes run independently, giving
// O(w*h*(rx+ry)) cost instead of O(w*h*rx*ry).
type Blur struct {
	// RadiusX is the horizontal standard deviation in pixels.
	RadiusX float64

	// RadiusY is the vertical standard deviation in pixels.
	RadiusY float64
}

// NewBlur creates a blur with equal radius in both directions.
func NewBlur(radius float64) *Blur {
	return &Blur{RadiusX: radius, RadiusY: radius}
}

// Apply blurs src into dst. Samples outside bounds are edge-extended.
func (f *Blur) Apply(src, dst *raster.Pixmap, bounds image.Rectangle) {
	if src == nil || dst == nil {
		return
	}
	bounds = clampRect(bounds, src, dst)
	if bounds.Empty() {
		return
	}

	if f.RadiusX <= 0 && f.RadiusY <= 0 {
		if src != dst {
			copyRegion(src, dst, bounds)
		}
		return
	}

	minX, minY := bounds.Min.X, bounds.Min.Y
	width, height := bounds.Dx(), bounds.Dy()

	temp := getTempBuffer(width, height)
	defer putTempBuffer(temp)

	if f.RadiusX > 0 {
		blurHorizontal(src, temp, minX, minY, width, height, CachedGaussianKernel(f.RadiusX))
	} else {
		copyToTemp(src, temp, minX, minY, width, height)
	}

	if f.RadiusY > 0 {
		blurVertical(temp, dst, minX, minY, width, height, CachedGaussianKernel(f.RadiusY))
	} else {
		copyFromTemp(temp, dst, minX, minY, width, height)
	}
}

// Expand returns r grown by the blur's reach (three standard deviations).
func (f *Blur) Expand(r image.Rectangle) image.Rectangle {
	ex := int(math.Ceil(f.RadiusX * 3))
	ey := int(math.Ceil(f.RadiusY * 3))
	return image.Rect(r.Min.X-ex, r.Min.Y-ey, r.Max.X+ex, r.Max.Y+ey)
}

func blurHorizontal(src *raster.Pixmap, temp []float32, minX, minY, width, height int, kernel []float32) {
	half := len(kernel) / 2
	srcWidth := src.Width()
	srcData := src.Data()
	maxX := minX + width - 1

	for y := 0; y < height; y++ {
		row := (minY + y) * srcWidth
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				kx := min(max(minX+x+k-half, minX), maxX)
				i := (row + kx) * 4
				r += float32(srcData[i+0]) * weight
				g += float32(srcData[i+1]) * weight
				b += float32(srcData[i+2]) * weight
				a += float32(srcData[i+3]) * weight
			}
			t := (y*width + x) * 4
			temp[t+0], temp[t+1], temp[t+2], temp[t+3] = r, g, b, a
		}
	}
}

func blurVertical(temp []float32, dst *raster.Pixmap, minX, minY, width, height int, kernel []float32) {
	half := len(kernel) / 2
	dstData := dst.Data()
	dstWidth := dst.Width()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				ky := min(max(y+k-half, 0), height-1)
				t := (ky*width + x) * 4
				r += temp[t+0] * weight
				g += temp[t+1] * weight
				b += temp[t+2] * weight
				a += temp[t+3] * weight
			}
			i := ((minY+y)*dstWidth + minX + x) * 4
			writePremul(dstData[i:i+4], r, g, b, a)
		}
	}
}

// writePremul stores a blurred premultiplied pixel, keeping color <= alpha.
func writePremul(px []uint8, r, g, b, a float32) {
	av := clampUint8(a)
	px[0] = min(clampUint8(r), av)
	px[1] = min(clampUint8(g), av)
	px[2] = min(clampUint8(b), av)
	px[3] = av
}

func copyToTemp(src *raster.Pixmap, temp []float32, minX, minY, width, height int) {
	srcData := src.Data()
	srcWidth := src.Width()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := ((minY+y)*srcWidth + minX + x) * 4
			t := (y*width + x) * 4
			temp[t+0] = float32(srcData[i+0])
			temp[t+1] = float32(srcData[i+1])
			temp[t+2] = float32(srcData[i+2])
			temp[t+3] = float32(srcData[i+3])
		}
	}
}

func copyFromTemp(temp []float32, dst *raster.Pixmap, minX, minY, width, height int) {
	dstData := dst.Data()
	dstWidth := dst.Width()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t := (y*width + x) * 4
			i := ((minY+y)*dstWidth + minX + x) * 4
			writePremul(dstData[i:i+4], temp[t+0], temp[t+1], temp[t+2], temp[t+3])
		}
	}
}

func copyRegion(src, dst *raster.Pixmap, bounds image.Rectangle) {
	srcData, dstData := src.Data(), dst.Data()
	n := bounds.Dx() * 4
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		s := (y*src.Width() + bounds.Min.X) * 4
		d := (y*dst.Width() + bounds.Min.X) * 4
		copy(dstData[d:d+n], srcData[s:s+n])
	}
}

type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{}
	},
}

// getTempBuffer returns a zeroed buffer of at least width*height*4 elements.
func getTempBuffer(width, height int) []float32 {
	size := width * height * 4
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if cap(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}
	buf := wrapper.data[:size]
	clear(buf)
	return buf
}

func putTempBuffer(buf []float32) {
	// 64MB cap
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}
