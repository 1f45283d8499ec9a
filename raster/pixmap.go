// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// Pixmap represents a rectangular pixel buffer.
// Pixels are stored as premultiplied RGBA, 4 bytes per pixel, row-major with
// no padding between rows.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a new transparent pixmap with the given dimensions.
// Dimensions below 1 are clamped to 1.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 1), max(height, 1)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// FromImage creates a pixmap holding a copy of img.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	pm := NewPixmap(b.Dx(), b.Dy())
	xdraw.Draw(pm.RGBA(), pm.Bounds(), img, b.Min, xdraw.Src)
	return pm
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Stride returns the number of bytes between vertically adjacent pixels.
func (p *Pixmap) Stride() int {
	return p.width * 4
}

// Data returns the raw premultiplied pixel data.
func (p *Pixmap) Data() []uint8 {
	return p.data[:p.width*p.height*4]
}

// RGBA returns an *image.RGBA that shares the pixmap's memory.
// Writes through the returned image are visible in the pixmap.
func (p *Pixmap) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    p.Data(),
		Stride: p.Stride(),
		Rect:   p.Bounds(),
	}
}

// Reset resizes the pixmap to width x height and clears it to transparent.
// The backing array only grows: shrinking reuses existing memory.
// Reset reports whether a new allocation was needed.
func (p *Pixmap) Reset(width, height int) bool {
	width, height = max(width, 1), max(height, 1)
	n := width * height * 4
	grew := false
	if cap(p.data) < n {
		p.data = make([]uint8, n)
		grew = true
	} else {
		p.data = p.data[:n]
		clear(p.data)
	}
	p.width, p.height = width, height
	return grew
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	out := &Pixmap{
		width:  p.width,
		height: p.height,
		data:   make([]uint8, p.width*p.height*4),
	}
	copy(out.data, p.Data())
	return out
}

// Equal reports whether two pixmaps have the same size and bytes.
func (p *Pixmap) Equal(q *Pixmap) bool {
	if p == nil || q == nil {
		return p == q
	}
	return p.width == q.width && p.height == q.height && bytes.Equal(p.Data(), q.Data())
}

// SetPixelPremul writes premultiplied channel values at (x, y).
// Out-of-bounds coordinates are ignored.
func (p *Pixmap) SetPixelPremul(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = r
	p.data[i+1] = g
	p.data[i+2] = b
	p.data[i+3] = a
}

// PixelPremul returns the premultiplied channel values at (x, y).
// Out-of-bounds coordinates read as transparent.
func (p *Pixmap) PixelPremul(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0, 0, 0, 0
	}
	i := (y*p.width + x) * 4
	return p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3]
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	r, g, b, a := c.Bytes()
	p.SetPixelPremul(x, y, r, g, b, a)
}

// GetPixel returns the straight-alpha color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	r, g, b, a := p.PixelPremul(x, y)
	if a == 0 {
		return Transparent
	}
	af := float64(a)
	return RGBA{
		R: float64(r) / af,
		G: float64(g) / af,
		B: float64(b) / af,
		A: af / 255,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r, g, b, a := c.Bytes()
	data := p.Data()
	for i := 0; i < len(data); i += 4 {
		data[i+0] = r
		data[i+1] = g
		data[i+2] = b
		data[i+3] = a
	}
}

// EncodePNG writes the pixmap to w in PNG format.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.RGBA())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	r, g, b, a := p.PixelPremul(x, y)
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// Set implements the draw.Image interface.
func (p *Pixmap) Set(x, y int, c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	p.SetPixelPremul(x, y, rgba.R, rgba.G, rgba.B, rgba.A)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
