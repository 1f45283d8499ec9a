// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"
	"math"

	"github.com/gogpu/compositor/raster"
)

// ColorMatrix applies a 4x5 color transformation matrix to an image.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column holds offsets in the [0, 255] range. The matrix acts on
// straight-alpha values; Apply unpremultiplies and re-premultiplies.
type ColorMatrix struct {
	// Matrix is the 4x5 transformation matrix in row-major order.
	Matrix [20]float32
}

// IdentityMatrix returns a color matrix that passes pixels through unchanged.
func IdentityMatrix() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			1, 0, 0, 0, 0,
			0, 1, 0, 0, 0,
			0, 0, 1, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// Brightness scales RGB linearly: 0 = black, 1 = unchanged.
func Brightness(factor float32) *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			factor, 0, 0, 0, 0,
			0, factor, 0, 0, 0,
			0, 0, factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// Contrast applies (color - 0.5) * factor + 0.5: 0 = gray, 1 = unchanged.
func Contrast(factor float32) *ColorMatrix {
	offset := 127.5 * (1 - factor)
	return &ColorMatrix{
		Matrix: [20]float32{
			factor, 0, 0, 0, offset,
			0, factor, 0, 0, offset,
			0, 0, factor, 0, offset,
			0, 0, 0, 1, 0,
		},
	}
}

// Luminance weights shared by saturate, grayscale and hue-rotate.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// Saturate blends between luminance (0) and identity (1); values above 1
// oversaturate.
func Saturate(factor float32) *ColorMatrix {
	inv := 1 - factor
	return &ColorMatrix{
		Matrix: [20]float32{
			lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
			lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
			lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// Grayscale converts toward gray by amount in [0, 1].
func Grayscale(amount float32) *ColorMatrix {
	return Saturate(1 - clampUnit(amount))
}

// Sepia tones the image by amount in [0, 1].
func Sepia(amount float32) *ColorMatrix {
	k := 1 - clampUnit(amount)
	return &ColorMatrix{
		Matrix: [20]float32{
			0.393 + 0.607*k, 0.769 - 0.769*k, 0.189 - 0.189*k, 0, 0,
			0.349 - 0.349*k, 0.686 + 0.314*k, 0.168 - 0.168*k, 0, 0,
			0.272 - 0.272*k, 0.534 - 0.534*k, 0.131 + 0.869*k, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// HueRotate rotates hue by the given angle in degrees.
func HueRotate(degrees float32) *ColorMatrix {
	sin64, cos64 := math.Sincos(float64(degrees) * math.Pi / 180)
	sin, cos := float32(sin64), float32(cos64)

	const (
		r = 0.213
		g = 0.715
		b = 0.072
	)

	return &ColorMatrix{
		Matrix: [20]float32{
			r + cos*(1-r) + sin*(-r), g + cos*(-g) + sin*(-g), b + cos*(-b) + sin*(1-b), 0, 0,
			r + cos*(-r) + sin*(0.143), g + cos*(1-g) + sin*(0.140), b + cos*(-b) + sin*(-0.283), 0, 0,
			r + cos*(-r) + sin*(-(1 - r)), g + cos*(-g) + sin*(g), b + cos*(1-b) + sin*(b), 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// Then returns a matrix equivalent to applying f and then next.
func (f *ColorMatrix) Then(next *ColorMatrix) *ColorMatrix {
	a := &next.Matrix
	b := &f.Matrix

	result := &ColorMatrix{}
	r := &result.Matrix

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[row*5+k] * b[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = a[row*5+0]*b[4] + a[row*5+1]*b[9] +
			a[row*5+2]*b[14] + a[row*5+3]*b[19] + a[row*5+4]
	}

	return result
}

// IsIdentity reports whether the matrix leaves pixels unchanged.
func (f *ColorMatrix) IsIdentity() bool {
	return f.Matrix == IdentityMatrix().Matrix
}

// Apply applies the color matrix transformation to the image.
func (f *ColorMatrix) Apply(src, dst *raster.Pixmap, bounds image.Rectangle) {
	if src == nil || dst == nil {
		return
	}
	bounds = clampRect(bounds, src, dst)
	if bounds.Empty() {
		return
	}

	srcData := src.Data()
	dstData := dst.Data()
	srcWidth := src.Width()
	dstWidth := dst.Width()

	m := &f.Matrix

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			srcIdx := (y*srcWidth + x) * 4
			dstIdx := (y*dstWidth + x) * 4

			pr := float32(srcData[srcIdx+0])
			pg := float32(srcData[srcIdx+1])
			pb := float32(srcData[srcIdx+2])
			a := float32(srcData[srcIdx+3])

			if a == 0 {
				dstData[dstIdx+0], dstData[dstIdx+1], dstData[dstIdx+2], dstData[dstIdx+3] = 0, 0, 0, 0
				continue
			}

			r := pr * 255 / a
			g := pg * 255 / a
			b := pb * 255 / a

			newR := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
			newG := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
			newB := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
			newA := m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]

			newA = min(max(newA, 0), 255)
			factor := newA / 255
			dstData[dstIdx+0] = clampUint8(min(max(newR, 0), 255) * factor)
			dstData[dstIdx+1] = clampUint8(min(max(newG, 0), 255) * factor)
			dstData[dstIdx+2] = clampUint8(min(max(newB, 0), 255) * factor)
			dstData[dstIdx+3] = clampUint8(newA)
		}
	}
}

func clampUnit(v float32) float32 {
	return min(max(v, 0), 1)
}
