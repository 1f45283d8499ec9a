// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// RGBA represents a straight-alpha color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// WithAlpha returns the color with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// Bytes returns the premultiplied 8-bit representation of c.
func (c RGBA) Bytes() (r, g, b, a uint8) {
	al := clamp01(c.A)
	return uint8(clamp255(math.Round(c.R * al * 255))),
		uint8(clamp255(math.Round(c.G * al * 255))),
		uint8(clamp255(math.Round(c.B * al * 255))),
		uint8(clamp255(math.Round(al * 255)))
}

// Hex parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa" (the '#' is
// optional). Malformed input yields opaque black.
func Hex(s string) RGBA {
	s = strings.TrimPrefix(s, "#")
	short := len(s) == 3 || len(s) == 4
	if !short && len(s) != 6 && len(s) != 8 {
		return Black
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Black
	}

	bits, n := 8, len(s)/2
	if short {
		bits, n = 4, len(s)
	}
	mask := uint64(1)<<bits - 1
	ch := [4]float64{3: 1}
	for i := range n {
		shift := (n - 1 - i) * bits
		ch[i] = float64(v>>shift&mask) / float64(mask)
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
}

func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA{}
)
