// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package effect implements the pixel-level effect operators applied to a
// layer's isolated content before it is blended into the composite.
//
// Every operator transforms a [raster.Pixmap] in place and leaves it
// byte-for-byte unchanged at its inert parameter value. [Apply] runs the
// enabled operators in the fixed order pixelate, glitch, vignette,
// scanlines. The drop shadow is carried in [Set] but rendered by the
// compositor during the blend step, so it follows the final silhouette.
package effect

import "github.com/gogpu/compositor/raster"

// ShadowParams configures the drop shadow cast by a layer.
type ShadowParams struct {
	Enabled bool
	Color   raster.RGBA
	// Blur is the canvas-style shadow blur in pixels.
	Blur float64
	// X and Y offset the shadow in canvas pixels.
	X, Y float64
	// Opacity scales the shadow color alpha, in [0, 1].
	Opacity float64
}

// VignetteParams darkens the buffer toward its edges.
type VignetteParams struct {
	Enabled bool
	// Amount is the edge darkness in percent.
	Amount float64
	// Size scales the outer radius, in percent of max(width, height).
	Size float64
}

// PixelateParams reduces the buffer to square blocks.
type PixelateParams struct {
	Enabled   bool
	BlockSize int
}

// ScanlinesParams overlays horizontal dark lines.
type ScanlinesParams struct {
	Enabled bool
	// Intensity is the line darkness in percent.
	Intensity float64
	// Spacing is the distance between lines in pixels.
	Spacing int
}

// GlitchParams splits the red and blue channels horizontally.
type GlitchParams struct {
	Enabled bool
	Offset  int
}

// Set holds the five effect parameter groups of a layer.
// Set contains no references, so assignment copies it completely.
type Set struct {
	DropShadow ShadowParams
	Vignette   VignetteParams
	Pixelate   PixelateParams
	Scanlines  ScanlinesParams
	Glitch     GlitchParams
}

// Defaults returns a Set with every effect disabled and the parameter
// values a freshly enabled effect starts from.
func Defaults() Set {
	return Set{
		DropShadow: ShadowParams{Color: raster.Black, Blur: 10, X: 5, Y: 5, Opacity: 0.5},
		Vignette:   VignetteParams{Amount: 50, Size: 80},
		Pixelate:   PixelateParams{BlockSize: 8},
		Scanlines:  ScanlinesParams{Intensity: 30, Spacing: 4},
		Glitch:     GlitchParams{Offset: 5},
	}
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	return s
}

// Any reports whether at least one buffer operator is enabled.
// The drop shadow is not a buffer operator and is not considered.
func (s Set) Any() bool {
	return s.Pixelate.Enabled || s.Glitch.Enabled || s.Vignette.Enabled || s.Scanlines.Enabled
}

// Apply runs the enabled operators of s on pm in the fixed order
// pixelate, glitch, vignette, scanlines.
func Apply(pm *raster.Pixmap, s Set) {
	if s.Pixelate.Enabled {
		Pixelate(pm, s.Pixelate.BlockSize)
	}
	if s.Glitch.Enabled {
		Glitch(pm, s.Glitch.Offset)
	}
	if s.Vignette.Enabled {
		Vignette(pm, s.Vignette.Amount, s.Vignette.Size)
	}
	if s.Scanlines.Enabled {
		Scanlines(pm, s.Scanlines.Intensity, s.Scanlines.Spacing)
	}
}
