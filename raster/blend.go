// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "github.com/gogpu/compositor/internal/blend"

// BlendMode selects how a layer combines with the pixels beneath it.
// The zero value is normal source-over.
type BlendMode = blend.Mode

// Blend modes, named after their CSS mix-blend-mode keywords.
const (
	BlendNormal     = blend.Normal
	BlendMultiply   = blend.Multiply
	BlendScreen     = blend.Screen
	BlendOverlay    = blend.Overlay
	BlendDarken     = blend.Darken
	BlendLighten    = blend.Lighten
	BlendColorDodge = blend.ColorDodge
	BlendColorBurn  = blend.ColorBurn
	BlendHardLight  = blend.HardLight
	BlendSoftLight  = blend.SoftLight
	BlendDifference = blend.Difference
	BlendExclusion  = blend.Exclusion
	BlendHue        = blend.Hue
	BlendSaturation = blend.Saturation
	BlendColor      = blend.Color
	BlendLuminosity = blend.Luminosity
)

// ParseBlendMode looks up a blend mode by its CSS keyword.
// "source-over" is accepted as an alias for normal.
func ParseBlendMode(name string) (BlendMode, bool) {
	return blend.Parse(name)
}

// BlendModes returns every supported blend mode in declaration order.
func BlendModes() []BlendMode {
	return blend.Modes()
}
