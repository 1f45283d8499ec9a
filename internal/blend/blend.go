// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package blend implements the blend modes used when a finished layer is
// drawn onto the accumulated output.
//
// All operations work with premultiplied alpha values in the range 0-255 and
// follow the W3C Compositing and Blending Level 1 model:
//
//	Result = (1 - Sa) * D + (1 - Da) * S + Sa * Da * B(Cs, Cb)
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode identifies a blend mode.
type Mode uint8

const (
	// Normal is source-over alpha compositing.
	Normal Mode = iota

	// Separable modes operate on each channel independently.
	Multiply   // S * D
	Screen     // 1 - (1-S)*(1-D)
	Overlay    // HardLight with swapped layers
	Darken     // min(S, D)
	Lighten    // max(S, D)
	ColorDodge // D / (1 - S)
	ColorBurn  // 1 - (1 - D) / S
	HardLight  // Multiply or Screen depending on source
	SoftLight  // Soft version of HardLight
	Difference // |S - D|
	Exclusion  // S + D - 2*S*D

	// Non-separable modes operate on the whole RGB triplet.
	Hue
	Saturation
	Color
	Luminosity

	modeCount
)

var modeNames = [modeCount]string{
	Normal:     "normal",
	Multiply:   "multiply",
	Screen:     "screen",
	Overlay:    "overlay",
	Darken:     "darken",
	Lighten:    "lighten",
	ColorDodge: "color-dodge",
	ColorBurn:  "color-burn",
	HardLight:  "hard-light",
	SoftLight:  "soft-light",
	Difference: "difference",
	Exclusion:  "exclusion",
	Hue:        "hue",
	Saturation: "saturation",
	Color:      "color",
	Luminosity: "luminosity",
}

// String returns the CSS name of the mode.
func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return "normal"
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m < modeCount
}

// Modes returns every supported mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, modeCount)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// Parse returns the mode with the given CSS name. "source-over" is accepted
// as an alias for normal. Unknown names report false.
func Parse(name string) (Mode, bool) {
	if name == "source-over" {
		return Normal, true
	}
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return Normal, false
}

// Func is the signature for blend operations on premultiplied bytes.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// GetFunc returns the blend function for the given mode.
// Unknown modes fall back to source-over.
func GetFunc(mode Mode) Func {
	switch mode {
	case Multiply:
		return blendMultiply
	case Screen:
		return blendScreen
	case Overlay:
		return blendOverlay
	case Darken:
		return blendDarken
	case Lighten:
		return blendLighten
	case ColorDodge:
		return blendColorDodge
	case ColorBurn:
		return blendColorBurn
	case HardLight:
		return blendHardLight
	case SoftLight:
		return blendSoftLight
	case Difference:
		return blendDifference
	case Exclusion:
		return blendExclusion
	case Hue:
		return blendHue
	case Saturation:
		return blendSaturation
	case Color:
		return blendColor
	case Luminosity:
		return blendLuminosity
	default:
		return blendSourceOver
	}
}

// blendSourceOver composites source over destination.
// Formula: S + D * (1 - Sa)
func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addClamp(sr, mulDiv255(dr, invSa)),
		addClamp(sg, mulDiv255(dg, invSa)),
		addClamp(sb, mulDiv255(db, invSa)),
		addClamp(sa, mulDiv255(da, invSa))
}

// mulDiv255 multiplies two byte values and divides by 255 with rounding.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
