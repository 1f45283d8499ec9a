// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package blend

import "math"

// separableBlend applies a per-channel blend function B to unmultiplied
// channel values and composites the result with the standard formula:
//
//	Result = (1 - Sa) * D + (1 - Da) * S + Sa * Da * B(Cs, Cb)
//
// Channel values passed to blendChan are normalized to [0, 1].
func separableBlend(sr, sg, sb, sa, dr, dg, db, da byte, blendChan func(s, d float32) float32) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	saf := float32(sa) / 255
	daf := float32(da) / 255

	sc := [3]float32{float32(sr) / float32(sa), float32(sg) / float32(sa), float32(sb) / float32(sa)}
	dc := [3]float32{float32(dr) / float32(da), float32(dg) / float32(da), float32(db) / float32(da)}
	sp := [3]float32{float32(sr) / 255, float32(sg) / 255, float32(sb) / 255}
	dp := [3]float32{float32(dr) / 255, float32(dg) / 255, float32(db) / 255}

	var out [3]byte
	for i := range out {
		b := clampUnit(blendChan(clampUnit(sc[i]), clampUnit(dc[i])))
		v := (1-saf)*dp[i] + (1-daf)*sp[i] + saf*daf*b
		out[i] = toByte(v)
	}
	return out[0], out[1], out[2], toByte(saf + daf*(1-saf))
}

func toByte(v float32) byte {
	return byte(math.Round(float64(clampUnit(v) * 255)))
}

// blendMultiply: B(Cb, Cs) = Cb * Cs
func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float32) float32 {
		return s * d
	})
}

// blendScreen: B(Cb, Cs) = 1 - (1 - Cb) * (1 - Cs)
func blendScreen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, screen)
}

func screen(s, d float32) float32 {
	return s + d - s*d
}

func hardLight(s, d float32) float32 {
	if s <= 0.5 {
		return d * 2 * s
	}
	return screen(2*s-1, d)
}

// blendOverlay: B(Cb, Cs) = HardLight(Cs, Cb)
func blendOverlay(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float32) float32 {
		return hardLight(d, s)
	})
}

// blendDarken: B(Cb, Cs) = min(Cb, Cs)
func blendDarken(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float32) float32 {
		return min(s, d)
	})
}

// blendLighten: B(Cb, Cs) = max(Cb, Cs)
func blendLighten(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float32) float32 {
		return max(s, d)
	})
}

// blendColorDodge: B(Cb, Cs) = min(1, Cb / (1 - Cs)), 0 when Cb == 0
func blendColorDodge(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float32) float32 {
		if d == 0 {
			return 0
		}
		if s >= 1 {
			return 1
		}
		return min(1, d/(1-s))
	})
}

// blendColorBurn: B(Cb, Cs) = 1 - min(1, (1 - Cb) / Cs), 1 when Cb == 1
func blendColorBurn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float32) float32 {
		if d >= 1 {
			return 1
		}
		if s <= 0 {
			return 0
		}
		return 1 - min(1, (1-d)/s)
	})
}

// blendHardLight: Multiply(Cb, 2*Cs) or Screen(Cb, 2*Cs - 1)
func blendHardLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, hardLight)
}

// blendSoftLight is a softer version of HardLight.
func blendSoftLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float32) float32 {
		if s <= 0.5 {
			return d - (1-2*s)*d*(1-d)
		}
		var dx float32
		if d <= 0.25 {
			dx = ((16*d-12)*d + 4) * d
		} else {
			dx = float32(math.Sqrt(float64(d)))
		}
		return d + (2*s-1)*(dx-d)
	})
}

// blendDifference: B(Cb, Cs) = |Cb - Cs|
func blendDifference(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float32) float32 {
		if s > d {
			return s - d
		}
		return d - s
	})
}

// blendExclusion: B(Cb, Cs) = Cb + Cs - 2 * Cb * Cs
func blendExclusion(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float32) float32 {
		return s + d - 2*s*d
	})
}
