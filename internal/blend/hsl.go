// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package blend

// rgb is an unpremultiplied color with components in [0, 1].
type rgb struct{ r, g, b float32 }

// Lum returns the BT.601 luminance of c: 0.30*r + 0.59*g + 0.11*b.
func (c rgb) Lum() float32 {
	return 0.30*c.r + 0.59*c.g + 0.11*c.b
}

// Sat returns max(r, g, b) - min(r, g, b).
func (c rgb) Sat() float32 {
	return max(c.r, c.g, c.b) - min(c.r, c.g, c.b)
}

// clip pulls out-of-range components toward the luminance until all of
// them are in [0, 1]. The luminance is unchanged.
func (c rgb) clip() rgb {
	l := c.Lum()
	lo := min(c.r, c.g, c.b)
	hi := max(c.r, c.g, c.b)
	if lo < 0 {
		c = c.toward(l, l/(l-lo))
	}
	if hi > 1 {
		c = c.toward(l, (1-l)/(hi-l))
	}
	return c
}

func (c rgb) toward(l, k float32) rgb {
	return rgb{l + (c.r-l)*k, l + (c.g-l)*k, l + (c.b-l)*k}
}

// withLum shifts c to luminance l, keeping hue and saturation where the
// gamut allows.
func (c rgb) withLum(l float32) rgb {
	d := l - c.Lum()
	return rgb{c.r + d, c.g + d, c.b + d}.clip()
}

// withSat rescales c to saturation s, keeping the order of its components.
// Grays have no hue and are returned unchanged.
func (c rgb) withSat(s float32) rgb {
	ch := [3]*float32{&c.r, &c.g, &c.b}
	// Sort the pointers so ch[0] is the minimum and ch[2] the maximum.
	if *ch[0] > *ch[1] {
		ch[0], ch[1] = ch[1], ch[0]
	}
	if *ch[1] > *ch[2] {
		ch[1], ch[2] = ch[2], ch[1]
	}
	if *ch[0] > *ch[1] {
		ch[0], ch[1] = ch[1], ch[0]
	}
	lo, mid, hi := *ch[0], *ch[1], *ch[2]
	if hi <= lo {
		return c
	}
	*ch[1] = (mid - lo) * s / (hi - lo)
	*ch[2] = s
	*ch[0] = 0
	return c
}

// Non-separable mode functions, B(Cs, Cb) from the compositing model.
var (
	hueOf        = func(s, d rgb) rgb { return s.withSat(d.Sat()).withLum(d.Lum()) }
	saturationOf = func(s, d rgb) rgb { return d.withSat(s.Sat()).withLum(d.Lum()) }
	colorOf      = func(s, d rgb) rgb { return s.withLum(d.Lum()) }
	luminosityOf = func(s, d rgb) rgb { return d.withLum(s.Lum()) }
)

func blendHue(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, hueOf)
}

func blendSaturation(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, saturationOf)
}

func blendColor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, colorOf)
}

func blendLuminosity(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, luminosityOf)
}

// unpremul converts premultiplied bytes to an rgb.
func unpremul(r, g, b, a byte) rgb {
	fa := float32(a)
	return rgb{clampUnit(float32(r) / fa), clampUnit(float32(g) / fa), clampUnit(float32(b) / fa)}
}

// nonSeparable unpremultiplies both colors, applies fn to the triplets and
// composites the result with the standard formula.
func nonSeparable(sr, sg, sb, sa, dr, dg, db, da byte, fn func(s, d rgb) rgb) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	saf := float32(sa) / 255
	daf := float32(da) / 255
	mixed := fn(unpremul(sr, sg, sb, sa), unpremul(dr, dg, db, da))

	mix := func(s, d byte, b float32) byte {
		return toByte((1-saf)*float32(d)/255 + (1-daf)*float32(s)/255 + saf*daf*clampUnit(b))
	}
	return mix(sr, dr, mixed.r), mix(sg, dg, mixed.g), mix(sb, db, mixed.b), toByte(saf + daf*(1-saf))
}
