// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/compositor/internal/blend"
)

// DrawTransformed draws the sr region of src onto dst through m, which maps
// src coordinates to dst coordinates. Sampling is bilinear and compositing is
// source-over. A non-nil clip limits coverage to its alpha, in dst space.
// Nothing is drawn when m is not invertible.
func DrawTransformed(dst *Pixmap, src image.Image, sr image.Rectangle, m Matrix, clip *image.Alpha) {
	if sr.Empty() || math.Abs(m.Determinant()) < 1e-10 {
		return
	}
	target := dst.RGBA()
	dr := TransformedBounds(sr, m).Intersect(target.Rect)
	if clip != nil {
		dr = dr.Intersect(clip.Rect)
	}
	if dr.Empty() {
		return
	}
	sub := target.SubImage(dr).(*image.RGBA)

	var opts *xdraw.Options
	if clip != nil {
		opts = &xdraw.Options{DstMask: clip}
	}
	if m.B == 0 && m.D == 0 && m.A == 1 && m.E == 1 && m.C == math.Trunc(m.C) && m.F == math.Trunc(m.F) {
		// Integer translation: no resampling needed.
		xdraw.NearestNeighbor.Transform(sub, m.Aff3(), src, sr, xdraw.Over, opts)
		return
	}
	xdraw.BiLinear.Transform(sub, m.Aff3(), src, sr, xdraw.Over, opts)
}

// DrawScaled draws all of src into the axis-aligned rectangle (x, y, w, h)
// after applying m to that rectangle.
func DrawScaled(dst *Pixmap, src *Pixmap, x, y, w, h float64, m Matrix) {
	if w <= 0 || h <= 0 {
		return
	}
	fit := Translate(x, y).Multiply(Scale(w/float64(src.Width()), h/float64(src.Height())))
	DrawTransformed(dst, src.RGBA(), src.Bounds(), m.Multiply(fit), nil)
}

// TransformedBounds returns the integer bounding box of r mapped through m.
func TransformedBounds(r image.Rectangle, m Matrix) image.Rectangle {
	corners := [4]Point{
		m.TransformPoint(Pt(float64(r.Min.X), float64(r.Min.Y))),
		m.TransformPoint(Pt(float64(r.Max.X), float64(r.Min.Y))),
		m.TransformPoint(Pt(float64(r.Min.X), float64(r.Max.Y))),
		m.TransformPoint(Pt(float64(r.Max.X), float64(r.Max.Y))),
	}
	return PolylineBounds(corners[:], 1)
}

// Composite blends src onto dst with the given opacity and blend mode.
// Both pixmaps must have the same dimensions; otherwise Composite does
// nothing and returns false.
func Composite(dst, src *Pixmap, opacity float64, mode BlendMode) bool {
	if dst.Width() != src.Width() || dst.Height() != src.Height() {
		return false
	}
	blend.Composite(dst.Data(), src.Data(), opacity, mode)
	return true
}
