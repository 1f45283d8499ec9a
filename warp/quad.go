// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package warp

import "github.com/gogpu/compositor/raster"

// Corner names one corner of a Quad.
type Corner uint8

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Corners lists every corner in declaration order.
var Corners = [4]Corner{TopLeft, TopRight, BottomLeft, BottomRight}

var cornerNames = [...]string{"tl", "tr", "bl", "br"}

func (c Corner) String() string {
	if int(c) < len(cornerNames) {
		return cornerNames[c]
	}
	return "unknown"
}

// Quad is a free-form destination quadrilateral in canvas coordinates.
// TL, TR, BL and BR receive the matching corners of the source image.
type Quad struct {
	TL, TR, BL, BR raster.Point
}

// FromBox returns the corners of the box (x, y, w, h) rotated by rotation
// degrees about its center. The result reproduces exactly how the box is
// drawn with rotation, so switching a layer to warped geometry is seamless.
func FromBox(x, y, w, h, rotation float64) Quad {
	c := raster.Pt(x+w/2, y+h/2)
	a := raster.Radians(rotation)
	return Quad{
		TL: raster.Pt(x, y).RotateAbout(a, c),
		TR: raster.Pt(x+w, y).RotateAbout(a, c),
		BL: raster.Pt(x, y+h).RotateAbout(a, c),
		BR: raster.Pt(x+w, y+h).RotateAbout(a, c),
	}
}

// At returns the point at normalized source coordinates (u, v): the top and
// bottom edges are interpolated along u, then blended along v.
func (q Quad) At(u, v float64) raster.Point {
	top := q.TL.Lerp(q.TR, u)
	bottom := q.BL.Lerp(q.BR, u)
	return top.Lerp(bottom, v)
}

// Corner returns the position of corner c.
func (q Quad) Corner(c Corner) raster.Point {
	switch c {
	case TopRight:
		return q.TR
	case BottomLeft:
		return q.BL
	case BottomRight:
		return q.BR
	default:
		return q.TL
	}
}

// WithCorner returns a copy of q with corner c moved to p.
func (q Quad) WithCorner(c Corner, p raster.Point) Quad {
	switch c {
	case TopLeft:
		q.TL = p
	case TopRight:
		q.TR = p
	case BottomLeft:
		q.BL = p
	case BottomRight:
		q.BR = p
	}
	return q
}

// Translate returns q moved by d.
func (q Quad) Translate(d raster.Point) Quad {
	return Quad{TL: q.TL.Add(d), TR: q.TR.Add(d), BL: q.BL.Add(d), BR: q.BR.Add(d)}
}

// Points returns the corners in drawing order around the outline.
func (q Quad) Points() []raster.Point {
	return []raster.Point{q.TL, q.TR, q.BR, q.BL}
}
