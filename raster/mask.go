// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// circleSegments is the vertex count used to approximate round caps.
const circleSegments = 24

// PolygonMask returns an antialiased coverage mask of the closed polygon pts,
// covering bounds. Pixels outside bounds read as transparent.
func PolygonMask(bounds image.Rectangle, pts []Point) *image.Alpha {
	mask := image.NewAlpha(bounds)
	FillPolygon(mask, pts)
	return mask
}

// FillPolygon adds the coverage of the closed polygon pts to mask.
// Overlapping fills accumulate with source-over.
func FillPolygon(mask *image.Alpha, pts []Point) {
	if len(pts) < 3 {
		return
	}
	b := mask.Rect
	if b.Empty() {
		return
	}
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	ox, oy := float64(b.Min.X), float64(b.Min.Y)
	z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()
	z.Draw(mask, b, image.Opaque, image.Point{})
}

// Circle returns a polygon approximating a circle of radius r around c.
func Circle(c Point, r float64) []Point {
	pts := make([]Point, circleSegments)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / circleSegments)
		pts[i] = Point{X: c.X + r*cos, Y: c.Y + r*sin}
	}
	return pts
}

// StrokeMask returns the footprint of a round-capped, round-joined polyline
// of the given width. A single point yields a dot.
func StrokeMask(bounds image.Rectangle, pts []Point, width float64) *image.Alpha {
	mask := image.NewAlpha(bounds)
	if len(pts) == 0 || width <= 0 {
		return mask
	}
	r := width / 2
	for i, p := range pts {
		FillPolygon(mask, Circle(p, r))
		if i == 0 {
			continue
		}
		q := pts[i-1]
		d := p.Sub(q)
		l := d.Length()
		if l == 0 {
			continue
		}
		n := Point{X: -d.Y / l * r, Y: d.X / l * r}
		FillPolygon(mask, []Point{q.Add(n), p.Add(n), p.Sub(n), q.Sub(n)})
	}
	return mask
}

// PolylineBounds returns the integer rectangle covering pts grown by pad.
func PolylineBounds(pts []Point, pad float64) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX-pad)), int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad)), int(math.Ceil(maxY+pad)),
	)
}

// Dilate returns mask grown by a disc of radius r (max filter).
func Dilate(mask *image.Alpha, r int) *image.Alpha {
	return morph(mask, r, func(a, b uint8) uint8 { return max(a, b) }, 0)
}

// Erode returns mask shrunk by a disc of radius r (min filter). Pixels
// outside mask read as transparent, so content touching the edge erodes.
func Erode(mask *image.Alpha, r int) *image.Alpha {
	return morph(mask, r, func(a, b uint8) uint8 { return min(a, b) }, 255)
}

func morph(mask *image.Alpha, r int, pick func(a, b uint8) uint8, seed uint8) *image.Alpha {
	b := mask.Rect
	out := image.NewAlpha(b)
	if r <= 0 {
		copy(out.Pix, mask.Pix)
		return out
	}

	var offsets []image.Point
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				offsets = append(offsets, image.Point{X: dx, Y: dy})
			}
		}
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := seed
			for _, o := range offsets {
				v = pick(v, mask.AlphaAt(x+o.X, y+o.Y).A)
			}
			out.Pix[out.PixOffset(x, y)] = v
		}
	}
	return out
}
