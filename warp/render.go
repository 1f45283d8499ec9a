// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package warp

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/compositor/raster"
)

// Renderer draws images through a Quad.
type Renderer struct {
	// Grid is the number of cells along each source axis. Larger values
	// reduce faceting at the cost of render time. Default 20.
	Grid int

	// Bloat is how far each clip triangle is pushed out from its centroid,
	// in pixels. Default 0.6.
	Bloat float64

	// Pad is the source sampling margin around each cell, in pixels,
	// clamped to the source bounds. Default 2.
	Pad int
}

// DefaultRenderer returns a Renderer with the reference settings.
func DefaultRenderer() *Renderer {
	return &Renderer{Grid: 20, Bloat: 0.6, Pad: 2}
}

// Render draws src onto dst so that its corners land on q.
//
// If a grid step in source pixels is 0.001 or less, nothing is drawn and
// ErrDegenerate is returned. Cells that q collapses to a line or a point
// are skipped silently. Individual triangles that cannot be solved are
// skipped; the first such error is returned after the rest are drawn.
func (r *Renderer) Render(dst, src *raster.Pixmap, q Quad) error {
	n := r.Grid
	if n <= 0 {
		n = 20
	}
	sw, sh := float64(src.Width()), float64(src.Height())
	stepX, stepY := sw/float64(n), sh/float64(n)
	if stepX <= 0.001 || stepY <= 0.001 {
		return fmt.Errorf("warp: grid step %.4gx%.4g: %w", stepX, stepY, ErrDegenerate)
	}

	img := src.RGBA()
	var firstErr error
	for j := 0; j < n; j++ {
		v0, v1 := float64(j)/float64(n), float64(j+1)/float64(n)
		for i := 0; i < n; i++ {
			u0, u1 := float64(i)/float64(n), float64(i+1)/float64(n)

			s00 := raster.Pt(u0*sw, v0*sh)
			s10 := raster.Pt(u1*sw, v0*sh)
			s01 := raster.Pt(u0*sw, v1*sh)
			s11 := raster.Pt(u1*sw, v1*sh)

			p00, p10 := q.At(u0, v0), q.At(u1, v0)
			p01, p11 := q.At(u0, v1), q.At(u1, v1)

			sr := r.padded(s00, s11, src.Bounds())

			err := r.triangle(dst, img, sr, [3]raster.Point{s00, s10, s01}, [3]raster.Point{p00, p10, p01})
			if err != nil && firstErr == nil {
				firstErr = err
			}
			err = r.triangle(dst, img, sr, [3]raster.Point{s10, s11, s01}, [3]raster.Point{p10, p11, p01})
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// minArea is the smallest destination triangle area, in square pixels,
// that is drawn. Collapsed triangles cover nothing and have no inverse.
const minArea = 1e-6

func (r *Renderer) triangle(dst *raster.Pixmap, src image.Image, sr image.Rectangle, s, d [3]raster.Point) error {
	if math.Abs(signedArea(d)) < minArea {
		return nil
	}
	m, err := TriangleAffine(s, d)
	if err != nil {
		return err
	}
	clip := Bloat(d, r.Bloat)
	bounds := raster.PolylineBounds(clip[:], 1).Intersect(dst.Bounds())
	if bounds.Empty() {
		return nil
	}
	raster.DrawTransformed(dst, src, sr, m, raster.PolygonMask(bounds, clip[:]))
	return nil
}

// signedArea returns the signed area of t, positive when clockwise in
// y-down coordinates.
func signedArea(t [3]raster.Point) float64 {
	return ((t[1].X-t[0].X)*(t[2].Y-t[0].Y) - (t[2].X-t[0].X)*(t[1].Y-t[0].Y)) / 2
}

// padded returns the integer source rectangle spanning min..max grown by
// r.Pad on every side and clamped to bounds.
func (r *Renderer) padded(minP, maxP raster.Point, bounds image.Rectangle) image.Rectangle {
	pad := float64(r.Pad)
	return image.Rect(
		int(math.Floor(minP.X-pad)), int(math.Floor(minP.Y-pad)),
		int(math.Ceil(maxP.X+pad)), int(math.Ceil(maxP.Y+pad)),
	).Intersect(bounds)
}
