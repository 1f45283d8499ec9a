// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package typeset

import (
	"image"
	"math"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/compositor/raster"
)

// ascent returns the font ascent in pixels at size, or 0.8*size if the
// font carries no usable metrics.
func (f *Face) ascent(size float64) float64 {
	var buf sfnt.Buffer
	m, err := f.outlines.Metrics(&buf, fixed.Int26_6(size*64), xfont.HintingNone)
	if err != nil || m.Ascent <= 0 {
		return size * 0.8
	}
	return fixedToFloat(m.Ascent)
}

// LineOrigin returns the baseline start of line i inside a box of the
// given width, honoring the alignment.
func (l *Layout) LineOrigin(i int, boxWidth float64) raster.Point {
	line := l.Lines[i]
	x := 0.0
	switch l.Style.Align {
	case AlignCenter:
		x = (boxWidth - line.Width) / 2
	case AlignRight:
		x = boxWidth - line.Width
	}
	return raster.Pt(x, float64(i)*l.LineHeight+l.Ascent)
}

// Draw renders the layout onto dst. m maps box coordinates, with the
// origin at the top-left of the text box, to dst pixels. The fill is drawn
// first and the stroke, if any, over it.
func (l *Layout) Draw(dst *raster.Pixmap, m raster.Matrix, boxWidth float64) {
	stroke := 0
	if l.Style.StrokeWidth > 0 && l.Style.Stroke.A > 0 {
		stroke = max(int(math.Round(l.Style.StrokeWidth/2)), 1)
	}

	box := image.Rect(0, 0, int(math.Ceil(math.Max(boxWidth, l.Width))), int(math.Ceil(l.Height)))
	// Glyphs may overhang their advance box.
	overhang := int(math.Ceil(l.Style.size()*0.5)) + stroke
	bounds := raster.TransformedBounds(box.Inset(-overhang), m).Intersect(dst.Bounds())
	if bounds.Empty() {
		return
	}

	mask := l.coverage(bounds, m, boxWidth)
	target := dst.RGBA()

	if l.Style.Fill.A > 0 {
		xdraw.DrawMask(target, bounds, image.NewUniform(l.Style.Fill.Color()), image.Point{}, mask, bounds.Min, xdraw.Over)
	}
	if stroke > 0 {
		outline := strokeOf(mask, stroke)
		xdraw.DrawMask(target, bounds, image.NewUniform(l.Style.Stroke.Color()), image.Point{}, outline, bounds.Min, xdraw.Over)
	}
}

// coverage rasterizes every glyph outline into an alpha mask over bounds.
func (l *Layout) coverage(bounds image.Rectangle, m raster.Matrix, boxWidth float64) *image.Alpha {
	mask := image.NewAlpha(bounds)
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	// Translate into mask space.
	m = raster.Translate(-float64(bounds.Min.X), -float64(bounds.Min.Y)).Multiply(m)

	var buf sfnt.Buffer
	ppem := fixed.Int26_6(l.Style.size() * 64)
	drawn := false

	for i, line := range l.Lines {
		origin := l.LineOrigin(i, boxWidth)
		for _, g := range line.Glyphs {
			segs, err := l.face.outlines.LoadGlyph(&buf, sfnt.GlyphIndex(g.ID), ppem, nil)
			if err != nil {
				continue
			}
			gm := m.Multiply(raster.Translate(origin.X+g.X, origin.Y+g.Y))
			if addOutline(z, segs, gm) {
				drawn = true
			}
		}
	}
	if drawn {
		z.Draw(mask, mask.Rect, image.Opaque, image.Point{})
	}
	return mask
}

func addOutline(z *vector.Rasterizer, segs sfnt.Segments, m raster.Matrix) bool {
	pt := func(p fixed.Point26_6) (float32, float32) {
		q := m.TransformPoint(raster.Pt(fixedToFloat(p.X), fixedToFloat(p.Y)))
		return float32(q.X), float32(q.Y)
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		z.ClosePath()
	}
	return len(segs) > 0
}

// strokeOf returns a band of width 2r centered on the edge of mask.
func strokeOf(mask *image.Alpha, r int) *image.Alpha {
	outer := raster.Dilate(mask, r)
	inner := raster.Erode(mask, r)
	for i := range outer.Pix {
		if inner.Pix[i] >= outer.Pix[i] {
			outer.Pix[i] = 0
		} else {
			outer.Pix[i] -= inner.Pix[i]
		}
	}
	return outer
}
