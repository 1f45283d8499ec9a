// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package document

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/compositor/raster"
)

// Selection is a closed canvas-space polygon that clips painting.
// A selection with fewer than three points clips nothing.
type Selection []raster.Point

// Active reports whether the selection clips.
func (s Selection) Active() bool {
	return len(s) >= 3
}

// Brush describes a freehand stroke.
type Brush struct {
	Color raster.RGBA
	// Size is the stroke diameter in canvas pixels, at least 1.
	Size float64
	// Erase removes content instead of painting Color.
	Erase bool
}

// Paint draws a stroke through the canvas points pts into pm, which holds
// the pixels of l. Points are mapped into the layer's un-rotated frame and
// scaled to buffer pixels; an active selection is mapped the same way and
// clips the stroke. Paint writes pm in place and is meant for buffers the
// caller owns, such as one cloned at the start of a gesture.
func Paint(pm *raster.Pixmap, l *Layer, pts []raster.Point, b Brush, sel Selection) {
	if pm == nil || len(pts) == 0 {
		return
	}
	sx, sy := l.BufferScale()
	size := max(b.Size, 1) * (sx + sy) / 2

	local := make([]raster.Point, len(pts))
	for i, p := range pts {
		local[i] = l.BufferPoint(p)
	}
	bounds := raster.PolylineBounds(local, size/2+1).Intersect(pm.Bounds())
	if bounds.Empty() {
		return
	}

	mask := raster.StrokeMask(bounds, local, size)
	if sel.Active() {
		clipMask(mask, selectionMask(l, sel, bounds))
	}

	if b.Erase {
		erase(pm, mask)
		return
	}
	xdraw.DrawMask(pm.RGBA(), bounds, image.NewUniform(b.Color.Color()), image.Point{}, mask, bounds.Min, xdraw.Over)
}

// Stroke paints pts onto the layer's pixels and returns the new document.
// The layer receives a new buffer; earlier documents keep the old one.
func (d *Document) Stroke(id ID, pts []raster.Point, b Brush, sel Selection) *Document {
	l := d.Layer(id)
	if l == nil || l.Pixels == nil || len(pts) == 0 {
		return d
	}
	pm := l.Pixels.Clone()
	Paint(pm, l, pts, b, sel)
	return d.Update(id, Patch{Pixels: pm})
}

// DeleteSelection clears the layer's pixels inside the selection.
func (d *Document) DeleteSelection(id ID, sel Selection) *Document {
	l := d.Layer(id)
	if l == nil || l.Pixels == nil || !sel.Active() {
		return d
	}
	pm := l.Pixels.Clone()
	erase(pm, selectionMask(l, sel, pm.Bounds()))
	return d.Update(id, Patch{Pixels: pm})
}

func selectionMask(l *Layer, sel Selection, bounds image.Rectangle) *image.Alpha {
	pts := make([]raster.Point, len(sel))
	for i, p := range sel {
		pts[i] = l.BufferPoint(p)
	}
	return raster.PolygonMask(bounds, pts)
}

// clipMask multiplies mask by clip in place.
func clipMask(mask, clip *image.Alpha) {
	b := mask.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := mask.PixOffset(x, y)
			c := uint32(clip.AlphaAt(x, y).A)
			mask.Pix[i] = uint8((uint32(mask.Pix[i])*c + 127) / 255)
		}
	}
}

// erase scales every pixel under mask by 1 - coverage (destination-out).
func erase(pm *raster.Pixmap, mask *image.Alpha) {
	b := mask.Rect.Intersect(pm.Bounds())
	data := pm.Data()
	w := pm.Width()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := uint32(mask.Pix[mask.PixOffset(x, y)])
			if m == 0 {
				continue
			}
			keep := 255 - m
			i := (y*w + x) * 4
			for k := 0; k < 4; k++ {
				data[i+k] = uint8((uint32(data[i+k])*keep + 127) / 255)
			}
		}
	}
}
