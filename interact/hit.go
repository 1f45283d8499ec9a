// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package interact

import (
	"math"

	"github.com/gogpu/compositor/document"
	"github.com/gogpu/compositor/raster"
	"github.com/gogpu/compositor/warp"
)

const (
	// DefaultThreshold is the handle grab radius in viewport pixels.
	DefaultThreshold = 10

	// RotateHandleOffset is the distance of the rotation handle above the
	// top edge, in viewport pixels.
	RotateHandleOffset = 20
)

// Handle identifies the part of a layer under the pointer.
type Handle uint8

const (
	HandleNone Handle = iota
	HandleBody
	HandleCorner
	HandleRotate
	HandleWarp
)

func (h Handle) String() string {
	switch h {
	case HandleBody:
		return "body"
	case HandleCorner:
		return "corner"
	case HandleRotate:
		return "rotate"
	case HandleWarp:
		return "warp"
	}
	return "none"
}

// Hit is the result of a hit test. Corner is set for HandleCorner and
// HandleWarp.
type Hit struct {
	Handle Handle
	Corner warp.Corner
}

// localCorners are the box corners relative to its center, in the
// un-rotated frame.
func localCorners(w, h float64) [4]raster.Point {
	return [4]raster.Point{
		warp.TopLeft:     raster.Pt(-w/2, -h/2),
		warp.TopRight:    raster.Pt(w/2, -h/2),
		warp.BottomLeft:  raster.Pt(-w/2, h/2),
		warp.BottomRight: raster.Pt(w/2, h/2),
	}
}

// HitTest tests the canvas point p against the rotated box of l. The
// threshold is in viewport pixels and is divided by zoom, so handles keep
// their on-screen size. The rotation handle wins over corners, and corners
// over the body.
func HitTest(l *document.Layer, p raster.Point, zoom, threshold float64) Hit {
	if l == nil {
		return Hit{}
	}
	if zoom <= 0 {
		zoom = 1
	}
	r := threshold / zoom
	lp := l.LocalPoint(p)

	handle := raster.Pt(0, -l.Height/2-RotateHandleOffset/zoom)
	if lp.Distance(handle) <= r {
		return Hit{Handle: HandleRotate}
	}
	for c, cp := range localCorners(l.Width, l.Height) {
		if lp.Distance(cp) <= r {
			return Hit{Handle: HandleCorner, Corner: warp.Corner(c)}
		}
	}
	if math.Abs(lp.X) <= l.Width/2 && math.Abs(lp.Y) <= l.Height/2 {
		return Hit{Handle: HandleBody}
	}
	return Hit{}
}

// HitWarp tests p against the corners of q by plain distance. When
// several corners are in range the nearest wins.
func HitWarp(q warp.Quad, p raster.Point, zoom, threshold float64) Hit {
	if zoom <= 0 {
		zoom = 1
	}
	r := threshold / zoom
	best, hit := r, Hit{}
	for _, c := range warp.Corners {
		if d := q.Corner(c).Distance(p); d <= best {
			best, hit = d, Hit{Handle: HandleWarp, Corner: c}
		}
	}
	return hit
}

// LayerAt returns the topmost visible layer whose box contains p, or nil.
func LayerAt(d *document.Document, p raster.Point) *document.Layer {
	for _, l := range d.Layers() {
		if !l.Visible {
			continue
		}
		lp := l.LocalPoint(p)
		if math.Abs(lp.X) <= l.Width/2 && math.Abs(lp.Y) <= l.Height/2 {
			return l
		}
	}
	return nil
}
