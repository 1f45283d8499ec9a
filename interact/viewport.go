// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package interact turns pointer input into document edits.
//
// A [Viewport] maps between the host window and the canvas. [HitTest]
// finds the handle of a layer under a canvas point, and a [Controller]
// runs the move, scale, rotate, warp and brush gestures. Every gesture
// edits the document continuously while the pointer is down and reports a
// single commit on release.
package interact

import "github.com/gogpu/compositor/raster"

// Viewport is the window the canvas is shown in. The canvas center sits at
// the viewport center shifted by (PanX, PanY) viewport pixels.
type Viewport struct {
	Width, Height float64
	Zoom          float64
	PanX, PanY    float64
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// ToCanvas maps a viewport point to canvas coordinates for a canvas of
// size cw x ch.
func (v Viewport) ToCanvas(p raster.Point, cw, ch int) raster.Point {
	z := v.zoom()
	return raster.Pt(
		(p.X-v.Width/2-v.PanX)/z+float64(cw)/2,
		(p.Y-v.Height/2-v.PanY)/z+float64(ch)/2,
	)
}

// ToViewport is the inverse of ToCanvas.
func (v Viewport) ToViewport(p raster.Point, cw, ch int) raster.Point {
	z := v.zoom()
	return raster.Pt(
		(p.X-float64(cw)/2)*z+v.Width/2+v.PanX,
		(p.Y-float64(ch)/2)*z+v.Height/2+v.PanY,
	)
}

// CanvasTransform returns the matrix that draws canvas pixels into the
// viewport.
func (v Viewport) CanvasTransform(cw, ch int) raster.Matrix {
	z := v.zoom()
	return raster.Translate(v.Width/2+v.PanX, v.Height/2+v.PanY).
		Multiply(raster.Scale(z, z)).
		Multiply(raster.Translate(-float64(cw)/2, -float64(ch)/2))
}
