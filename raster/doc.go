// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster provides the pixel buffer and 2D geometry primitives the
// compositor is built on.
//
// A [Pixmap] stores premultiplied RGBA8 pixels and is owned by exactly one
// layer or by the compositing engine. Operations that write to a Pixmap take
// it by pointer and never retain it, so ownership stays explicit:
//
//	pm := raster.NewPixmap(320, 240)
//	pm.Clear(raster.White)
//	dup := pm.Clone() // independent bytes
//
// Geometry uses the usual screen convention: origin at the top-left, X to the
// right, Y down, positive angles rotate clockwise on screen.
//
// Masks are rasterized with golang.org/x/image/vector and transformed image
// draws go through golang.org/x/image/draw, so any [Pixmap] can be handed to
// code expecting a draw.Image.
package raster
