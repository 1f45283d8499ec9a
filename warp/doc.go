// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package warp renders a rectangular image onto an arbitrary quadrilateral.
//
// The mapping is piecewise affine: the source is cut into a Grid x Grid
// lattice, each destination cell is bilinearly interpolated from the quad
// corners, and each cell is drawn as two triangles with their own affine
// transform. Triangles are clipped to slightly bloated copies of themselves
// so neighbouring triangles overlap by a fraction of a pixel and no seams
// show through.
//
//	q := warp.FromBox(x, y, w, h, rotation)
//	q.TR = q.TR.Add(raster.Pt(30, -10))
//	err := warp.DefaultRenderer().Render(scratch, layerPixels, q)
package warp
