// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package document

import (
	"github.com/gogpu/compositor/effect"
	"github.com/gogpu/compositor/raster"
	"github.com/gogpu/compositor/typeset"
	"github.com/gogpu/compositor/warp"
)

// ID identifies a layer. IDs are assigned in creation order and never
// reused within a document's lineage. Zero means no layer.
type ID uint64

// Kind is the content type of a layer.
type Kind uint8

const (
	KindImage Kind = iota
	KindDrawing
	KindText
)

var kindNames = [...]string{"image", "drawing", "text"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// HasPixels reports whether layers of this kind own a raster buffer.
func (k Kind) HasPixels() bool {
	return k == KindImage || k == KindDrawing
}

// Filters are the non-destructive color and blur adjustments of a layer.
type Filters struct {
	// Brightness, Contrast and Saturation are percentages; 100 is neutral.
	Brightness float64
	Contrast   float64
	Saturation float64
	// Blur is the Gaussian standard deviation in pixels; 0 is neutral.
	Blur float64
	// Sepia and Grayscale are percentages; 0 is neutral.
	Sepia     float64
	Grayscale float64
	// HueRotate is in degrees; 0 is neutral.
	HueRotate float64
}

// NeutralFilters returns filters that leave content unchanged.
func NeutralFilters() Filters {
	return Filters{Brightness: 100, Contrast: 100, Saturation: 100}
}

// IsNeutral reports whether f leaves content unchanged.
func (f Filters) IsNeutral() bool {
	return f == NeutralFilters()
}

// Layer is one editable content unit.
//
// Layers held by a Document are shared with history snapshots and must be
// treated as read-only; change them through Document operations.
type Layer struct {
	ID   ID
	Name string
	Kind Kind

	// X and Y locate the top-left of the un-rotated bounding box.
	X, Y          float64
	Width, Height float64
	// Rotation is in degrees, clockwise, about the box center.
	Rotation float64

	// Warp overrides position and rotation when rendering image and
	// drawing layers.
	Warp *warp.Quad

	Visible bool
	Locked  bool
	// Opacity is in [0, 1].
	Opacity float64
	Blend   raster.BlendMode

	Filters Filters
	Effects effect.Set

	// Pixels is the content of image and drawing layers.
	Pixels *raster.Pixmap

	// Text and Style are the content of text layers.
	Text  string
	Style typeset.Style
}

// NewImageLayer returns a visible layer showing pm at its natural size,
// placed at the canvas origin. The layer takes ownership of pm.
func NewImageLayer(name string, pm *raster.Pixmap) Layer {
	l := baseLayer(name, KindImage)
	l.Pixels = pm
	l.Width, l.Height = float64(pm.Width()), float64(pm.Height())
	return l
}

// NewDrawingLayer returns a transparent drawing layer of the given size.
func NewDrawingLayer(name string, width, height int) Layer {
	l := baseLayer(name, KindDrawing)
	l.Pixels = raster.NewPixmap(width, height)
	l.Width, l.Height = float64(l.Pixels.Width()), float64(l.Pixels.Height())
	return l
}

// NewTextLayer returns a text layer. Its size is derived when it is added
// to a Document.
func NewTextLayer(name, text string, style typeset.Style) Layer {
	l := baseLayer(name, KindText)
	l.Text = text
	l.Style = style
	l.Width, l.Height = 1, 1
	return l
}

func baseLayer(name string, kind Kind) Layer {
	return Layer{
		Name:    name,
		Kind:    kind,
		Visible: true,
		Opacity: 1,
		Filters: NeutralFilters(),
		Effects: effect.Defaults(),
	}
}

// clone returns a copy of l that shares its pixel buffer.
func (l *Layer) clone() *Layer {
	c := *l
	if l.Warp != nil {
		q := *l.Warp
		c.Warp = &q
	}
	return &c
}

// deepClone returns a copy of l with its own pixel buffer.
func (l *Layer) deepClone() *Layer {
	c := l.clone()
	if l.Pixels != nil {
		c.Pixels = l.Pixels.Clone()
	}
	return c
}

// Center returns the center of the bounding box in canvas space.
func (l *Layer) Center() raster.Point {
	return raster.Pt(l.X+l.Width/2, l.Y+l.Height/2)
}

// Corners returns the rotated bounding box.
func (l *Layer) Corners() warp.Quad {
	return warp.FromBox(l.X, l.Y, l.Width, l.Height, l.Rotation)
}

// LocalPoint maps a canvas point into the layer's un-rotated frame,
// relative to the box center.
func (l *Layer) LocalPoint(p raster.Point) raster.Point {
	c := l.Center()
	return p.Sub(c).Rotate(-raster.Radians(l.Rotation))
}

// BoxTransform maps box coordinates, with the origin at the un-rotated
// top-left corner, to canvas coordinates.
func (l *Layer) BoxTransform() raster.Matrix {
	c := l.Center()
	return raster.Translate(c.X, c.Y).
		Multiply(raster.Rotate(raster.Radians(l.Rotation))).
		Multiply(raster.Translate(-l.Width/2, -l.Height/2))
}

// BufferScale returns the pixel buffer resolution per box unit.
// Layers without pixels report 1, 1.
func (l *Layer) BufferScale() (sx, sy float64) {
	if l.Pixels == nil || l.Width <= 0 || l.Height <= 0 {
		return 1, 1
	}
	return float64(l.Pixels.Width()) / l.Width, float64(l.Pixels.Height()) / l.Height
}

// BufferPoint maps a canvas point to pixel buffer coordinates.
func (l *Layer) BufferPoint(p raster.Point) raster.Point {
	q := l.LocalPoint(p).Add(raster.Pt(l.Width/2, l.Height/2))
	sx, sy := l.BufferScale()
	return raster.Pt(q.X*sx, q.Y*sy)
}
