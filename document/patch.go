// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package document

import (
	"github.com/gogpu/compositor/effect"
	"github.com/gogpu/compositor/raster"
	"github.com/gogpu/compositor/typeset"
	"github.com/gogpu/compositor/warp"
)

// Patch is a partial set of layer attributes. Nil fields are left alone.
//
// Width and Height are ignored for text layers, whose size is derived
// from Text and Style.
type Patch struct {
	Name *string

	X, Y          *float64
	Width, Height *float64
	Rotation      *float64

	Warp      *warp.Quad
	ClearWarp bool

	Visible *bool
	Locked  *bool
	Opacity *float64
	Blend   *raster.BlendMode

	Filters *Filters
	Effects *effect.Set

	// Pixels replaces the buffer of image and drawing layers. The layer
	// takes ownership.
	Pixels *raster.Pixmap

	Text  *string
	Style *typeset.Style
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T {
	return &v
}

// Move returns a patch that places a layer's box at (x, y).
func Move(x, y float64) Patch {
	return Patch{X: &x, Y: &y}
}

// Resize returns a patch that sets a layer's box.
func Resize(x, y, w, h float64) Patch {
	return Patch{X: &x, Y: &y, Width: &w, Height: &h}
}

func (p Patch) apply(l *Layer) {
	set(&l.Name, p.Name)
	set(&l.X, p.X)
	set(&l.Y, p.Y)
	if l.Kind != KindText {
		set(&l.Width, p.Width)
		set(&l.Height, p.Height)
	}
	set(&l.Rotation, p.Rotation)
	if p.ClearWarp {
		l.Warp = nil
	}
	if p.Warp != nil && l.Kind.HasPixels() {
		q := *p.Warp
		l.Warp = &q
	}
	set(&l.Visible, p.Visible)
	set(&l.Locked, p.Locked)
	set(&l.Opacity, p.Opacity)
	set(&l.Blend, p.Blend)
	set(&l.Filters, p.Filters)
	if p.Effects != nil {
		l.Effects = p.Effects.Clone()
	}
	if p.Pixels != nil && l.Kind.HasPixels() {
		l.Pixels = p.Pixels
	}
	if l.Kind == KindText {
		set(&l.Text, p.Text)
		set(&l.Style, p.Style)
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
