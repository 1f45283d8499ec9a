// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package document

import (
	"image"

	"github.com/gogpu/compositor/raster"
	"github.com/gogpu/compositor/typeset"
)

// DuplicateOffset is how far a duplicated layer is moved from its source.
const DuplicateOffset = 20

// Measurer derives the box size of text.
type Measurer interface {
	Measure(text string, st typeset.Style) (width, height float64, err error)
}

// Option configures a Document.
type Option func(*Document)

// WithMeasurer sets the text measurer used for text layers.
// The default is typeset.DefaultFontBook().
func WithMeasurer(m Measurer) Option {
	return func(d *Document) {
		if m != nil {
			d.measure = m
		}
	}
}

// Document is an ordered stack of layers and the canvas they are drawn on.
//
// A Document is immutable: every operation returns a new Document and
// leaves the receiver untouched, so old values can be kept as history.
// Operations that target a layer id not in the document return the
// receiver unchanged.
type Document struct {
	// layers[0] is the topmost layer.
	layers []*Layer
	active ID
	width  int
	height int
	nextID ID

	measure Measurer
}

// New returns an empty document with the given canvas size.
// Dimensions below 1 are clamped to 1.
func New(width, height int, opts ...Option) *Document {
	d := &Document{
		width:   max(width, 1),
		height:  max(height, 1),
		nextID:  1,
		measure: typeset.DefaultFontBook(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Document) copy() *Document {
	c := *d
	c.layers = append([]*Layer(nil), d.layers...)
	return &c
}

// Width returns the canvas width in pixels.
func (d *Document) Width() int { return d.width }

// Height returns the canvas height in pixels.
func (d *Document) Height() int { return d.height }

// Bounds returns the canvas rectangle.
func (d *Document) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Len returns the number of layers.
func (d *Document) Len() int { return len(d.layers) }

// Layers returns the layers, topmost first. The returned layers must not
// be modified.
func (d *Document) Layers() []*Layer {
	return append([]*Layer(nil), d.layers...)
}

// Layer returns the layer with the given id, or nil.
func (d *Document) Layer(id ID) *Layer {
	if i := d.Index(id); i >= 0 {
		return d.layers[i]
	}
	return nil
}

// Index returns the stack position of id, or -1. Position 0 is topmost.
func (d *Document) Index(id ID) int {
	for i, l := range d.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Active returns the id of the active layer, or 0 if none.
func (d *Document) Active() ID { return d.active }

// ActiveLayer returns the active layer, or nil.
func (d *Document) ActiveLayer() *Layer {
	if d.active == 0 {
		return nil
	}
	return d.Layer(d.active)
}

// Add inserts l at the top of the stack with a fresh id and makes it
// active. Text layers are measured; other sizes are clamped to at least 1.
func (d *Document) Add(l Layer) (*Document, ID) {
	n := d.copy()
	nl := l
	nl.ID = n.nextID
	n.nextID++
	if nl.Kind == KindText {
		n.measureText(&nl)
	}
	n.fit(&nl)
	n.layers = append([]*Layer{&nl}, n.layers...)
	n.active = nl.ID
	return n, nl.ID
}

// Remove deletes the layer. If it was active, the new top layer becomes
// active, or none if the stack is empty.
func (d *Document) Remove(id ID) *Document {
	i := d.Index(id)
	if i < 0 {
		return d
	}
	n := d.copy()
	n.layers = append(n.layers[:i], n.layers[i+1:]...)
	if n.active == id {
		n.active = 0
		if len(n.layers) > 0 {
			n.active = n.layers[0].ID
		}
	}
	return n
}

// Duplicate copies the layer, including an independent pixel buffer, moves
// the copy by DuplicateOffset in both axes and inserts it at the top as
// the active layer.
func (d *Document) Duplicate(id ID) (*Document, ID) {
	src := d.Layer(id)
	if src == nil {
		return d, 0
	}
	c := src.deepClone()
	c.X += DuplicateOffset
	c.Y += DuplicateOffset
	if c.Warp != nil {
		q := c.Warp.Translate(raster.Pt(DuplicateOffset, DuplicateOffset))
		c.Warp = &q
	}
	c.Name = src.Name + " copy"
	return d.Add(*c)
}

// Update merges p into the layer.
func (d *Document) Update(id ID, p Patch) *Document {
	i := d.Index(id)
	if i < 0 {
		return d
	}
	n := d.copy()
	l := n.layers[i].clone()
	p.apply(l)
	if l.Kind == KindText && (p.Text != nil || p.Style != nil) {
		n.measureText(l)
	}
	n.fit(l)
	n.layers[i] = l
	return n
}

// Direction moves a layer within the stack.
type Direction int

const (
	// Up moves a layer toward the top of the stack.
	Up Direction = -1
	// Down moves a layer toward the bottom of the stack.
	Down Direction = 1
)

// Reorder swaps the layer with its neighbor in direction dir. Moving past
// either end of the stack does nothing.
func (d *Document) Reorder(id ID, dir Direction) *Document {
	i := d.Index(id)
	j := i + int(dir)
	if i < 0 || (dir != Up && dir != Down) || j < 0 || j >= len(d.layers) {
		return d
	}
	n := d.copy()
	n.layers[i], n.layers[j] = n.layers[j], n.layers[i]
	return n
}

// SetCanvasSize changes the canvas size. Dimensions below 1 are clamped.
func (d *Document) SetCanvasSize(width, height int) *Document {
	n := d.copy()
	n.width, n.height = max(width, 1), max(height, 1)
	return n
}

// Crop makes r the new canvas. Every layer, and its warp quad, is
// translated by -r.Min; layer content is not clipped.
func (d *Document) Crop(r image.Rectangle) *Document {
	n := d.copy()
	off := raster.Pt(-float64(r.Min.X), -float64(r.Min.Y))
	for i, l := range n.layers {
		c := l.clone()
		c.X += off.X
		c.Y += off.Y
		if c.Warp != nil {
			q := c.Warp.Translate(off)
			c.Warp = &q
		}
		n.layers[i] = c
	}
	n.width, n.height = max(r.Dx(), 1), max(r.Dy(), 1)
	return n
}

// SetActive makes id the active layer. Zero clears the active layer.
func (d *Document) SetActive(id ID) *Document {
	if id != 0 && d.Index(id) < 0 {
		return d
	}
	n := d.copy()
	n.active = id
	return n
}

// InitWarp gives an image or drawing layer a warp quad matching its
// current rotated box. A layer that already has a quad keeps it.
func (d *Document) InitWarp(id ID) *Document {
	l := d.Layer(id)
	if l == nil || !l.Kind.HasPixels() || l.Warp != nil {
		return d
	}
	q := l.Corners()
	return d.Update(id, Patch{Warp: &q})
}

// ClearWarp returns the layer to rotated-box geometry.
func (d *Document) ClearWarp(id ID) *Document {
	l := d.Layer(id)
	if l == nil || l.Warp == nil {
		return d
	}
	return d.Update(id, Patch{ClearWarp: true})
}

// Restore replaces the layer stack, as after undo or redo. If the active
// layer is no longer present, the top layer becomes active.
func (d *Document) Restore(layers []*Layer) *Document {
	n := d.copy()
	n.layers = append([]*Layer(nil), layers...)
	for _, l := range n.layers {
		if l.ID >= n.nextID {
			n.nextID = l.ID + 1
		}
	}
	if n.active != 0 && n.Index(n.active) < 0 {
		n.active = 0
		if len(n.layers) > 0 {
			n.active = n.layers[0].ID
		}
	}
	return n
}

// fit enforces size and range invariants on l.
func (d *Document) fit(l *Layer) {
	l.Width = max(l.Width, 1)
	l.Height = max(l.Height, 1)
	l.Opacity = min(max(l.Opacity, 0), 1)
	l.Style.StrokeWidth = max(l.Style.StrokeWidth, 0)
}

// measureText clamps the font size and derives the layer size from the
// text. A zero size is left alone; it selects the typeset default.
func (d *Document) measureText(l *Layer) {
	if l.Style.Size != 0 {
		l.Style.Size = max(l.Style.Size, 1)
	}
	w, h, err := d.measure.Measure(l.Text, l.Style)
	if err != nil {
		// Keep the previous size; the renderer skips text it cannot shape.
		return
	}
	l.Width, l.Height = w, h
}
