// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package interact

import (
	"math"
	"strings"

	"github.com/gogpu/compositor/document"
	"github.com/gogpu/compositor/raster"
	"github.com/gogpu/compositor/warp"
)

// Tool selects what a pointer drag does.
type Tool uint8

const (
	// ToolSelect moves, scales and rotates the active layer.
	ToolSelect Tool = iota
	// ToolWarp drags the corners of the active layer's warp quad.
	ToolWarp
	// ToolBrush paints on the active image or drawing layer.
	ToolBrush
	// ToolEraser erases from the active image or drawing layer.
	ToolEraser
)

var toolNames = [...]string{"select", "warp", "brush", "eraser"}

func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "unknown"
}

// ParseTool returns the tool with the given name.
func ParseTool(s string) (Tool, bool) {
	for i, n := range toolNames {
		if strings.EqualFold(s, n) {
			return Tool(i), true
		}
	}
	return ToolSelect, false
}

type gesture uint8

const (
	gestureNone gesture = iota
	gestureMove
	gestureScale
	gestureRotate
	gestureWarp
	gesturePaint
)

// Controller runs pointer gestures against a document. Pointer positions
// are in viewport coordinates.
//
// Between PointerDown and PointerUp the controller returns a new document
// for every step. PointerUp reports whether the gesture changed anything,
// and the caller commits to history exactly once when it did.
//
// Brush and eraser gestures clone the layer's buffer on PointerDown and
// paint into that clone in place until PointerUp; documents returned
// during the gesture share it.
type Controller struct {
	Tool      Tool
	Brush     document.Brush
	Selection document.Selection
	// Threshold is the handle grab radius in viewport pixels.
	Threshold float64

	g       gesture
	id      document.ID
	corner  warp.Corner
	start   raster.Point
	last    raster.Point
	initial document.Layer
	buf     *raster.Pixmap
	changed bool
}

// NewController returns a controller with the select tool and a 5px black
// brush.
func NewController() *Controller {
	return &Controller{
		Tool:      ToolSelect,
		Brush:     document.Brush{Color: raster.Black, Size: 5},
		Threshold: DefaultThreshold,
	}
}

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool {
	return c.g != gestureNone
}

// Hover returns the handle under the viewport point p for the current
// tool, for cursor feedback.
func (c *Controller) Hover(d *document.Document, vp Viewport, p raster.Point) Hit {
	l := d.ActiveLayer()
	if l == nil {
		return Hit{}
	}
	cp := vp.ToCanvas(p, d.Width(), d.Height())
	if c.Tool == ToolWarp && l.Warp != nil {
		return HitWarp(*l.Warp, cp, vp.zoom(), c.Threshold)
	}
	return HitTest(l, cp, vp.zoom(), c.Threshold)
}

// PointerDown starts a gesture.
func (c *Controller) PointerDown(d *document.Document, vp Viewport, p raster.Point) *document.Document {
	c.reset()
	cp := vp.ToCanvas(p, d.Width(), d.Height())
	c.start, c.last = cp, cp

	switch c.Tool {
	case ToolBrush, ToolEraser:
		return c.beginPaint(d, cp)
	case ToolWarp:
		return c.beginWarp(d, vp, cp)
	}
	return c.beginSelect(d, vp, cp)
}

func editable(l *document.Layer) bool {
	return l != nil && l.Visible && !l.Locked
}

func (c *Controller) begin(g gesture, l *document.Layer) {
	c.g = g
	c.id = l.ID
	c.initial = *l
}

func (c *Controller) beginSelect(d *document.Document, vp Viewport, cp raster.Point) *document.Document {
	l := d.ActiveLayer()
	hit := Hit{}
	if editable(l) {
		hit = HitTest(l, cp, vp.zoom(), c.Threshold)
	}
	if hit.Handle == HandleNone {
		l = LayerAt(d, cp)
		if l == nil {
			return d.SetActive(0)
		}
		d = d.SetActive(l.ID)
		if !editable(l) {
			return d
		}
		hit = Hit{Handle: HandleBody}
	}

	// A warp quad overrides the box, so only moving has a visible effect.
	if l.Warp != nil {
		hit.Handle = HandleBody
	}
	switch hit.Handle {
	case HandleBody:
		c.begin(gestureMove, l)
	case HandleCorner:
		c.begin(gestureScale, l)
		c.corner = hit.Corner
	case HandleRotate:
		c.begin(gestureRotate, l)
	}
	return d
}

func (c *Controller) beginWarp(d *document.Document, vp Viewport, cp raster.Point) *document.Document {
	l := d.ActiveLayer()
	if !editable(l) || !l.Kind.HasPixels() {
		return d
	}
	if l.Warp == nil {
		d = d.InitWarp(l.ID)
		l = d.Layer(l.ID)
		c.changed = true
	}
	hit := HitWarp(*l.Warp, cp, vp.zoom(), c.Threshold)
	if hit.Handle == HandleWarp {
		c.begin(gestureWarp, l)
		c.corner = hit.Corner
	}
	return d
}

func (c *Controller) beginPaint(d *document.Document, cp raster.Point) *document.Document {
	l := d.ActiveLayer()
	if !editable(l) || l.Pixels == nil {
		return d
	}
	c.buf = l.Pixels.Clone()
	d = d.Update(l.ID, document.Patch{Pixels: c.buf})
	l = d.Layer(l.ID)
	c.begin(gesturePaint, l)
	document.Paint(c.buf, l, []raster.Point{cp}, c.brush(), c.Selection)
	c.changed = true
	return d
}

func (c *Controller) brush() document.Brush {
	b := c.Brush
	b.Erase = c.Tool == ToolEraser
	return b
}

// PointerMove continues the gesture in progress.
func (c *Controller) PointerMove(d *document.Document, vp Viewport, p raster.Point) *document.Document {
	if c.g == gestureNone {
		return d
	}
	l := d.Layer(c.id)
	if l == nil {
		c.reset()
		return d
	}
	cp := vp.ToCanvas(p, d.Width(), d.Height())
	if cp == c.last {
		return d
	}
	defer func() { c.last = cp }()

	switch c.g {
	case gestureMove:
		return c.move(d, l, cp)
	case gestureScale:
		return c.scale(d, cp)
	case gestureRotate:
		ctr := l.Center()
		deg := raster.Degrees(math.Atan2(cp.Y-ctr.Y, cp.X-ctr.X)) + 90
		c.changed = true
		return d.Update(c.id, document.Patch{Rotation: &deg})
	case gestureWarp:
		q := l.Warp.WithCorner(c.corner, cp)
		c.changed = true
		return d.Update(c.id, document.Patch{Warp: &q})
	case gesturePaint:
		document.Paint(c.buf, l, []raster.Point{c.last, cp}, c.brush(), c.Selection)
	}
	return d
}

// move translates by the frame-to-frame delta.
func (c *Controller) move(d *document.Document, l *document.Layer, cp raster.Point) *document.Document {
	delta := cp.Sub(c.last)
	p := document.Move(l.X+delta.X, l.Y+delta.Y)
	if l.Warp != nil {
		q := l.Warp.Translate(delta)
		p.Warp = &q
	}
	c.changed = true
	return d.Update(c.id, p)
}

// scale resizes about the box center by the ratio of the pointer's
// distance from it now and at the start of the gesture.
func (c *Controller) scale(d *document.Document, cp raster.Point) *document.Document {
	ctr := c.initial.Center()
	d0 := c.start.Distance(ctr)
	if d0 < 1e-9 {
		return d
	}
	s := cp.Distance(ctr) / d0
	c.changed = true

	if c.initial.Kind == document.KindText {
		st := c.initial.Style
		st.Size = max(c.initial.Style.Size*s, 1)
		d = d.Update(c.id, document.Patch{Style: &st})
		l := d.Layer(c.id)
		return d.Update(c.id, document.Move(ctr.X-l.Width/2, ctr.Y-l.Height/2))
	}

	w := max(c.initial.Width*s, 1)
	h := max(c.initial.Height*s, 1)
	return d.Update(c.id, document.Resize(ctr.X-w/2, ctr.Y-h/2, w, h))
}

// PointerUp ends the gesture at p. It reports whether the document
// changed since PointerDown and should be committed.
func (c *Controller) PointerUp(d *document.Document, vp Viewport, p raster.Point) (*document.Document, bool) {
	d = c.PointerMove(d, vp, p)
	commit := c.changed
	c.reset()
	return d, commit
}

// End stops the gesture in progress where it is, as if the pointer had
// been released at its last position. It reports whether the gesture
// changed the document. After End the controller no longer writes to any
// buffer handed out during the gesture.
func (c *Controller) End() bool {
	changed := c.changed
	c.reset()
	return changed
}

// Cancel drops the gesture in progress without reporting a commit. The
// caller is responsible for discarding the documents the gesture produced.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.g = gestureNone
	c.id = 0
	c.buf = nil
	c.changed = false
	c.initial = document.Layer{}
}
