// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package interact

import (
	"math"
	"testing"

	"github.com/gogpu/compositor/document"
	"github.com/gogpu/compositor/raster"
	"github.com/gogpu/compositor/typeset"
	"github.com/gogpu/compositor/warp"
)

func TestViewportToCanvas(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		in   raster.Point
		want raster.Point
	}{
		{"center", Viewport{Width: 800, Height: 600, Zoom: 2}, raster.Pt(400, 300), raster.Pt(200, 150)},
		{"zoomed", Viewport{Width: 800, Height: 600, Zoom: 2}, raster.Pt(500, 300), raster.Pt(250, 150)},
		{"panned", Viewport{Width: 800, Height: 600, Zoom: 1, PanX: 10, PanY: -20}, raster.Pt(410, 280), raster.Pt(200, 150)},
		{"zero zoom", Viewport{Width: 400, Height: 300}, raster.Pt(0, 0), raster.Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.vp.ToCanvas(tt.in, 400, 300)
			if !near(got, tt.want) {
				t.Errorf("ToCanvas = %v, want %v", got, tt.want)
			}
			if back := tt.vp.ToViewport(got, 400, 300); !near(back, tt.in) {
				t.Errorf("ToViewport = %v, want %v", back, tt.in)
			}
			if m := tt.vp.CanvasTransform(400, 300).TransformPoint(got); !near(m, tt.in) {
				t.Errorf("CanvasTransform = %v, want %v", m, tt.in)
			}
		})
	}
}

func TestHitTest(t *testing.T) {
	d, id := boxDoc(t)
	l := d.Layer(id)

	tests := []struct {
		name string
		p    raster.Point
		zoom float64
		want Hit
	}{
		{"body", raster.Pt(60, 35), 1, Hit{Handle: HandleBody}},
		{"top left", raster.Pt(12, 8), 1, Hit{Handle: HandleCorner, Corner: warp.TopLeft}},
		{"bottom right", raster.Pt(110, 60), 1, Hit{Handle: HandleCorner, Corner: warp.BottomRight}},
		{"rotate handle", raster.Pt(60, -10), 1, Hit{Handle: HandleRotate}},
		{"rotate handle zoomed", raster.Pt(60, 0), 2, Hit{Handle: HandleRotate}},
		{"threshold shrinks with zoom", raster.Pt(16, 10), 2, Hit{Handle: HandleBody}},
		{"outside", raster.Pt(150, 150), 1, Hit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(l, tt.p, tt.zoom, DefaultThreshold); got != tt.want {
				t.Errorf("HitTest = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHitTestRotated(t *testing.T) {
	d, id := boxDoc(t)
	d = d.Update(id, document.Patch{Rotation: document.Ptr(90.0)})
	l := d.Layer(id)

	// Center (60,35); rotated 90 degrees clockwise the top-left corner
	// lands at (85,-15).
	if got := HitTest(l, raster.Pt(85, -15), 1, DefaultThreshold); got.Handle != HandleCorner || got.Corner != warp.TopLeft {
		t.Errorf("rotated corner hit = %+v", got)
	}
	// The un-rotated corner position is now empty.
	if got := HitTest(l, raster.Pt(10, 10), 1, DefaultThreshold); got.Handle != HandleNone {
		t.Errorf("stale corner hit = %+v", got)
	}
}

func TestHitWarpNearest(t *testing.T) {
	q := warp.Quad{TL: raster.Pt(0, 0), TR: raster.Pt(4, 0), BL: raster.Pt(0, 100), BR: raster.Pt(100, 100)}
	if got := HitWarp(q, raster.Pt(3, 0), 1, DefaultThreshold); got.Corner != warp.TopRight {
		t.Errorf("nearest corner = %v", got.Corner)
	}
	if got := HitWarp(q, raster.Pt(50, 50), 1, DefaultThreshold); got.Handle != HandleNone {
		t.Errorf("far point hit %+v", got)
	}
}

func TestMoveUsesFrameDelta(t *testing.T) {
	d, id := boxDoc(t)
	c := NewController()
	d, commit := drag(c, d, raster.Pt(60, 35), raster.Pt(70, 40), raster.Pt(80, 50))
	if !commit {
		t.Error("move did not report a commit")
	}
	if l := d.Layer(id); l.X != 30 || l.Y != 25 {
		t.Errorf("position = (%v,%v), want (30,25)", l.X, l.Y)
	}
	if c.Active() {
		t.Error("gesture still active after PointerUp")
	}
}

func TestClickWithoutDragDoesNotCommit(t *testing.T) {
	d, _ := boxDoc(t)
	c := NewController()
	if _, commit := drag(c, d, raster.Pt(60, 35), raster.Pt(60, 35)); commit {
		t.Error("click reported a commit")
	}
}

func TestScaleFromCenter(t *testing.T) {
	d, id := boxDoc(t)
	c := NewController()
	// Bottom-right corner is (50,25) from the center (60,35); doubling the
	// distance doubles the box.
	d, _ = drag(c, d, raster.Pt(110, 60), raster.Pt(135, 72.5), raster.Pt(160, 85))
	l := d.Layer(id)
	if math.Abs(l.Width-200) > 1e-9 || math.Abs(l.Height-100) > 1e-9 {
		t.Errorf("size = %vx%v, want 200x100", l.Width, l.Height)
	}
	if !near(l.Center(), raster.Pt(60, 35)) {
		t.Errorf("center moved to %v", l.Center())
	}
}

func TestScaleTextLayerScalesFont(t *testing.T) {
	d := document.New(200, 200)
	d, id := d.Add(document.NewTextLayer("t", "Hello", typeset.Style{Size: 20}))
	d = d.Update(id, document.Move(20, 20))
	before := *d.Layer(id)
	ctr := before.Center()
	corner := before.Corners().BR

	c := NewController()
	target := ctr.Add(corner.Sub(ctr).Mul(2))
	d, _ = drag(c, d, corner, target)

	l := d.Layer(id)
	if math.Abs(l.Style.Size-40) > 1e-9 {
		t.Errorf("font size = %v, want 40", l.Style.Size)
	}
	if !near(l.Center(), ctr) {
		t.Errorf("center moved from %v to %v", ctr, l.Center())
	}
	if l.Width <= before.Width {
		t.Error("text box did not grow with the font")
	}
}

func TestRotateHandle(t *testing.T) {
	d, id := boxDoc(t)
	c := NewController()
	d, _ = drag(c, d, raster.Pt(60, -10), raster.Pt(160, 35))
	if r := d.Layer(id).Rotation; math.Abs(r-90) > 1e-9 {
		t.Errorf("rotation = %v, want 90", r)
	}
}

func TestMoveWarpedLayerMovesQuad(t *testing.T) {
	d, id := boxDoc(t)
	d = d.InitWarp(id)
	c := NewController()
	d, _ = drag(c, d, raster.Pt(60, 35), raster.Pt(65, 40))
	if q := d.Layer(id).Warp; !near(q.TL, raster.Pt(15, 15)) {
		t.Errorf("warp TL = %v", q.TL)
	}
}

func TestWarpCornerDrag(t *testing.T) {
	d, id := boxDoc(t)
	c := NewController()
	c.Tool = ToolWarp
	d, commit := drag(c, d, raster.Pt(10, 10), raster.Pt(5, 5), raster.Pt(0, 0))
	if !commit {
		t.Error("warp drag did not commit")
	}
	q := d.Layer(id).Warp
	if q == nil {
		t.Fatal("no warp quad")
	}
	if q.TL != raster.Pt(0, 0) || q.TR != raster.Pt(110, 10) || q.BR != raster.Pt(110, 60) {
		t.Errorf("quad = %+v", *q)
	}
}

func TestWarpToolCreatesQuadOnce(t *testing.T) {
	d, id := boxDoc(t)
	c := NewController()
	c.Tool = ToolWarp
	d, commit := drag(c, d, raster.Pt(60, 35), raster.Pt(70, 35))
	if !commit || d.Layer(id).Warp == nil {
		t.Fatal("first warp click should create and commit the quad")
	}
	if _, commit = drag(c, d, raster.Pt(60, 35), raster.Pt(70, 35)); commit {
		t.Error("second click away from the corners committed")
	}
}

func TestBrushGesture(t *testing.T) {
	d := document.New(200, 200)
	d, id := d.Add(document.NewDrawingLayer("ink", 100, 100))
	orig := d

	c := NewController()
	c.Tool = ToolBrush
	c.Brush = document.Brush{Color: raster.Red, Size: 6}
	d, commit := drag(c, d, raster.Pt(20, 20), raster.Pt(50, 20), raster.Pt(80, 20))
	if !commit {
		t.Error("stroke did not commit")
	}
	if _, _, _, a := d.Layer(id).Pixels.PixelPremul(50, 20); a != 255 {
		t.Errorf("painted alpha = %d", a)
	}
	if _, _, _, a := orig.Layer(id).Pixels.PixelPremul(50, 20); a != 0 {
		t.Error("stroke wrote the pre-gesture buffer")
	}

	c.Tool = ToolEraser
	d, _ = drag(c, d, raster.Pt(50, 20), raster.Pt(50, 20))
	if _, _, _, a := d.Layer(id).Pixels.PixelPremul(50, 20); a != 0 {
		t.Errorf("erased alpha = %d", a)
	}
}

func TestLockedLayerIgnored(t *testing.T) {
	d, id := boxDoc(t)
	d = d.Update(id, document.Patch{Locked: document.Ptr(true)})
	c := NewController()
	d, commit := drag(c, d, raster.Pt(60, 35), raster.Pt(90, 35))
	if commit || d.Layer(id).X != 10 {
		t.Error("locked layer moved")
	}
}

func TestSelectPicksLayerUnderPointer(t *testing.T) {
	d, bottom := boxDoc(t)
	d, top := d.Add(document.NewDrawingLayer("top", 20, 20))
	d = d.Update(top, document.Move(150, 150))

	c := NewController()
	d = c.PointerDown(d, identity, raster.Pt(60, 35))
	if d.Active() != bottom {
		t.Errorf("active = %d, want %d", d.Active(), bottom)
	}
	d, _ = c.PointerUp(d, identity, raster.Pt(60, 35))

	d = c.PointerDown(d, identity, raster.Pt(5, 190))
	if d.Active() != 0 {
		t.Error("clicking empty canvas should clear the active layer")
	}
	c.Cancel()
}

func TestEndStopsPainting(t *testing.T) {
	d := document.New(50, 50)
	d, id := d.Add(document.NewDrawingLayer("ink", 50, 50))
	c := NewController()
	c.Tool = ToolBrush
	vp := Viewport{Width: 50, Height: 50, Zoom: 1}

	d = c.PointerDown(d, vp, raster.Pt(10, 10))
	if !c.End() {
		t.Error("End after a dab should report a change")
	}
	if c.Active() {
		t.Error("gesture still active after End")
	}
	pm := d.Layer(id).Pixels
	d = c.PointerMove(d, vp, raster.Pt(40, 40))
	if _, _, _, a := pm.PixelPremul(30, 30); a != 0 {
		t.Errorf("buffer painted after End, alpha = %d", a)
	}
	if c.End() {
		t.Error("second End reported a change")
	}
}

func TestParseTool(t *testing.T) {
	for _, tool := range []Tool{ToolSelect, ToolWarp, ToolBrush, ToolEraser} {
		got, ok := ParseTool(tool.String())
		if !ok || got != tool {
			t.Errorf("ParseTool(%q) = %v, %v", tool, got, ok)
		}
	}
	if _, ok := ParseTool("lasso"); ok {
		t.Error("unknown tool parsed")
	}
}
