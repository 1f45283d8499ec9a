package compositor

import (
	"image"
	"io"

	"github.com/gogpu/compositor/document"
	"github.com/gogpu/compositor/effect"
	"github.com/gogpu/compositor/history"
	"github.com/gogpu/compositor/interact"
	"github.com/gogpu/compositor/raster"
	"github.com/gogpu/compositor/typeset"
)

// Session is the editing state a host UI drives: the current document,
// its undo history, the render engine and the pointer controller.
//
// Discrete operations commit one history entry each. Pointer gestures
// commit once, on release. A discrete operation, a tool switch, Undo or
// Redo that arrives during a gesture first ends the gesture and commits
// what it did, so the document and the history never disagree. Operations on a layer id that is not in the
// document do nothing and commit nothing.
//
// A Session is not safe for concurrent use.
type Session struct {
	doc    *document.Document
	hist   *history.Stack
	engine *Engine
	ctrl   *interact.Controller
	view   interact.Viewport
}

// NewSession creates an empty width x height canvas and seeds the history
// with it.
func NewSession(width, height int, opts ...SessionOption) *Session {
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}
	fonts := o.fonts
	if fonts == nil {
		fonts = typeset.DefaultFontBook()
	}
	engine := o.engine
	if engine == nil {
		engine = NewEngine(WithBackground(Checkerboard(DefaultCheckerCell)), WithFontBook(fonts))
	}

	s := &Session{
		doc:    document.New(width, height, document.WithMeasurer(fonts)),
		hist:   history.New(history.WithMaxDepth(o.depth)),
		engine: engine,
		ctrl:   interact.NewController(),
	}
	if o.threshold > 0 {
		s.ctrl.Threshold = o.threshold
	}
	s.view = interact.Viewport{Width: float64(s.doc.Width()), Height: float64(s.doc.Height()), Zoom: 1}
	s.hist.Commit(s.doc)
	return s
}

// Document returns the current document.
func (s *Session) Document() *document.Document {
	return s.doc
}

// commit makes d current and records it, unless nothing changed.
func (s *Session) commit(d *document.Document) {
	if d == s.doc {
		return
	}
	s.endGesture()
	s.doc = d
	s.hist.Commit(d)
}

// endGesture stops the gesture in progress and commits the document it
// left behind if it changed anything.
func (s *Session) endGesture() {
	if s.ctrl.End() {
		s.hist.Commit(s.doc)
	}
}

// AddImage adds an image layer holding a copy of img, centered on the
// canvas.
func (s *Session) AddImage(name string, img image.Image) document.ID {
	return s.AddPixmap(name, raster.FromImage(img))
}

// AddPixmap adds an image layer that takes ownership of pm, centered on the
// canvas.
func (s *Session) AddPixmap(name string, pm *raster.Pixmap) document.ID {
	l := document.NewImageLayer(name, pm)
	l.X = float64(s.doc.Width()-pm.Width()) / 2
	l.Y = float64(s.doc.Height()-pm.Height()) / 2
	d, id := s.doc.Add(l)
	s.commit(d)
	return id
}

// AddDrawing adds a transparent canvas-sized drawing layer.
func (s *Session) AddDrawing(name string) document.ID {
	d, id := s.doc.Add(document.NewDrawingLayer(name, s.doc.Width(), s.doc.Height()))
	s.commit(d)
	return id
}

// AddText adds a text layer at (x, y).
func (s *Session) AddText(name, text string, st typeset.Style, x, y float64) document.ID {
	l := document.NewTextLayer(name, text, st)
	l.X, l.Y = x, y
	d, id := s.doc.Add(l)
	s.commit(d)
	return id
}

// Remove deletes a layer.
func (s *Session) Remove(id document.ID) {
	s.commit(s.doc.Remove(id))
}

// Duplicate copies a layer and returns the id of the copy, or 0.
func (s *Session) Duplicate(id document.ID) document.ID {
	d, nid := s.doc.Duplicate(id)
	s.commit(d)
	return nid
}

// Update merges p into a layer.
func (s *Session) Update(id document.ID, p document.Patch) {
	s.commit(s.doc.Update(id, p))
}

// Reorder moves a layer one step up or down the stack.
func (s *Session) Reorder(id document.ID, dir document.Direction) {
	s.commit(s.doc.Reorder(id, dir))
}

// SetFilters replaces a layer's filters.
func (s *Session) SetFilters(id document.ID, f document.Filters) {
	s.Update(id, document.Patch{Filters: &f})
}

// SetEffects replaces a layer's effect parameters.
func (s *Session) SetEffects(id document.ID, fx effect.Set) {
	fx = fx.Clone()
	s.Update(id, document.Patch{Effects: &fx})
}

// SetCanvasSize resizes the canvas without moving layers.
func (s *Session) SetCanvasSize(width, height int) {
	s.commit(s.doc.SetCanvasSize(width, height))
}

// Crop makes r the new canvas.
func (s *Session) Crop(r image.Rectangle) {
	s.commit(s.doc.Crop(r))
}

// ClearWarp returns a layer to rotated-box geometry.
func (s *Session) ClearWarp(id document.ID) {
	s.commit(s.doc.ClearWarp(id))
}

// SetActive selects the layer later gestures and tools act on. Zero clears
// the selection. The active layer is not part of the history.
func (s *Session) SetActive(id document.ID) {
	s.endGesture()
	s.doc = s.doc.SetActive(id)
}

// Tool returns the active tool.
func (s *Session) Tool() interact.Tool {
	return s.ctrl.Tool
}

// SetTool switches tools, ending any gesture in progress. Switching to the
// warp tool gives the active layer a warp quad if it has none.
func (s *Session) SetTool(t interact.Tool) {
	s.endGesture()
	s.ctrl.Tool = t
	if t == interact.ToolWarp {
		s.commit(s.doc.InitWarp(s.doc.Active()))
	}
}

// Brush returns the brush used by the brush and eraser tools.
func (s *Session) Brush() document.Brush {
	return s.ctrl.Brush
}

// SetBrush sets the brush color and size. Sizes below 1 are clamped.
func (s *Session) SetBrush(b document.Brush) {
	b.Size = max(b.Size, 1)
	s.ctrl.Brush = b
}

// Selection returns the current selection polygon.
func (s *Session) Selection() document.Selection {
	return s.ctrl.Selection
}

// SetSelection sets the canvas-space polygon that clips painting. Nil
// clears it.
func (s *Session) SetSelection(sel document.Selection) {
	s.ctrl.Selection = append(document.Selection(nil), sel...)
}

// DeleteSelection clears the active layer's pixels inside the selection.
func (s *Session) DeleteSelection() {
	s.commit(s.doc.DeleteSelection(s.doc.Active(), s.ctrl.Selection))
}

// CanUndo reports whether Undo would change the document.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether Redo would change the document.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// Undo restores the previous snapshot. It reports whether it did. A
// gesture in progress is committed first, so Undo reverts it.
func (s *Session) Undo() bool {
	s.endGesture()
	layers, ok := s.hist.Undo()
	if ok {
		s.restore(layers)
	}
	return ok
}

// Redo reapplies the next snapshot. It reports whether it did.
func (s *Session) Redo() bool {
	s.endGesture()
	layers, ok := s.hist.Redo()
	if ok {
		s.restore(layers)
	}
	return ok
}

func (s *Session) restore(layers []*document.Layer) {
	d := s.doc.Restore(layers)
	if w, h := s.hist.Size(); w != d.Width() || h != d.Height() {
		d = d.SetCanvasSize(w, h)
	}
	s.doc = d
}

// Viewport returns the view pointer events are mapped through.
func (s *Session) Viewport() interact.Viewport {
	return s.view
}

// SetViewport sets the view pointer events are mapped through.
func (s *Session) SetViewport(v interact.Viewport) {
	s.view = v
}

// Hover returns the handle under a viewport point, for cursor feedback.
func (s *Session) Hover(p raster.Point) interact.Hit {
	return s.ctrl.Hover(s.doc, s.view, p)
}

// PointerDown starts a gesture at a viewport point.
func (s *Session) PointerDown(p raster.Point) {
	s.doc = s.ctrl.PointerDown(s.doc, s.view, p)
}

// PointerMove continues the gesture in progress.
func (s *Session) PointerMove(p raster.Point) {
	s.doc = s.ctrl.PointerMove(s.doc, s.view, p)
}

// CancelGesture abandons the gesture in progress and returns to the last
// committed document.
func (s *Session) CancelGesture() {
	s.ctrl.Cancel()
	s.restore(s.hist.Current())
}

// PointerUp ends the gesture and commits it if it changed the document.
func (s *Session) PointerUp(p raster.Point) {
	d, changed := s.ctrl.PointerUp(s.doc, s.view, p)
	s.doc = d
	if changed {
		s.hist.Commit(d)
	}
}

// Render composites the current document over the engine background.
func (s *Session) Render() *raster.Pixmap {
	return s.engine.Render(s.doc)
}

// Flatten composites the current document at full canvas resolution with
// no background, as it is exported.
func (s *Session) Flatten() *raster.Pixmap {
	return s.engine.RenderWith(s.doc, Background{})
}

// Export writes the flattened document to w.
func (s *Session) Export(w io.Writer, f Format) error {
	return Encode(w, s.Flatten(), f)
}
