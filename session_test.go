package compositor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/gogpu/compositor/document"
	"github.com/gogpu/compositor/interact"
	"github.com/gogpu/compositor/raster"
	"github.com/gogpu/compositor/typeset"
)

func TestSessionStartsWithoutUndo(t *testing.T) {
	s := NewSession(100, 80)
	if s.CanUndo() || s.CanRedo() {
		t.Error("fresh session has history to walk")
	}
	if s.Undo() || s.Redo() {
		t.Error("Undo/Redo on a fresh session reported a change")
	}
	if d := s.Document(); d.Width() != 100 || d.Height() != 80 || d.Len() != 0 {
		t.Errorf("document = %dx%d with %d layers", d.Width(), d.Height(), d.Len())
	}
}

func TestSessionAddUndoRedo(t *testing.T) {
	s := NewSession(100, 100)
	id := s.AddPixmap("img", solidPixmap(20, 10, raster.Red))

	if l := s.Document().Layer(id); l.X != 40 || l.Y != 45 {
		t.Errorf("image not centered: (%v,%v)", l.X, l.Y)
	}
	s.Update(id, document.Move(0, 0))

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if l := s.Document().Layer(id); l == nil || l.X != 40 {
		t.Error("undo did not restore the previous position")
	}
	s.Undo()
	if s.Document().Len() != 0 {
		t.Error("undo did not remove the layer")
	}
	s.Redo()
	s.Redo()
	if l := s.Document().Layer(id); l == nil || l.X != 0 {
		t.Error("redo did not reapply both edits")
	}
	if s.CanRedo() {
		t.Error("redo still available at the newest entry")
	}
}

func TestSessionNoOpDoesNotCommit(t *testing.T) {
	s := NewSession(50, 50)
	s.Remove(42)
	s.Update(42, document.Move(1, 1))
	if s.CanUndo() {
		t.Error("operation on a missing layer was committed")
	}
}

func TestSessionUndoCrop(t *testing.T) {
	s := NewSession(800, 600)
	id := s.AddPixmap("a", solidPixmap(400, 300, raster.Red))
	s.Update(id, document.Move(0, 0))
	dup := s.Duplicate(id)
	s.Crop(image.Rect(100, 100, 500, 400))

	d := s.Document()
	if d.Width() != 400 || d.Height() != 300 {
		t.Fatalf("canvas = %dx%d", d.Width(), d.Height())
	}
	if l := d.Layer(dup); l.X != -80 || l.Y != -80 {
		t.Errorf("duplicate at (%v,%v)", l.X, l.Y)
	}

	s.Undo()
	d = s.Document()
	if d.Width() != 800 || d.Height() != 600 {
		t.Errorf("canvas after undo = %dx%d", d.Width(), d.Height())
	}
	if l := d.Layer(id); l.X != 0 {
		t.Errorf("layer after undo at x=%v", l.X)
	}
}

func TestSessionGestureCommitsOnce(t *testing.T) {
	s := NewSession(200, 200)
	id := s.AddPixmap("img", solidPixmap(100, 50, raster.Red))
	s.Update(id, document.Move(10, 10))

	s.PointerDown(raster.Pt(60, 35))
	for i := 1; i <= 10; i++ {
		s.PointerMove(raster.Pt(60+float64(i), 35))
	}
	s.PointerUp(raster.Pt(70, 35))

	if l := s.Document().Layer(id); l.X != 20 {
		t.Fatalf("x = %v, want 20", l.X)
	}
	s.Undo()
	if l := s.Document().Layer(id); l.X != 10 {
		t.Errorf("one undo should revert the whole drag, x = %v", l.X)
	}
}

func TestSessionBrushStrokeUndo(t *testing.T) {
	s := NewSession(50, 50)
	id := s.AddDrawing("ink")
	s.SetTool(interact.ToolBrush)
	s.SetBrush(document.Brush{Color: raster.Red, Size: 4})

	s.PointerDown(raster.Pt(10, 25))
	s.PointerMove(raster.Pt(25, 25))
	s.PointerUp(raster.Pt(40, 25))

	if _, _, _, a := s.Document().Layer(id).Pixels.PixelPremul(25, 25); a != 255 {
		t.Fatalf("stroke alpha = %d", a)
	}
	s.Undo()
	if _, _, _, a := s.Document().Layer(id).Pixels.PixelPremul(25, 25); a != 0 {
		t.Errorf("undo left the stroke behind, alpha = %d", a)
	}
}

func TestSessionEditDuringStroke(t *testing.T) {
	s := NewSession(50, 50)
	id := s.AddDrawing("ink")
	s.SetTool(interact.ToolBrush)
	s.SetBrush(document.Brush{Color: raster.Red, Size: 6})

	s.PointerDown(raster.Pt(10, 10))
	f := document.NeutralFilters()
	f.Brightness = 120
	s.SetFilters(id, f)
	s.PointerMove(raster.Pt(40, 40))
	s.PointerUp(raster.Pt(40, 40))

	if _, _, _, a := s.Document().Layer(id).Pixels.PixelPremul(30, 30); a != 0 {
		t.Errorf("stroke continued after the filter edit, alpha = %d", a)
	}

	// The dab is committed on its own, before the filter change.
	s.Undo()
	l := s.Document().Layer(id)
	if l.Filters.Brightness != 100 {
		t.Errorf("brightness = %v, want 100", l.Filters.Brightness)
	}
	if _, _, _, a := l.Pixels.PixelPremul(10, 10); a != 255 {
		t.Errorf("dab alpha = %d, want 255", a)
	}
	if _, _, _, a := l.Pixels.PixelPremul(30, 30); a != 0 {
		t.Errorf("history entry painted after commit, alpha = %d", a)
	}
	s.Undo()
	if _, _, _, a := s.Document().Layer(id).Pixels.PixelPremul(10, 10); a != 0 {
		t.Errorf("dab survived undo, alpha = %d", a)
	}
}

func TestSessionInterruptedDrag(t *testing.T) {
	tests := []struct {
		name      string
		interrupt func(s *Session)
		x         float64 // after the interruption
		undoX     float64 // after one more Undo
	}{
		{"tool switch commits", func(s *Session) { s.SetTool(interact.ToolBrush) }, 40, 10},
		{"undo reverts the drag", func(s *Session) { s.Undo() }, 10, 50},
		{"cancel restores", (*Session).CancelGesture, 10, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(200, 200)
			id := s.AddPixmap("img", solidPixmap(100, 50, raster.Red))
			s.Update(id, document.Move(10, 10))

			s.PointerDown(raster.Pt(60, 35))
			s.PointerMove(raster.Pt(90, 35))
			tt.interrupt(s)

			if l := s.Document().Layer(id); l.X != tt.x {
				t.Errorf("x = %v, want %v", l.X, tt.x)
			}
			s.PointerUp(raster.Pt(120, 35))
			if l := s.Document().Layer(id); l.X != tt.x {
				t.Errorf("release after interruption moved the layer to %v", l.X)
			}
			s.Undo()
			if l := s.Document().Layer(id); l.X != tt.undoX {
				t.Errorf("after undo x = %v, want %v", l.X, tt.undoX)
			}
		})
	}
}

func TestSessionSetBrushClampsSize(t *testing.T) {
	s := NewSession(10, 10)
	s.SetBrush(document.Brush{Size: -3})
	if s.Brush().Size != 1 {
		t.Errorf("size = %v, want 1", s.Brush().Size)
	}
}

func TestSessionWarpToolInitializesQuad(t *testing.T) {
	s := NewSession(100, 100)
	id := s.AddPixmap("img", solidPixmap(20, 20, raster.Red))
	s.SetTool(interact.ToolWarp)

	q := s.Document().Layer(id).Warp
	if q == nil {
		t.Fatal("warp tool did not create a quad")
	}
	if q.TL != raster.Pt(40, 40) || q.BR != raster.Pt(60, 60) {
		t.Errorf("quad = %+v", *q)
	}
	s.Undo()
	if s.Document().Layer(id).Warp != nil {
		t.Error("quad creation was not undoable")
	}
}

func TestSessionWarpCornerOntoNeighbour(t *testing.T) {
	s := NewSession(100, 100)
	id := s.AddPixmap("img", solidPixmap(20, 20, raster.Red))
	s.SetTool(interact.ToolWarp)

	s.PointerDown(raster.Pt(60, 40))
	s.PointerMove(raster.Pt(50, 40))
	s.PointerUp(raster.Pt(40, 40))

	q := s.Document().Layer(id).Warp
	if q.TR != q.TL {
		t.Fatalf("TR = %v, want it dragged onto TL %v", q.TR, q.TL)
	}
	out := s.Flatten()
	if got := pixel(out, 45, 55); got[3] == 0 {
		t.Error("collapsed top edge erased the rest of the layer")
	}
}

func TestSessionDeleteSelection(t *testing.T) {
	s := NewSession(40, 40)
	id := s.AddPixmap("img", solidPixmap(40, 40, raster.Red))
	s.SetSelection(document.Selection{raster.Pt(0, 0), raster.Pt(20, 0), raster.Pt(20, 40), raster.Pt(0, 40)})
	s.DeleteSelection()

	pm := s.Document().Layer(id).Pixels
	if _, _, _, a := pm.PixelPremul(5, 5); a != 0 {
		t.Errorf("selected alpha = %d", a)
	}
	if _, _, _, a := pm.PixelPremul(30, 5); a != 255 {
		t.Errorf("unselected alpha = %d", a)
	}
}

func TestSessionTextLayer(t *testing.T) {
	s := NewSession(300, 100)
	id := s.AddText("title", "Hi", typeset.Style{Size: 20, Fill: raster.Black}, 10, 10)
	before := s.Document().Layer(id).Width

	s.Update(id, document.Patch{Text: document.Ptr("Hi there")})
	if w := s.Document().Layer(id).Width; w <= before {
		t.Errorf("width %v did not grow from %v", w, before)
	}
}

func TestSessionRenderUsesBackground(t *testing.T) {
	s := NewSession(20, 20)
	if got := pixel(s.Render(), 0, 0); got[3] != 255 {
		t.Errorf("editor render has no background: %v", got)
	}
	if got := pixel(s.Flatten(), 0, 0); got != clearPixel {
		t.Errorf("flatten drew a background: %v", got)
	}
}

func TestSessionExport(t *testing.T) {
	s := NewSession(16, 8)
	s.AddPixmap("img", solidPixmap(16, 8, raster.Red))

	var buf bytes.Buffer
	if err := s.Export(&buf, FormatPNG); err != nil {
		t.Fatalf("Export png: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("png size = %v", b)
	}
	if c := color.RGBAModel.Convert(img.At(3, 3)).(color.RGBA); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("png pixel = %v", c)
	}

	buf.Reset()
	if err := s.Export(&buf, FormatJPEG); err != nil {
		t.Fatalf("Export jpeg: %v", err)
	}
	if _, err := jpeg.Decode(&buf); err != nil {
		t.Errorf("decode jpeg: %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.png", FormatPNG, false},
		{"OUT.JPG", FormatJPEG, false},
		{"a/b.jpeg", FormatJPEG, false},
		{"out.gif", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, %v", tt.path, got, err)
		}
	}
}
