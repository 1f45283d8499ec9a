package compositor

import (
	"testing"

	"github.com/gogpu/compositor/document"
	"github.com/gogpu/compositor/raster"
	"github.com/gogpu/compositor/typeset"
	"github.com/gogpu/compositor/warp"
)

func TestRenderEmpty(t *testing.T) {
	tests := []struct {
		name string
		bg   Background
		want [4]uint8
	}{
		{"none", Background{}, clearPixel},
		{"solid", Solid(raster.Black), opaqueBlack},
		{"checker light", Checkerboard(4), [4]uint8{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewEngine(WithBackground(tt.bg)).Render(document.New(8, 6))
			if out.Width() != 8 || out.Height() != 6 {
				t.Fatalf("size = %dx%d", out.Width(), out.Height())
			}
			if got := pixel(out, 0, 0); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckerboardAlternates(t *testing.T) {
	out := NewEngine(WithBackground(Checkerboard(4))).Render(document.New(8, 8))
	if pixel(out, 1, 1) == pixel(out, 5, 1) {
		t.Error("adjacent cells share a color")
	}
	if pixel(out, 1, 1) != pixel(out, 5, 5) {
		t.Error("diagonal cells differ")
	}
}

func TestRenderImageLayer(t *testing.T) {
	d := document.New(20, 20)
	d, _ = withLayer(t, d, 5, 5, 10, 10, raster.Red)
	out := NewEngine().Render(d)

	if got := pixel(out, 7, 7); got != opaqueRed {
		t.Errorf("inside = %v", got)
	}
	if got := pixel(out, 1, 1); got != clearPixel {
		t.Errorf("outside = %v", got)
	}
}

func TestRenderSkipsInvisible(t *testing.T) {
	d := document.New(10, 10)
	d, id := withLayer(t, d, 0, 0, 10, 10, raster.Red)
	d = d.Update(id, document.Patch{Visible: document.Ptr(false)})
	if got := pixel(NewEngine().Render(d), 5, 5); got != clearPixel {
		t.Errorf("invisible layer drawn: %v", got)
	}
}

func TestRenderOrder(t *testing.T) {
	d := document.New(10, 10)
	d, _ = withLayer(t, d, 0, 0, 10, 10, raster.Blue)
	d, top := withLayer(t, d, 0, 0, 10, 10, raster.Red)

	e := NewEngine()
	if got := pixel(e.Render(d), 5, 5); got != opaqueRed {
		t.Errorf("top layer not on top: %v", got)
	}
	d = d.Reorder(top, document.Down)
	if got := pixel(e.Render(d), 5, 5); got != [4]uint8{0, 0, 255, 255} {
		t.Errorf("after reorder: %v", got)
	}
}

func TestRenderOpacityAndBlend(t *testing.T) {
	d := document.New(10, 10)
	d, id := withLayer(t, d, 0, 0, 10, 10, raster.Red)
	d = d.Update(id, document.Patch{Opacity: document.Ptr(0.5)})
	if got := pixel(NewEngine().Render(d), 5, 5); !near8(got, [4]uint8{128, 0, 0, 128}, 1) {
		t.Errorf("half opacity = %v", got)
	}

	d = document.New(10, 10)
	d, _ = withLayer(t, d, 0, 0, 10, 10, raster.Blue)
	d, id = withLayer(t, d, 0, 0, 10, 10, raster.Red)
	mode := raster.BlendMultiply
	d = d.Update(id, document.Patch{Blend: &mode})
	if got := pixel(NewEngine().Render(d), 5, 5); !near8(got, opaqueBlack, 1) {
		t.Errorf("red multiply blue = %v", got)
	}
}

func TestRenderRotated(t *testing.T) {
	d := document.New(40, 40)
	// 30x4 bar centered at (20,20); rotated 90 degrees it becomes 4x30.
	d, id := withLayer(t, d, 5, 18, 30, 4, raster.Red)
	d = d.Update(id, document.Patch{Rotation: document.Ptr(90.0)})
	out := NewEngine().Render(d)

	if got := pixel(out, 20, 8); got[3] < 250 {
		t.Errorf("rotated bar missing at (20,8): %v", got)
	}
	if got := pixel(out, 8, 20); got[3] != 0 {
		t.Errorf("unrotated bar still drawn at (8,20): %v", got)
	}
}

func TestRenderWarped(t *testing.T) {
	d := document.New(40, 40)
	d, id := withLayer(t, d, 0, 0, 10, 10, raster.Red)
	q := warp.Quad{TL: raster.Pt(0, 0), TR: raster.Pt(30, 0), BL: raster.Pt(0, 30), BR: raster.Pt(30, 30)}
	d = d.Update(id, document.Patch{Warp: &q})
	out := NewEngine().Render(d)

	if got := pixel(out, 25, 25); got[3] < 224 {
		t.Errorf("warped content missing at (25,25): %v", got)
	}
	if got := pixel(out, 35, 35); got != clearPixel {
		t.Errorf("outside quad = %v", got)
	}
}

func TestRenderFilters(t *testing.T) {
	d := document.New(10, 10)
	d, id := withLayer(t, d, 0, 0, 10, 10, raster.Red)

	f := document.NeutralFilters()
	f.Brightness = 0
	d = d.Update(id, document.Patch{Filters: &f})
	if got := pixel(NewEngine().Render(d), 5, 5); got != opaqueBlack {
		t.Errorf("brightness 0 = %v", got)
	}

	f = document.NeutralFilters()
	f.Grayscale = 100
	d = d.Update(id, document.Patch{Filters: &f})
	got := pixel(NewEngine().Render(d), 5, 5)
	if got[0] != got[1] || got[1] != got[2] || got[3] != 255 {
		t.Errorf("grayscale = %v", got)
	}
}

func TestRenderFiltersOnlyAffectOwnLayer(t *testing.T) {
	d := document.New(10, 10)
	d, _ = withLayer(t, d, 0, 0, 10, 10, raster.Red)
	d, id := withLayer(t, d, 0, 0, 2, 2, raster.Blue)
	f := document.NeutralFilters()
	f.Brightness = 0
	d = d.Update(id, document.Patch{Filters: &f})

	if got := pixel(NewEngine().Render(d), 5, 5); got != opaqueRed {
		t.Errorf("layer below was filtered: %v", got)
	}
}

func TestRenderBlurSoftensEdge(t *testing.T) {
	d := document.New(40, 40)
	d, id := withLayer(t, d, 10, 10, 20, 20, raster.Red)
	f := document.NeutralFilters()
	f.Blur = 3
	d = d.Update(id, document.Patch{Filters: &f})
	out := NewEngine().Render(d)

	if got := pixel(out, 8, 20); got[3] == 0 {
		t.Error("blur did not spread past the edge")
	}
	if got := pixel(out, 20, 20); got[3] < 250 {
		t.Errorf("blur center = %v", got)
	}
}

func TestRenderEffects(t *testing.T) {
	d := document.New(10, 10)
	d, id := withLayer(t, d, 0, 0, 10, 10, raster.Red)
	fx := d.Layer(id).Effects
	fx.Scanlines.Enabled = true
	fx.Scanlines.Intensity = 100
	fx.Scanlines.Spacing = 2
	d = d.Update(id, document.Patch{Effects: &fx})
	out := NewEngine().Render(d)

	if got := pixel(out, 5, 0); got != opaqueBlack {
		t.Errorf("scanline row = %v", got)
	}
	if got := pixel(out, 5, 1); got != opaqueRed {
		t.Errorf("between scanlines = %v", got)
	}
}

func TestRenderDropShadow(t *testing.T) {
	d := document.New(20, 20)
	d, id := withLayer(t, d, 2, 2, 4, 4, raster.Red)
	fx := d.Layer(id).Effects
	fx.DropShadow.Enabled = true
	fx.DropShadow.Blur = 0
	fx.DropShadow.X, fx.DropShadow.Y = 10, 10
	fx.DropShadow.Opacity = 1
	d = d.Update(id, document.Patch{Effects: &fx})
	out := NewEngine().Render(d)

	if got := pixel(out, 13, 13); got != opaqueBlack {
		t.Errorf("shadow = %v", got)
	}
	if got := pixel(out, 3, 3); got != opaqueRed {
		t.Errorf("content = %v", got)
	}
}

func TestRenderText(t *testing.T) {
	d := document.New(200, 60)
	st := typeset.Style{Family: "sans-serif", Size: 24, Fill: raster.Black}
	d, id := d.Add(document.NewTextLayer("t", "Hello", st))
	d = d.Update(id, document.Move(10, 10))
	out := NewEngine().Render(d)

	l := d.Layer(id)
	covered := 0
	for y := int(l.Y); y < int(l.Y+l.Height); y++ {
		for x := int(l.X); x < int(l.X+l.Width); x++ {
			if pixel(out, x, y)[3] > 0 {
				covered++
			}
		}
	}
	if covered == 0 {
		t.Error("text drew nothing inside its box")
	}
	if got := pixel(out, 199, 59); got != clearPixel {
		t.Errorf("text leaked to the corner: %v", got)
	}
}

func TestRenderReusesTextLayout(t *testing.T) {
	d := document.New(200, 60)
	st := typeset.Style{Family: "sans-serif", Size: 24, Fill: raster.Black}
	d, id := d.Add(document.NewTextLayer("t", "Hello", st))

	e := NewEngine(WithLayoutCache(4))
	first := e.Render(d)
	second := e.Render(d)
	if !first.Equal(second) {
		t.Error("cached layout renders differently")
	}
	if s := e.layouts.Stats(); s.Misses != 1 || s.Hits != 1 {
		t.Errorf("layout cache hits/misses = %d/%d, want 1/1", s.Hits, s.Misses)
	}

	red := st
	red.Fill = raster.Red
	d = d.Update(id, document.Patch{Style: &red})
	e.Render(d)
	if n := e.layouts.Len(); n != 2 {
		t.Errorf("layouts cached = %d, want 2", n)
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	d := document.New(30, 30)
	d, id := withLayer(t, d, 3, 4, 12, 9, raster.Red)
	d = d.Update(id, document.Patch{Rotation: document.Ptr(30.0)})

	e := NewEngine()
	a := e.Render(d)
	e.Render(document.New(64, 64))
	b := e.Render(d)
	if !a.Equal(b) {
		t.Error("render depends on previous frames")
	}
}

func TestFilterChain(t *testing.T) {
	tests := []struct {
		name string
		f    document.Filters
		want int
	}{
		{"neutral", document.NeutralFilters(), 0},
		{"brightness", document.Filters{Brightness: 50, Contrast: 100, Saturation: 100}, 1},
		{"blur", document.Filters{Brightness: 100, Contrast: 100, Saturation: 100, Blur: 2}, 1},
		{"full turn hue", document.Filters{Brightness: 100, Contrast: 100, Saturation: 100, HueRotate: 360}, 0},
		{"all", document.Filters{Brightness: 90, Contrast: 110, Saturation: 50, Blur: 1, Sepia: 20, Grayscale: 10, HueRotate: 45}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(filterChain(tt.f)); got != tt.want {
				t.Errorf("len = %d, want %d", got, tt.want)
			}
		})
	}
}

func BenchmarkRenderWarped(b *testing.B) {
	d := document.New(256, 256)
	d, id := d.Add(document.NewImageLayer("img", solidPixmap(128, 128, raster.Red)))
	q := warp.Quad{TL: raster.Pt(10, 20), TR: raster.Pt(240, 5), BL: raster.Pt(30, 250), BR: raster.Pt(200, 210)}
	d = d.Update(id, document.Patch{Warp: &q})
	e := NewEngine()
	out := raster.NewPixmap(256, 256)
	b.ResetTimer()
	for b.Loop() {
		e.RenderTo(out, d)
	}
}
