package compositor

import (
	"image"
	"math"
	"time"

	"github.com/gogpu/compositor/document"
	"github.com/gogpu/compositor/effect"
	"github.com/gogpu/compositor/internal/cache"
	"github.com/gogpu/compositor/internal/filter"
	"github.com/gogpu/compositor/raster"
	"github.com/gogpu/compositor/typeset"
	"github.com/gogpu/compositor/warp"
)

// DefaultLayoutCacheSize is the number of text layouts an Engine keeps
// unless WithLayoutCache says otherwise.
const DefaultLayoutCacheSize = 64

// layoutKey identifies a shaped text layout.
type layoutKey struct {
	text  string
	style typeset.Style
}

// Engine renders documents. It owns the scratch buffers a layer is drawn
// into before blending; they grow to the largest canvas seen and are
// reused across frames.
//
// Rendering is a pure function of the document and the background: the
// buffers are an optimization only. An Engine is not safe for concurrent
// use.
type Engine struct {
	background Background
	warp       warp.Renderer
	fonts      *typeset.FontBook
	layouts    *cache.Cache[layoutKey, *typeset.Layout]

	scratch *raster.Pixmap
	shadow  *raster.Pixmap
}

// NewEngine creates an Engine with the given options.
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.fonts == nil {
		o.fonts = typeset.DefaultFontBook()
	}
	return &Engine{
		background: o.background,
		warp:       o.warp,
		fonts:      o.fonts,
		layouts:    cache.New[layoutKey, *typeset.Layout](o.layouts),
		scratch:    raster.NewPixmap(1, 1),
		shadow:     raster.NewPixmap(1, 1),
	}
}

// Background returns the background drawn by Render.
func (e *Engine) Background() Background {
	return e.background
}

// Render composites d onto a new canvas-sized pixmap.
func (e *Engine) Render(d *document.Document) *raster.Pixmap {
	out := raster.NewPixmap(d.Width(), d.Height())
	e.RenderTo(out, d)
	return out
}

// RenderTo composites d into out, which is resized to the canvas.
func (e *Engine) RenderTo(out *raster.Pixmap, d *document.Document) {
	e.render(out, d, e.background)
}

// RenderWith composites d over bg instead of the engine's background.
func (e *Engine) RenderWith(d *document.Document, bg Background) *raster.Pixmap {
	out := raster.NewPixmap(d.Width(), d.Height())
	e.render(out, d, bg)
	return out
}

func (e *Engine) render(out *raster.Pixmap, d *document.Document, bg Background) {
	start := time.Now()
	w, h := d.Width(), d.Height()
	out.Reset(w, h)
	bg.Fill(out)

	layers := d.Layers()
	drawn := 0
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if !l.Visible {
			continue
		}
		if e.drawLayer(out, l) {
			drawn++
		}
	}

	Logger().Debug("compositor: frame rendered",
		"size", image.Pt(w, h),
		"layers", len(layers),
		"drawn", drawn,
		"elapsed", time.Since(start))
}

// drawLayer runs the per-layer pipeline and blends the result into out.
// It reports whether anything was blended.
func (e *Engine) drawLayer(out *raster.Pixmap, l *document.Layer) bool {
	if e.scratch.Reset(out.Width(), out.Height()) {
		Logger().Debug("compositor: scratch grown", "size", out.Bounds().Size())
	}

	area, ok := e.drawContent(l)
	if !ok {
		return false
	}

	if fs := filterChain(l.Filters); len(fs) > 0 {
		if l.Filters.Blur > 0 {
			area = filter.NewBlur(l.Filters.Blur).Expand(area)
		}
		filter.Chain(e.scratch, area.Intersect(e.scratch.Bounds()), fs...)
	}

	effect.Apply(e.scratch, l.Effects)

	if sh := l.Effects.DropShadow; sh.Enabled {
		ds := filter.DropShadow{
			OffsetX: sh.X,
			OffsetY: sh.Y,
			Blur:    sh.Blur,
			Color:   sh.Color.WithAlpha(sh.Color.A * min(max(sh.Opacity, 0), 1)),
		}
		ds.Render(e.scratch, e.shadow)
		raster.Composite(out, e.shadow, l.Opacity, l.Blend)
	}

	return raster.Composite(out, e.scratch, l.Opacity, l.Blend)
}

// drawContent draws the layer's isolated content into the scratch buffer
// and returns the area it may have touched.
func (e *Engine) drawContent(l *document.Layer) (image.Rectangle, bool) {
	canvas := e.scratch.Bounds()
	switch l.Kind {
	case document.KindImage, document.KindDrawing:
		if l.Pixels == nil {
			return image.Rectangle{}, false
		}
		if l.Warp != nil {
			if err := e.warp.Render(e.scratch, l.Pixels, *l.Warp); err != nil {
				Logger().Debug("compositor: warp skipped", "layer", l.ID, "err", err)
			}
			return raster.PolylineBounds(l.Warp.Points(), 2).Intersect(canvas), true
		}
		m := l.BoxTransform()
		raster.DrawScaled(e.scratch, l.Pixels, 0, 0, l.Width, l.Height, m)
		return boxBounds(l, m, 0).Intersect(canvas), true

	case document.KindText:
		layout, err := e.layout(l.Text, l.Style)
		if err != nil {
			Logger().Debug("compositor: text skipped", "layer", l.ID, "err", err)
			return image.Rectangle{}, false
		}
		m := l.BoxTransform()
		layout.Draw(e.scratch, m, l.Width)
		pad := l.Style.Size + l.Style.StrokeWidth
		return boxBounds(l, m, pad).Intersect(canvas), true
	}
	return image.Rectangle{}, false
}

// layout returns the shaped layout for text, reusing one from an earlier
// frame when the text and style are unchanged.
func (e *Engine) layout(text string, st typeset.Style) (*typeset.Layout, error) {
	return e.layouts.GetOrCreate(layoutKey{text, st}, func() (*typeset.Layout, error) {
		return e.fonts.Layout(text, st)
	})
}

// boxBounds returns the canvas bounds of the layer box grown by pad.
func boxBounds(l *document.Layer, m raster.Matrix, pad float64) image.Rectangle {
	p := int(math.Ceil(pad))
	box := image.Rect(-p, -p, int(math.Ceil(l.Width))+p, int(math.Ceil(l.Height))+p)
	return raster.TransformedBounds(box, m)
}

// filterChain returns the filters for f in application order: brightness,
// contrast and saturate merged into one matrix, then blur, then sepia,
// grayscale and hue-rotate merged into another.
func filterChain(f document.Filters) []filter.Filter {
	var out []filter.Filter

	if f.Brightness != 100 || f.Contrast != 100 || f.Saturation != 100 {
		m := filter.Brightness(pct(f.Brightness)).
			Then(filter.Contrast(pct(f.Contrast))).
			Then(filter.Saturate(pct(f.Saturation)))
		out = append(out, m)
	}
	if f.Blur > 0 {
		out = append(out, filter.NewBlur(f.Blur))
	}
	if f.Sepia > 0 || f.Grayscale > 0 || math.Mod(f.HueRotate, 360) != 0 {
		m := filter.Sepia(pct(f.Sepia)).
			Then(filter.Grayscale(pct(f.Grayscale))).
			Then(filter.HueRotate(float32(f.HueRotate)))
		out = append(out, m)
	}
	return out
}

func pct(v float64) float32 {
	return float32(max(v, 0) / 100)
}
