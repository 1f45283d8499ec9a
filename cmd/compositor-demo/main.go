// Command compositor-demo builds a small layered composition and writes the
// flattened result to an image file.
package main

import (
	"flag"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"log/slog"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/document"
	"github.com/gogpu/compositor/interact"
	"github.com/gogpu/compositor/raster"
	"github.com/gogpu/compositor/typeset"
	"github.com/gogpu/compositor/warp"
)

func main() {
	var (
		width    = flag.Int("width", 800, "canvas width")
		height   = flag.Int("height", 600, "canvas height")
		input    = flag.String("input", "", "image to place on the canvas (png, jpeg, bmp, tiff, webp)")
		output   = flag.String("output", "composition.png", "output file (.png or .jpg)")
		blend    = flag.String("blend", "multiply", "blend mode of the warped copy")
		grid     = flag.Int("warp-grid", 20, "warp subdivision per side")
		text     = flag.String("text", "compositor", "caption text")
		fill     = flag.String("color", "#ffffff", "caption fill color (#rgb, #rrggbb or #rrggbbaa)")
		verbose  = flag.Bool("v", false, "enable debug logging")
		checkers = flag.Bool("checker", false, "draw the transparency checkerboard under the layers")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	format, err := compositor.FormatFromPath(*output)
	if err != nil {
		log.Fatal(err)
	}
	mode, ok := raster.ParseBlendMode(*blend)
	if !ok {
		log.Fatalf("unknown blend mode %q", *blend)
	}

	s := compositor.NewSession(*width, *height,
		compositor.WithEngine(compositor.NewEngine(compositor.WithWarpGrid(*grid))))

	src, err := loadImage(*input, *width/2, *height/2)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *input, err)
	}
	photo := s.AddImage("photo", src)
	fx := s.Document().Layer(photo).Effects
	fx.Vignette.Enabled = true
	s.SetEffects(photo, fx)

	buildWarpedCopy(s, photo, mode)
	buildCaption(s, *text, raster.Hex(*fill))
	drawSquiggle(s)

	pm := s.Flatten()
	if *checkers {
		pm = s.Render()
	}
	if err := save(*output, pm, format); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	compositor.Logger().Info("composition saved",
		"output", *output,
		"size", image.Pt(*width, *height),
		"layers", s.Document().Len())
}

// save encodes pm to path. A failed encode removes the partial file.
func save(path string, pm *raster.Pixmap, f compositor.Format) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := compositor.Encode(out, pm, f); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}

// loadImage decodes path, or generates a radial test pattern when path is
// empty.
func loadImage(path string, w, h int) (image.Image, error) {
	if path == "" {
		return pattern(w, h), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func pattern(w, h int) image.Image {
	pm := raster.NewPixmap(w, h)
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := math.Atan2(float64(y)-cy, float64(x)-cx)
			r := math.Hypot(float64(x)-cx, float64(y)-cy) / math.Hypot(cx, cy)
			c := raster.RGB(0.5+0.5*math.Cos(a), 0.5+0.5*math.Sin(a), 1-r)
			pm.SetPixel(x, y, c)
		}
	}
	return pm
}

// buildWarpedCopy duplicates the photo and drags its corners into a
// trapezoid through the warp tool.
func buildWarpedCopy(s *compositor.Session, photo document.ID, mode raster.BlendMode) {
	dup := s.Duplicate(photo)
	s.Update(dup, document.Patch{
		Name:    document.Ptr("warped"),
		Blend:   &mode,
		Opacity: document.Ptr(0.8),
	})
	s.SetTool(interact.ToolWarp)

	q := s.Document().Layer(dup).Warp
	drag := func(from, to raster.Point) {
		vp := s.Viewport()
		d := s.Document()
		s.PointerDown(vp.ToViewport(from, d.Width(), d.Height()))
		s.PointerUp(vp.ToViewport(to, d.Width(), d.Height()))
	}
	drag(q.Corner(warp.TopLeft), q.TL.Add(raster.Pt(60, 40)))
	drag(q.Corner(warp.TopRight), q.TR.Add(raster.Pt(-60, 40)))
	s.SetTool(interact.ToolSelect)
}

func buildCaption(s *compositor.Session, text string, fill raster.RGBA) {
	st := typeset.Style{
		Family:      "sans-serif",
		Size:        48,
		Weight:      typeset.WeightBold,
		Align:       typeset.AlignCenter,
		Fill:        fill,
		Stroke:      raster.Black,
		StrokeWidth: 2,
	}
	id := s.AddText("caption", text, st, 40, 40)
	fx := s.Document().Layer(id).Effects
	fx.DropShadow.Enabled = true
	s.SetEffects(id, fx)
	s.Update(id, document.Patch{Rotation: document.Ptr(-8.0)})
}

func drawSquiggle(s *compositor.Session) {
	d := s.Document()
	s.AddDrawing("ink")
	s.SetTool(interact.ToolBrush)
	s.SetBrush(document.Brush{Color: raster.Hex("#ffcc00"), Size: 6})

	vp := s.Viewport()
	y0 := float64(d.Height()) * 0.85
	for i := 0; i <= 60; i++ {
		x := float64(d.Width()) * (0.1 + 0.8*float64(i)/60)
		y := y0 + 20*math.Sin(float64(i)/5)
		p := vp.ToViewport(raster.Pt(x, y), d.Width(), d.Height())
		switch i {
		case 0:
			s.PointerDown(p)
		case 60:
			s.PointerUp(p)
		default:
			s.PointerMove(p)
		}
	}
	s.SetTool(interact.ToolSelect)
}
