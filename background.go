package compositor

import "github.com/gogpu/compositor/raster"

// BackgroundKind selects how a Background fills the canvas.
type BackgroundKind uint8

const (
	// BackgroundNone leaves the canvas transparent.
	BackgroundNone BackgroundKind = iota
	// BackgroundSolid fills the canvas with one color.
	BackgroundSolid
	// BackgroundChecker draws the editor's transparency checkerboard.
	BackgroundChecker
)

// DefaultCheckerCell is the checkerboard cell size in pixels.
const DefaultCheckerCell = 10

// Background is drawn under the first layer.
// The zero value is transparent.
type Background struct {
	Kind BackgroundKind

	// Color is the solid color, or the light checker cells.
	Color raster.RGBA
	// Alt is the dark checker cells.
	Alt raster.RGBA
	// Cell is the checker cell size in pixels.
	Cell int
}

// Solid returns a single-color background.
func Solid(c raster.RGBA) Background {
	return Background{Kind: BackgroundSolid, Color: c}
}

// Checkerboard returns the light/gray transparency checkerboard.
func Checkerboard(cell int) Background {
	return Background{
		Kind:  BackgroundChecker,
		Color: raster.White,
		Alt:   raster.Hex("#cccccc"),
		Cell:  cell,
	}
}

// Fill paints the background over all of pm.
func (b Background) Fill(pm *raster.Pixmap) {
	switch b.Kind {
	case BackgroundSolid:
		pm.Clear(b.Color)
	case BackgroundChecker:
		b.checker(pm)
	default:
		pm.Clear(raster.Transparent)
	}
}

func (b Background) checker(pm *raster.Pixmap) {
	cell := b.Cell
	if cell <= 0 {
		cell = DefaultCheckerCell
	}
	lr, lg, lb, la := b.Color.Bytes()
	dr, dg, db, da := b.Alt.Bytes()
	light := [4]uint8{lr, lg, lb, la}
	dark := [4]uint8{dr, dg, db, da}

	data := pm.Data()
	w, h := pm.Width(), pm.Height()
	for y := 0; y < h; y++ {
		row := data[y*pm.Stride():]
		for x := 0; x < w; x++ {
			c := &light
			if (x/cell+y/cell)%2 == 1 {
				c = &dark
			}
			copy(row[x*4:x*4+4], c[:])
		}
	}
}
