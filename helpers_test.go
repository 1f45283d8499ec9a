package compositor

import (
	"testing"

	"github.com/gogpu/compositor/document"
	"github.com/gogpu/compositor/raster"
)

// solidPixmap returns a w x h pixmap filled with c.
func solidPixmap(w, h int, c raster.RGBA) *raster.Pixmap {
	pm := raster.NewPixmap(w, h)
	pm.Clear(c)
	return pm
}

// withLayer adds an image layer of size w x h filled with c at (x, y).
func withLayer(t *testing.T, d *document.Document, x, y float64, w, h int, c raster.RGBA) (*document.Document, document.ID) {
	t.Helper()
	d, id := d.Add(document.NewImageLayer("layer", solidPixmap(w, h, c)))
	return d.Update(id, document.Move(x, y)), id
}

func pixel(pm *raster.Pixmap, x, y int) [4]uint8 {
	r, g, b, a := pm.PixelPremul(x, y)
	return [4]uint8{r, g, b, a}
}

func near8(a, b [4]uint8, tol int) bool {
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

var (
	opaqueRed   = [4]uint8{255, 0, 0, 255}
	opaqueBlack = [4]uint8{0, 0, 0, 255}
	clearPixel  = [4]uint8{}
)
