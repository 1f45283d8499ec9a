package compositor

import (
	"fmt"
	"image/jpeg"
	"io"
	"path/filepath"
	"strings"

	"github.com/gogpu/compositor/raster"
)

// Format is an export file format.
type Format uint8

const (
	FormatPNG Format = iota
	FormatJPEG
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// FormatFromPath picks a format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	}
	return 0, fmt.Errorf("compositor: unsupported export format %q", filepath.Ext(path))
}

// JPEGQuality is the quality used for JPEG export.
const JPEGQuality = 92

// Encode writes pm to w. JPEG has no alpha channel, so the image is
// flattened onto white first.
func Encode(w io.Writer, pm *raster.Pixmap, f Format) error {
	switch f {
	case FormatPNG:
		if err := pm.EncodePNG(w); err != nil {
			return fmt.Errorf("compositor: encode png: %w", err)
		}
		return nil
	case FormatJPEG:
		flat := raster.NewPixmap(pm.Width(), pm.Height())
		flat.Clear(raster.White)
		raster.Composite(flat, pm, 1, raster.BlendNormal)
		if err := jpeg.Encode(w, flat.RGBA(), &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return fmt.Errorf("compositor: encode jpeg: %w", err)
		}
		return nil
	}
	return fmt.Errorf("compositor: unsupported export format %v", f)
}
