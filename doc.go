// Package compositor renders stacks of editable layers into a single
// raster and drives them interactively.
//
// # Overview
//
// A composition is a [document.Document]: an immutable stack of image,
// drawing and text layers, each with its own geometry, non-destructive
// filters, pixel effects, optional warp quad, opacity and blend mode.
// An [Engine] turns a document into pixels. A [Session] ties a document
// to bounded undo history, an engine and a pointer controller, and is the
// surface a host UI talks to.
//
// # Quick Start
//
//	import "github.com/gogpu/compositor"
//
//	s := compositor.NewSession(800, 600)
//	id := s.AddImage("photo", img)
//	s.Update(id, document.Move(100, 50))
//	s.SetFilters(id, document.Filters{Brightness: 120, Contrast: 100, Saturation: 100})
//
//	f, _ := os.Create("out.png")
//	defer f.Close()
//	s.Export(f, compositor.FormatPNG)
//
// # Render Pipeline
//
// Layers are drawn bottom to top. For each visible layer the engine:
//   - clears a reusable scratch buffer the size of the canvas
//   - draws the layer content into it, warped or rotated about its center
//   - applies the layer filters to that content only
//   - runs the enabled pixel effects (pixelate, glitch, vignette, scanlines)
//   - blends the drop shadow, then the content, into the output
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at the top-left of the canvas
//   - X increases right
//   - Y increases down
//   - Layer rotation in degrees, positive is clockwise on screen
//
// # Packages
//
//   - raster: premultiplied pixel buffers, 2D geometry, masks, blend modes
//   - document: layers and the pure document operations
//   - history: bounded undo/redo over document snapshots
//   - effect: pixel effect operators
//   - warp: piecewise-affine quad warping
//   - typeset: font resolution, shaping and text rasterization
//   - interact: viewport mapping, hit testing and pointer gestures
package compositor

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
