// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package interact

import (
	"math"
	"testing"

	"github.com/gogpu/compositor/document"
	"github.com/gogpu/compositor/raster"
)

// identity maps viewport pixels 1:1 onto a 200x200 canvas.
var identity = Viewport{Width: 200, Height: 200, Zoom: 1}

// boxDoc returns a 200x200 document with one 100x50 image layer at (10,10).
func boxDoc(t *testing.T) (*document.Document, document.ID) {
	t.Helper()
	pm := raster.NewPixmap(100, 50)
	pm.Clear(raster.White)
	d := document.New(200, 200)
	d, id := d.Add(document.NewImageLayer("box", pm))
	return d.Update(id, document.Move(10, 10)), id
}

// drag runs a full gesture through pts and returns the result.
func drag(c *Controller, d *document.Document, pts ...raster.Point) (*document.Document, bool) {
	d = c.PointerDown(d, identity, pts[0])
	for _, p := range pts[1 : len(pts)-1] {
		d = c.PointerMove(d, identity, p)
	}
	return c.PointerUp(d, identity, pts[len(pts)-1])
}

func near(a, b raster.Point) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}
