// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package typeset

import (
	"strings"

	"github.com/gogpu/compositor/raster"
)

// LineHeight is the distance between baselines as a multiple of the size.
const LineHeight = 1.2

// Font weights.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// Align controls horizontal placement of each line inside the text box.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

var alignNames = [...]string{"left", "center", "right"}

// String returns the CSS name of the alignment.
func (a Align) String() string {
	if int(a) < len(alignNames) {
		return alignNames[a]
	}
	return "left"
}

// ParseAlign returns the alignment named s. Unknown names report false.
func ParseAlign(s string) (Align, bool) {
	for i, n := range alignNames {
		if strings.EqualFold(n, s) {
			return Align(i), true
		}
	}
	return AlignLeft, false
}

// Style holds everything that affects how text is measured and drawn.
type Style struct {
	Family string
	// Size is the font size in pixels. Zero selects 16.
	Size   float64
	Weight int
	Italic bool
	Align  Align

	Fill raster.RGBA
	// Stroke is drawn over the fill when StrokeWidth > 0.
	Stroke      raster.RGBA
	StrokeWidth float64
}

// SameMetrics reports whether a and b lay out text identically, so a text
// layer does not need to be re-measured when switching between them.
func (s Style) SameMetrics(o Style) bool {
	return strings.EqualFold(s.Family, o.Family) && s.Size == o.Size &&
		s.weight() == o.weight() && s.Italic == o.Italic
}

func (s Style) weight() int {
	if s.Weight <= 0 {
		return WeightNormal
	}
	return s.Weight
}

func (s Style) size() float64 {
	if s.Size <= 0 {
		return 16
	}
	return s.Size
}
