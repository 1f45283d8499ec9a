// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package typeset

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/compositor/raster"
)

func TestResolve(t *testing.T) {
	book := DefaultFontBook()
	tests := []struct {
		name       string
		family     string
		weight     int
		italic     bool
		wantFamily string
		wantWeight int
		wantItalic bool
	}{
		{"exact", "Go", WeightNormal, false, "Go", WeightNormal, false},
		{"case insensitive", "go mono", WeightNormal, false, "Go Mono", WeightNormal, false},
		{"bold italic", "Go", WeightBold, true, "Go", WeightBold, true},
		{"nearest weight", "Go", 600, false, "Go", WeightBold, false},
		{"generic alias", "monospace", 0, false, "Go Mono", WeightNormal, false},
		{"family list", `"Nope", sans-serif`, WeightNormal, false, "Go", WeightNormal, false},
		{"unknown falls back", "Comic Sans", WeightNormal, false, "Go", WeightNormal, false},
		{"missing italic keeps weight", "Go Mono", WeightBold, true, "Go Mono", WeightBold, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := book.Resolve(tt.family, tt.weight, tt.italic)
			if err != nil {
				t.Fatal(err)
			}
			if f.Family != tt.wantFamily || f.Weight != tt.wantWeight || f.Italic != tt.wantItalic {
				t.Errorf("Resolve = %s/%d/%v, want %s/%d/%v",
					f.Family, f.Weight, f.Italic, tt.wantFamily, tt.wantWeight, tt.wantItalic)
			}
		})
	}
}

func TestResolveEmptyBook(t *testing.T) {
	_, err := NewFontBook().Resolve("Go", WeightNormal, false)
	if !errors.Is(err, ErrNoFont) {
		t.Errorf("err = %v, want ErrNoFont", err)
	}
}

func TestRegisterInvalid(t *testing.T) {
	if err := NewFontBook().Register("Bad", WeightNormal, false, []byte("not a font")); err == nil {
		t.Error("expected parse error")
	}
}

func TestRegisterFirstIsFallback(t *testing.T) {
	book := NewFontBook()
	if err := book.Register("Custom", WeightNormal, false, goregular.TTF); err != nil {
		t.Fatal(err)
	}
	f, err := book.Resolve("anything", WeightNormal, false)
	if err != nil {
		t.Fatal(err)
	}
	if f.Family != "Custom" {
		t.Errorf("fallback family = %q, want Custom", f.Family)
	}
}

func TestLayoutMetrics(t *testing.T) {
	book := DefaultFontBook()
	st := Style{Family: "Go", Size: 20}

	one, err := book.Layout("Hello", st)
	if err != nil {
		t.Fatal(err)
	}
	if one.Width <= 10 {
		t.Errorf("width = %v, want a real advance", one.Width)
	}
	if math.Abs(one.Height-24) > 1e-9 {
		t.Errorf("height = %v, want 24", one.Height)
	}

	two, err := book.Layout("Hello\nHello, world", st)
	if err != nil {
		t.Fatal(err)
	}
	if len(two.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(two.Lines))
	}
	if math.Abs(two.Height-48) > 1e-9 {
		t.Errorf("height = %v, want 48", two.Height)
	}
	if two.Width <= one.Width {
		t.Errorf("width %v should be the longer line, > %v", two.Width, one.Width)
	}
}

func TestMeasureEmpty(t *testing.T) {
	w, h, err := DefaultFontBook().Measure("", Style{Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	if w != 1 || math.Abs(h-12) > 1e-9 {
		t.Errorf("Measure(\"\") = %v x %v, want 1 x 12", w, h)
	}
}

func TestMeasureScalesWithSize(t *testing.T) {
	book := DefaultFontBook()
	small, _, _ := book.Measure("Scale", Style{Size: 10})
	large, _, _ := book.Measure("Scale", Style{Size: 40})
	if ratio := large / small; math.Abs(ratio-4) > 0.3 {
		t.Errorf("width ratio = %v, want ~4", ratio)
	}
}

func TestIsRTL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"hello", false},
		{"שלום", true},
		{"  123 مرحبا", true},
		{"abc שלום", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isRTL(tt.in); got != tt.want {
			t.Errorf("isRTL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLineOriginAlignment(t *testing.T) {
	l := &Layout{
		Lines:      []Line{{Width: 40}, {Width: 20}},
		LineHeight: 12,
		Ascent:     8,
	}
	tests := []struct {
		align Align
		wantX float64
	}{
		{AlignLeft, 0},
		{AlignCenter, 40},
		{AlignRight, 80},
	}
	for _, tt := range tests {
		l.Style.Align = tt.align
		p := l.LineOrigin(1, 100)
		if p.X != tt.wantX || p.Y != 20 {
			t.Errorf("%v: origin = %v, want (%v, 20)", tt.align, p, tt.wantX)
		}
	}
}

func TestDrawFillsGlyphs(t *testing.T) {
	l, err := DefaultFontBook().Layout("H", Style{Size: 40, Fill: raster.Black})
	if err != nil {
		t.Fatal(err)
	}
	dst := raster.NewPixmap(60, 60)
	l.Draw(dst, raster.Translate(5, 5), l.Width)

	var covered int
	for i := 3; i < len(dst.Data()); i += 4 {
		if dst.Data()[i] > 0 {
			covered++
		}
	}
	if covered < 50 {
		t.Errorf("covered pixels = %d, want glyph coverage", covered)
	}
}

func TestDrawStrokeAddsCoverage(t *testing.T) {
	st := Style{Size: 40, Fill: raster.Transparent}
	l, err := DefaultFontBook().Layout("O", st)
	if err != nil {
		t.Fatal(err)
	}
	plain := raster.NewPixmap(60, 60)
	l.Draw(plain, raster.Translate(5, 5), l.Width)

	l.Style.Stroke = raster.Red
	l.Style.StrokeWidth = 4
	stroked := raster.NewPixmap(60, 60)
	l.Draw(stroked, raster.Translate(5, 5), l.Width)

	if !plain.Equal(raster.NewPixmap(60, 60)) {
		t.Error("transparent fill drew pixels")
	}
	if stroked.Equal(raster.NewPixmap(60, 60)) {
		t.Error("stroke drew nothing")
	}
}

func TestParseAlign(t *testing.T) {
	for _, a := range []Align{AlignLeft, AlignCenter, AlignRight} {
		got, ok := ParseAlign(a.String())
		if !ok || got != a {
			t.Errorf("ParseAlign(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAlign("justify"); ok {
		t.Error("justify should not parse")
	}
}

func TestSameMetrics(t *testing.T) {
	a := Style{Family: "Go", Size: 12}
	b := a
	b.Fill = raster.Red
	b.Align = AlignRight
	if !a.SameMetrics(b) {
		t.Error("color and alignment do not affect metrics")
	}
	b.Weight = WeightBold
	if a.SameMetrics(b) {
		t.Error("weight affects metrics")
	}
}
