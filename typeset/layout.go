// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package typeset

import (
	"math"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// shaperPool pools HarfbuzzShaper instances, which are not safe for
// concurrent use.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// Glyph is a positioned glyph relative to the start of its line's
// baseline, with Y pointing down.
type Glyph struct {
	ID   font.GID
	X, Y float64
}

// Line is one shaped line of text.
type Line struct {
	Text   string
	Width  float64
	RTL    bool
	Glyphs []Glyph
}

// Layout is shaped multi-line text ready to be drawn.
type Layout struct {
	Lines []Line

	// Width is the widest line advance, at least 1.
	Width float64
	// Height is len(Lines) * LineHeight * size, at least 1.
	Height float64
	// LineHeight is the baseline-to-baseline distance in pixels.
	LineHeight float64
	// Ascent is the distance from the top of a line to its baseline.
	Ascent float64

	Style Style
	face  *Face
}

// Measure returns the derived size of text drawn with st.
func (b *FontBook) Measure(text string, st Style) (width, height float64, err error) {
	l, err := b.Layout(text, st)
	if err != nil {
		return 1, 1, err
	}
	return l.Width, l.Height, nil
}

// Layout shapes text with st. Lines are separated by '\n'.
func (b *FontBook) Layout(text string, st Style) (*Layout, error) {
	face, err := b.Resolve(st.Family, st.weight(), st.Italic)
	if err != nil {
		return nil, err
	}
	size := st.size()

	l := &Layout{
		LineHeight: size * LineHeight,
		Ascent:     face.ascent(size),
		Style:      st,
		face:       face,
	}

	gtFace := font.NewFace(face.shaping)
	for _, s := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := shapeLine(gtFace, s, size)
		l.Width = math.Max(l.Width, line.Width)
		l.Lines = append(l.Lines, line)
	}
	l.Width = math.Max(l.Width, 1)
	l.Height = math.Max(float64(len(l.Lines))*l.LineHeight, 1)
	return l, nil
}

func shapeLine(face *font.Face, s string, size float64) Line {
	line := Line{Text: s}
	runes := []rune(s)
	if len(runes) == 0 {
		return line
	}

	dir := di.DirectionLTR
	if isRTL(s) {
		dir = di.DirectionRTL
		line.RTL = true
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      face,
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	shaperPool.Put(hb)

	var x float64
	line.Glyphs = make([]Glyph, 0, len(output.Glyphs))
	for _, g := range output.Glyphs {
		line.Glyphs = append(line.Glyphs, Glyph{
			ID: g.GlyphID,
			X:  x + fixedToFloat(g.XOffset),
			Y:  -fixedToFloat(g.YOffset),
		})
		x += fixedToFloat(g.Advance)
	}
	line.Width = x
	return line
}

// isRTL reports whether the paragraph's base direction is right-to-left,
// taken from its first strong character.
func isRTL(s string) bool {
	for len(s) > 0 {
		props, size := bidi.LookupString(s)
		if size == 0 {
			return false
		}
		switch props.Class() {
		case bidi.L:
			return false
		case bidi.R, bidi.AL:
			return true
		}
		s = s[size:]
	}
	return false
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
