// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package typeset lays out and rasterizes the text of text layers.
//
// Lines are shaped with HarfBuzz (github.com/go-text/typesetting) so the
// measured width matches the drawn glyphs, including kerning and
// ligatures. Glyph outlines come from golang.org/x/image/font/sfnt and
// are filled with golang.org/x/image/vector.
//
// Fonts are resolved through a [FontBook] by family, weight and style.
// [DefaultFontBook] carries the Go font family and answers the generic
// families "sans-serif", "serif" and "monospace":
//
//	book := typeset.DefaultFontBook()
//	lay, err := book.Layout("Hello\nworld", typeset.Style{Family: "sans-serif", Size: 32})
//	// lay.Width and lay.Height are the derived text layer size.
package typeset
