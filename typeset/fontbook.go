// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package typeset

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrNoFont is returned when a FontBook has no face to fall back to.
var ErrNoFont = errors.New("typeset: no font available")

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger sets the logger used for font fallback warnings.
// Pass nil to disable logging.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

func logger() *slog.Logger {
	return loggerPtr.Load()
}

// Face is one parsed font file registered in a FontBook.
// Face is safe for concurrent use.
type Face struct {
	Family string
	Weight int
	Italic bool

	outlines *opentype.Font
	shaping  *font.Font
}

// ParseFace parses TrueType or OpenType data.
func ParseFace(family string, weight int, italic bool, data []byte) (*Face, error) {
	ot, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("typeset: failed to parse font %q: %w", family, err)
	}
	gt, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("typeset: failed to load font %q for shaping: %w", family, err)
	}
	return &Face{
		Family:   family,
		Weight:   weight,
		Italic:   italic,
		outlines: ot,
		shaping:  gt.Font,
	}, nil
}

// FontBook resolves family, weight and style to a Face.
// Family names are matched case-insensitively. FontBook is safe for
// concurrent use.
type FontBook struct {
	mu       sync.RWMutex
	families map[string][]*Face
	aliases  map[string]string
	fallback string
}

// NewFontBook returns an empty FontBook.
func NewFontBook() *FontBook {
	return &FontBook{
		families: make(map[string][]*Face),
		aliases:  make(map[string]string),
	}
}

var (
	defaultBook     *FontBook
	defaultBookOnce sync.Once
)

// DefaultFontBook returns a shared FontBook holding the Go fonts.
// "Go" is the fallback family; "Go Mono" answers "monospace".
func DefaultFontBook() *FontBook {
	defaultBookOnce.Do(func() {
		b := NewFontBook()
		for _, f := range []struct {
			family string
			weight int
			italic bool
			data   []byte
		}{
			{"Go", WeightNormal, false, goregular.TTF},
			{"Go", WeightBold, false, gobold.TTF},
			{"Go", WeightNormal, true, goitalic.TTF},
			{"Go", WeightBold, true, gobolditalic.TTF},
			{"Go Mono", WeightNormal, false, gomono.TTF},
			{"Go Mono", WeightBold, false, gomonobold.TTF},
		} {
			if err := b.Register(f.family, f.weight, f.italic, f.data); err != nil {
				logger().Warn("typeset: builtin font rejected", "family", f.family, "err", err)
			}
		}
		b.Alias("sans-serif", "Go")
		b.Alias("serif", "Go")
		b.Alias("system-ui", "Go")
		b.Alias("monospace", "Go Mono")
		defaultBook = b
	})
	return defaultBook
}

// Register parses data and adds it to family. The first registered family
// becomes the fallback.
func (b *FontBook) Register(family string, weight int, italic bool, data []byte) error {
	face, err := ParseFace(family, weight, italic, data)
	if err != nil {
		return err
	}
	b.Add(face)
	return nil
}

// Add adds a parsed face to the book.
func (b *FontBook) Add(face *Face) {
	key := strings.ToLower(face.Family)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.families[key] = append(b.families[key], face)
	if b.fallback == "" {
		b.fallback = key
	}
}

// Alias makes name resolve to family.
func (b *FontBook) Alias(name, family string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.aliases[strings.ToLower(name)] = strings.ToLower(family)
}

// SetFallback selects the family used when a requested family is unknown.
func (b *FontBook) SetFallback(family string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fallback = strings.ToLower(family)
}

// Families returns the registered family names.
func (b *FontBook) Families() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.families))
	for _, faces := range b.families {
		out = append(out, faces[0].Family)
	}
	return out
}

// Resolve returns the face that best matches the request.
//
// A comma-separated family list is tried in order, CSS style. Within a
// family, style is matched first and then the nearest weight. Unknown
// families fall back to the book's fallback family with a warning.
func (b *FontBook) Resolve(family string, weight int, italic bool) (*Face, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if weight <= 0 {
		weight = WeightNormal
	}
	for _, name := range strings.Split(family, ",") {
		key := strings.ToLower(strings.Trim(strings.TrimSpace(name), `"'`))
		if alias, ok := b.aliases[key]; ok {
			key = alias
		}
		if faces := b.families[key]; len(faces) > 0 {
			return closest(faces, weight, italic), nil
		}
	}

	faces := b.families[b.fallback]
	if len(faces) == 0 {
		return nil, ErrNoFont
	}
	logger().Warn("typeset: font family not found, using fallback",
		"family", family, "fallback", faces[0].Family)
	return closest(faces, weight, italic), nil
}

func closest(faces []*Face, weight int, italic bool) *Face {
	best := faces[0]
	bestScore := score(best, weight, italic)
	for _, f := range faces[1:] {
		if s := score(f, weight, italic); s < bestScore {
			best, bestScore = f, s
		}
	}
	return best
}

// score ranks a face against a request; lower is better. A style mismatch
// outweighs any weight difference.
func score(f *Face, weight int, italic bool) int {
	d := f.Weight - weight
	if d < 0 {
		d = -d
	}
	if f.Italic != italic {
		d += 10000
	}
	return d
}
