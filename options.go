package compositor

import (
	"github.com/gogpu/compositor/history"
	"github.com/gogpu/compositor/typeset"
	"github.com/gogpu/compositor/warp"
)

// EngineOption configures an Engine during creation.
//
// Example:
//
//	// Transparent output, default warp grid and fonts
//	e := compositor.NewEngine()
//
//	// Editor view with a finer warp grid
//	e := compositor.NewEngine(
//	    compositor.WithBackground(compositor.Checkerboard(8)),
//	    compositor.WithWarpGrid(32),
//	)
type EngineOption func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	background Background
	warp       warp.Renderer
	fonts      *typeset.FontBook
	layouts    int
}

// defaultEngineOptions returns the default engine options.
func defaultEngineOptions() engineOptions {
	return engineOptions{
		warp:    *warp.DefaultRenderer(),
		fonts:   nil, // Will be set to typeset.DefaultFontBook if nil
		layouts: DefaultLayoutCacheSize,
	}
}

// WithBackground sets what is drawn under the first layer.
// The default is transparent.
func WithBackground(b Background) EngineOption {
	return func(o *engineOptions) {
		o.background = b
	}
}

// WithWarpGrid sets the warp subdivision, in cells per side. Larger grids
// reduce faceting at the cost of render time. Values below 1 are ignored.
func WithWarpGrid(n int) EngineOption {
	return func(o *engineOptions) {
		if n >= 1 {
			o.warp.Grid = n
		}
	}
}

// WithFontBook sets the fonts text layers are drawn with.
// The book should be the one the document measures text with.
func WithFontBook(b *typeset.FontBook) EngineOption {
	return func(o *engineOptions) {
		if b != nil {
			o.fonts = b
		}
	}
}

// WithLayoutCache sets how many shaped text layouts the engine keeps
// between frames. 0 disables the limit; negative values are ignored.
func WithLayoutCache(n int) EngineOption {
	return func(o *engineOptions) {
		if n >= 0 {
			o.layouts = n
		}
	}
}

// SessionOption configures a Session during creation.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	engine    *Engine
	depth     int
	threshold float64
	fonts     *typeset.FontBook
}

func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		depth: history.DefaultMaxDepth,
	}
}

// WithEngine sets the engine the session renders with. By default the
// session creates one with a checkerboard background for Render; Export
// never draws a background.
func WithEngine(e *Engine) SessionOption {
	return func(o *sessionOptions) {
		o.engine = e
	}
}

// WithHistoryDepth sets the number of undo snapshots kept.
func WithHistoryDepth(n int) SessionOption {
	return func(o *sessionOptions) {
		o.depth = n
	}
}

// WithHandleThreshold sets the handle grab radius in viewport pixels.
func WithHandleThreshold(px float64) SessionOption {
	return func(o *sessionOptions) {
		if px > 0 {
			o.threshold = px
		}
	}
}

// WithFonts sets the font book used to measure and draw text layers.
func WithFonts(b *typeset.FontBook) SessionOption {
	return func(o *sessionOptions) {
		o.fonts = b
	}
}
