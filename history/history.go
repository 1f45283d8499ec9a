// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package history implements bounded undo and redo over layer-stack
// snapshots.
//
// Documents are immutable, so an entry is just the layer slice and canvas
// size of a committed document; layers are shared between entries and
// never copied.
//
// A Stack is not safe for concurrent use.
package history

import "github.com/gogpu/compositor/document"

// DefaultMaxDepth is the number of entries a Stack keeps by default.
const DefaultMaxDepth = 20

// Option configures a Stack.
type Option func(*Stack)

// WithMaxDepth sets the maximum number of entries. Values below 1 are
// ignored.
func WithMaxDepth(n int) Option {
	return func(s *Stack) {
		if n >= 1 {
			s.maxDepth = n
		}
	}
}

// Stack is a cursor-addressed sequence of snapshots.
//
// Committing after an undo discards every entry above the cursor. When the
// stack is full the oldest entry is evicted.
type Stack struct {
	entries  []entry
	cursor   int
	maxDepth int
}

// New returns an empty Stack.
func New(opts ...Option) *Stack {
	s := &Stack{cursor: -1, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type entry struct {
	layers        []*document.Layer
	width, height int
}

// Commit records the layers and canvas size of d as the newest entry.
func (s *Stack) Commit(d *document.Document) {
	e := entry{layers: d.Layers(), width: d.Width(), height: d.Height()}
	s.entries = append(s.entries[:s.cursor+1], e)
	if len(s.entries) > s.maxDepth {
		drop := len(s.entries) - s.maxDepth
		s.entries = append(s.entries[:0], s.entries[drop:]...)
		clear(s.entries[len(s.entries):cap(s.entries)])
	}
	s.cursor = len(s.entries) - 1
}

// Undo steps back one entry and returns its layers. At the oldest entry it
// returns nil, false.
func (s *Stack) Undo() ([]*document.Layer, bool) {
	if !s.CanUndo() {
		return nil, false
	}
	s.cursor--
	return s.Current(), true
}

// Redo steps forward one entry and returns its layers. At the newest entry
// it returns nil, false.
func (s *Stack) Redo() ([]*document.Layer, bool) {
	if !s.CanRedo() {
		return nil, false
	}
	s.cursor++
	return s.Current(), true
}

// CanUndo reports whether Undo would move the cursor.
func (s *Stack) CanUndo() bool { return s.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (s *Stack) CanRedo() bool { return s.cursor < len(s.entries)-1 }

// Current returns the layers at the cursor, or nil for an empty stack.
func (s *Stack) Current() []*document.Layer {
	if s.cursor < 0 {
		return nil
	}
	return append([]*document.Layer(nil), s.entries[s.cursor].layers...)
}

// Size returns the canvas size at the cursor, or 0, 0 for an empty stack.
func (s *Stack) Size() (width, height int) {
	if s.cursor < 0 {
		return 0, 0
	}
	e := s.entries[s.cursor]
	return e.width, e.height
}

// Len returns the number of entries.
func (s *Stack) Len() int { return len(s.entries) }

// Cursor returns the index of the current entry, or -1 when empty.
func (s *Stack) Cursor() int { return s.cursor }

// MaxDepth returns the entry limit.
func (s *Stack) MaxDepth() int { return s.maxDepth }

// Reset discards every entry.
func (s *Stack) Reset() {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.cursor = -1
}
