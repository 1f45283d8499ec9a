// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package document holds the layer stack of a composition.
//
// A [Document] is an immutable value. Every operation returns a new
// Document that shares unchanged layers with the old one, which makes
// whole-stack snapshots for undo cheap:
//
//	doc := document.New(800, 600)
//	doc, id := doc.Add(document.NewImageLayer("photo", pm))
//	doc, dup := doc.Duplicate(id)
//	doc = doc.Update(dup, document.Patch{Opacity: document.Ptr(0.5)})
//
// Pixel buffers are never written once they are part of a Document.
// Painting clones the buffer first ([Document.Stroke]), or works on a
// buffer the caller cloned and owns ([Paint]).
package document
