// Package cache provides a small generic LRU cache.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// The compositing engine uses it to keep shaped text layouts between
// frames, so an unchanged text layer is not re-shaped on every render.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation
// (it contains a mutex).
package cache
