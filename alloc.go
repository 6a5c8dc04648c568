//go:build !tieralloc_sysmalloc

package tieralloc

import (
	"sync"
	"unsafe"
)

// defaultArenas pools Arenas for the package-level convenience functions
// below. Each call checks one out and returns it when done; this trades
// the front-end locality a caller-held Arena gets (the same SA/LA serving
// every call) for not requiring callers to manage a handle at all. A
// pointer's SA/LA still records whichever Arena's threadAlloc allocated
// it, so a later call that draws a different pooled Arena simply takes the
// cross-thread xfree path on Free; correctness never depends on drawing
// the same Arena twice, only performance does. Callers on a hot path
// should hold their own Arena via NewArena instead.
var defaultArenas = sync.Pool{New: func() interface{} { return NewArena() }}

func withArena(f func(*Arena)) {
	a := defaultArenas.Get().(*Arena)
	f(a)
	defaultArenas.Put(a)
}

// StaticAlloc returns n bytes of permanent process-lifetime memory.
func StaticAlloc(n int64) unsafe.Pointer {
	var p unsafe.Pointer
	withArena(func(a *Arena) { p = a.StaticAlloc(n) })
	return p
}

// Alloc returns n bytes, or nil on out-of-memory.
func Alloc(n int) unsafe.Pointer {
	var p unsafe.Pointer
	withArena(func(a *Arena) { p = a.Alloc(n) })
	return p
}

// Free releases the n-byte block at p; n must equal the size originally
// passed to Alloc/Zalloc or the most recent Realloc for p.
func Free(p unsafe.Pointer, n int) {
	if p == nil {
		return
	}
	withArena(func(a *Arena) { a.Free(p, n) })
}

// Realloc resizes p from oldSize to newSize, which must exceed oldSize
// whenever p is non-nil.
func Realloc(p unsafe.Pointer, oldSize, newSize int) unsafe.Pointer {
	var np unsafe.Pointer
	withArena(func(a *Arena) { np = a.Realloc(p, oldSize, newSize) })
	return np
}

// Zalloc is Alloc followed by a zero-fill on success.
func Zalloc(n int) unsafe.Pointer {
	var p unsafe.Pointer
	withArena(func(a *Arena) { p = a.Zalloc(n) })
	return p
}
