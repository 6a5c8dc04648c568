package tieralloc

import "unsafe"

// Arena is a persistent front end: the Go-visible handle for what the
// source allocator resolves implicitly via thread-local storage. Go
// goroutines have no stable thread identity to hang a lookup on, so
// tieralloc makes ownership explicit instead of faking TLS. Callers that
// care about front-end locality (the "hits never touch a mutex" guarantee)
// should create one Arena per long-lived worker goroutine and reuse it for
// every Alloc/Free/Realloc that worker makes; see DESIGN.md for why the
// package-level convenience functions can't offer the same guarantee.
//
// An Arena is not safe for concurrent use by multiple goroutines; it is
// exactly as shareable as the OS-thread-local state it replaces.
type Arena struct {
	t *threadAlloc
}

// NewArena creates a fresh front end, owning no SA/LB/LA yet.
func NewArena() *Arena {
	return &Arena{t: newThreadAlloc()}
}

// StaticAlloc returns n bytes of permanent memory; it is never freed.
func (a *Arena) StaticAlloc(n int64) unsafe.Pointer {
	p, _ := a.t.allocStatic(n)
	return p
}

// Alloc returns n bytes, or nil on out-of-memory.
func (a *Arena) Alloc(n int) unsafe.Pointer {
	if n <= 0 {
		return nil
	}
	return a.t.alloc(n)
}

// Free releases the n-byte block at p. n must equal the size originally
// passed to Alloc or the most recent Realloc for p; a nil p is a no-op.
func (a *Arena) Free(p unsafe.Pointer, n int) {
	a.t.free(p, n)
}

// Realloc grows p from oldSize to newSize, which must exceed oldSize
// whenever p is non-nil. Returns nil on out-of-memory; p's contents up to
// oldSize are preserved whether or not the returned pointer equals p.
func (a *Arena) Realloc(p unsafe.Pointer, oldSize, newSize int) unsafe.Pointer {
	if p == nil {
		return a.Alloc(newSize)
	}
	return a.t.realloc(p, oldSize, newSize)
}

// Zalloc is Alloc followed by a zero-fill on success only; it never zeroes
// a failed allocation's (non-existent) memory.
func (a *Arena) Zalloc(n int) unsafe.Pointer {
	p := a.Alloc(n)
	if p == nil {
		return nil
	}
	clear(unsafe.Slice((*byte)(p), n))
	return p
}
