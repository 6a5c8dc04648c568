// Package registry resolves a user pointer's owning header without relying
// on pointer-alignment arithmetic into Go-managed memory. The allocator's
// mmap'd regions hold only payload bytes; every region's header lives as an
// ordinary Go-heap struct, and this side table maps the region's aligned
// base address to that struct.
package registry

import (
	"sync"
	"unsafe"
)

// Table maps an aligned unit base address to its owning header. One Table
// serves small units (32 KiB) and large units (2 MiB) each; both share this
// type because the key space (region base addresses) never collides across
// the two tiers in practice, but callers keep them in separate Tables to
// avoid a stale lookup crossing tiers during debugging.
type Table[H any] struct {
	m sync.Map // uintptr(base) -> H
}

// Put registers base as owned by h.
func (t *Table[H]) Put(base unsafe.Pointer, h H) {
	t.m.Store(uintptr(base), h)
}

// Get resolves base to its owning header. ok is false for an address this
// table never registered (caller error: freeing an alien pointer).
func (t *Table[H]) Get(base unsafe.Pointer) (h H, ok bool) {
	v, ok := t.m.Load(uintptr(base))
	if !ok {
		return h, false
	}
	return v.(H), true
}

// Delete removes base's registration, called when a unit leaves its owner:
// a Small unit going back to its LargeBlock, or a Large unit going back to
// the global back end.
func (t *Table[H]) Delete(base unsafe.Pointer) {
	t.m.Delete(uintptr(base))
}
