//go:build tieralloc_sysmalloc

package tieralloc

import "unsafe"

// Built with tieralloc_sysmalloc, the four public entry points bypass the
// tiered hierarchy entirely and forward straight to the VM layer, matching
// the source allocator's compile-time "just use the system allocator"
// escape hatch. No Arena, no GlobalAlloc shard, no side tables.

// StaticAlloc returns n bytes that are never freed.
func StaticAlloc(n int64) unsafe.Pointer {
	return sysAlloc(int(n))
}

// Alloc returns n bytes, or nil on out-of-memory.
func Alloc(n int) unsafe.Pointer {
	if n <= 0 {
		return nil
	}
	return sysAlloc(n)
}

// Free releases the n-byte block at p.
func Free(p unsafe.Pointer, n int) {
	if p == nil {
		return
	}
	sysFree(p, n)
}

// Realloc resizes p from oldSize to newSize.
func Realloc(p unsafe.Pointer, oldSize, newSize int) unsafe.Pointer {
	if p == nil {
		return Alloc(newSize)
	}
	return sysRealloc(p, oldSize, newSize)
}

// Zalloc is Alloc followed by a zero-fill on success.
func Zalloc(n int) unsafe.Pointer {
	p := Alloc(n)
	if p == nil {
		return nil
	}
	clear(unsafe.Slice((*byte)(p), n))
	return p
}
