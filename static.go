package tieralloc

import (
	"unsafe"

	"github.com/bnclabs/golog"

	"github.com/bnclabs/tieralloc/internal/vm"
)

// staticAllocator is a bump allocator over 64 KiB slabs. It backs every
// Arena's StaticAlloc and never frees anything it hands out; an exhausted
// slab is simply abandoned and a fresh one drawn.
type staticAllocator struct {
	slab     unsafe.Pointer
	slabSize uintptr
	off      uintptr
}

// alloc rounds n up to 8 bytes and serves it from the current slab when
// possible. Otherwise a request of at most staticAllocThreshold bytes starts
// a fresh slab, and a larger one gets its own VM mapping, mirroring the
// source allocator's direct-system-allocator overflow.
func (s *staticAllocator) alloc(n int64) (unsafe.Pointer, bool) {
	n = alignUp(n, 8)

	if s.slab != nil && s.off+uintptr(n) <= s.slabSize {
		p := unsafe.Pointer(uintptr(s.slab) + s.off)
		s.off += uintptr(n)
		return p, true
	}

	if n <= staticAllocThreshold {
		slab, err := vm.Reserve(staticSlabSize)
		if err != nil {
			log.Errorf("tieralloc: reserve static slab: %v", err)
			return nil, false
		}
		if err := vm.Commit(slab, staticSlabSize); err != nil {
			log.Errorf("tieralloc: commit static slab: %v", err)
			return nil, false
		}
		// The exhausted slab, if any, becomes unreferenced metadata
		// space; it is never released back to the VM layer.
		s.slab, s.slabSize, s.off = slab, staticSlabSize, uintptr(n)
		return slab, true
	}

	p, err := vm.Reserve(uintptr(n))
	if err != nil {
		log.Errorf("tieralloc: reserve oversized static block: %v", err)
		return nil, false
	}
	if err := vm.Commit(p, uintptr(n)); err != nil {
		log.Errorf("tieralloc: commit oversized static block: %v", err)
		return nil, false
	}
	return p, true
}
