package tieralloc

import (
	"unsafe"

	"github.com/bnclabs/golog"

	"github.com/bnclabs/tieralloc/internal/vm"
)

// Requests above maxLargeAlloc bypass the tiered hierarchy entirely and go
// straight to the VM layer, one reservation per call. This is tieralloc's
// stand-in for "forward to the system allocator": Go exposes no libc malloc
// without cgo, and the VM layer already is the system-allocator-equivalent
// collaborator for everything else in this package.

func sysRoundedSize(n int) uintptr {
	return uintptr(vm.AlignUp(uintptr(n), vm.PageSize))
}

func sysAlloc(n int) unsafe.Pointer {
	sz := sysRoundedSize(n)
	p, err := vm.Reserve(sz)
	if err != nil {
		log.Errorf("tieralloc: oversized reserve %d bytes: %v", n, err)
		return nil
	}
	if err := vm.Commit(p, sz); err != nil {
		log.Errorf("tieralloc: oversized commit %d bytes: %v", n, err)
		return nil
	}
	return p
}

func sysFree(p unsafe.Pointer, n int) {
	if err := vm.Release(p, sysRoundedSize(n)); err != nil {
		log.Errorf("tieralloc: oversized release %d bytes: %v", n, err)
	}
}

func sysRealloc(p unsafe.Pointer, o, n int) unsafe.Pointer {
	if sysRoundedSize(n) == sysRoundedSize(o) {
		return p
	}
	np := sysAlloc(n)
	if np == nil {
		return nil
	}
	cp := o
	if n < cp {
		cp = n
	}
	copy(unsafe.Slice((*byte)(np), cp), unsafe.Slice((*byte)(p), cp))
	sysFree(p, o)
	return np
}
