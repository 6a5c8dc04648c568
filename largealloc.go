package tieralloc

import (
	"unsafe"

	"github.com/bnclabs/tieralloc/internal/dlist"
	"github.com/bnclabs/tieralloc/internal/registry"
)

// largeUnitOwners resolves a Large unit's aligned base address to its
// LargeAlloc header. Large units hosting a LargeBlock are never looked up
// this way: a user pointer inside one always resolves through its Small
// unit to a smallAlloc first.
var largeUnitOwners registry.Table[*largeAlloc]

// largeAlloc hands out 4 KiB-granular slots (4 KiB - 128 KiB) from one
// Large unit.
type largeAlloc struct {
	node   dlist.Node[*largeAlloc]
	parent *hugeBlock
	owner  *threadAlloc
	eng    *bumpEngine
}

func (la *largeAlloc) Link() *dlist.Node[*largeAlloc] { return &la.node }

func makeLargeAlloc(unit unsafe.Pointer, parent *hugeBlock, owner *threadAlloc) *largeAlloc {
	payload := unsafe.Pointer(uintptr(unit) + largeAllocHeaderBytes)
	la := &largeAlloc{
		parent: parent, owner: owner,
		eng: newBumpEngine(payload, largeSlotSize, largeAllocMaxBit),
	}
	largeUnitOwners.Put(unit, la)
	return la
}

func largeUnits(n int) int {
	return int(alignUp(int64(n), largeSlotSize) / largeSlotSize)
}

func (la *largeAlloc) alloc(n int) (unsafe.Pointer, bool) { return la.eng.alloc(largeUnits(n)) }
func (la *largeAlloc) tryHardAlloc(n int) (unsafe.Pointer, bool) {
	return la.eng.tryHardAlloc(largeUnits(n))
}
func (la *largeAlloc) free(p unsafe.Pointer) bool { return la.eng.free(p) }
func (la *largeAlloc) xfree(p unsafe.Pointer)     { la.eng.xfree(p) }
func (la *largeAlloc) realloc(p unsafe.Pointer, o, n int) (unsafe.Pointer, bool) {
	return la.eng.realloc(p, largeUnits(o), largeUnits(n))
}

// largeUnitBase aligns p down to its 2 MiB Large-unit boundary.
func largeUnitBase(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(p) &^ uintptr(largeUnitSize-1))
}
