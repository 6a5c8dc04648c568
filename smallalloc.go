package tieralloc

import (
	"unsafe"

	"github.com/bnclabs/tieralloc/internal/dlist"
	"github.com/bnclabs/tieralloc/internal/registry"
)

// smallUnitOwners resolves a Small unit's aligned base address to its
// SmallAlloc header, the side-table stand-in for the source allocator's
// align_down pointer arithmetic (see DESIGN.md).
var smallUnitOwners registry.Table[*smallAlloc]

// smallAlloc hands out 16-byte-granular slots (16 B - 2048 B) from one
// Small unit.
type smallAlloc struct {
	node   dlist.Node[*smallAlloc]
	parent *largeBlock
	owner  *threadAlloc
	eng    *bumpEngine
}

func (sa *smallAlloc) Link() *dlist.Node[*smallAlloc] { return &sa.node }

func makeSmallAlloc(unit unsafe.Pointer, parent *largeBlock, owner *threadAlloc) *smallAlloc {
	payload := unsafe.Pointer(uintptr(unit) + smallAllocHeaderBytes)
	sa := &smallAlloc{
		parent: parent, owner: owner,
		eng: newBumpEngine(payload, smallSlotSize, smallAllocMaxBit),
	}
	smallUnitOwners.Put(unit, sa)
	return sa
}

func smallUnits(n int) int {
	if n <= smallSlotSize {
		return 1
	}
	return int(alignUp(int64(n), smallSlotSize) / smallSlotSize)
}

func (sa *smallAlloc) alloc(n int) (unsafe.Pointer, bool) { return sa.eng.alloc(smallUnits(n)) }
func (sa *smallAlloc) tryHardAlloc(n int) (unsafe.Pointer, bool) {
	return sa.eng.tryHardAlloc(smallUnits(n))
}
func (sa *smallAlloc) free(p unsafe.Pointer) bool  { return sa.eng.free(p) }
func (sa *smallAlloc) xfree(p unsafe.Pointer)      { sa.eng.xfree(p) }
func (sa *smallAlloc) realloc(p unsafe.Pointer, o, n int) (unsafe.Pointer, bool) {
	return sa.eng.realloc(p, smallUnits(o), smallUnits(n))
}

// smallUnitBase aligns p down to its 32 KiB Small-unit boundary.
func smallUnitBase(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(p) &^ uintptr(smallUnitSize-1))
}
