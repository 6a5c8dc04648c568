package tieralloc

import (
	"unsafe"

	"github.com/bnclabs/tieralloc/internal/bitset"
	"github.com/bnclabs/tieralloc/internal/dlist"
)

// largeBlock occupies one committed Large unit and carves it into up to
// unitsPerLB Small units, one SmallAlloc apiece. Mirrors hugeBlock one tier
// down: same R = wordBits-1 reserved-slot pattern, same header adaptation.
type largeBlock struct {
	node   dlist.Node[*largeBlock]
	parent *hugeBlock

	base      unsafe.Pointer // base of the Large unit this LB occupies
	unitsBase unsafe.Pointer // base of the first usable Small unit
	bits      *bitset.Bitset // unitsPerLB bits, one per Small unit
}

func (lb *largeBlock) Link() *dlist.Node[*largeBlock] { return &lb.node }

// makeLargeBlock places an LB header at base, a Large unit just carved from
// parent. The unit's first Small unit is reserved, matching the source
// allocator's header-page convention even though no bytes are physically
// written there.
func makeLargeBlock(base unsafe.Pointer, parent *hugeBlock) *largeBlock {
	return &largeBlock{
		parent: parent, base: base,
		unitsBase: unsafe.Pointer(uintptr(base) + smallUnitSize),
		bits:      bitset.New(unitsPerLB),
	}
}

func (lb *largeBlock) unitAt(i int) unsafe.Pointer {
	return unsafe.Pointer(uintptr(lb.unitsBase) + uintptr(i)*smallUnitSize)
}

func (lb *largeBlock) alloc() (unsafe.Pointer, bool) {
	i := lb.bits.FindLowestClear(unitsPerLB)
	if i < 0 {
		return nil, false
	}
	lb.bits.Set(i)
	return lb.unitAt(i), true
}

func (lb *largeBlock) free(p unsafe.Pointer) bool {
	i := int((uintptr(p) - uintptr(lb.unitsBase)) / smallUnitSize)
	lb.bits.Unset(i)
	return lb.bits.Empty()
}

// makeSmallAlloc carves one Small unit from lb and places a SmallAlloc
// header on it, owned by owner.
func (lb *largeBlock) makeSmallAlloc(owner *threadAlloc) (*smallAlloc, bool) {
	unit, ok := lb.alloc()
	if !ok {
		return nil, false
	}
	return makeSmallAlloc(unit, lb, owner), true
}
