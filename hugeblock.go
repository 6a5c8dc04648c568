package tieralloc

import (
	"unsafe"

	"github.com/bnclabs/tieralloc/internal/bitset"
	"github.com/bnclabs/tieralloc/internal/dlist"
	"github.com/bnclabs/tieralloc/internal/vm"
)

// hugeBlock is a VM reservation of 128 MiB plus one Large unit of alignment
// slack, carved into up to unitsPerHB Large units. Its header lives on the Go heap; the reservation itself holds only
// Large-unit payload, see DESIGN.md for why a C-style embedded header
// doesn't carry over.
type hugeBlock struct {
	node dlist.Node[*hugeBlock]

	resBase unsafe.Pointer // exact base returned by vm.Reserve
	resSize uintptr        // exact size passed to vm.Reserve

	unitsBase unsafe.Pointer // base of the first usable Large unit
	bits      *bitset.Bitset // unitsPerHB bits, one per Large unit
}

func (hb *hugeBlock) Link() *dlist.Node[*hugeBlock] { return &hb.node }

// makeHugeBlock reserves a fresh HugeBlock. It over-reserves by one Large
// unit so a largeUnitSize-aligned base can always be picked inside the
// mapping; when that aligned base happens to equal the mapping's start, the
// first Large unit is skipped rather than special-cased, preserving the
// source allocator's alignment quirk.
func makeHugeBlock() (*hugeBlock, error) {
	resSize := uintptr(hugeBlockSize + largeUnitSize)
	resBase, err := vm.Reserve(resSize)
	if err != nil {
		return nil, err
	}
	aligned := uintptr(vm.AlignUp(uintptr(resBase), largeUnitSize))
	unitsBase := unsafe.Pointer(aligned)
	if aligned == uintptr(resBase) {
		unitsBase = unsafe.Pointer(aligned + largeUnitSize)
	}
	return &hugeBlock{
		resBase: resBase, resSize: resSize,
		unitsBase: unitsBase, bits: bitset.New(unitsPerHB),
	}, nil
}

func (hb *hugeBlock) unitAt(i int) unsafe.Pointer {
	return unsafe.Pointer(uintptr(hb.unitsBase) + uintptr(i)*largeUnitSize)
}

// alloc carves one Large unit by finding the lowest clear bit. The returned
// memory is reserved-but-uncommitted; callers commit it before use.
func (hb *hugeBlock) alloc() (unsafe.Pointer, bool) {
	i := hb.bits.FindLowestClear(unitsPerHB)
	if i < 0 {
		return nil, false
	}
	hb.bits.Set(i)
	return hb.unitAt(i), true
}

// free clears the bit for the Large unit based at p. Returns true iff the
// HugeBlock is now entirely unoccupied.
func (hb *hugeBlock) free(p unsafe.Pointer) bool {
	i := int((uintptr(p) - uintptr(hb.unitsBase)) / largeUnitSize)
	hb.bits.Unset(i)
	return hb.bits.Empty()
}

// release drops the entire reservation back to the VM layer.
func (hb *hugeBlock) release() error {
	return vm.Release(hb.resBase, hb.resSize)
}
