package tieralloc

import (
	"unsafe"

	"github.com/bnclabs/tieralloc/internal/bitset"
)

// bumpEngine is the bump-cursor plus dual-bitmap sub-allocation scheme
// shared by SmallAlloc (16-byte slots) and LargeAlloc (4 KiB slots). Both
// tiers differ only in slot size and slot count; this type carries the
// shared algorithm so neither duplicates it.
type bumpEngine struct {
	base   unsafe.Pointer
	slot   int
	maxBit int
	curBit int
	bs     *bitset.Bitset // owner-only occupancy
	xbs    *bitset.Bitset // foreign-free, atomic
}

func newBumpEngine(base unsafe.Pointer, slot, maxBit int) *bumpEngine {
	return &bumpEngine{
		base: base, slot: slot, maxBit: maxBit,
		bs: bitset.New(maxBit), xbs: bitset.New(maxBit),
	}
}

func (e *bumpEngine) ptr(i int) unsafe.Pointer {
	return unsafe.Pointer(uintptr(e.base) + uintptr(i*e.slot))
}

func (e *bumpEngine) slotIndex(p unsafe.Pointer) int {
	return int((uintptr(p) - uintptr(e.base)) / uintptr(e.slot))
}

// alloc sets the span's first bit and advances the cursor by units. Returns
// ok=false when the unit doesn't fit below maxBit; the caller escalates.
func (e *bumpEngine) alloc(units int) (unsafe.Pointer, bool) {
	if e.curBit+units > e.maxBit {
		return nil, false
	}
	e.bs.Set(e.curBit)
	p := e.ptr(e.curBit)
	e.curBit += units
	return p, true
}

// tryHardAlloc drains xbs into bs, possibly rewinding the cursor, then
// retries alloc. This is the slow path a front end takes before giving up
// on a non-current SA/LA.
func (e *bumpEngine) tryHardAlloc(units int) (unsafe.Pointer, bool) {
	e.drain()
	return e.alloc(units)
}

// drain walks xbs cells from the cursor's cell down to zero, folding every
// foreign-freed bit back into bs and retracting the cursor whenever nothing
// live remains above the freshly reclaimed run.
func (e *bumpEngine) drain() {
	for w := e.curBit / 64; w >= 0; w-- {
		if w >= e.xbs.NumCells() {
			continue
		}
		x := e.xbs.DrainCell(w)
		if x == 0 {
			continue
		}
		e.bs.ClearMasked(w, x)
		lsb := bitset.Lsb(w, x)
		r := e.bs.Rfind(e.curBit)
		if r >= lsb {
			return
		}
		if r >= 0 {
			e.curBit = lsb
		} else {
			e.curBit = 0
		}
		if e.curBit == 0 {
			return
		}
	}
}

// free clears slot i and rewinds the cursor when i was the topmost live
// slot. Returns true iff the engine is now fully empty, signalling the
// caller to consider reclaiming the SA/LA itself.
func (e *bumpEngine) free(p unsafe.Pointer) bool {
	i := e.slotIndex(p)
	e.bs.Unset(i)
	r := e.bs.Rfind(e.curBit)
	if r < i {
		if r >= 0 {
			e.curBit = i
		} else {
			e.curBit = 0
		}
	}
	return e.curBit == 0
}

// xfree is the foreign-thread producer side: a relaxed atomic OR on xbs,
// nothing else. The owner observes and drains it lazily.
func (e *bumpEngine) xfree(p unsafe.Pointer) {
	e.xbs.AtomicOr(e.slotIndex(p))
}

// realloc grows p in place iff it is the topmost span and the grown span
// still fits below maxBit.
func (e *bumpEngine) realloc(p unsafe.Pointer, oldUnits, newUnits int) (unsafe.Pointer, bool) {
	i := e.slotIndex(p)
	if e.curBit != i+oldUnits {
		return nil, false
	}
	if i+newUnits > e.maxBit {
		return nil, false
	}
	e.curBit = i + newUnits
	return p, true
}

// empty reports whether the engine has allocated nothing (cursor at zero).
func (e *bumpEngine) empty() bool { return e.curBit == 0 }
