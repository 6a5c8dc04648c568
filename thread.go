package tieralloc

import (
	"sync/atomic"
	"unsafe"

	"github.com/bnclabs/tieralloc/internal/dlist"
)

var threadIDCounter atomic.Uint64

// threadAlloc is a front end owning one current SA, one current LB, and one
// current LA per tier, plus the self-organizing lists of additional ones.
// Exactly one Arena wraps each threadAlloc; see arena.go for why the
// wrapper exists.
type threadAlloc struct {
	id     uint64
	sas    dlist.List[*smallAlloc]
	lbs    dlist.List[*largeBlock]
	las    dlist.List[*largeAlloc]
	static staticAllocator
}

func newThreadAlloc() *threadAlloc {
	return &threadAlloc{id: threadIDCounter.Add(1)}
}

func (t *threadAlloc) allocStatic(n int64) (unsafe.Pointer, bool) {
	return t.static.alloc(n)
}

func (t *threadAlloc) alloc(n int) unsafe.Pointer {
	switch {
	case n <= maxSmallAlloc:
		return t.allocSmall(n)
	case n <= maxLargeAlloc:
		return t.allocLarge(n)
	default:
		return sysAlloc(n)
	}
}

// allocSmall implements spec section 4.6's small-tier routing: try the
// current SA, then run a bounded try_hard_alloc scan of scanSAs SAs that
// starts at the current SA itself (so at most scanSAs-1 other SAs are
// tried) and demotes it to the tail only after the scan misses, then fall
// back to carving a fresh SA out of the current (or a fresh) LB.
func (t *threadAlloc) allocSmall(n int) unsafe.Pointer {
	if !t.sas.Empty() {
		if p, ok := t.sas.Head().alloc(n); ok {
			return p
		}
		if _, p, ok := dlist.ScanAndPromote(&t.sas, scanSAs, func(sa *smallAlloc) (unsafe.Pointer, bool) {
			return sa.tryHardAlloc(n)
		}); ok {
			return p
		}
	}
	sa, ok := t.newSmallAlloc()
	if !ok {
		return nil
	}
	t.sas.PushFront(sa)
	p, _ := sa.alloc(n)
	return p
}

func (t *threadAlloc) newSmallAlloc() (*smallAlloc, bool) {
	if !t.lbs.Empty() {
		if sa, ok := t.lbs.Head().makeSmallAlloc(t); ok {
			return sa, true
		}
		if _, sa, ok := dlist.ScanAndPromote(&t.lbs, scanLBs, func(lb *largeBlock) (*smallAlloc, bool) {
			return lb.makeSmallAlloc(t)
		}); ok {
			return sa, true
		}
	}
	lb, ok := galloc.makeLargeBlock(t.id)
	if !ok {
		return nil, false
	}
	t.lbs.PushFront(lb)
	return lb.makeSmallAlloc(t)
}

// allocLarge mirrors allocSmall one tier up: current LA, bounded scan, then
// a fresh LA from the global back end.
func (t *threadAlloc) allocLarge(n int) unsafe.Pointer {
	if !t.las.Empty() {
		if p, ok := t.las.Head().alloc(n); ok {
			return p
		}
		if _, p, ok := dlist.ScanAndPromote(&t.las, scanLAs, func(la *largeAlloc) (unsafe.Pointer, bool) {
			return la.tryHardAlloc(n)
		}); ok {
			return p
		}
	}
	la, ok := galloc.makeLargeAlloc(t.id, t)
	if !ok {
		return nil
	}
	t.las.PushFront(la)
	p, _ := la.alloc(n)
	return p
}

func (t *threadAlloc) free(p unsafe.Pointer, n int) {
	if p == nil {
		return
	}
	switch {
	case n <= maxSmallAlloc:
		t.freeSmall(p)
	case n <= maxLargeAlloc:
		t.freeLarge(p)
	default:
		sysFree(p, n)
	}
}

// freeSmall resolves p's owning SA via the side table. Same-owner frees
// clear bs directly and cascade reclamation up through the LB when both
// the SA and its parent LB go empty and aren't their list's current head.
// Foreign-owner frees are a lock-free atomic xbs set, nothing more.
func (t *threadAlloc) freeSmall(p unsafe.Pointer) {
	unit := smallUnitBase(p)
	sa, ok := smallUnitOwners.Get(unit)
	if !ok {
		contractViolation("free", "pointer does not belong to any known small unit")
		return
	}
	if sa.owner != t {
		sa.xfree(p)
		return
	}
	if !sa.free(p) || t.sas.Head() == sa {
		return
	}
	t.sas.Erase(sa)
	smallUnitOwners.Delete(unit)

	lb := sa.parent
	if !lb.free(unit) || t.lbs.Head() == lb {
		return
	}
	t.lbs.Erase(lb)
	galloc.free(t.id, lb.base, lb.parent)
}

func (t *threadAlloc) freeLarge(p unsafe.Pointer) {
	unit := largeUnitBase(p)
	la, ok := largeUnitOwners.Get(unit)
	if !ok {
		contractViolation("free", "pointer does not belong to any known large unit")
		return
	}
	if la.owner != t {
		la.xfree(p)
		return
	}
	if !la.free(p) || t.las.Head() == la {
		return
	}
	t.las.Erase(la)
	largeUnitOwners.Delete(unit)
	galloc.free(t.id, unit, la.parent)
}

// realloc implements spec section 4.6: n > o is a caller contract; a fast
// path returns p unchanged when it already fits the rounded old slot,
// otherwise topmost in-place growth is attempted before falling back to
// alloc+copy+free.
func (t *threadAlloc) realloc(p unsafe.Pointer, o, n int) unsafe.Pointer {
	if p == nil {
		return t.alloc(n)
	}
	if o > maxLargeAlloc {
		return sysRealloc(p, o, n)
	}
	if n <= o {
		contractViolation("realloc", "new size must exceed old size")
		return p
	}

	switch {
	case o <= maxSmallAlloc && n <= maxSmallAlloc:
		if smallUnits(n) == smallUnits(o) {
			return p
		}
		if sa, ok := smallUnitOwners.Get(smallUnitBase(p)); ok && sa.owner == t && t.sas.Head() == sa {
			if np, ok := sa.realloc(p, o, n); ok {
				return np
			}
		}
	case o > maxSmallAlloc && n <= maxLargeAlloc:
		if largeUnits(n) == largeUnits(o) {
			return p
		}
		if la, ok := largeUnitOwners.Get(largeUnitBase(p)); ok && la.owner == t && t.las.Head() == la {
			if np, ok := la.realloc(p, o, n); ok {
				return np
			}
		}
	}

	np := t.alloc(n)
	if np == nil {
		return nil
	}
	copy(unsafe.Slice((*byte)(np), o), unsafe.Slice((*byte)(p), o))
	t.free(p, o)
	return np
}
