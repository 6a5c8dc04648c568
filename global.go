package tieralloc

import (
	"sync"
	"unsafe"

	"github.com/bnclabs/golog"
	"github.com/dustin/go-humanize"

	"github.com/bnclabs/tieralloc/internal/dlist"
	"github.com/bnclabs/tieralloc/internal/vm"
)

// shard is one of globalAlloc's independent partitions: a mutex and a
// HugeBlock list. Sharding spreads back-end contention across threads
// without giving every thread its own HB pool.
type shard struct {
	mu  sync.Mutex
	hbs dlist.List[*hugeBlock]
}

// globalAlloc is the process-wide back end. It has no constructor beyond
// its zero value: a [shardCount]shard array is ready to use directly, so
// there is no one-time-init singleton to race on first call.
type globalAlloc struct {
	shards [shardCount]shard
}

var galloc globalAlloc

func (g *globalAlloc) shardFor(id uint64) *shard {
	return &g.shards[id%shardCount]
}

// alloc vends a committed Large unit and the HugeBlock that owns it,
// selecting the shard by id (a ThreadAlloc's process-wide id).
func (g *globalAlloc) alloc(id uint64) (unsafe.Pointer, *hugeBlock, bool) {
	sh := g.shardFor(id)

	sh.mu.Lock()
	p, hb, ok := g.vendLocked(sh)
	sh.mu.Unlock()
	if !ok {
		return nil, nil, false
	}

	if err := vm.Commit(p, largeUnitSize); err != nil {
		log.Errorf("tieralloc: commit large unit (%s): %v", humanize.Bytes(largeUnitSize), err)
		return nil, nil, false
	}
	return p, hb, true
}

// vendLocked implements spec section 4.5's three-step alloc: try the
// current HB, then a bounded self-organizing scan, then create a fresh HB.
func (g *globalAlloc) vendLocked(sh *shard) (unsafe.Pointer, *hugeBlock, bool) {
	if !sh.hbs.Empty() {
		if p, ok := sh.hbs.Head().alloc(); ok {
			return p, sh.hbs.Head(), true
		}
		hb, p, ok := dlist.ScanAndPromote(&sh.hbs, scanHBs, func(hb *hugeBlock) (unsafe.Pointer, bool) {
			return hb.alloc()
		})
		if ok {
			return p, hb, true
		}
	}

	hb, err := makeHugeBlock()
	if err != nil {
		log.Errorf("tieralloc: reserve huge block: %v", err)
		return nil, nil, false
	}
	log.Verbosef("tieralloc: new huge block (%s)", humanize.Bytes(hugeBlockSize))
	sh.hbs.PushFront(hb)
	p, ok := hb.alloc()
	if !ok {
		// unreachable: a fresh HB always has its first slot free.
		return nil, nil, false
	}
	return p, hb, true
}

func (g *globalAlloc) makeLargeBlock(id uint64) (*largeBlock, bool) {
	p, hb, ok := g.alloc(id)
	if !ok {
		return nil, false
	}
	return makeLargeBlock(p, hb), true
}

func (g *globalAlloc) makeLargeAlloc(id uint64, owner *threadAlloc) (*largeAlloc, bool) {
	p, hb, ok := g.alloc(id)
	if !ok {
		return nil, false
	}
	la := makeLargeAlloc(p, hb, owner)
	return la, true
}

// free decommits the Large unit based at p, then returns it to hb's
// bitmap under the owning shard's mutex. If hb becomes empty and is not the
// shard's current head, it is erased and fully released; the head is kept
// as a hot cache even when empty, per the "not-current" reclamation rule
// applied at every tier.
func (g *globalAlloc) free(id uint64, p unsafe.Pointer, hb *hugeBlock) {
	if err := vm.Decommit(p, largeUnitSize); err != nil {
		log.Errorf("tieralloc: decommit large unit: %v", err)
	}

	sh := g.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if !hb.free(p) {
		return
	}
	if sh.hbs.Head() == hb {
		return
	}
	sh.hbs.Erase(hb)
	if err := hb.release(); err != nil {
		log.Errorf("tieralloc: release huge block: %v", err)
	}
}
