package tieralloc

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// TestShardContention mirrors the teacher's flock/mutex_test.go style of
// concurrency-sensitive test: many goroutines hammer the same shard's
// HugeBlock list concurrently and the back end must neither panic nor lose
// track of any vended Large unit.
func TestShardContention(t *testing.T) {
	const goroutines, perGoroutine, distinctShards = 16, 8, 4

	var wg sync.WaitGroup
	seen := make(chan unsafe.Pointer, goroutines*perGoroutine)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		// Collapse onto a handful of shard ids so several goroutines
		// genuinely contend for the same shard's mutex.
		go func(id uint64) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				p, _, ok := galloc.alloc(id)
				require.True(t, ok, "global alloc must not fail under contention")
				seen <- p
			}
		}(uint64(g % distinctShards))
	}
	wg.Wait()
	close(seen)

	unique := map[unsafe.Pointer]bool{}
	for p := range seen {
		require.False(t, unique[p], "every vended Large unit must be distinct")
		unique[p] = true
	}
	require.Len(t, unique, goroutines*perGoroutine)
}

// TestCrossThreadFreeConcurrent has many goroutines concurrently
// foreign-free objects owned by a single Arena, after which the owner keeps
// allocating; the owner must observe no corruption (every returned pointer
// stays 16-byte aligned) regardless of how the frees interleaved.
func TestCrossThreadFreeConcurrent(t *testing.T) {
	owner := NewArena()

	const n = 256
	ptrs := make([]unsafe.Pointer, n)
	for i := range ptrs {
		p := owner.Alloc(16)
		require.NotNil(t, p, "owner alloc must succeed")
		ptrs[i] = p
	}

	var wg sync.WaitGroup
	for i := range ptrs {
		wg.Add(1)
		go func(p unsafe.Pointer) {
			defer wg.Done()
			f := NewArena()
			f.Free(p, 16)
		}(ptrs[i])
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		p := owner.Alloc(16)
		require.NotNil(t, p, "owner alloc must keep succeeding after concurrent foreign frees")
		require.Zero(t, uintptr(p)%16, "every returned pointer must stay 16-byte aligned")
	}
}
