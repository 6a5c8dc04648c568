// Package tieralloc implements a tiered, sharded memory allocator intended
// as a drop-in replacement for alloc/free/realloc inside a single process.
//
// Requests are routed by size into three tiers. Small requests (<= 2048
// bytes) are served 16-byte-granular from a SmallAlloc living inside a
// LargeBlock; mid-sized requests (<= 128 KiB) are served 4 KiB-granular from
// a LargeAlloc; anything larger is forwarded to the system allocator. The
// small and large tiers hand out memory with a bump cursor guarded by a pair of bitmaps, one
// for the owning front end's own frees and one foreign front ends OR bits
// into without ever taking a lock.
//
// An Arena is the front end: create one per long-lived worker goroutine and
// reuse it across calls to get the "hits never touch a mutex" fast path.
// The package-level Alloc/Free/Realloc/Zalloc/StaticAlloc functions draw
// from a pool of Arenas for callers who would rather not hold a handle,
// at some cost to that locality but none to correctness.
//
// Static allocations made with StaticAlloc are never freed; they exist for
// permanent bookkeeping structures whose lifetime matches the process.
package tieralloc
