// +build darwin dragonfly freebsd linux netbsd openbsd

package vm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// reserve maps n bytes of page-aligned address space with no physical
// backing (PROT_NONE) so the allocator can hand out aligned sub-ranges
// before committing any of them.
func reserve(n uintptr) (unsafe.Pointer, error) {
	b, err := unix.Mmap(-1, 0, int(n), unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("vm: reserve %d bytes: %w", n, err)
	}
	return unsafe.Pointer(&b[0]), nil
}

// commit backs an already-reserved range with physical storage and makes it
// read/write.
func commit(p unsafe.Pointer, n uintptr) error {
	b := unsafe.Slice((*byte)(p), n)
	if err := unix.Mprotect(b, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("vm: commit %d bytes: %w", n, err)
	}
	return nil
}

// decommit returns the physical storage backing a range while keeping the
// reservation; the range can be re-committed later without re-reserving.
func decommit(p unsafe.Pointer, n uintptr) error {
	b := unsafe.Slice((*byte)(p), n)
	if err := unix.Madvise(b, unix.MADV_DONTNEED); err != nil {
		return fmt.Errorf("vm: decommit %d bytes: %w", n, err)
	}
	return unix.Mprotect(b, unix.PROT_NONE)
}

// release drops the reservation entirely; p must be the base returned by
// Reserve and n its exact reserved size.
func release(p unsafe.Pointer, n uintptr) error {
	b := unsafe.Slice((*byte)(p), n)
	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("vm: release %d bytes: %w", n, err)
	}
	return nil
}
