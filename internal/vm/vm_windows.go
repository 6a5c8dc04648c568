// +build windows

package vm

import (
	"fmt"
	"syscall"
	"unsafe"
)

const (
	memCommit    = 0x00001000
	memReserve   = 0x00002000
	memDecommit  = 0x00004000
	memRelease   = 0x00008000
	pageNoAccess = 0x01
	pageRWrite   = 0x04
)

var (
	modkernel32       = syscall.NewLazyDLL("kernel32.dll")
	procVirtualAlloc  = modkernel32.NewProc("VirtualAlloc")
	procVirtualFree   = modkernel32.NewProc("VirtualFree")
	procVirtualProtect = modkernel32.NewProc("VirtualProtect")
)

// reserve reserves n bytes of page-aligned address space without backing.
func reserve(n uintptr) (unsafe.Pointer, error) {
	r, _, e := procVirtualAlloc.Call(0, n, memReserve, pageNoAccess)
	if r == 0 {
		return nil, fmt.Errorf("vm: reserve %d bytes: %w", n, e)
	}
	return unsafe.Pointer(r), nil
}

// commit backs an already-reserved range with physical storage.
func commit(p unsafe.Pointer, n uintptr) error {
	r, _, e := procVirtualAlloc.Call(uintptr(p), n, memCommit, pageRWrite)
	if r == 0 {
		return fmt.Errorf("vm: commit %d bytes: %w", n, e)
	}
	return nil
}

// decommit returns the physical storage backing a range while keeping the
// reservation.
func decommit(p unsafe.Pointer, n uintptr) error {
	r, _, e := procVirtualFree.Call(uintptr(p), n, memDecommit)
	if r == 0 {
		return fmt.Errorf("vm: decommit %d bytes: %w", n, e)
	}
	return nil
}

// release drops the reservation entirely.
func release(p unsafe.Pointer, n uintptr) error {
	r, _, e := procVirtualFree.Call(uintptr(p), 0, memRelease)
	if r == 0 {
		return fmt.Errorf("vm: release %d bytes: %w", n, e)
	}
	return nil
}

var _ = procVirtualProtect
