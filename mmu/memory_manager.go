package mmu

import "mmusim/status"

// AddressSpace is the interface a process sees of its memory.
// Both methods work on 16 bit little endian words: low byte at addr,
// high byte at addr+1. The returned status tells the caller whether the
// address was wrong (violation) or paging happened on the way (page fault).
type AddressSpace interface {

	// ReadMemoryWord returns the word stored at virtual address "addr"
	ReadMemoryWord(addr uint32) (uint16, status.Status)

	// WriteMemoryWord writes "data" to virtual address "addr"
	WriteMemoryWord(addr uint32, data uint16) status.Status
}
