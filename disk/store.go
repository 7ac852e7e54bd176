package disk

import (
	"sort"

	"mmusim/interrupts"
)

// Key addresses a page of a process in the store
type Key struct {
	PID  int
	Page int
}

// Store keeps the contents of evicted pages.
// The emulated drive never touches the host file system -- everything
// lives in memory, one page sized block per key.
// Not safe for concurrent use; the memory manager serializes access.
type Store struct {
	pageSize int
	blocks   map[Key][]byte

	// counters
	writes, reads int
}

// New returns an empty store for pages of pageSize bytes
func New(pageSize int) *Store {
	s := Store{}
	s.pageSize = pageSize
	s.blocks = make(map[Key][]byte)
	return &s
}

// PageSize returns the block size of the store
func (s *Store) PageSize() int {
	return s.pageSize
}

// Save copies data into the block for (pid, page). data must be exactly one page long.
func (s *Store) Save(pid, page int, data []byte) {
	if len(data) != s.pageSize {
		interrupts.Raise(interrupts.IntBackingStore,
			"block of %d bytes saved for pid %d page %d, store holds %d byte pages", len(data), pid, page, s.pageSize)
	}
	block := make([]byte, s.pageSize)
	copy(block, data)

	s.blocks[Key{pid, page}] = block
	s.writes++
}

// Restore takes the block for (pid, page) out of the store.
// The second return value is false if the page was never saved.
func (s *Store) Restore(pid, page int) ([]byte, bool) {
	k := Key{pid, page}
	block, ok := s.blocks[k]
	if !ok {
		return nil, false
	}
	delete(s.blocks, k)
	s.reads++
	return block, true
}

// Peek returns the block for (pid, page) without taking it out.
// The block must not be modified.
func (s *Store) Peek(pid, page int) ([]byte, bool) {
	block, ok := s.blocks[Key{pid, page}]
	return block, ok
}

// Has reports whether a block for (pid, page) exists
func (s *Store) Has(pid, page int) bool {
	_, ok := s.blocks[Key{pid, page}]
	return ok
}

// Len returns the number of stored blocks
func (s *Store) Len() int {
	return len(s.blocks)
}

// Drop removes every block of pid and returns how many were removed
func (s *Store) Drop(pid int) int {
	n := 0
	for k := range s.blocks {
		if k.PID == pid {
			delete(s.blocks, k)
			n++
		}
	}
	return n
}

// Keys returns all stored keys ordered by pid, then page
func (s *Store) Keys() []Key {
	keys := make([]Key, 0, len(s.blocks))
	for k := range s.blocks {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].PID != keys[j].PID {
			return keys[i].PID < keys[j].PID
		}
		return keys[i].Page < keys[j].Page
	})
	return keys
}

// Counters returns the number of saves and restores served so far
func (s *Store) Counters() (writes, reads int) {
	return s.writes, s.reads
}
