package mmu

import (
	"log"
	"sync"

	"mmusim/disk"
	"mmusim/interrupts"
	"mmusim/status"

	"github.com/pkg/errors"
)

var (
	// ErrAlreadyAllocated - allocate called twice for the same pid
	ErrAlreadyAllocated = errors.New("process already allocated")

	// ErrUnknownProcess - pid has no page table
	ErrUnknownProcess = errors.New("unknown process")
)

// WordSize is the number of bytes moved by ReadMemoryWord / WriteMemoryWord
const WordSize = 2

// Manager owns physical memory, the frame allocator, the page tables of all
// processes, the eviction queue and the backing store.
//
// Translation, page-in and eviction run under a single lock, so a frame is
// never visible as free and loaded at the same time.
type Manager struct {
	mu sync.Mutex

	pageSize   int
	frameCount int

	// physical memory: frame f occupies memory[f*pageSize : (f+1)*pageSize]
	memory []byte

	frames *FrameAllocator
	tables map[int]*PageTable
	queue  *EvictionQueue
	store  *disk.Store

	// paging counters, global and per pid
	pagedIn, pagedOut, restored int
	counters                    map[int]*processCounters

	log *log.Logger
}

type processCounters struct {
	pagedIn, pagedOut int
}

// New returns a manager for "capacity" bytes of physical memory split in
// frames of "pageSize" bytes.
func New(capacity, pageSize int, logger *log.Logger) (*Manager, error) {
	if pageSize <= 0 {
		return nil, errors.Errorf("page size must be positive, got %d", pageSize)
	}
	if capacity < pageSize {
		return nil, errors.Errorf("capacity %d holds no frame of %d bytes", capacity, pageSize)
	}
	if capacity%pageSize != 0 {
		return nil, errors.Errorf("capacity %d is not a multiple of page size %d", capacity, pageSize)
	}

	m := Manager{}
	m.pageSize = pageSize
	m.frameCount = capacity / pageSize
	m.memory = make([]byte, m.frameCount*pageSize)
	m.frames = NewFrameAllocator(m.frameCount)
	m.tables = make(map[int]*PageTable)
	m.queue = NewEvictionQueue()
	m.store = disk.New(pageSize)
	m.counters = make(map[int]*processCounters)
	m.log = logger

	m.log.Printf("memory initialized: %d bytes, %d frames of %d bytes\n", capacity, m.frameCount, pageSize)
	return &m, nil
}

// PageSize returns the page (and frame) size in bytes
func (m *Manager) PageSize() int { return m.pageSize }

// FrameCount returns the number of physical frames
func (m *Manager) FrameCount() int { return m.frameCount }

// Allocate reserves ceil(bytes / page size) unloaded pages for pid.
// No frame is touched; frames are assigned on first access.
func (m *Manager) Allocate(pid, bytes int) error {
	if bytes < 0 {
		return errors.Errorf("negative allocation size %d for pid %d", bytes, pid)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[pid]; ok {
		return errors.Wrapf(ErrAlreadyAllocated, "pid %d", pid)
	}
	pages := (bytes + m.pageSize - 1) / m.pageSize
	m.tables[pid] = NewPageTable(pages)
	m.counters[pid] = &processCounters{}

	m.log.Printf("allocate: pid %d, %d bytes -> %d pages\n", pid, bytes, pages)
	return nil
}

// Free drops the page table of pid: its frames go back to the free set and
// its queue and backing store entries are removed.
func (m *Manager) Free(pid int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	table, ok := m.tables[pid]
	if !ok {
		return errors.Wrapf(ErrUnknownProcess, "pid %d", pid)
	}

	released := 0
	for page := 0; page < table.Len(); page++ {
		entry, _ := table.Get(page)
		if !entry.Loaded() {
			continue
		}
		m.zeroFrame(entry.Frame)
		m.frames.Release(entry.Frame)
		_ = table.SetFrame(page, NoFrame)
		released++
	}
	queued := m.queue.Remove(pid)
	if queued != released {
		interrupts.Raise(interrupts.IntPageTable,
			"pid %d had %d loaded pages but %d queue entries", pid, released, queued)
	}
	stored := m.store.Drop(pid)
	delete(m.tables, pid)
	delete(m.counters, pid)

	m.log.Printf("free: pid %d, %d frames released, %d stored pages dropped\n", pid, released, stored)
	return nil
}

// Allocated reports whether pid has a page table
func (m *Manager) Allocated(pid int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tables[pid]
	return ok
}

// View returns the address space of pid
func (m *Manager) View(pid int) *View {
	return &View{pid: pid, m: m}
}

// Read returns the little endian word at vaddr of pid
func (m *Manager) Read(pid int, vaddr uint32) (uint16, status.Status) {
	var st status.Status

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.owns(pid, vaddr, WordSize) {
		st.SetViolation(true)
		return 0, st
	}

	// each byte is translated and accessed on its own: the second
	// translation may evict the page of the first byte
	var value uint16
	for i := 0; i < WordSize; i++ {
		addr, faulted := m.translate(pid, vaddr+uint32(i))
		if faulted {
			st.SetPageFault(true)
		}
		value |= uint16(m.memory[addr]) << (8 * i)
	}
	return value, st
}

// Write stores data as a little endian word at vaddr of pid
func (m *Manager) Write(pid int, vaddr uint32, data uint16) status.Status {
	var st status.Status

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.owns(pid, vaddr, WordSize) {
		st.SetViolation(true)
		return st
	}

	for i := 0; i < WordSize; i++ {
		addr, faulted := m.translate(pid, vaddr+uint32(i))
		if faulted {
			st.SetPageFault(true)
		}
		m.memory[addr] = byte(data >> (8 * i))
	}
	return st
}

// Peek returns the word at vaddr of pid without paging anything in.
// Bytes of unloaded pages come from the backing store, or read as zero if
// the page was never touched; PageFault is set when any byte was not resident.
func (m *Manager) Peek(pid int, vaddr uint32) (uint16, status.Status) {
	var st status.Status

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.owns(pid, vaddr, WordSize) {
		st.SetViolation(true)
		return 0, st
	}

	table := m.tables[pid]
	var value uint16
	for i := 0; i < WordSize; i++ {
		addr := vaddr + uint32(i)
		page := int(addr / uint32(m.pageSize))
		offset := int(addr % uint32(m.pageSize))

		var b byte
		entry, _ := table.Get(page)
		if entry.Loaded() {
			b = m.memory[entry.Frame*m.pageSize+offset]
		} else {
			st.SetPageFault(true)
			if block, ok := m.store.Peek(pid, page); ok {
				b = block[offset]
			}
		}
		value |= uint16(b) << (8 * i)
	}
	return value, st
}

// owns checks that every page of [vaddr, vaddr+n-1] is reserved for pid
func (m *Manager) owns(pid int, vaddr uint32, n int) bool {
	table, ok := m.tables[pid]
	if !ok {
		return false
	}
	first := uint64(vaddr) / uint64(m.pageSize)
	last := (uint64(vaddr) + uint64(n) - 1) / uint64(m.pageSize)
	for page := first; page <= last; page++ {
		if page >= uint64(table.Len()) {
			return false
		}
	}
	return true
}

// translate maps an owned virtual address to its physical address,
// paging in when needed. The second return value is true if a page-in happened.
func (m *Manager) translate(pid int, vaddr uint32) (int, bool) {
	page := int(vaddr / uint32(m.pageSize))
	offset := int(vaddr % uint32(m.pageSize))

	table := m.tables[pid]
	entry, err := table.Get(page)
	if err != nil {
		interrupts.Raise(interrupts.IntPageTable, "translate of unowned address %#x for pid %d", vaddr, pid)
	}
	if entry.Loaded() {
		return entry.Frame*m.pageSize + offset, false
	}

	frame := m.pageIn(pid, page, table)
	return frame*m.pageSize + offset, true
}

// pageIn loads page of pid into a frame, evicting when memory is full,
// and returns the frame.
func (m *Manager) pageIn(pid, page int, table *PageTable) int {
	frame, err := m.frames.Acquire()
	if err != nil {
		frame = m.pageOut()
	}

	_ = table.SetFrame(page, frame)
	m.queue.Enqueue(disk.Key{PID: pid, Page: page})

	start := frame * m.pageSize
	if block, ok := m.store.Restore(pid, page); ok {
		copy(m.memory[start:start+m.pageSize], block)
		m.restored++
		m.log.Printf("page in: pid %d page %d -> frame %d (restored)\n", pid, page, frame)
	} else {
		m.zeroFrame(frame)
		m.log.Printf("page in: pid %d page %d -> frame %d (zero fill)\n", pid, page, frame)
	}

	m.pagedIn++
	m.counters[pid].pagedIn++
	return frame
}

// pageOut evicts the oldest loaded page and hands its frame to the caller.
// The frame never goes through the free set.
func (m *Manager) pageOut() int {
	for {
		victim, err := m.queue.Dequeue()
		if err != nil {
			interrupts.Raise(interrupts.IntEviction,
				"no free frame and eviction queue empty (%d frames, %d free)", m.frameCount, m.frames.Free())
		}

		table, ok := m.tables[victim.PID]
		if !ok {
			m.log.Printf("page out: skipping stale entry pid %d page %d\n", victim.PID, victim.Page)
			continue
		}
		entry, err := table.Get(victim.Page)
		if err != nil || !entry.Loaded() {
			m.log.Printf("page out: skipping stale entry pid %d page %d\n", victim.PID, victim.Page)
			continue
		}

		frame := entry.Frame
		start := frame * m.pageSize
		m.store.Save(victim.PID, victim.Page, m.memory[start:start+m.pageSize])
		_ = table.SetFrame(victim.Page, NoFrame)

		m.pagedOut++
		if c, ok := m.counters[victim.PID]; ok {
			c.pagedOut++
		}
		m.log.Printf("page out: pid %d page %d from frame %d\n", victim.PID, victim.Page, frame)
		return frame
	}
}

func (m *Manager) zeroFrame(frame int) {
	start := frame * m.pageSize
	for i := start; i < start+m.pageSize; i++ {
		m.memory[i] = 0
	}
}
