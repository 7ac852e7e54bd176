package mmu

import (
	"sort"

	"mmusim/disk"
)

// Stats is the aggregate view used by vmstat
type Stats struct {
	PageSize    int
	TotalFrames int
	FreeFrames  int
	UsedFrames  int

	Processes   int
	TotalPages  int
	LoadedPages int
	StoredPages int

	PagedIn  int
	PagedOut int
	Restored int
}

// ProcessStats describes the page table of one process
type ProcessStats struct {
	PID      int
	Pages    int
	Loaded   int
	Stored   int
	PagedIn  int
	PagedOut int

	// Frames holds the frame of every page, NoFrame if not loaded
	Frames []int
}

// FrameOwner tells who occupies a physical frame
type FrameOwner struct {
	Free bool
	PID  int
	Page int
}

// Stats returns frame and page totals
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{
		PageSize:    m.pageSize,
		TotalFrames: m.frameCount,
		FreeFrames:  m.frames.Free(),
		Processes:   len(m.tables),
		StoredPages: m.store.Len(),
		PagedIn:     m.pagedIn,
		PagedOut:    m.pagedOut,
		Restored:    m.restored,
	}
	s.UsedFrames = s.TotalFrames - s.FreeFrames
	for _, t := range m.tables {
		s.TotalPages += t.Len()
		s.LoadedPages += t.Loaded()
	}
	return s
}

// Processes returns per process page table details ordered by pid
func (m *Manager) Processes() []ProcessStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ProcessStats, 0, len(m.tables))
	for pid, t := range m.tables {
		ps := ProcessStats{
			PID:    pid,
			Pages:  t.Len(),
			Loaded: t.Loaded(),
			Frames: make([]int, t.Len()),
		}
		for page := 0; page < t.Len(); page++ {
			e, _ := t.Get(page)
			ps.Frames[page] = e.Frame
			if m.store.Has(pid, page) {
				ps.Stored++
			}
		}
		if c, ok := m.counters[pid]; ok {
			ps.PagedIn = c.pagedIn
			ps.PagedOut = c.pagedOut
		}
		out = append(out, ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

// FrameOwners returns the occupant of every physical frame
func (m *Manager) FrameOwners() []FrameOwner {
	m.mu.Lock()
	defer m.mu.Unlock()

	owners := make([]FrameOwner, m.frameCount)
	for i := range owners {
		owners[i].Free = true
	}
	for pid, t := range m.tables {
		for page := 0; page < t.Len(); page++ {
			e, _ := t.Get(page)
			if e.Loaded() {
				owners[e.Frame] = FrameOwner{PID: pid, Page: page}
			}
		}
	}
	return owners
}

// EvictionOrder returns the loaded pages, oldest first
func (m *Manager) EvictionOrder() []disk.Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Items()
}

// StoredPages returns the keys held by the backing store
func (m *Manager) StoredPages() []disk.Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Keys()
}

// Physical returns a copy of physical memory
func (m *Manager) Physical() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.memory))
	copy(out, m.memory)
	return out
}

// Stored reports whether the backing store holds page of pid
func (m *Manager) Stored(pid, page int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Has(pid, page)
}
