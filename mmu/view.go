package mmu

import "mmusim/status"

// View binds a pid to the manager. Holders of a view never deal with raw
// pids: the view is the unit of process isolation.
type View struct {
	pid int
	m   *Manager
}

// PID returns the process the view belongs to
func (v *View) PID() int { return v.pid }

// ReadMemoryWord reads the word at virtual address addr
func (v *View) ReadMemoryWord(addr uint32) (uint16, status.Status) {
	return v.m.Read(v.pid, addr)
}

// WriteMemoryWord writes data at virtual address addr
func (v *View) WriteMemoryWord(addr uint32, data uint16) status.Status {
	return v.m.Write(v.pid, addr, data)
}

// PeekMemoryWord reads the word at addr without paging
func (v *View) PeekMemoryWord(addr uint32) (uint16, status.Status) {
	return v.m.Peek(v.pid, addr)
}
