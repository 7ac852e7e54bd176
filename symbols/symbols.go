// Package symbols maps variable names to two byte slots in the low part of
// a process address space.
package symbols

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"mmusim/mmu"
	"mmusim/status"

	"github.com/mattn/go-runewidth"
)

// DefaultLimit is the size of the symbol region in bytes (32 variables)
const DefaultLimit = 64

// slotSize - every variable holds one 16 bit word
const slotSize = mmu.WordSize

// Table is the symbol table of one process
type Table struct {
	space mmu.AddressSpace
	addrs map[string]uint32
	next  uint32
	limit uint32
}

// New returns an empty table backed by "space" with a symbol region of limit bytes
func New(space mmu.AddressSpace, limit int) *Table {
	if limit < 0 {
		limit = 0
	}
	t := Table{}
	t.space = space
	t.addrs = make(map[string]uint32)
	t.limit = uint32(limit)
	return &t
}

// Set writes value to name, giving name the next free slot on first use.
// A full region is reported without touching memory. A slot outside the
// process reservation reports a violation and stays free.
func (t *Table) Set(name string, value uint16) status.Status {
	if addr, ok := t.addrs[name]; ok {
		return t.space.WriteMemoryWord(addr, value)
	}

	if t.next+slotSize > t.limit {
		var st status.Status
		st.SetSymbolTableFull(true)
		return st
	}
	// the slot is only taken once the write went through
	st := t.space.WriteMemoryWord(t.next, value)
	if !st.Violation() {
		t.addrs[name] = t.next
		t.next += slotSize
	}
	return st
}

// Get reads the value of name
func (t *Table) Get(name string) (uint16, status.Status) {
	addr, ok := t.addrs[name]
	if !ok {
		var st status.Status
		st.SetUndeclared(true)
		return 0, st
	}
	return t.space.ReadMemoryWord(addr)
}

// Resolve returns the value of a literal (decimal or 0x hex) or reads the variable
func (t *Table) Resolve(token string) (uint16, status.Status) {
	if v, err := strconv.ParseUint(token, 0, 16); err == nil {
		return uint16(v), 0
	}
	return t.Get(token)
}

// Address returns the virtual address assigned to name
func (t *Table) Address(name string) (uint32, bool) {
	addr, ok := t.addrs[name]
	return addr, ok
}

// Len returns the number of declared variables
func (t *Table) Len() int { return len(t.addrs) }

// Free returns the number of bytes left in the symbol region
func (t *Table) Free() int { return int(t.limit - t.next) }

// Names returns declared names in address order
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.addrs))
	for n := range t.addrs {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return t.addrs[names[i]] < t.addrs[names[j]] })
	return names
}

// peeker is implemented by address spaces that can be read without paging
type peeker interface {
	PeekMemoryWord(addr uint32) (uint16, status.Status)
}

// Dump writes one line per variable: name, address, value and flags.
// When the address space supports it, values are peeked so that listing
// the table never pages anything in.
func (t *Table) Dump(w io.Writer) {
	read := t.space.ReadMemoryWord
	if p, ok := t.space.(peeker); ok {
		read = p.PeekMemoryWord
	}
	if len(t.addrs) == 0 {
		fmt.Fprintf(w, "  <empty>\n")
		return
	}
	width := 6
	for n := range t.addrs {
		if l := runewidth.StringWidth(n); l > width {
			width = l
		}
	}
	for _, n := range t.Names() {
		addr := t.addrs[n]
		value, st := read(addr)
		fmt.Fprintf(w, "  %s → vaddr=0x%04x = %-5d", runewidth.FillRight(n, width), addr, value)
		if st.Violation() {
			fmt.Fprintf(w, "  [VIOLATION]")
		}
		if st.PageFault() {
			fmt.Fprintf(w, "  [PAGED OUT]")
		}
		fmt.Fprintf(w, "\n")
	}
}
