package mmu

import (
	"github.com/pkg/errors"
)

// NoFrame marks a page entry that is not loaded
const NoFrame = -1

// ErrUnknownPage is returned for page numbers the table never reserved
var ErrUnknownPage = errors.New("unknown page")

// PageEntry records the frame a virtual page occupies
type PageEntry struct {
	Frame int
}

// Loaded returns true if the page occupies a frame
func (e PageEntry) Loaded() bool { return e.Frame != NoFrame }

// PageTable maps dense virtual page numbers, starting at 0, to page entries.
// The set of pages is fixed by Reserve.
type PageTable struct {
	entries []PageEntry
}

// NewPageTable returns a table with "count" unloaded pages
func NewPageTable(count int) *PageTable {
	t := PageTable{}
	t.Reserve(count)
	return &t
}

// Reserve creates fresh unloaded entries for pages 0..count-1
func (t *PageTable) Reserve(count int) {
	t.entries = make([]PageEntry, count)
	for i := range t.entries {
		t.entries[i].Frame = NoFrame
	}
}

// Contains reports whether page was reserved
func (t *PageTable) Contains(page int) bool {
	return page >= 0 && page < len(t.entries)
}

// Get returns the entry for page
func (t *PageTable) Get(page int) (PageEntry, error) {
	if !t.Contains(page) {
		return PageEntry{}, errors.Wrapf(ErrUnknownPage, "page %d", page)
	}
	return t.entries[page], nil
}

// SetFrame records frame for page. NoFrame marks the page unloaded.
func (t *PageTable) SetFrame(page, frame int) error {
	if !t.Contains(page) {
		return errors.Wrapf(ErrUnknownPage, "page %d", page)
	}
	t.entries[page].Frame = frame
	return nil
}

// Len returns the number of reserved pages
func (t *PageTable) Len() int { return len(t.entries) }

// Loaded returns the number of pages currently occupying a frame
func (t *PageTable) Loaded() int {
	n := 0
	for _, e := range t.entries {
		if e.Loaded() {
			n++
		}
	}
	return n
}
