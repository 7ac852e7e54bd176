package system

import (
	"fmt"
	"io"

	"mmusim/mmu"

	"github.com/mattn/go-runewidth"
)

// labelWidth is the column of the values in the reports
const labelWidth = 21

func field(w io.Writer, label string, value interface{}) {
	fmt.Fprintf(w, "%s%v\n", runewidth.FillRight(label+":", labelWidth), value)
}

// processSmi writes the page table of every process
func (sys *System) processSmi(w io.Writer) {
	s := sys.Manager.Stats()
	fmt.Fprintf(w, "=== PROCESS-SMI: Memory Summary ===\n")
	field(w, "Total frames", s.TotalFrames)
	field(w, "Free frames", s.FreeFrames)
	field(w, "Used frames", s.UsedFrames)

	for _, p := range sys.Manager.Processes() {
		fmt.Fprintf(w, "\nProcess PID: %d\n", p.PID)
		for page, frame := range p.Frames {
			label := fmt.Sprintf("  Page %02d", page)
			switch {
			case frame != mmu.NoFrame:
				fmt.Fprintf(w, "%s → Frame %d\n", label, frame)
			case sys.Manager.Stored(p.PID, page):
				fmt.Fprintf(w, "%s → Not loaded (backing store)\n", label)
			default:
				fmt.Fprintf(w, "%s → Not loaded\n", label)
			}
		}
		fmt.Fprintf(w, "  Total pages: %d, Loaded: %d, Stored: %d\n", p.Pages, p.Loaded, p.Stored)
		fmt.Fprintf(w, "  Page ins: %d, Page outs: %d\n", p.PagedIn, p.PagedOut)
	}
}

// vmstat writes the system wide totals
func (sys *System) vmstat(w io.Writer) {
	s := sys.Manager.Stats()
	fmt.Fprintf(w, "=== VMSTAT: System Status ===\n")
	field(w, "Processes", s.Processes)
	field(w, "Page size", s.PageSize)
	field(w, "Total frames", s.TotalFrames)
	field(w, "Used frames", s.UsedFrames)
	field(w, "Free frames", s.FreeFrames)
	fmt.Fprintf(w, "\n")
	field(w, "Total virtual pages", s.TotalPages)
	field(w, "Pages loaded", s.LoadedPages)
	field(w, "Pages not loaded", s.TotalPages-s.LoadedPages)
	field(w, "Pages in store", s.StoredPages)
	fmt.Fprintf(w, "\n")
	field(w, "Page ins", s.PagedIn)
	field(w, "Page outs", s.PagedOut)
	field(w, "Restored", s.Restored)
}

// frameMap writes one line per physical frame and the eviction order
func (sys *System) frameMap(w io.Writer) {
	for i, o := range sys.Manager.FrameOwners() {
		if o.Free {
			fmt.Fprintf(w, "F%02d  free\n", i)
			continue
		}
		fmt.Fprintf(w, "F%02d  pid %d page %d\n", i, o.PID, o.Page)
	}
	order := sys.Manager.EvictionOrder()
	if len(order) > 0 {
		fmt.Fprintf(w, "next victim: pid %d page %d\n", order[0].PID, order[0].Page)
	}
}

// FrameMap writes the current frame occupancy, used by the frames view
func (sys *System) FrameMap(w io.Writer) {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	sys.frameMap(w)
}
