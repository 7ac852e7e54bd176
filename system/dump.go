package system

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

const bytesPerLine = 16

// dumpMemory writes physical memory as a hex dump to path
func (sys *System) dumpMemory(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "dump-memory")
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	sys.hexDump(w)
	return w.Flush()
}

// hexDump writes 16 bytes per line, every frame preceded by its owner
func (sys *System) hexDump(w io.Writer) {
	memory := sys.Manager.Physical()
	owners := sys.Manager.FrameOwners()
	pageSize := sys.Manager.PageSize()

	for addr := 0; addr < len(memory); addr += bytesPerLine {
		if addr%pageSize == 0 {
			frame := addr / pageSize
			if owners[frame].Free {
				fmt.Fprintf(w, "-- frame %d: free\n", frame)
			} else {
				fmt.Fprintf(w, "-- frame %d: pid %d page %d\n", frame, owners[frame].PID, owners[frame].Page)
			}
		}
		end := addr + bytesPerLine
		if end > len(memory) {
			end = len(memory)
		}
		fmt.Fprintf(w, "%06x :", addr)
		for _, b := range memory[addr:end] {
			fmt.Fprintf(w, " %02x", b)
		}
		fmt.Fprintf(w, "\n")
	}
}

// frame map geometry
const (
	cellWidth  = 120
	cellHeight = 56
	margin     = 8
	perRow     = 8
)

// palette, one colour per pid (pid modulo palette size)
var palette = [][3]float64{
	{0.31, 0.60, 0.86},
	{0.93, 0.55, 0.26},
	{0.40, 0.73, 0.42},
	{0.84, 0.37, 0.45},
	{0.58, 0.47, 0.80},
	{0.85, 0.75, 0.32},
}

// dumpFrames renders the physical frame map into a png
func (sys *System) dumpFrames(path string) error {
	owners := sys.Manager.FrameOwners()
	cols := perRow
	if len(owners) < cols {
		cols = len(owners)
	}
	rows := (len(owners) + perRow - 1) / perRow

	dc := gg.NewContext(cols*(cellWidth+margin)+margin, rows*(cellHeight+margin)+margin)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for i, o := range owners {
		x := float64(margin + (i%perRow)*(cellWidth+margin))
		y := float64(margin + (i/perRow)*(cellHeight+margin))

		label := fmt.Sprintf("F%d free", i)
		if o.Free {
			dc.SetRGB(0.88, 0.88, 0.88)
		} else {
			c := palette[o.PID%len(palette)]
			if o.PID < 0 {
				c = palette[(-o.PID)%len(palette)]
			}
			dc.SetRGB(c[0], c[1], c[2])
			label = fmt.Sprintf("F%d  %d:%d", i, o.PID, o.Page)
		}
		dc.DrawRectangle(x, y, cellWidth, cellHeight)
		dc.Fill()

		dc.SetRGB(0.2, 0.2, 0.2)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x, y, cellWidth, cellHeight)
		dc.Stroke()
		dc.DrawStringAnchored(label, x+cellWidth/2, y+cellHeight/2, 0.5, 0.5)
	}

	if err := dc.SavePNG(path); err != nil {
		return errors.Wrap(err, "dump-frames")
	}
	return nil
}
