package mmu

import (
	"mmusim/interrupts"

	"github.com/pkg/errors"
)

// ErrOutOfFrames is returned by Acquire when every frame is in use.
// The memory manager reacts by evicting a page.
var ErrOutOfFrames = errors.New("no free frames")

// FrameAllocator tracks which physical frames are free
type FrameAllocator struct {
	free  []bool
	count int
}

// NewFrameAllocator returns an allocator with all "frames" free
func NewFrameAllocator(frames int) *FrameAllocator {
	a := FrameAllocator{}
	a.free = make([]bool, frames)
	for i := range a.free {
		a.free[i] = true
	}
	a.count = frames
	return &a
}

// Acquire hands out the lowest free frame index
func (a *FrameAllocator) Acquire() (int, error) {
	if a.count == 0 {
		return 0, ErrOutOfFrames
	}
	for i, free := range a.free {
		if free {
			a.free[i] = false
			a.count--
			return i, nil
		}
	}
	interrupts.Raise(interrupts.IntOutOfFrames, "free count %d but no free frame found", a.count)
	return 0, nil
}

// Release puts frame back into the free set.
// Releasing a frame that is not allocated is a bookkeeping bug and traps.
func (a *FrameAllocator) Release(frame int) {
	if frame < 0 || frame >= len(a.free) {
		interrupts.Raise(interrupts.IntRelease, "release of frame %d outside 0..%d", frame, len(a.free)-1)
	}
	if a.free[frame] {
		interrupts.Raise(interrupts.IntRelease, "release of free frame %d", frame)
	}
	a.free[frame] = true
	a.count++
}

// IsFree reports whether frame is in the free set
func (a *FrameAllocator) IsFree(frame int) bool {
	return frame >= 0 && frame < len(a.free) && a.free[frame]
}

// Free returns the number of free frames
func (a *FrameAllocator) Free() int { return a.count }

// Total returns the number of frames managed
func (a *FrameAllocator) Total() int { return len(a.free) }
