package interrupts

import "fmt"

/**
 * Separate package exists mainly in order to avoid cyclic imports
 */

// Trap is raised (with panic) when the memory bookkeeping hits a state
// that correct accounting can never produce. It is not a user facing error:
// whoever recovers it must stop the simulation.
type Trap struct {
	Vector uint16
	Msg    string
}

func (t Trap) Error() string {
	return fmt.Sprintf("trap %03o: %s", t.Vector, t.Msg)
}

/********************************
 * trap vectors:
 ********************************/

// IntOutOfFrames - frame allocator asked for a frame while the free set is empty
const IntOutOfFrames = 04

// IntEviction - no free frame and nothing left in the eviction queue
const IntEviction = 010

// IntRelease - a frame released twice or never allocated
const IntRelease = 014

// IntPageTable - loaded page entry without a valid frame (or the other way round)
const IntPageTable = 020

// IntBackingStore - block of the wrong size handed to the backing store
const IntBackingStore = 024

// Raise panics with a trap carrying a formatted message
func Raise(vector uint16, format string, args ...interface{}) {
	panic(Trap{
		Vector: vector,
		Msg:    fmt.Sprintf(format, args...),
	})
}
