package status

/**
Memory access status package
*/

// status word layout. Values here are bits, not the
// powers of 2
const violationFlag = 0
const pageFaultFlag = 1
const symbolFullFlag = 2
const undeclaredFlag = 3

// Status keeps the outcome of a single memory access.
// Zero value means the access went through without paging.
type Status uint16

// Get returns current status word
func (s *Status) Get() uint16 {
	return uint16(*s)
}

// Set status value
func (s *Status) Set(p uint16) {
	*s = Status(p)
}

// OK returns true if the access was neither a violation nor caused paging
func (s *Status) OK() bool {
	return *s == 0
}

// Violation returns the access violation flag
func (s *Status) Violation() bool {
	return s.getFlag(violationFlag)
}

// SetViolation sets the access violation flag
func (s *Status) SetViolation(status bool) {
	s.setFlag(violationFlag, status)
}

// PageFault returns true if a page had to be loaded to serve the access
func (s *Status) PageFault() bool {
	return s.getFlag(pageFaultFlag)
}

// SetPageFault sets the page fault flag
func (s *Status) SetPageFault(status bool) {
	s.setFlag(pageFaultFlag, status)
}

// SymbolTableFull returns the symbol region exhausted flag
func (s *Status) SymbolTableFull() bool {
	return s.getFlag(symbolFullFlag)
}

// SetSymbolTableFull sets the symbol table full flag.
// Always comes together with the violation flag.
func (s *Status) SetSymbolTableFull(status bool) {
	s.setFlag(symbolFullFlag, status)
	if status {
		s.SetViolation(true)
	}
}

// Undeclared returns true if a variable was read before it got an address
func (s *Status) Undeclared() bool {
	return s.getFlag(undeclaredFlag)
}

// SetUndeclared sets the undeclared variable flag (and the violation flag with it)
func (s *Status) SetUndeclared(status bool) {
	s.setFlag(undeclaredFlag, status)
	if status {
		s.SetViolation(true)
	}
}

// Merge ors the flags of other into s
func (s *Status) Merge(other Status) {
	*s |= other
}

// generic get flag function
func (s *Status) getFlag(flag uint) bool {
	return (*s & (1 << flag)) > 0
}

// generic set flag function
func (s *Status) setFlag(flag uint, status bool) {
	if status {
		*s |= (1 << flag)
	} else {
		*s &^= (1 << flag)
	}
}

// GetFlags returns set flags in a fixed width form, e.g. "[V   ]"
func (s *Status) GetFlags() string {
	flags := ""
	if s.Violation() {
		flags += "V"
	} else {
		flags += " "
	}
	if s.PageFault() {
		flags += "P"
	} else {
		flags += " "
	}
	if s.SymbolTableFull() {
		flags += "F"
	} else {
		flags += " "
	}
	if s.Undeclared() {
		flags += "U"
	} else {
		flags += " "
	}
	return "[" + flags + "]"
}

// String describes the outcome in words
func (s Status) String() string {
	switch {
	case s.SymbolTableFull():
		return "symbol table full"
	case s.Undeclared():
		return "undeclared variable"
	case s.Violation():
		return "access violation"
	case s.PageFault():
		return "page fault"
	}
	return "ok"
}
