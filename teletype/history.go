package teletype

// History keeps submitted command lines, oldest first.
// Prev and Next walk it the way a shell does with the arrow keys.
type History struct {
	lines []string
	pos   int
	limit int
}

// NewHistory returns an empty history holding at most limit lines
func NewHistory(limit int) *History {
	h := History{}
	h.limit = limit
	return &h
}

// Push appends line and resets the cursor past the newest entry.
// Empty lines and direct repeats are not stored.
func (h *History) Push(line string) {
	if line != "" && (len(h.lines) == 0 || h.lines[len(h.lines)-1] != line) {
		h.lines = append(h.lines, line)
		if h.limit > 0 && len(h.lines) > h.limit {
			h.lines = h.lines[len(h.lines)-h.limit:]
		}
	}
	h.pos = len(h.lines)
}

// Prev moves one entry back. ok is false when history is empty.
func (h *History) Prev() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.lines[h.pos], true
}

// Next moves one entry forward; past the newest entry it returns ""
func (h *History) Next() string {
	if h.pos < len(h.lines) {
		h.pos++
	}
	if h.pos == len(h.lines) {
		return ""
	}
	return h.lines[h.pos]
}

// Len returns the number of stored lines
func (h *History) Len() int {
	return len(h.lines)
}
