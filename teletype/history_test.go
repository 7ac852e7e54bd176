package teletype

import "testing"

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	if _, ok := h.Prev(); ok {
		t.Fatalf("Prev() on empty history returned ok")
	}
	for _, l := range []string{"init", "alloc 1 128", "alloc 1 128", "", "read 1 0", "vmstat"} {
		h.Push(l)
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	tests := []struct {
		name string
		step func() string
		want string
	}{
		{"prev newest", func() string { s, _ := h.Prev(); return s }, "vmstat"},
		{"prev", func() string { s, _ := h.Prev(); return s }, "read 1 0"},
		{"prev oldest", func() string { s, _ := h.Prev(); return s }, "alloc 1 128"},
		{"prev stays at oldest", func() string { s, _ := h.Prev(); return s }, "alloc 1 128"},
		{"next", h.Next, "read 1 0"},
		{"next newest", h.Next, "vmstat"},
		{"next past end", h.Next, ""},
		{"next stays past end", h.Next, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.step(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
