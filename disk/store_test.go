package disk

import (
	"bytes"
	"testing"

	"mmusim/interrupts"
)

func TestStore_SaveRestore(t *testing.T) {
	s := New(4)
	data := []byte{1, 2, 3, 4}
	s.Save(1, 0, data)

	// the store keeps its own copy
	data[0] = 9

	if !s.Has(1, 0) {
		t.Fatalf("Has(1, 0) = false after Save")
	}
	got, ok := s.Restore(1, 0)
	if !ok {
		t.Fatalf("Restore(1, 0) -> not found")
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("Restore(1, 0) = %v, want [1 2 3 4]", got)
	}
	if s.Has(1, 0) {
		t.Errorf("block still present after Restore")
	}
	if _, ok := s.Restore(1, 0); ok {
		t.Errorf("second Restore(1, 0) found a block")
	}
	w, r := s.Counters()
	if w != 1 || r != 1 {
		t.Errorf("Counters() = %d, %d, want 1, 1", w, r)
	}
}

func TestStore_Restore(t *testing.T) {
	tests := []struct {
		name   string
		saved  []Key
		lookup Key
		want   bool
	}{
		{"empty store", nil, Key{1, 0}, false},
		{"same page other pid", []Key{{2, 0}}, Key{1, 0}, false},
		{"same pid other page", []Key{{1, 1}}, Key{1, 0}, false},
		{"exact key", []Key{{1, 1}, {1, 0}}, Key{1, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(2)
			for _, k := range tt.saved {
				s.Save(k.PID, k.Page, []byte{0, 0})
			}
			if _, got := s.Restore(tt.lookup.PID, tt.lookup.Page); got != tt.want {
				t.Errorf("Store.Restore() found = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStore_DropAndKeys(t *testing.T) {
	s := New(1)
	s.Save(2, 1, []byte{0})
	s.Save(1, 3, []byte{0})
	s.Save(2, 0, []byte{0})
	s.Save(1, 0, []byte{0})

	keys := s.Keys()
	want := []Key{{1, 0}, {1, 3}, {2, 0}, {2, 1}}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %v, want %v", i, keys[i], want[i])
		}
	}

	if n := s.Drop(2); n != 2 {
		t.Errorf("Drop(2) = %d, want 2", n)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStore_SaveWrongSize(t *testing.T) {
	defer func() {
		trap, ok := recover().(interrupts.Trap)
		if !ok {
			t.Fatalf("Save() with short block did not raise a trap")
		}
		if trap.Vector != interrupts.IntBackingStore {
			t.Errorf("trap.Vector = %o, want %o", trap.Vector, interrupts.IntBackingStore)
		}
	}()
	New(4).Save(1, 0, []byte{1})
}

func TestStore_Peek(t *testing.T) {
	s := New(2)
	if _, ok := s.Peek(1, 0); ok {
		t.Errorf("Peek() of missing block returned ok")
	}
	s.Save(1, 0, []byte{7, 8})
	block, ok := s.Peek(1, 0)
	if !ok || block[0] != 7 || block[1] != 8 {
		t.Errorf("Peek() = %v, %v, want [7 8], true", block, ok)
	}
	if !s.Has(1, 0) {
		t.Errorf("Peek() removed the block")
	}
	if _, reads := s.Counters(); reads != 0 {
		t.Errorf("Peek() counted as a restore")
	}
}
