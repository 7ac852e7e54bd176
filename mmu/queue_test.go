package mmu

import (
	"testing"

	"mmusim/disk"
)

func TestEvictionQueue_FIFO(t *testing.T) {
	q := NewEvictionQueue()
	if !q.IsEmpty() {
		t.Fatalf("new queue not empty")
	}
	if _, err := q.Dequeue(); err == nil {
		t.Errorf("Dequeue() on empty queue returned no error")
	}

	in := []disk.Key{{PID: 1, Page: 0}, {PID: 2, Page: 0}, {PID: 1, Page: 1}}
	for _, k := range in {
		q.Enqueue(k)
	}
	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
	for _, want := range in {
		got, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue() error = %v", err)
		}
		if got != want {
			t.Errorf("Dequeue() = %v, want %v", got, want)
		}
	}
}

func TestEvictionQueue_Remove(t *testing.T) {
	q := NewEvictionQueue()
	q.Enqueue(disk.Key{PID: 1, Page: 0})
	q.Enqueue(disk.Key{PID: 2, Page: 0})
	q.Enqueue(disk.Key{PID: 1, Page: 1})
	q.Enqueue(disk.Key{PID: 3, Page: 4})

	if n := q.Remove(1); n != 2 {
		t.Errorf("Remove(1) = %d, want 2", n)
	}
	items := q.Items()
	want := []disk.Key{{PID: 2, Page: 0}, {PID: 3, Page: 4}}
	if len(items) != len(want) {
		t.Fatalf("Items() = %v, want %v", items, want)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("Items()[%d] = %v, want %v", i, items[i], want[i])
		}
	}
}
