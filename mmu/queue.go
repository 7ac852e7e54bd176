package mmu

import (
	"mmusim/disk"

	"github.com/pkg/errors"
)

// EvictionQueue keeps loaded (pid, page) pairs in load order
type EvictionQueue struct {
	items []disk.Key
}

// NewEvictionQueue creates a new empty queue.
func NewEvictionQueue() *EvictionQueue {
	return &EvictionQueue{}
}

// Enqueue adds an item to the rear of the queue.
func (q *EvictionQueue) Enqueue(item disk.Key) {
	q.items = append(q.items, item)
}

// Dequeue removes and returns the item from the front of the queue.
func (q *EvictionQueue) Dequeue() (disk.Key, error) {
	if len(q.items) == 0 {
		return disk.Key{}, errors.New("queue is empty")
	}
	frontItem := q.items[0]
	q.items = q.items[1:]
	return frontItem, nil
}

// Remove drops every entry belonging to pid, keeping the order of the rest
func (q *EvictionQueue) Remove(pid int) int {
	kept := q.items[:0]
	for _, k := range q.items {
		if k.PID != pid {
			kept = append(kept, k)
		}
	}
	removed := len(q.items) - len(kept)
	q.items = kept
	return removed
}

// IsEmpty checks if the queue is empty.
func (q *EvictionQueue) IsEmpty() bool {
	return len(q.items) == 0
}

// Len returns the number of queued entries
func (q *EvictionQueue) Len() int {
	return len(q.items)
}

// Items returns a copy of the queue, head first
func (q *EvictionQueue) Items() []disk.Key {
	out := make([]disk.Key, len(q.items))
	copy(out, q.items)
	return out
}
