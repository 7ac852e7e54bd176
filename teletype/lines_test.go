package teletype

import (
	"fmt"
	"runtime"
	"testing"
)

func TestLineQueue_Order(t *testing.T) {
	var got []string
	q := NewLineQueue(4, func(line string) {
		// give other goroutines a chance to interleave
		runtime.Gosched()
		got = append(got, line)
	})

	var want []string
	for i := 0; i < 100; i++ {
		line := fmt.Sprintf("write 1 %d %d", i*2, i)
		want = append(want, line)
		q.Send(line)
	}
	q.Close()

	if len(got) != len(want) {
		t.Fatalf("handled %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
			break
		}
	}
}
