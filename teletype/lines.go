package teletype

// LineQueue hands lines to a single worker goroutine, so they are handled
// one at a time in the order they were entered.
type LineQueue struct {
	lines chan string
	done  chan struct{}
}

// NewLineQueue starts the worker calling handle for every line
func NewLineQueue(size int, handle func(string)) *LineQueue {
	q := LineQueue{}
	q.lines = make(chan string, size)
	q.done = make(chan struct{})
	go func() {
		defer close(q.done)
		for line := range q.lines {
			handle(line)
		}
	}()
	return &q
}

// Send queues line, blocking only while the buffer is full
func (q *LineQueue) Send(line string) {
	q.lines <- line
}

// Close stops accepting lines and waits until the queued ones are handled
func (q *LineQueue) Close() {
	close(q.lines)
	<-q.done
}
