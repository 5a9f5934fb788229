package event

// Queue is a per-window FIFO of pending events backed by a ring buffer.
// All operations are O(1) amortized. Events are never reordered except by
// PushFront, which is reserved for synthetic leading moves.
type Queue struct {
	buf  []*Event
	head int
	n    int
}

const minQueueCap = 16

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return q.n
}

// Empty reports whether the queue holds no events.
func (q *Queue) Empty() bool {
	return q.n == 0
}

// PushBack appends ev and returns it.
func (q *Queue) PushBack(ev *Event) *Event {
	q.grow()
	q.buf[(q.head+q.n)%len(q.buf)] = ev
	q.n++
	return ev
}

// PushFront inserts ev at the head and returns it.
func (q *Queue) PushFront(ev *Event) *Event {
	q.grow()
	q.head = (q.head - 1 + len(q.buf)) % len(q.buf)
	q.buf[q.head] = ev
	q.n++
	return ev
}

// PopFront removes and returns the head event, or nil if empty.
func (q *Queue) PopFront() *Event {
	if q.n == 0 {
		return nil
	}
	ev := q.buf[q.head]
	q.buf[q.head] = nil
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return ev
}

// Front returns the head event without removing it, or nil.
func (q *Queue) Front() *Event {
	if q.n == 0 {
		return nil
	}
	return q.buf[q.head]
}

// Back returns the tail event without removing it, or nil.
func (q *Queue) Back() *Event {
	if q.n == 0 {
		return nil
	}
	return q.buf[(q.head+q.n-1)%len(q.buf)]
}

// DropBack removes and returns the tail event, or nil if empty.
func (q *Queue) DropBack() *Event {
	if q.n == 0 {
		return nil
	}
	i := (q.head + q.n - 1) % len(q.buf)
	ev := q.buf[i]
	q.buf[i] = nil
	q.n--
	return ev
}

// At returns the i-th event from the head. It panics if i is out of range.
func (q *Queue) At(i int) *Event {
	if i < 0 || i >= q.n {
		panic("event: queue index out of range")
	}
	return q.buf[(q.head+i)%len(q.buf)]
}

// Events returns a snapshot of the queued events, head first.
func (q *Queue) Events() []*Event {
	out := make([]*Event, q.n)
	for i := range out {
		out[i] = q.At(i)
	}
	return out
}

// Clear drops every queued event.
func (q *Queue) Clear() {
	clear(q.buf)
	q.head = 0
	q.n = 0
}

func (q *Queue) grow() {
	if q.n < len(q.buf) {
		return
	}
	size := len(q.buf) * 2
	if size < minQueueCap {
		size = minQueueCap
	}
	buf := make([]*Event, size)
	for i := 0; i < q.n; i++ {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}
