// Package tombstone provides an ordered list that tolerates removal while it
// is being iterated.
//
// Removing an element while an iteration is active marks it as a tombstone:
// iterators skip it but its links stay valid, so an iterator parked on it can
// still advance. Tombstones are unlinked by a sweep when the outermost
// iteration finishes. Outside iteration, removal unlinks immediately.
//
// The handler chains of the dispatcher and the value lists of the message bus
// share this list.
package tombstone

// Element is an entry of a List.
type Element[T any] struct {
	Value T

	next, prev *Element[T]
	list       *List[T]
	removed    bool
}

// Removed reports whether the element was removed from its list.
func (e *Element[T]) Removed() bool {
	return e.removed
}

// Next returns the next live element or nil.
func (e *Element[T]) Next() *Element[T] {
	for n := e.next; n != nil; n = n.next {
		if !n.removed {
			return n
		}
	}
	return nil
}

// List is a doubly linked list with deferred removal. The zero value is an
// empty list ready to use. A List is not safe for concurrent use.
type List[T any] struct {
	head, tail *Element[T]
	live       int
	tombstones int
	depth      int
}

// Len returns the number of live elements.
func (l *List[T]) Len() int {
	return l.live
}

// Tombstones returns the number of removed elements still awaiting a sweep.
func (l *List[T]) Tombstones() int {
	return l.tombstones
}

// Iterating reports whether an iteration is in progress.
func (l *List[T]) Iterating() bool {
	return l.depth > 0
}

// Front returns the first live element or nil.
func (l *List[T]) Front() *Element[T] {
	for e := l.head; e != nil; e = e.next {
		if !e.removed {
			return e
		}
	}
	return nil
}

// Back returns the last live element or nil.
func (l *List[T]) Back() *Element[T] {
	for e := l.tail; e != nil; e = e.prev {
		if !e.removed {
			return e
		}
	}
	return nil
}

// PushBack appends v and returns its element.
func (l *List[T]) PushBack(v T) *Element[T] {
	e := &Element[T]{Value: v, list: l, prev: l.tail}
	if l.tail != nil {
		l.tail.next = e
	} else {
		l.head = e
	}
	l.tail = e
	l.live++
	return e
}

// PushFront prepends v and returns its element. An iteration already past the
// head does not visit it.
func (l *List[T]) PushFront(v T) *Element[T] {
	e := &Element[T]{Value: v, list: l, next: l.head}
	if l.head != nil {
		l.head.prev = e
	} else {
		l.tail = e
	}
	l.head = e
	l.live++
	return e
}

// Remove removes e from the list. During iteration e becomes a tombstone and
// is unlinked by the sweep that ends the outermost iteration. Returns false
// if e does not belong to l or was already removed.
func (l *List[T]) Remove(e *Element[T]) bool {
	if e == nil || e.list != l || e.removed {
		return false
	}
	e.removed = true
	l.live--
	if l.depth > 0 {
		l.tombstones++
		return true
	}
	l.unlink(e)
	return true
}

// RemoveFunc removes every live element for which match returns true and
// returns how many were removed.
func (l *List[T]) RemoveFunc(match func(T) bool) int {
	n := 0
	for e := l.Front(); e != nil; {
		next := e.Next()
		if match(e.Value) && l.Remove(e) {
			n++
		}
		e = next
	}
	return n
}

// Clear removes every element.
func (l *List[T]) Clear() {
	l.RemoveFunc(func(T) bool { return true })
}

// Each calls fn for every live element in order until fn returns false.
// Elements removed during the walk are skipped. Elements appended during the
// walk are visited. Calls may nest; tombstones are swept when the outermost
// call returns.
func (l *List[T]) Each(fn func(e *Element[T]) bool) {
	l.depth++
	defer l.leave()

	for e := l.head; e != nil; e = e.next {
		if e.removed {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// Values returns the live values in order.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.live)
	for e := l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value)
	}
	return out
}

// Sweep unlinks all tombstones. It is a no-op while iterating.
func (l *List[T]) Sweep() {
	if l.depth > 0 || l.tombstones == 0 {
		return
	}
	for e := l.head; e != nil; {
		next := e.next
		if e.removed {
			l.unlink(e)
		}
		e = next
	}
	l.tombstones = 0
}

func (l *List[T]) leave() {
	l.depth--
	if l.depth == 0 {
		l.Sweep()
	}
}

func (l *List[T]) unlink(e *Element[T]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.next = nil
	e.prev = nil
}
