// Package queue provides a simple FIFO queue for breadth-first walks.
package queue

// Queue is a slice-backed FIFO. The zero value is ready to use.
type Queue[T any] struct {
	items []T
	head  int
}

func (q *Queue[T]) Enqueue(v T) {
	q.items = append(q.items, v)
}

// Dequeue removes and returns the oldest element, reporting whether the
// queue was non-empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	// reclaim consumed prefix once it dominates the backing slice
	if q.head > 32 && q.head*2 > len(q.items) {
		q.items = append([]T(nil), q.items[q.head:]...)
		q.head = 0
	}
	return v, true
}

func (q *Queue[T]) Len() int {
	return len(q.items) - q.head
}
