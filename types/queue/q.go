// Package queue provides a type-safe stack/queue hybrid on top of
// github.com/ef-ds/deque. All operations are O(1) amortized.
package queue

import (
	"github.com/ef-ds/deque"
)

// Q is a generic structure that supports both stack and queue operations.
// Stack operations (Push/Pop/Peek) act on the back, queue operations
// (Enqueue/Dequeue) append to the back and remove from the front.
type Q[T any] struct {
	items deque.Deque
}

// New creates a new Q
func New[T any]() *Q[T] {
	return &Q[T]{}
}

// Push adds an item to the top of the stack (stack behavior)
func (q *Q[T]) Push(item T) {
	q.items.PushBack(item)
}

// Pop removes and returns the top item from the stack (stack behavior)
func (q *Q[T]) Pop() (T, bool) {
	item, ok := q.items.PopBack()
	if !ok {
		var zero T
		return zero, false
	}

	return item.(T), true
}

// Peek returns the top item from the stack without removing it
func (q *Q[T]) Peek() (T, bool) {
	item, ok := q.items.Back()
	if !ok {
		var zero T
		return zero, false
	}

	return item.(T), true
}

// Enqueue adds an item to the end of the queue (queue behavior)
func (q *Q[T]) Enqueue(item T) {
	q.items.PushBack(item)
}

// Dequeue removes and returns the first item from the queue (queue behavior)
func (q *Q[T]) Dequeue() (T, bool) {
	item, ok := q.items.PopFront()
	if !ok {
		var zero T
		return zero, false
	}

	return item.(T), true
}

// First returns the first item in the queue without removing it
func (q *Q[T]) First() (T, bool) {
	item, ok := q.items.Front()
	if !ok {
		var zero T
		return zero, false
	}

	return item.(T), true
}

// Len returns the number of items held
func (q *Q[T]) Len() int {
	return q.items.Len()
}

// Clear removes all items
func (q *Q[T]) Clear() {
	q.items.Init()
}
