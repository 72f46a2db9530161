package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQ_StackOps(t *testing.T) {
	q := New[int]()
	q.Push(1)
	q.Push(2)
	q.Push(3)

	top, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, 3, top)

	val, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 3, val)
	assert.Equal(t, 2, q.Len())
}

func TestQ_QueueOps(t *testing.T) {
	q := New[string]()
	q.Enqueue("a")
	q.Enqueue("b")

	first, ok := q.First()
	assert.True(t, ok)
	assert.Equal(t, "a", first)

	val, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "a", val)

	val, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "b", val)

	_, ok = q.Dequeue()
	assert.False(t, ok, "dequeue on empty reports absence")
}

func TestQ_Clear(t *testing.T) {
	q := New[int]()
	q.Enqueue(1)
	q.Enqueue(2)
	q.Clear()

	assert.Equal(t, 0, q.Len())
	_, ok := q.Pop()
	assert.False(t, ok)
}
