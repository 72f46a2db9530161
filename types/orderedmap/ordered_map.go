// Package orderedmap provides a type-safe insertion-ordered map on top of
// github.com/wk8/go-ordered-map. The wrapped map stores interface{} pairs;
// this facade carries the type parameters and asserts on access so callers
// never see the untyped surface.
package orderedmap

import (
	wk8 "github.com/wk8/go-ordered-map"
)

// OrderedMap stores key-value pairs in insertion order
type OrderedMap[K comparable, V any] struct {
	store *wk8.OrderedMap
}

// Iterator walks the stored pairs starting at OrderedMap.Front or OrderedMap.Back.
// Key and Value are valid until the next call to Next or Prev.
type Iterator[K comparable, V any] struct {
	Key     *K
	Value   V
	forward bool
	pair    *wk8.Pair
}

func newIterator[K comparable, V any](o *OrderedMap[K, V], forward bool) *Iterator[K, V] {
	if o == nil || o.store.Len() == 0 {
		return nil
	}

	iter := &Iterator[K, V]{forward: forward}
	if forward {
		iter.pair = o.store.Oldest()
	} else {
		iter.pair = o.store.Newest()
	}
	iter.load()

	return iter
}

func (n *Iterator[K, V]) load() {
	key := n.pair.Key.(K)
	n.Key = &key
	// a nil interface value cannot be asserted, it stands for the zero V
	if n.pair.Value == nil {
		var zero V
		n.Value = zero
		return
	}
	n.Value = n.pair.Value.(V)
}

// Next gets the next pair or nil when no more values can be iterated on
func (n *Iterator[K, V]) Next() *Iterator[K, V] {
	if n.pair == nil {
		return nil
	}

	if n.forward {
		n.pair = n.pair.Next()
	} else {
		n.pair = n.pair.Prev()
	}

	if n.pair == nil {
		return nil
	}
	n.load()

	return n
}

// Prev gets the previous pair or nil when no more values can be iterated on
func (n *Iterator[K, V]) Prev() *Iterator[K, V] {
	if n.pair == nil {
		return nil
	}

	if n.forward {
		n.pair = n.pair.Prev()
	} else {
		n.pair = n.pair.Next()
	}

	if n.pair == nil {
		return nil
	}
	n.load()

	return n
}

// NewOrderedMap creates a new OrderedMap of type K, V
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		store: wk8.New(),
	}
}

// Set will store a key-value pair. If the key already exists,
// it will overwrite the existing key-value pair
func (o *OrderedMap[K, V]) Set(key K, val V) {
	o.store.Set(key, val)
}

// Get will return the value associated with the key.
// If the key doesn't exist, the second return value will be false.
func (o *OrderedMap[K, V]) Get(key K) (V, bool) {
	val, exists := o.store.Get(key)
	if !exists || val == nil {
		return *new(V), exists
	}

	return val.(V), true
}

// Delete will remove the key and its associated value.
func (o *OrderedMap[K, V]) Delete(key K) {
	o.store.Delete(key)
}

// Count returns the count of keys in OrderedMap
func (o *OrderedMap[K, V]) Count() int {
	return o.store.Len()
}

// Keys returns the keys in insertion order
func (o *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, o.store.Len())
	for pair := o.store.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key.(K))
	}

	return keys
}

// Front returns an Iterator pointing to the oldest (inserted-first) pair
func (o *OrderedMap[K, V]) Front() *Iterator[K, V] {
	return newIterator(o, true)
}

// Back returns an Iterator pointing to the newest (inserted-last) pair
func (o *OrderedMap[K, V]) Back() *Iterator[K, V] {
	return newIterator(o, false)
}
