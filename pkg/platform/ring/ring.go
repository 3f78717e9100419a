// Package ring provides a bounded, insertion-ordered buffer with oldest-first
// eviction. Appending to a full buffer drops the oldest element so the newest
// Cap() elements are always retained.
package ring

// Buffer is a fixed-capacity deque. The zero value is not usable; call New.
// A Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	items []T
	head  int
	size  int
}

// New returns an empty buffer holding at most capacity elements.
// A capacity below 1 is treated as 1.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// From builds a buffer from items in order. When items exceeds capacity only
// the trailing capacity elements are kept.
func From[T any](capacity int, items []T) *Buffer[T] {
	b := New[T](capacity)
	for _, item := range items {
		b.Append(item)
	}
	return b
}

// Append adds item at the tail. It reports whether an element was evicted
// from the head to make room.
func (b *Buffer[T]) Append(item T) (evicted bool) {
	capacity := len(b.items)
	if b.size < capacity {
		b.items[(b.head+b.size)%capacity] = item
		b.size++
		return false
	}
	b.items[b.head] = item
	b.head = (b.head + 1) % capacity
	return true
}

// Len returns the number of stored elements.
func (b *Buffer[T]) Len() int {
	return b.size
}

// Cap returns the maximum number of elements.
func (b *Buffer[T]) Cap() int {
	return len(b.items)
}

// Items returns a copy of the stored elements, oldest first.
func (b *Buffer[T]) Items() []T {
	out := make([]T, 0, b.size)
	for i := 0; i < b.size; i++ {
		out = append(out, b.items[(b.head+i)%len(b.items)])
	}
	return out
}
