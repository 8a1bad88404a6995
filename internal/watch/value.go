// Package watch provides a minimal observable value primitive.
// The current value is readable synchronously, subscribers are notified
// synchronously on every change, and subscribing returns a disposer.
package watch

import "sync"

// Value holds a current value of type T and a set of subscribers.
// The zero value is not usable; create instances with NewValue.
type Value[T any] struct {
	subscribers map[int]func(T)
	current     T
	nextID      int
	mu          sync.Mutex
}

// NewValue creates a Value with the given initial value.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current:     initial,
		subscribers: make(map[int]func(T)),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set replaces the current value and notifies all subscribers before
// returning. Subscribers observing the value during notification see the
// updated value, never the previous one.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.current = value
	subscribers := make([]func(T), 0, len(v.subscribers))
	for _, fn := range v.subscribers {
		subscribers = append(subscribers, fn)
	}
	v.mu.Unlock()

	for _, fn := range subscribers {
		fn(value)
	}
}

// Update applies fn to the current value and sets the result.
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	value := fn(v.current)
	v.current = value
	subscribers := make([]func(T), 0, len(v.subscribers))
	for _, sub := range v.subscribers {
		subscribers = append(subscribers, sub)
	}
	v.mu.Unlock()

	for _, sub := range subscribers {
		sub(value)
	}
}

// Subscribe registers fn to be called on every change. It returns a
// disposer that removes the subscription. The subscriber is not called
// with the current value at subscription time.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subscribers[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.subscribers, id)
		v.mu.Unlock()
	}
}
