package state

import "sync"

// EqualFunc reports whether two values are the same for change detection.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// EqualSame compares values with Same.
func EqualSame[T any](a, b T) bool {
	return Same(a, b)
}

// Signal is a value cell that notifies listeners when it is replaced by a
// different value. Values are compared with Same unless SetEqualFunc
// installs another check.
type Signal[T any] struct {
	mu        sync.Mutex
	value     T
	version   uint64
	equal     EqualFunc[T]
	listeners Listeners
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial, equal: EqualSame[T]}
}

// SetEqualFunc replaces the change check. A nil fn treats every Set as a change.
func (s *Signal[T]) SetEqualFunc(fn EqualFunc[T]) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.equal = fn
	s.mu.Unlock()
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	if s == nil {
		var zero T
		return zero
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Version returns how many times the value has changed.
func (s *Signal[T]) Version() uint64 {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Set stores value and reports whether it differed from the previous one.
// Listeners are notified after the lock is released, so they may read or
// set the signal again.
func (s *Signal[T]) Set(value T) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	if s.equal != nil && s.equal(s.value, value) {
		s.mu.Unlock()
		return false
	}
	s.value = value
	s.version++
	s.mu.Unlock()

	s.listeners.Notify()
	return true
}

// Update sets the result of fn applied to the current value.
// It is not atomic: a concurrent Set between the read and the write is lost.
func (s *Signal[T]) Update(fn func(T) T) bool {
	if s == nil || fn == nil {
		return false
	}
	return s.Set(fn(s.Get()))
}

// Subscribe registers fn to run synchronously after every change.
func (s *Signal[T]) Subscribe(fn func()) func() {
	return s.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers fn to be handed to scheduler after every
// change. A nil scheduler runs fn synchronously.
func (s *Signal[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if s == nil {
		return func() {}
	}
	return s.listeners.Add(scheduler, fn)
}

// SubscriberCount returns the number of registered listeners.
func (s *Signal[T]) SubscriberCount() int {
	if s == nil {
		return 0
	}
	return s.listeners.Len()
}
