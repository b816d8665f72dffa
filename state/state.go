// Package state provides the data model and reactive primitives of the store:
// actions, the immutable namespaced state tree, identity comparison and
// change-notification signals.
package state

import (
	"bytes"
	"encoding/json"
	"sort"
)

// State is an immutable mapping from namespace to slice value.
// A State is never modified after construction; transitions produce a new
// State that shares unchanged slices. Identity of a State is its pointer.
// A nil *State behaves as an empty state.
type State struct {
	slices map[string]any
	keys   []string
}

// New creates a State holding a copy of slices.
func New(slices map[string]any) *State {
	s := &State{
		slices: make(map[string]any, len(slices)),
		keys:   make([]string, 0, len(slices)),
	}
	for ns, value := range slices {
		s.slices[ns] = value
		s.keys = append(s.keys, ns)
	}
	sort.Strings(s.keys)
	return s
}

// Empty returns a new State with no namespaces.
func Empty() *State {
	return New(nil)
}

// Get returns the slice stored under ns.
func (s *State) Get(ns string) (any, bool) {
	if s == nil {
		return nil, false
	}
	value, ok := s.slices[ns]
	return value, ok
}

// Value returns the slice stored under ns, or nil when absent.
func (s *State) Value(ns string) any {
	value, _ := s.Get(ns)
	return value
}

// Has reports whether ns is present.
func (s *State) Has(ns string) bool {
	_, ok := s.Get(ns)
	return ok
}

// Len returns the number of namespaces.
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Namespaces returns the namespaces in sorted order.
func (s *State) Namespaces() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Map returns a shallow copy of the namespace mapping.
func (s *State) Map() map[string]any {
	if s == nil {
		return map[string]any{}
	}
	m := make(map[string]any, len(s.slices))
	for ns, value := range s.slices {
		m[ns] = value
	}
	return m
}

// With returns a State where ns holds value. The receiver is left untouched.
// When ns already holds the same value the receiver itself is returned.
func (s *State) With(ns string, value any) *State {
	if prev, ok := s.Get(ns); ok && Same(prev, value) {
		return s
	}
	m := s.Map()
	m[ns] = value
	return New(m)
}

// Changed returns the namespaces whose slices differ between prev and next,
// including namespaces present in only one of them.
func Changed(prev, next *State) []string {
	if prev == next {
		return nil
	}
	var changed []string
	for _, ns := range next.Namespaces() {
		before, ok := prev.Get(ns)
		if !ok || !Same(before, next.Value(ns)) {
			changed = append(changed, ns)
		}
	}
	for _, ns := range prev.Namespaces() {
		if !next.Has(ns) {
			changed = append(changed, ns)
		}
	}
	sort.Strings(changed)
	return changed
}

// MarshalJSON encodes the state as an object with sorted namespace keys.
func (s *State) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ns := range s.Namespaces() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ns)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(s.slices[ns])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Slice returns the slice under ns as a T.
// ok is false when ns is absent or holds a different type.
func Slice[T any](s *State, ns string) (T, bool) {
	value, ok := s.Get(ns)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := value.(T)
	return typed, ok
}
