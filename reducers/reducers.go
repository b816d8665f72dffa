// Package reducers registers the counter and todos namespaces: their slice
// types, reducers and initial values.
package reducers

import (
	"github.com/odvcencio/furry-store/reducer"
	"github.com/odvcencio/furry-store/state"
)

// Namespaces.
const (
	CounterNamespace = "counter"
	TodosNamespace   = "todos"
)

// NewRegistry registers every namespace with its initial slice.
func NewRegistry() *reducer.Registry {
	r := reducer.NewRegistry()
	r.MustAdd(CounterNamespace, reducer.Of(ReduceCounter, InitialCounter()))
	r.MustAdd(TodosNamespace, reducer.Of(ReduceTodos, InitialTodos()))
	return r
}

// InitialState returns the initial whole state.
func InitialState() *state.State {
	return NewRegistry().InitialState()
}

// CounterOf returns the counter slice of s, or the initial counter when absent.
func CounterOf(s *state.State) *Counter {
	if c, ok := state.Slice[*Counter](s, CounterNamespace); ok && c != nil {
		return c
	}
	return InitialCounter()
}

// TodosOf returns the todos slice of s, or the initial todos when absent.
func TodosOf(s *state.State) *Todos {
	if t, ok := state.Slice[*Todos](s, TodosNamespace); ok && t != nil {
		return t
	}
	return InitialTodos()
}
