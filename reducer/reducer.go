// Package reducer composes namespaced reduction functions into a single
// whole-state transition.
package reducer

import (
	"github.com/odvcencio/furry-store/state"
)

// Func computes the next slice of a namespace from its previous slice.
// It must return prev itself when the action does not affect the slice.
type Func func(prev any, action state.Action) any

// Combined computes the next whole state.
type Combined func(current *state.State, action state.Action) *state.State

// Entry is a registered reducer together with its initial slice.
type Entry struct {
	Reduce  Func
	Initial any
}

// Of adapts a typed reducer into an Entry.
// A missing or mistyped slice is replaced with initial before fn runs, so
// the first dispatch after such a slice is seen reconstructs it.
func Of[T any](fn func(prev T, action state.Action) T, initial T) Entry {
	if fn == nil {
		return Entry{Initial: initial}
	}
	return Entry{
		Reduce: func(prev any, action state.Action) any {
			typed, ok := prev.(T)
			if !ok {
				typed = initial
			}
			return fn(typed, action)
		},
		Initial: initial,
	}
}

// Hooks observe policy decisions that never surface as errors.
type Hooks struct {
	// OnDropped is called for each candidate Filter discards.
	OnDropped func(namespace string, value any)
	// OnUnhandled is called when an action changed no namespace.
	OnUnhandled func(action state.Action)
}

func (h Hooks) dropped(namespace string, value any) {
	if h.OnDropped != nil {
		h.OnDropped(namespace, value)
	}
}

func (h Hooks) unhandled(action state.Action) {
	if h.OnUnhandled != nil {
		h.OnUnhandled(action)
	}
}

// Filter returns the candidates that are usable reducers.
// Values that are not a non-nil Func (or the equivalent plain func type) are
// dropped and reported to hooks.OnDropped.
func Filter(candidates map[string]any, hooks Hooks) map[string]Func {
	reducers := make(map[string]Func, len(candidates))
	for ns, candidate := range candidates {
		if fn := asFunc(candidate); fn != nil {
			reducers[ns] = fn
			continue
		}
		hooks.dropped(ns, candidate)
	}
	return reducers
}

func asFunc(candidate any) Func {
	switch fn := candidate.(type) {
	case Func:
		return fn
	case func(any, state.Action) any:
		if fn == nil {
			return nil
		}
		return Func(fn)
	case Entry:
		return fn.Reduce
	default:
		return nil
	}
}
