// Package selector derives memoized values from the whole state.
//
// A Selector projects the state through one or more projection functions
// and merges the projected values with a combiner. Results are memoized
// twice: against the identity of the whole state, and against the identity
// of every projected input. A derived value is therefore returned by
// reference until something it actually depends on changes.
package selector

import (
	"errors"
	"sync"

	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

var (
	// ErrNoProjections is returned by Untyped when called without functions.
	ErrNoProjections = errors.New("selector: at least one projection is required")
	// ErrBadProjection is returned by Untyped for a projection that is not a
	// function of the whole state.
	ErrBadProjection = errors.New("selector: invalid projection")
	// ErrBadCombiner is returned by Untyped for an unusable combiner.
	ErrBadCombiner = errors.New("selector: invalid combiner")
)

// Projection reads one value out of the whole state.
type Projection func(s *state.State) any

// Selector memoizes a derived value of type R.
// It is safe for concurrent use; projections and the combiner run under
// the selector lock and must not call back into the same selector.
type Selector[R any] struct {
	projections []Projection
	combine     func(inputs []any) R

	mu             sync.Mutex
	ready          bool
	last           *state.State
	inputs         []any
	value          R
	generation     uint64
	recomputations int
}

func newSelector[R any](combine func([]any) R, projections []Projection) *Selector[R] {
	return &Selector[R]{
		projections: projections,
		combine:     combine,
	}
}

// Select derives a value from a single projection.
func Select[T any](project func(s *state.State) T) *Selector[T] {
	return newSelector(func(inputs []any) T {
		return as[T](inputs[0])
	}, []Projection{lift(project)})
}

// Select2 derives a value from two projections.
func Select2[A, B, R any](pa func(*state.State) A, pb func(*state.State) B, combine func(A, B) R) *Selector[R] {
	return newSelector(func(inputs []any) R {
		return combine(as[A](inputs[0]), as[B](inputs[1]))
	}, []Projection{lift(pa), lift(pb)})
}

// Select3 derives a value from three projections.
func Select3[A, B, C, R any](pa func(*state.State) A, pb func(*state.State) B, pc func(*state.State) C, combine func(A, B, C) R) *Selector[R] {
	return newSelector(func(inputs []any) R {
		return combine(as[A](inputs[0]), as[B](inputs[1]), as[C](inputs[2]))
	}, []Projection{lift(pa), lift(pb), lift(pc)})
}

// SelectAll derives a value from any number of untyped projections.
// With no projections the combiner receives an empty slice.
func SelectAll[R any](combine func(inputs []any) R, projections ...Projection) *Selector[R] {
	kept := make([]Projection, 0, len(projections))
	for _, p := range projections {
		if p != nil {
			kept = append(kept, p)
		}
	}
	if combine == nil {
		combine = func([]any) R {
			var zero R
			return zero
		}
	}
	return newSelector(combine, kept)
}

// Get returns the derived value for s.
func (sel *Selector[R]) Get(s *state.State) R {
	value, _ := sel.Versioned(s)
	return value
}

// Versioned returns the derived value for s together with its generation.
// The generation advances only when the combiner runs, so two calls that
// return the same generation returned the same value, whether or not R is
// comparable.
func (sel *Selector[R]) Versioned(s *state.State) (R, uint64) {
	if sel == nil {
		var zero R
		return zero, 0
	}
	sel.mu.Lock()
	defer sel.mu.Unlock()

	if sel.ready && sel.last == s {
		return sel.value, sel.generation
	}
	inputs := make([]any, len(sel.projections))
	for i, project := range sel.projections {
		inputs[i] = project(s)
	}
	sel.last = s
	if sel.ready && state.SameAll(sel.inputs, inputs) {
		return sel.value, sel.generation
	}
	sel.inputs = inputs
	sel.value = sel.combine(inputs)
	sel.ready = true
	sel.generation++
	sel.recomputations++
	return sel.value, sel.generation
}

// From returns the derived value for the reader's current state.
func (sel *Selector[R]) From(reader store.Reader) R {
	value, _ := sel.VersionedFrom(reader)
	return value
}

// VersionedFrom is Versioned for the reader's current state.
func (sel *Selector[R]) VersionedFrom(reader store.Reader) (R, uint64) {
	if reader == nil {
		return sel.Versioned(nil)
	}
	return sel.Versioned(reader.State())
}

// Generation returns the generation of the memoized value; zero before the
// first computation.
func (sel *Selector[R]) Generation() uint64 {
	if sel == nil {
		return 0
	}
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return sel.generation
}

// Recomputations reports how many times the combiner has run.
func (sel *Selector[R]) Recomputations() int {
	if sel == nil {
		return 0
	}
	sel.mu.Lock()
	defer sel.mu.Unlock()
	return sel.recomputations
}

// Reset forgets the memoized value.
func (sel *Selector[R]) Reset() {
	if sel == nil {
		return
	}
	sel.mu.Lock()
	var zero R
	sel.ready = false
	sel.last = nil
	// generation is kept so values computed after Reset never repeat one
	// handed out before it.
	sel.inputs = nil
	sel.value = zero
	sel.mu.Unlock()
}

func lift[T any](project func(*state.State) T) Projection {
	if project == nil {
		return func(*state.State) any { return nil }
	}
	return func(s *state.State) any { return project(s) }
}

func as[T any](v any) T {
	typed, _ := v.(T)
	return typed
}
