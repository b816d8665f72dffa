package reducer

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/odvcencio/furry-store/state"
)

// Registration errors.
var (
	ErrEmptyNamespace     = errors.New("reducer: empty namespace")
	ErrNilReducer         = errors.New("reducer: nil reducer")
	ErrDuplicateNamespace = errors.New("reducer: duplicate namespace")
	ErrNilRegistry        = errors.New("reducer: nil registry")
)

// Registry collects reducers and their initial slices by namespace.
// Invalid registrations are rejected when they are added.
// A nil *Registry reads as empty.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Add registers entry under ns.
func (r *Registry) Add(ns string, entry Entry) error {
	if ns == "" {
		return ErrEmptyNamespace
	}
	if entry.Reduce == nil {
		return fmt.Errorf("%w: %q", ErrNilReducer, ns)
	}
	if r == nil {
		return ErrNilRegistry
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]Entry)
	}
	if _, exists := r.entries[ns]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNamespace, ns)
	}
	r.entries[ns] = entry
	return nil
}

// MustAdd is like Add but panics on error.
func (r *Registry) MustAdd(ns string, entry Entry) *Registry {
	if err := r.Add(ns, entry); err != nil {
		panic(err)
	}
	return r
}

// Register adds a typed reducer with its initial slice.
func Register[T any](r *Registry, ns string, fn func(prev T, action state.Action) T, initial T) error {
	if fn == nil {
		return fmt.Errorf("%w: %q", ErrNilReducer, ns)
	}
	return r.Add(ns, Of(fn, initial))
}

// Len returns the number of registered namespaces.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Namespaces returns the registered namespaces in sorted order.
func (r *Registry) Namespaces() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.entries))
	for ns := range r.entries {
		keys = append(keys, ns)
	}
	sort.Strings(keys)
	return keys
}

// Reducers returns a snapshot of the registered reducers.
func (r *Registry) Reducers() map[string]Func {
	if r == nil {
		return map[string]Func{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	reducers := make(map[string]Func, len(r.entries))
	for ns, entry := range r.entries {
		reducers[ns] = entry.Reduce
	}
	return reducers
}

// InitialState assembles the whole state from each entry's initial slice.
func (r *Registry) InitialState() *state.State {
	if r == nil {
		return state.Empty()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	slices := make(map[string]any, len(r.entries))
	for ns, entry := range r.entries {
		slices[ns] = entry.Initial
	}
	return state.New(slices)
}

// Combine combines a snapshot of the registered reducers.
func (r *Registry) Combine(hooks Hooks) Combined {
	return Combine(r.Reducers(), hooks)
}
