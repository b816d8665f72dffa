package reducer

import (
	"sort"

	"github.com/odvcencio/furry-store/state"
)

type namespaced struct {
	ns     string
	reduce Func
}

// Combine builds a whole-state reducer from per-namespace reducers.
//
// The set of namespaces is fixed when Combine is called. Each call hands
// every reducer only its own slice. When no slice changes the input state is
// returned as is; otherwise a new state holds every registered namespace,
// with unchanged slices shared.
func Combine(reducers map[string]Func, hooks Hooks) Combined {
	entries := make([]namespaced, 0, len(reducers))
	for ns, fn := range reducers {
		if fn == nil {
			hooks.dropped(ns, fn)
			continue
		}
		entries = append(entries, namespaced{ns: ns, reduce: fn})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ns < entries[j].ns
	})

	return func(current *state.State, action state.Action) *state.State {
		if current == nil {
			current = state.Empty()
		}
		changed := false
		next := make(map[string]any, len(entries))
		for _, entry := range entries {
			prev, _ := current.Get(entry.ns)
			value := entry.reduce(prev, action)
			next[entry.ns] = value
			changed = changed || !state.Same(prev, value)
		}
		if !changed {
			hooks.unhandled(action)
			return current
		}
		return state.New(next)
	}
}
