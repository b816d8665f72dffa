package connect

import (
	"sync"

	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

// Trigger is a consumer that only dispatches.
// It never reads state, so no dispatch can cause it to re-run.
type Trigger[P any] struct {
	dispatcher store.Dispatcher
	consumer   func(own P, dispatch store.Dispatcher)

	mu       sync.Mutex
	rendered bool
	own      P
	calls    int
}

// DispatchOnly binds consumer to the write channel only.
func DispatchOnly[P any](dispatcher store.Dispatcher, consumer func(own P, dispatch store.Dispatcher)) *Trigger[P] {
	return &Trigger[P]{dispatcher: dispatcher, consumer: consumer}
}

// Render invokes the consumer if own changed since the last invocation.
func (t *Trigger[P]) Render(own P) bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	if t.rendered && state.Same(own, t.own) {
		t.mu.Unlock()
		return false
	}
	t.rendered = true
	t.own = own
	t.calls++
	t.mu.Unlock()

	if t.consumer != nil {
		t.consumer(own, t.dispatcher)
	}
	return true
}

// Dispatch forwards action to the bound dispatcher.
func (t *Trigger[P]) Dispatch(action state.Action) {
	if t == nil || t.dispatcher == nil {
		return
	}
	t.dispatcher.Dispatch(action)
}

// Calls returns the number of consumer invocations.
func (t *Trigger[P]) Calls() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}
