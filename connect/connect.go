// Package connect binds consumers to a store's read and write channels.
//
// A connected consumer receives its own props, a derived value and the
// store's dispatch handle, and is re-invoked only when one of them changes.
// A consumer that only dispatches can use DispatchOnly and is never
// subscribed to state at all.
package connect

import (
	"sync"

	"github.com/odvcencio/furry-store/selector"
	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

// Props is what a connected consumer is invoked with.
type Props[P, R any] struct {
	Own      P
	Selected R
	Dispatch store.Dispatcher
}

// Consumer renders props.
type Consumer[P, R any] func(props Props[P, R])

// Connect returns a function wrapping consumers around sel.
func Connect[P, R any](reader store.Reader, dispatcher store.Dispatcher, sel *selector.Selector[R]) func(Consumer[P, R]) *Connected[P, R] {
	return func(consumer Consumer[P, R]) *Connected[P, R] {
		return &Connected[P, R]{
			reader:     reader,
			dispatcher: dispatcher,
			sel:        sel,
			consumer:   consumer,
		}
	}
}

// Connected is a consumer bound to a store.
type Connected[P, R any] struct {
	reader     store.Reader
	dispatcher store.Dispatcher
	sel        *selector.Selector[R]
	consumer   Consumer[P, R]
	subs       state.Subscriptions

	mu       sync.Mutex
	rendered bool
	mounted  bool
	last     Props[P, R]
	lastGen  uint64
	calls    int
}

// Render invokes the consumer with own props if they, the selected value
// or the dispatch handle changed since the last invocation.
// It reports whether the consumer ran.
func (c *Connected[P, R]) Render(own P) bool {
	if c == nil {
		return false
	}
	selected, gen := c.sel.VersionedFrom(c.reader)
	props := Props[P, R]{
		Own:      own,
		Selected: selected,
		Dispatch: c.dispatcher,
	}

	c.mu.Lock()
	if c.rendered && c.unchanged(props, gen) {
		c.mu.Unlock()
		return false
	}
	c.rendered = true
	c.last = props
	c.lastGen = gen
	c.calls++
	c.mu.Unlock()

	if c.consumer != nil {
		c.consumer(props)
	}
	return true
}

// The selected value is compared by selector generation, which only moves
// when the combiner runs.
func (c *Connected[P, R]) unchanged(props Props[P, R], gen uint64) bool {
	return gen == c.lastGen &&
		state.Same(props.Own, c.last.Own) &&
		state.Same(props.Dispatch, c.last.Dispatch)
}

// Mount subscribes to store changes and brings the consumer up to date.
func (c *Connected[P, R]) Mount() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.mounted = true
	own := c.last.Own
	c.mu.Unlock()

	c.subs.Clear()
	if c.reader != nil {
		c.subs.Observe(c.reader, c.onState)
	}
	c.Render(own)
}

// Unmount releases the store subscription.
func (c *Connected[P, R]) Unmount() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.mounted = false
	c.mu.Unlock()
	c.subs.Clear()
}

// SetScheduler routes store notifications through scheduler.
// It takes effect on the next Mount.
func (c *Connected[P, R]) SetScheduler(scheduler state.Scheduler) {
	if c == nil {
		return
	}
	c.subs.SetScheduler(scheduler)
}

// Dispatch forwards action to the bound dispatcher.
func (c *Connected[P, R]) Dispatch(action state.Action) {
	if c == nil || c.dispatcher == nil {
		return
	}
	c.dispatcher.Dispatch(action)
}

// Mounted reports whether the consumer is subscribed.
func (c *Connected[P, R]) Mounted() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// Calls returns the number of consumer invocations.
func (c *Connected[P, R]) Calls() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func (c *Connected[P, R]) onState() {
	c.mu.Lock()
	mounted := c.mounted
	own := c.last.Own
	c.mu.Unlock()
	if !mounted {
		return
	}
	c.Render(own)
}
