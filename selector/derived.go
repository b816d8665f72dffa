package selector

import (
	"sync"

	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

// Derived is a selector bound to a store.
// Its subscribers are notified only when the selector recomputes.
type Derived[R any] struct {
	signal    *state.Signal[versioned[R]]
	sel       *Selector[R]
	reader    store.Reader
	mu        sync.Mutex
	unsub     func()
	scheduler state.Scheduler
}

// Watch binds sel to reader.
func Watch[R any](reader store.Reader, sel *Selector[R]) *Derived[R] {
	return WatchWithScheduler(nil, reader, sel)
}

// WatchWithScheduler binds sel to reader and schedules recomputes.
func WatchWithScheduler[R any](scheduler state.Scheduler, reader store.Reader, sel *Selector[R]) *Derived[R] {
	value, gen := sel.VersionedFrom(reader)
	d := &Derived[R]{
		signal:    state.NewSignal(versioned[R]{value: value, gen: gen}),
		sel:       sel,
		reader:    reader,
		scheduler: scheduler,
	}
	d.signal.SetEqualFunc(sameGeneration[R])
	if reader != nil {
		d.unsub = reader.Subscribe(d.enqueueRecompute)
	}
	return d
}

// Get returns the current derived value.
func (d *Derived[R]) Get() R {
	if d == nil {
		var zero R
		return zero
	}
	return d.signal.Get().value
}

// Subscribe registers a listener for derived value changes.
func (d *Derived[R]) Subscribe(fn func()) func() {
	if d == nil {
		return func() {}
	}
	return d.signal.Subscribe(fn)
}

// SubscribeWithScheduler registers a listener using a scheduler.
// If scheduler is nil, callbacks run synchronously.
func (d *Derived[R]) SubscribeWithScheduler(scheduler state.Scheduler, fn func()) func() {
	if d == nil {
		return func() {}
	}
	return d.signal.SubscribeWithScheduler(scheduler, fn)
}

// Stop unsubscribes from the store.
func (d *Derived[R]) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	unsub := d.unsub
	d.unsub = nil
	d.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

func (d *Derived[R]) recompute() {
	value, gen := d.sel.VersionedFrom(d.reader)
	d.signal.Set(versioned[R]{value: value, gen: gen})
}

func (d *Derived[R]) enqueueRecompute() {
	if d.scheduler == nil {
		d.recompute()
		return
	}
	d.scheduler.Schedule(d.recompute)
}

type versioned[R any] struct {
	value R
	gen   uint64
}

func sameGeneration[R any](a, b versioned[R]) bool {
	return a.gen == b.gen
}

var _ state.Readable[int] = (*Derived[int])(nil)
