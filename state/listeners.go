package state

import "sync"

// Subscribable emits change notifications.
type Subscribable interface {
	Subscribe(fn func()) func()
}

// SchedulingSubscribable can route notifications through a Scheduler.
type SchedulingSubscribable interface {
	Subscribable
	SubscribeWithScheduler(scheduler Scheduler, fn func()) func()
}

type listener struct {
	id        uint64
	fn        func()
	scheduler Scheduler
}

// Listeners is an ordered set of change callbacks.
// Callbacks run in the order they were added. The zero value is ready to use.
type Listeners struct {
	mu   sync.Mutex
	next uint64
	list []listener
}

// Add registers fn and returns a function removing it.
// A nil scheduler runs fn synchronously inside Notify. Removing twice is a no-op.
func (l *Listeners) Add(scheduler Scheduler, fn func()) func() {
	if l == nil || fn == nil {
		return func() {}
	}
	l.mu.Lock()
	l.next++
	id := l.next
	l.list = append(l.list, listener{id: id, fn: fn, scheduler: scheduler})
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *Listeners) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, ln := range l.list {
		if ln.id != id {
			continue
		}
		// Copy so snapshots handed to Notify stay intact.
		list := make([]listener, 0, len(l.list)-1)
		list = append(list, l.list[:i]...)
		l.list = append(list, l.list[i+1:]...)
		return
	}
}

// Len returns the number of registered callbacks.
func (l *Listeners) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.list)
}

// Notify runs or schedules every callback registered when it was called.
// Callbacks added or removed during Notify take effect on the next call.
func (l *Listeners) Notify() {
	if l == nil {
		return
	}
	l.mu.Lock()
	list := l.list
	l.mu.Unlock()
	for _, ln := range list {
		if ln.scheduler == nil {
			ln.fn()
			continue
		}
		ln.scheduler.Schedule(ln.fn)
	}
}
