package state

import "sync"

// Scheduler decides when a notification callback runs.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function into a Scheduler.
type SchedulerFunc func(fn func())

// Schedule calls f with fn.
func (f SchedulerFunc) Schedule(fn func()) {
	if f != nil && fn != nil {
		f(fn)
	}
}

// DirectScheduler runs callbacks immediately on the calling goroutine.
var DirectScheduler Scheduler = SchedulerFunc(func(fn func()) { fn() })

// MaxDrainRounds bounds Drain so callbacks that keep rescheduling
// themselves cannot spin forever.
const MaxDrainRounds = 64

// Queue defers callbacks until the owner flushes them, typically once per
// frame or event loop turn.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule appends fn.
func (q *Queue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs the callbacks pending at the time of the call, in order, and
// returns how many ran. Callbacks scheduled by them stay queued.
func (q *Queue) Flush() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Drain flushes until the queue is empty or MaxDrainRounds batches have run,
// and returns the total number of callbacks run.
func (q *Queue) Drain() int {
	total := 0
	for round := 0; round < MaxDrainRounds; round++ {
		n := q.Flush()
		if n == 0 {
			break
		}
		total += n
	}
	return total
}
