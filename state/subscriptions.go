package state

import "sync"

// Subscriptions owns the unsubscribe functions of one consumer so they can
// be released together. The zero value is ready to use.
type Subscriptions struct {
	mu        sync.Mutex
	release   []func()
	scheduler Scheduler
}

// NewSubscriptions creates a Subscriptions routing notifications through
// scheduler.
func NewSubscriptions(scheduler Scheduler) *Subscriptions {
	return &Subscriptions{scheduler: scheduler}
}

// SetScheduler changes the scheduler used by later Observe calls.
func (s *Subscriptions) SetScheduler(scheduler Scheduler) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.scheduler = scheduler
	s.mu.Unlock()
}

// Scheduler returns the scheduler used by Observe.
func (s *Subscriptions) Scheduler() Scheduler {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler
}

// Add takes ownership of an unsubscribe function.
func (s *Subscriptions) Add(unsub func()) {
	if s == nil || unsub == nil {
		return
	}
	s.mu.Lock()
	s.release = append(s.release, unsub)
	s.mu.Unlock()
}

// Len returns the number of owned subscriptions.
func (s *Subscriptions) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.release)
}

// Observe subscribes fn to src and keeps the subscription.
// Sources that cannot schedule are subscribed synchronously.
func (s *Subscriptions) Observe(src Subscribable, fn func()) {
	if s == nil || src == nil || fn == nil {
		return
	}
	scheduler := s.Scheduler()
	if sched, ok := src.(SchedulingSubscribable); ok && scheduler != nil {
		s.Add(sched.SubscribeWithScheduler(scheduler, fn))
		return
	}
	s.Add(src.Subscribe(fn))
}

// Clear releases every owned subscription, most recent first.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	release := s.release
	s.release = nil
	s.mu.Unlock()
	for i := len(release) - 1; i >= 0; i-- {
		release[i]()
	}
}
