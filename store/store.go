// Package store holds the canonical whole state of an application and the
// dispatch entry point that replaces it.
//
// Reading and writing are separate channels: Reader exposes the current
// state and change notifications, Dispatcher submits actions. A consumer
// that only dispatches can depend on Dispatcher alone and is never affected
// by state changes.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-store/logging"
	"github.com/odvcencio/furry-store/reducer"
	"github.com/odvcencio/furry-store/state"
)

// ErrNoReducer is returned by New when Config.Reducer is nil.
var ErrNoReducer = errors.New("store: reducer is required")

// Reader is the read channel of a store.
type Reader interface {
	State() *state.State
	Subscribe(fn func()) func()
	SubscribeWithScheduler(scheduler state.Scheduler, fn func()) func()
}

// Dispatcher is the write channel of a store.
type Dispatcher interface {
	Dispatch(action state.Action)
}

// DispatchFunc adapts a function into a Dispatcher.
type DispatchFunc func(action state.Action)

// Dispatch calls f.
func (f DispatchFunc) Dispatch(action state.Action) {
	if f != nil {
		f(action)
	}
}

// Config configures a Store.
type Config struct {
	// Reducer computes the next whole state. Required.
	Reducer reducer.Combined
	// Initial is the starting whole state. Nil starts from an empty state.
	Initial *state.State
	// Logger receives queueing and abort diagnostics. Nil discards them.
	Logger logging.Logger
	// Observer receives statistics for every applied action.
	Observer Observer
}

// Store owns the live whole state.
//
// Dispatch is synchronous. Actions dispatched while another dispatch is in
// flight, whether from a reducer, a listener or another goroutine, are
// queued and applied in FIFO order by the in-flight dispatch once its
// listeners have been notified. Every listener notified for one action
// observes the state produced by that action.
type Store struct {
	reduce   reducer.Combined
	current  *state.Signal[*state.State]
	logger   logging.Logger
	observer Observer
	handle   *handle

	mu          sync.Mutex
	pending     []state.Action
	dispatching bool
	seq         uint64
	version     uint64
}

type handle struct {
	store *Store
}

func (h *handle) Dispatch(action state.Action) {
	h.store.Dispatch(action)
}

// New creates a Store from cfg.
func New(cfg Config) (*Store, error) {
	if cfg.Reducer == nil {
		return nil, ErrNoReducer
	}
	initial := cfg.Initial
	if initial == nil {
		initial = state.Empty()
	}
	current := state.NewSignal(initial)
	current.SetEqualFunc(func(a, b *state.State) bool { return a == b })
	s := &Store{
		reduce:   cfg.Reducer,
		current:  current,
		logger:   logging.OrNoOp(cfg.Logger),
		observer: cfg.Observer,
	}
	s.handle = &handle{store: s}
	return s, nil
}

// Create combines reducers and creates a Store starting at initial.
func Create(reducers map[string]reducer.Func, initial *state.State) *Store {
	s, _ := New(Config{
		Reducer: reducer.Combine(reducers, reducer.Hooks{}),
		Initial: initial,
	})
	return s
}

// FromRegistry creates a Store from a registry, starting at its initial state.
func FromRegistry(r *reducer.Registry, hooks reducer.Hooks, logger logging.Logger, observer Observer) *Store {
	s, _ := New(Config{
		Reducer:  r.Combine(hooks),
		Initial:  r.InitialState(),
		Logger:   logger,
		Observer: observer,
	})
	return s
}

// State returns the current whole state.
func (s *Store) State() *state.State {
	if s == nil {
		return nil
	}
	return s.current.Get()
}

// Version returns the number of state changes applied so far.
func (s *Store) Version() uint64 {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Dispatcher returns the store's dispatch handle.
// The same handle is returned for the lifetime of the store.
func (s *Store) Dispatcher() Dispatcher {
	if s == nil {
		return nil
	}
	return s.handle
}

// Subscribe registers fn to run after every dispatch that changed the state.
// The returned function unsubscribes; calling it again is a no-op.
func (s *Store) Subscribe(fn func()) func() {
	return s.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler is like Subscribe but hands fn to scheduler.
// If scheduler is nil, fn runs synchronously inside Dispatch.
func (s *Store) SubscribeWithScheduler(scheduler state.Scheduler, fn func()) func() {
	if s == nil {
		return func() {}
	}
	return s.current.SubscribeWithScheduler(scheduler, fn)
}

// Dispatch applies action and notifies subscribers if the state changed.
func (s *Store) Dispatch(action state.Action) {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.dispatching {
		s.pending = append(s.pending, action)
		depth := len(s.pending)
		s.mu.Unlock()
		s.logger.Debug("dispatch queued", "type", action.Type, "depth", depth)
		return
	}
	s.dispatching = true
	s.mu.Unlock()

	completed := false
	defer func() {
		if completed {
			return
		}
		s.mu.Lock()
		discarded := s.pending
		s.pending = nil
		s.dispatching = false
		s.mu.Unlock()
		s.logger.Error("dispatch aborted", "type", action.Type, "discarded", len(discarded))
	}()

	s.apply(action, false, 0)
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.dispatching = false
			s.mu.Unlock()
			break
		}
		next := s.pending[0]
		s.pending[0] = state.Action{}
		s.pending = s.pending[1:]
		depth := len(s.pending)
		s.mu.Unlock()
		s.apply(next, true, depth)
	}
	completed = true
}

func (s *Store) apply(action state.Action, nested bool, queued int) {
	observer := s.observer
	var stats DispatchStats
	if observer != nil {
		stats.ID = ulid.Make()
		stats.Started = time.Now()
		stats.Action = action
		stats.Nested = nested
		stats.Queued = queued
	}

	prev := s.current.Get()
	next := s.reduce(prev, action)
	if next == nil {
		s.logger.Warn("reducer returned nil state", "type", action.Type)
		next = prev
	}
	changed := next != prev

	s.mu.Lock()
	s.seq++
	seq := s.seq
	if changed {
		s.version++
	}
	version := s.version
	s.mu.Unlock()

	var notifyStart time.Time
	if observer != nil {
		notifyStart = time.Now()
		stats.ReduceDuration = notifyStart.Sub(stats.Started)
		if changed {
			stats.Namespaces = state.Changed(prev, next)
			stats.Listeners = s.current.SubscriberCount()
		}
	}
	if changed {
		s.current.Set(next)
	}
	if observer == nil {
		return
	}
	stats.Seq = seq
	stats.Version = version
	stats.Changed = changed
	stats.Ended = time.Now()
	stats.NotifyDuration = stats.Ended.Sub(notifyStart)
	stats.TotalDuration = stats.Ended.Sub(stats.Started)
	observer.ObserveDispatch(stats)
}

var (
	_ Reader     = (*Store)(nil)
	_ Dispatcher = (*Store)(nil)
	_ Dispatcher = DispatchFunc(nil)
)
