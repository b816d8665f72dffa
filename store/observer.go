package store

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-store/state"
)

// DispatchStats describes one applied action.
type DispatchStats struct {
	ID     ulid.ULID
	Seq    uint64
	Action state.Action
	// Changed reports whether the action produced a new whole state.
	Changed bool
	// Namespaces lists the namespaces whose slice identity changed.
	Namespaces []string
	// Nested is true when the action was queued behind another dispatch.
	Nested bool
	// Queued is the number of actions still waiting after this one.
	Queued    int
	Listeners int
	Version   uint64

	Started        time.Time
	Ended          time.Time
	ReduceDuration time.Duration
	NotifyDuration time.Duration
	TotalDuration  time.Duration
}

// Observer receives dispatch statistics after listeners have been notified.
type Observer interface {
	ObserveDispatch(stats DispatchStats)
}

// ObserverFunc adapts a function into an Observer.
type ObserverFunc func(stats DispatchStats)

// ObserveDispatch calls f.
func (f ObserverFunc) ObserveDispatch(stats DispatchStats) {
	if f != nil {
		f(stats)
	}
}

// Observers fans out to multiple observers in order.
type Observers []Observer

// ObserveDispatch forwards stats to every non-nil observer.
func (o Observers) ObserveDispatch(stats DispatchStats) {
	for _, observer := range o {
		if observer != nil {
			observer.ObserveDispatch(stats)
		}
	}
}

// Combine returns a single observer for the non-nil observers given.
func Combine(observers ...Observer) Observer {
	filtered := make(Observers, 0, len(observers))
	for _, observer := range observers {
		if observer != nil {
			filtered = append(filtered, observer)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	default:
		return filtered
	}
}
