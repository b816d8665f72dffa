package state

// Readable is a read-only reactive value.
type Readable[T any] interface {
	SchedulingSubscribable
	Get() T
}

var (
	_ Readable[int]          = (*Signal[int])(nil)
	_ SchedulingSubscribable = (*Signal[*State])(nil)
	_ Scheduler              = (*Queue)(nil)
)
