package reducers

import (
	"github.com/odvcencio/furry-store/actions"
	"github.com/odvcencio/furry-store/state"
)

// Counter is the counter slice.
type Counter struct {
	Count int `json:"count"`
}

// InitialCounter returns the initial counter slice.
func InitialCounter() *Counter {
	return &Counter{Count: 0}
}

// ReduceCounter handles CHANGE_COUNT by replacing the count with the payload.
func ReduceCounter(prev *Counter, action state.Action) *Counter {
	switch action.Type {
	case actions.TypeChangeCount:
		var count int
		if !decodePayload(action.Payload, &count) {
			return prev
		}
		if prev != nil && prev.Count == count {
			return prev
		}
		next := Counter{}
		if prev != nil {
			next = *prev
		}
		next.Count = count
		return &next
	default:
		return prev
	}
}
