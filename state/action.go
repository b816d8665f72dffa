package state

import "fmt"

// Action is a request for a state transition.
// Type selects the reducers that respond; Payload carries the instruction.
// Actions are values and must not be modified after construction.
type Action struct {
	Type    string
	Payload any
}

// NewAction creates an action.
func NewAction(actionType string, payload any) Action {
	return Action{Type: actionType, Payload: payload}
}

// String formats the action for logs.
func (a Action) String() string {
	if a.Payload == nil {
		return a.Type
	}
	return fmt.Sprintf("%s(%v)", a.Type, a.Payload)
}
