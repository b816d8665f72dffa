package reducers

import (
	"github.com/odvcencio/furry-store/actions"
	"github.com/odvcencio/furry-store/state"
)

// Todos is the todos slice.
type Todos struct {
	Text string `json:"text"`
}

// InitialTodos returns the initial todos slice.
func InitialTodos() *Todos {
	return &Todos{Text: "old"}
}

// ReduceTodos handles CHANGE_TEXT by replacing the text with the payload.
func ReduceTodos(prev *Todos, action state.Action) *Todos {
	switch action.Type {
	case actions.TypeChangeText:
		var text string
		if !decodePayload(action.Payload, &text) {
			return prev
		}
		if prev != nil && prev.Text == text {
			return prev
		}
		next := Todos{}
		if prev != nil {
			next = *prev
		}
		next.Text = text
		return &next
	default:
		return prev
	}
}
