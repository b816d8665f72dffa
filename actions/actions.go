// Package actions holds the action creators of the counter and todos
// namespaces. Creators only build actions; they never dispatch.
package actions

import "github.com/odvcencio/furry-store/state"

// Action types.
const (
	TypeChangeCount = "CHANGE_COUNT"
	TypeChangeText  = "CHANGE_TEXT"
)

// Increment returns an action setting the count to count+1.
func Increment(count int) state.Action {
	return state.NewAction(TypeChangeCount, count+1)
}

// Decrement returns an action setting the count to count-1.
func Decrement(count int) state.Action {
	return state.NewAction(TypeChangeCount, count-1)
}

// ChangeText returns an action replacing the todo text.
func ChangeText(text string) state.Action {
	return state.NewAction(TypeChangeText, text)
}

// Types lists every action type the creators produce.
func Types() []string {
	return []string{TypeChangeCount, TypeChangeText}
}
