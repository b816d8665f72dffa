package actions

import (
	"testing"

	"github.com/odvcencio/furry-store/state"
)

func TestCreators(t *testing.T) {
	testCases := []struct {
		name string
		got  state.Action
		want state.Action
	}{
		{name: "increment", got: Increment(0), want: state.Action{Type: "CHANGE_COUNT", Payload: 1}},
		{name: "increment negative", got: Increment(-1), want: state.Action{Type: "CHANGE_COUNT", Payload: 0}},
		{name: "decrement", got: Decrement(1), want: state.Action{Type: "CHANGE_COUNT", Payload: 0}},
		{name: "change text", got: ChangeText("new"), want: state.Action{Type: "CHANGE_TEXT", Payload: "new"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("got %#v, want %#v", tc.got, tc.want)
			}
		})
	}
}

func TestTypes(t *testing.T) {
	types := Types()
	if len(types) != 2 || types[0] != TypeChangeCount || types[1] != TypeChangeText {
		t.Fatalf("unexpected types: %v", types)
	}
}
