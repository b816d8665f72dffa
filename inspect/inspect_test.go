package inspect

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/furry-store/actions"
	"github.com/odvcencio/furry-store/reducer"
	"github.com/odvcencio/furry-store/reducers"
	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

func TestJSON(t *testing.T) {
	testCases := []struct {
		name  string
		color bool
	}{
		{name: "plain"},
		{name: "color", color: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, JSON(&buf, reducers.InitialState(), tc.color))
			out := buf.String()
			assert.Contains(t, out, "counter")
			assert.Contains(t, out, "old")
			if !tc.color {
				var doc map[string]map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
				assert.Equal(t, "old", doc["todos"]["text"])
				assert.Equal(t, 0.0, doc["counter"]["count"])
				return
			}
			assert.Contains(t, out, "\x1b[")
		})
	}
}

func TestTable(t *testing.T) {
	st := state.New(map[string]any{
		"counter": &reducers.Counter{Count: 3},
		"todos":   &reducers.Todos{Text: strings.Repeat("ü", 100)},
	})

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, st))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "NAMESPACE  VALUE", lines[0])
	assert.Equal(t, `counter    {"count":3}`, lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "todos      "))
	assert.True(t, strings.HasSuffix(lines[2], "..."))
}

func TestTrace(t *testing.T) {
	trace := NewTrace()
	s, err := store.New(store.Config{
		Reducer:  reducers.NewRegistry().Combine(reducer.Hooks{}),
		Initial:  reducers.InitialState(),
		Observer: trace,
	})
	require.NoError(t, err)

	s.Dispatch(actions.Increment(0))
	s.Dispatch(actions.ChangeText("a|b"))
	s.Dispatch(state.NewAction("NOOP", nil))
	require.Equal(t, 3, trace.Len())

	var md bytes.Buffer
	require.NoError(t, trace.Markdown(&md))
	lines := strings.Split(strings.TrimSpace(md.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "CHANGE_COUNT(1)")
	assert.Contains(t, lines[2], "| counter |")
	assert.Contains(t, lines[3], `CHANGE_TEXT(a\|b)`)
	assert.Contains(t, lines[4], "| NOOP | false | - |")

	var html bytes.Buffer
	require.NoError(t, trace.HTML(&html))
	out := html.String()
	assert.Contains(t, out, "<table>")
	assert.Equal(t, 3, strings.Count(out, "<tr>")-1)
	assert.Contains(t, out, "CHANGE_TEXT(a|b)")
}
