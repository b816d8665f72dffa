package replay

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/furry-store/actions"
	"github.com/odvcencio/furry-store/reducers"
)

const scenarioScript = `
actions:
  - {type: CHANGE_COUNT, payload: 1}
  - {type: CHANGE_TEXT, payload: new}
  - {type: NOOP}
`

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		src       string
		steps     int
		expectErr error
		errText   string
	}{
		{name: "scenario", src: scenarioScript, steps: 3},
		{name: "with initial", src: "initial:\n  counter: {count: 4}\nactions: []\n", steps: 0},
		{name: "empty", src: "", expectErr: ErrEmptyScript},
		{name: "missing type", src: "actions:\n  - {payload: 1}\n", expectErr: ErrMissingType},
		{name: "unknown field", src: "steps: []\n", errText: "field steps not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			script, err := Parse(strings.NewReader(tc.src))
			switch {
			case tc.expectErr != nil:
				require.ErrorIs(t, err, tc.expectErr)
			case tc.errText != "":
				require.ErrorContains(t, err, tc.errText)
			default:
				require.NoError(t, err)
				assert.Len(t, script.Actions, tc.steps)
			}
		})
	}
}

func TestRun_Scenarios(t *testing.T) {
	script, err := Parse(strings.NewReader(scenarioScript))
	require.NoError(t, err)

	result, err := Run(context.Background(), script, Options{})
	require.NoError(t, err)

	assert.Equal(t, &reducers.Counter{Count: 1}, reducers.CounterOf(result.Final))
	assert.Equal(t, &reducers.Todos{Text: "new"}, reducers.TodosOf(result.Final))
	assert.Equal(t, uint64(2), result.Store.Version())

	stats := result.Trace.Stats()
	require.Len(t, stats, 3)
	assert.Equal(t, []string{reducers.CounterNamespace}, stats[0].Namespaces)
	assert.Equal(t, []string{reducers.TodosNamespace}, stats[1].Namespaces)
	assert.False(t, stats[2].Changed)
}

func TestRun_InitialState(t *testing.T) {
	script := &Script{
		Initial: map[string]any{"counter": map[string]any{"count": 4}},
		Actions: []Step{{Type: actions.TypeChangeCount, Payload: "5"}},
	}
	result, err := Run(context.Background(), script, Options{})
	require.NoError(t, err)
	assert.Equal(t, 5, reducers.CounterOf(result.Final).Count)
	assert.Equal(t, "old", reducers.TodosOf(result.Final).Text)

	script.Initial = map[string]any{"users": map[string]any{}}
	_, err = Run(context.Background(), script, Options{})
	require.ErrorIs(t, err, reducers.ErrUnknownNamespace)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, &Script{Actions: []Step{{Type: "NOOP"}}}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioScript), 0o600))

	script, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, actions.ChangeText("new"), script.Actions[1].Action())

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
