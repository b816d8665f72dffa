package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/furry-store/reducers"
	"github.com/odvcencio/furry-store/replay"
)

const script = `
actions:
  - {type: CHANGE_COUNT, payload: 1}
  - {type: CHANGE_TEXT, payload: new}
`

func writeScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o600))
	return path
}

func execute(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	path := writeScript(t)

	testCases := []struct {
		name     string
		args     []string
		env      map[string]string
		contains string
	}{
		{name: "table", args: []string{"run", "--format", "table", path}, contains: `todos      {"text":"new"}`},
		{name: "markdown", args: []string{"run", "--format", "markdown", path}, contains: "CHANGE_TEXT(new)"},
		{name: "html", args: []string{"run", "--format", "html", path}, contains: "<table>"},
		{name: "env format", args: []string{"run", path}, env: map[string]string{"FURRY_REPLAY_FORMAT": "markdown"}, contains: "| Action |"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.env, tc.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tc.contains)
		})
	}
}

func TestRunCommand_JSON(t *testing.T) {
	out, err := execute(t, nil, "run", writeScript(t))
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1.0, doc["counter"]["count"])
	assert.Equal(t, "new", doc["todos"]["text"])
}

func TestRunCommand_Errors(t *testing.T) {
	path := writeScript(t)

	testCases := []struct {
		name string
		args []string
	}{
		{name: "bad format", args: []string{"run", "--format", "xml", path}},
		{name: "bad log level", args: []string{"run", "--log-level", "loud", path}},
		{name: "missing script", args: []string{"run", filepath.Join(t.TempDir(), "nope.yaml")}},
		{name: "no args", args: []string{"run"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, nil, tc.args...)
			require.Error(t, err)
		})
	}
}

func TestActionsCommand(t *testing.T) {
	out, err := execute(t, nil, "actions")
	require.NoError(t, err)
	assert.Equal(t, "CHANGE_COUNT\nCHANGE_TEXT\n", out)
}

type scriptedLines struct {
	lines []string
}

func (s *scriptedLines) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestREPL(t *testing.T) {
	s, trace, err := replay.NewStore(reducers.InitialState(), replay.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	lines := &scriptedLines{lines: []string{"inc", "inc", "", "text hello world", "dec", "NOOP", "quit", "inc"}}
	require.NoError(t, repl(lines, s, trace, &out))

	assert.Equal(t, "count: 1\ncount: 2\ntext: hello world\ncount: 1\n", out.String())
	assert.Equal(t, 1, reducers.CounterOf(s.State()).Count)
	assert.Equal(t, 5, trace.Len())
	assert.Len(t, lines.lines, 1)
}

func TestREPL_StateAndTrace(t *testing.T) {
	s, trace, err := replay.NewStore(reducers.InitialState(), replay.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, repl(&scriptedLines{lines: []string{"state", "inc", "trace", "help"}}, s, trace, &out))

	text := out.String()
	assert.Contains(t, text, `"text": "old"`)
	assert.Contains(t, text, "CHANGE_COUNT(1)")
	assert.True(t, strings.HasSuffix(text, replHelp))
}
