// Package replay applies scripted action sequences to a demo store.
package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/furry-store/inspect"
	"github.com/odvcencio/furry-store/logging"
	"github.com/odvcencio/furry-store/observe"
	"github.com/odvcencio/furry-store/reducers"
	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

var (
	// ErrEmptyScript is returned by Parse for a document with no content.
	ErrEmptyScript = errors.New("replay: empty script")
	// ErrMissingType is returned by Parse for a step without an action type.
	ErrMissingType = errors.New("replay: step has no type")
)

// Step is one scripted action.
type Step struct {
	Type    string `yaml:"type"`
	Payload any    `yaml:"payload,omitempty"`
}

// Action converts the step into an action.
func (s Step) Action() state.Action {
	return state.NewAction(s.Type, s.Payload)
}

// Script is a replayable sequence of actions.
type Script struct {
	// Initial is decoded with reducers.DecodeState. Nil starts from the
	// registry's initial state.
	Initial map[string]any `yaml:"initial,omitempty"`
	Actions []Step         `yaml:"actions"`
}

// Parse reads a YAML script from r.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var script Script
	if err := dec.Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyScript
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, step := range script.Actions {
		if step.Type == "" {
			return nil, fmt.Errorf("%w: step %d", ErrMissingType, i)
		}
	}
	return &script, nil
}

// ParseFile reads a YAML script from path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	script, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}

// InitialState decodes the script's starting state.
func (s *Script) InitialState() (*state.State, error) {
	if s == nil || s.Initial == nil {
		return reducers.InitialState(), nil
	}
	return reducers.DecodeState(s.Initial)
}

// Options configures Run.
type Options struct {
	Logger   logging.Logger
	Observer store.Observer
}

// Result is the outcome of Run.
type Result struct {
	Store *store.Store
	Final *state.State
	Trace *inspect.Trace
}

// NewStore creates a demo store starting at initial.
func NewStore(initial *state.State, opts Options) (*store.Store, *inspect.Trace, error) {
	trace := inspect.NewTrace()
	s, err := store.New(store.Config{
		Reducer:  reducers.NewRegistry().Combine(observe.ReducerHooks(opts.Logger)),
		Initial:  initial,
		Logger:   opts.Logger,
		Observer: store.Combine(trace, observe.Log(opts.Logger), opts.Observer),
	})
	if err != nil {
		return nil, nil, err
	}
	return s, trace, nil
}

// Run dispatches every step of script in order.
// Cancellation is checked between steps.
func Run(ctx context.Context, script *Script, opts Options) (*Result, error) {
	initial, err := script.InitialState()
	if err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}
	s, trace, err := NewStore(initial, opts)
	if err != nil {
		return nil, err
	}
	for _, step := range script.Actions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Dispatch(step.Action())
	}
	return &Result{Store: s, Final: s.State(), Trace: trace}, nil
}
