package selector

import (
	"fmt"
	"reflect"

	"github.com/odvcencio/furry-store/state"
)

var statePtrType = reflect.TypeOf((*state.State)(nil))

// Untyped builds a selector from loosely typed functions.
//
// With a single function, the function is the projection and the derived
// value is its result. With more than one, the last function combines the
// results of the others. Projections take a *state.State and return one
// value. The combiner is a func(...any) any, a func([]any) any, or any
// function taking one argument per projection and returning one value.
func Untyped(fns ...any) (*Selector[any], error) {
	if len(fns) == 0 {
		return nil, ErrNoProjections
	}
	if len(fns) == 1 {
		project, err := projection(fns[0])
		if err != nil {
			return nil, fmt.Errorf("%w: argument 0", err)
		}
		return SelectAll(func(inputs []any) any { return inputs[0] }, project), nil
	}

	projections := make([]Projection, 0, len(fns)-1)
	for i, fn := range fns[:len(fns)-1] {
		project, err := projection(fn)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d", err, i)
		}
		projections = append(projections, project)
	}
	combine, err := combiner(fns[len(fns)-1], len(projections))
	if err != nil {
		return nil, err
	}
	return SelectAll(combine, projections...), nil
}

func projection(fn any) (Projection, error) {
	switch p := fn.(type) {
	case nil:
		return nil, ErrBadProjection
	case Projection:
		if p == nil {
			return nil, ErrBadProjection
		}
		return p, nil
	case func(*state.State) any:
		if p == nil {
			return nil, ErrBadProjection
		}
		return p, nil
	}
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func || v.IsNil() || t.IsVariadic() ||
		t.NumIn() != 1 || !statePtrType.AssignableTo(t.In(0)) || t.NumOut() != 1 {
		return nil, ErrBadProjection
	}
	return func(s *state.State) any {
		in := reflect.ValueOf(s)
		if s == nil {
			in = reflect.Zero(t.In(0))
		}
		return v.Call([]reflect.Value{in})[0].Interface()
	}, nil
}

func combiner(fn any, arity int) (func([]any) any, error) {
	switch c := fn.(type) {
	case nil:
		return nil, ErrBadCombiner
	case func(...any) any:
		if c == nil {
			return nil, ErrBadCombiner
		}
		return func(inputs []any) any { return c(inputs...) }, nil
	case func([]any) any:
		if c == nil {
			return nil, ErrBadCombiner
		}
		return c, nil
	}
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func || v.IsNil() || t.IsVariadic() || t.NumIn() != arity || t.NumOut() != 1 {
		return nil, fmt.Errorf("%w: want a function of %d arguments", ErrBadCombiner, arity)
	}
	return func(inputs []any) any {
		args := make([]reflect.Value, len(inputs))
		for i, input := range inputs {
			args[i] = argValue(input, t.In(i))
		}
		return v.Call(args)[0].Interface()
	}, nil
}

// argValue converts input for a reflected call, substituting the zero value
// when input is nil or of the wrong type.
func argValue(input any, want reflect.Type) reflect.Value {
	if input == nil {
		return reflect.Zero(want)
	}
	v := reflect.ValueOf(input)
	if v.Type().AssignableTo(want) {
		return v
	}
	if v.Type().ConvertibleTo(want) && v.Kind() == want.Kind() {
		return v.Convert(want)
	}
	return reflect.Zero(want)
}
