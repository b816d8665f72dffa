package reducers

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"

	"github.com/odvcencio/furry-store/state"
)

// ErrUnknownNamespace is returned by DecodeState for namespaces no reducer owns.
var ErrUnknownNamespace = errors.New("reducers: unknown namespace")

// ErrFractional is returned when a number with a fractional part is decoded
// into an integer field.
var ErrFractional = errors.New("reducers: fractional number for integer field")

// decodePayload weakly decodes payload into out, so numbers and strings read
// from YAML or JSON documents are accepted. It reports false for a nil or
// undecodable payload.
func decodePayload(payload, out any) bool {
	if payload == nil {
		return false
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       wholeNumberHook(),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return false
	}
	return dec.Decode(payload) == nil
}

// wholeNumberHook rejects floats with a fractional part headed for an
// integer kind; weak decoding would otherwise truncate them.
func wholeNumberHook() mapstructure.DecodeHookFuncKind {
	return func(from, to reflect.Kind, data any) (any, error) {
		if from != reflect.Float32 && from != reflect.Float64 {
			return data, nil
		}
		switch to {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			return data, nil
		}
		f := reflect.ValueOf(data).Float()
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%w: %v", ErrFractional, data)
		}
		return data, nil
	}
}

// DecodeState decodes a loosely typed document into a whole state.
// Missing namespaces take their initial slice.
func DecodeState(doc map[string]any) (*state.State, error) {
	counter := InitialCounter()
	todos := InitialTodos()

	namespaces := make([]string, 0, len(doc))
	for ns := range doc {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)

	for _, ns := range namespaces {
		var err error
		switch ns {
		case CounterNamespace:
			err = decodeSlice(doc[ns], counter)
		case TodosNamespace:
			err = decodeSlice(doc[ns], todos)
		default:
			err = ErrUnknownNamespace
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", ns, err)
		}
	}

	return state.New(map[string]any{
		CounterNamespace: counter,
		TodosNamespace:   todos,
	}), nil
}

func decodeSlice(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		DecodeHook:       wholeNumberHook(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
