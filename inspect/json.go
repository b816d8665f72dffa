// Package inspect renders whole states and dispatch traces for humans.
package inspect

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/odvcencio/furry-store/state"
)

// JSON writes st as indented JSON, highlighted for a 256-color terminal
// when color is set.
func JSON(w io.Writer, st *state.State, color bool) error {
	src, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	src = append(src, '\n')
	if !color {
		_, err = w.Write(src)
		return err
	}
	if err := quick.Highlight(w, string(src), "json", "terminal256", "monokai"); err != nil {
		return fmt.Errorf("highlight state: %w", err)
	}
	return nil
}
