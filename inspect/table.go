package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-store/state"
)

// MaxValueWidth bounds the value column of Table.
const MaxValueWidth = 60

// Table writes one aligned row per namespace of st.
func Table(w io.Writer, st *state.State) error {
	rows := [][2]string{{"NAMESPACE", "VALUE"}}
	for _, ns := range st.Namespaces() {
		value, err := json.Marshal(st.Value(ns))
		if err != nil {
			return fmt.Errorf("marshal %s: %w", ns, err)
		}
		rows = append(rows, [2]string{ns, truncate(string(value), MaxValueWidth)})
	}

	width := 0
	for _, row := range rows {
		if n := runewidth.StringWidth(row[0]); n > width {
			width = n
		}
	}
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(runewidth.FillRight(row[0], width))
		b.WriteString("  ")
		b.WriteString(row[1])
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
