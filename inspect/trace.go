package inspect

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/odvcencio/furry-store/store"
)

// Trace records dispatch statistics for later reporting.
// It is a store.Observer.
type Trace struct {
	mu    sync.Mutex
	stats []store.DispatchStats
}

// NewTrace creates an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// ObserveDispatch appends stats.
func (t *Trace) ObserveDispatch(stats store.DispatchStats) {
	t.mu.Lock()
	t.stats = append(t.stats, stats)
	t.mu.Unlock()
}

// Stats returns a copy of the recorded statistics.
func (t *Trace) Stats() []store.DispatchStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]store.DispatchStats(nil), t.stats...)
}

// Len returns the number of recorded dispatches.
func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.stats)
}

// Markdown writes the trace as a markdown table.
func (t *Trace) Markdown(w io.Writer) error {
	var b strings.Builder
	b.WriteString("| # | Action | Changed | Namespaces | Nested | Listeners | Duration |\n")
	b.WriteString("|---|--------|---------|------------|--------|-----------|----------|\n")
	for _, s := range t.Stats() {
		namespaces := "-"
		if len(s.Namespaces) > 0 {
			namespaces = strings.Join(s.Namespaces, ", ")
		}
		fmt.Fprintf(&b, "| %d | %s | %t | %s | %t | %d | %s |\n",
			s.Seq, cell(s.Action.String()), s.Changed, cell(namespaces), s.Nested, s.Listeners, s.TotalDuration)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// HTML writes the trace as an HTML table.
func (t *Trace) HTML(w io.Writer) error {
	var src bytes.Buffer
	if err := t.Markdown(&src); err != nil {
		return err
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert(src.Bytes(), w); err != nil {
		return fmt.Errorf("render trace: %w", err)
	}
	return nil
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

var _ store.Observer = (*Trace)(nil)
