package observe

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/furry-store/store"
)

const tracerName = "github.com/odvcencio/furry-store/store"

// Tracer records one span per applied action.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer from tp, or from the global provider if tp is nil.
func NewTracer(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{tracer: tp.Tracer(tracerName)}
}

// ObserveDispatch records stats as a span covering the dispatch.
func (t *Tracer) ObserveDispatch(stats store.DispatchStats) {
	_, span := t.tracer.Start(context.Background(), "Store.Dispatch",
		trace.WithTimestamp(stats.Started),
		trace.WithAttributes(
			attribute.String("dispatch.id", stats.ID.String()),
			attribute.Int64("dispatch.seq", int64(stats.Seq)),
			attribute.String("action.type", stats.Action.Type),
			attribute.Bool("dispatch.changed", stats.Changed),
			attribute.Bool("dispatch.nested", stats.Nested),
			attribute.Int("dispatch.queued", stats.Queued),
			attribute.Int("dispatch.listeners", stats.Listeners),
			attribute.Int64("state.version", int64(stats.Version)),
			attribute.StringSlice("state.namespaces", stats.Namespaces),
		),
	)
	span.AddEvent("reduced", trace.WithTimestamp(stats.Started.Add(stats.ReduceDuration)))
	span.End(trace.WithTimestamp(stats.Ended))
}

var _ store.Observer = (*Tracer)(nil)
