// Package observe reports store activity to logs, metrics and traces.
package observe

import (
	"fmt"

	"github.com/odvcencio/furry-store/logging"
	"github.com/odvcencio/furry-store/reducer"
	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

// Log returns an observer that logs every applied action at debug level.
func Log(logger logging.Logger) store.Observer {
	logger = logging.OrNoOp(logger)
	return store.ObserverFunc(func(stats store.DispatchStats) {
		logger.Debug("dispatch",
			"id", stats.ID.String(),
			"seq", stats.Seq,
			"type", stats.Action.Type,
			"changed", stats.Changed,
			"namespaces", stats.Namespaces,
			"nested", stats.Nested,
			"queued", stats.Queued,
			"listeners", stats.Listeners,
			"version", stats.Version,
			"duration", stats.TotalDuration,
		)
	})
}

// ReducerHooks reports dropped reducers and unhandled actions to logger.
func ReducerHooks(logger logging.Logger) reducer.Hooks {
	logger = logging.OrNoOp(logger)
	return reducer.Hooks{
		OnDropped: func(namespace string, value any) {
			logger.Warn("reducer dropped", "namespace", namespace, "value_type", typeName(value))
		},
		OnUnhandled: func(action state.Action) {
			logger.Debug("action unhandled", "type", action.Type)
		},
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
