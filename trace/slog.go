package trace

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// SlogSink mirrors every event into logger at level, with the run id and
// event kind as attributes and the rendered line as the message.
func SlogSink(logger *slog.Logger, level slog.Level) Sink {
	return func(runID uuid.UUID, e Event) {
		if logger == nil || !logger.Enabled(context.Background(), level) {
			return
		}
		logger.LogAttrs(context.Background(), level, Line(e),
			slog.String("run_id", runID.String()),
			slog.String("event", e.Kind().String()),
		)
	}
}
