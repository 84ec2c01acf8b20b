package audit

import (
	"context"

	"github.com/rs/zerolog"
)

// LogRecorder writes entries to a zerolog logger. Used when no database is configured.
type LogRecorder struct {
	logger zerolog.Logger
}

func NewLogRecorder(logger zerolog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) Record(_ context.Context, entry Entry) error {
	event := r.logger.Info()
	if entry.Outcome == OutcomeError {
		event = r.logger.Warn().
			Str("error_kind", entry.ErrorKind).
			Str("error", entry.Error)
	}
	event.
		Str("audit_id", entry.ID.String()).
		Str("tool", entry.Tool).
		RawJSON("arguments", entry.Arguments).
		Str("outcome", string(entry.Outcome)).
		Dur("duration", entry.Duration).
		Time("created_at", entry.CreatedAt).
		Msg("tool invocation")
	return nil
}
