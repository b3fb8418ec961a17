package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/shop-api/internal/platform/logger"
)

// LoggingHandler writes saga failures to the log at WARN. Other event
// types are logged at DEBUG.
type LoggingHandler struct {
	logger *slog.Logger
}

// NewLoggingHandler creates a LoggingHandler. If logger is nil, the default logger is used.
func NewLoggingHandler(l *slog.Logger) *LoggingHandler {
	if l == nil {
		l = slog.Default()
	}
	return &LoggingHandler{logger: l.With(slog.String("component", "event_log"))}
}

// HandleEvent implements EventHandler.
func (h *LoggingHandler) HandleEvent(ctx context.Context, event *Event) error {
	log := logger.FromContextOrDefault(ctx, h.logger)

	if event.Type != TypeSagaStepFailed {
		log.Debug("event", slog.String("event_id", event.ID.String()), slog.String("event_type", event.Type))
		return nil
	}

	var p StepFailedPayload
	if err := event.UnmarshalPayload(&p); err != nil {
		return err
	}
	log.Warn("cross-store write left stores out of step",
		slog.String("event_id", event.ID.String()),
		slog.String("saga", p.Saga),
		slog.String("failed_step", p.Step),
		slog.Any("committed_steps", p.Committed),
		slog.Bool("tolerated", p.Tolerated),
		slog.String("error", p.Error),
		slog.Any("attrs", p.Attrs))
	return nil
}
