package events

import (
	"context"

	"go.uber.org/zap"
)

// LogEmitter writes events to the structured log; used in development
// and as a fallback when no queue is configured.
type LogEmitter struct {
	logger *zap.Logger
}

func NewLogEmitter(logger *zap.Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

func (e *LogEmitter) Emit(_ context.Context, ev Event) error {
	e.logger.Info("collaborator event",
		zap.String("id", ev.ID),
		zap.String("type", ev.Type),
		zap.String("reference", ev.Reference),
		zap.Uint("member_id", ev.MemberID),
		zap.String("date", ev.Date),
		zap.String("time_range", ev.TimeRange),
	)
	return nil
}

var _ Emitter = (*LogEmitter)(nil)
