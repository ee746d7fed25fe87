package events

import (
	"context"

	"go.uber.org/zap"
)

// Emitter hands an event to a transport (asynq queue, log sink).
type Emitter interface {
	Emit(ctx context.Context, ev Event) error
}

// Dispatcher decouples event emission from the request path: Dispatch
// never blocks a booking on a slow emitter. The queue is bounded and
// drops on overflow rather than breaking the API.
type Dispatcher struct {
	emitter Emitter
	logger  *zap.Logger
	queue   chan Event
}

func NewDispatcher(emitter Emitter, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		emitter: emitter,
		logger:  logger,
		queue:   make(chan Event, 256),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.emitter.Emit(context.Background(), ev); err != nil {
			d.logger.Error("event emit failed",
				zap.String("type", ev.Type),
				zap.String("reference", ev.Reference),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("event queue full, dropping event",
			zap.String("type", ev.Type),
			zap.String("reference", ev.Reference),
		)
	}
}

// Close stops the worker after the queue drains.
func (d *Dispatcher) Close() {
	close(d.queue)
}
