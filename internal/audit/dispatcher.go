package audit

import "go.uber.org/zap"

type Event struct {
	MemberID *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Writer persists one audit entry. The gorm-backed Logger is the
// production implementation.
type Writer interface {
	Log(memberID *uint, action, entity string, entityID *uint, metadata any) error
}

type Dispatcher struct {
	logger Writer
	log    *zap.Logger
	queue  chan Event
}

func NewDispatcher(logger Writer, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.MemberID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// Full queue drops audit rather than breaking the API.
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}
