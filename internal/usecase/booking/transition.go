package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/BonisOleg/coresync-sub000/internal/audit"
	clockpkg "github.com/BonisOleg/coresync-sub000/internal/clock"
	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// TransitionBooking covers the operator-driven lifecycle steps: start of
// service, completion, and no-show marking.
type TransitionBooking struct {
	repo   domain.Repository
	clock  clockpkg.Clock
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewTransitionBooking(
	repo domain.Repository,
	clk clockpkg.Clock,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *TransitionBooking {
	return &TransitionBooking{
		repo:   repo,
		clock:  clk,
		audit:  auditDispatcher,
		logger: logger,
	}
}

func (uc *TransitionBooking) Begin(ctx context.Context, bookingID uint) (*models.Booking, error) {
	return uc.apply(ctx, bookingID, "booking_started", func(b *models.Booking) error {
		return domain.Begin(b)
	})
}

func (uc *TransitionBooking) Complete(ctx context.Context, bookingID uint) (*models.Booking, error) {
	now := uc.clock.Now()
	return uc.apply(ctx, bookingID, "booking_completed", func(b *models.Booking) error {
		return domain.Complete(b, now)
	})
}

// NoShow releases the slot capacity: a no-show seat becomes bookable
// again for walk-ins.
func (uc *TransitionBooking) NoShow(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var out *models.Booking
	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := domain.MarkNoShow(b); err != nil {
			return err
		}
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}
		if err := tx.DecrementSlotUsage(ctx, b.SlotID); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_no_show",
		Entity:   "booking",
		EntityID: &out.ID,
		Metadata: map[string]any{"reference": out.Reference},
	})
	return out, nil
}

func (uc *TransitionBooking) apply(
	ctx context.Context,
	bookingID uint,
	action string,
	mutate func(b *models.Booking) error,
) (*models.Booking, error) {

	var out *models.Booking
	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := mutate(b); err != nil {
			return err
		}
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   action,
		Entity:   "booking",
		EntityID: &out.ID,
		Metadata: map[string]any{"reference": out.Reference},
	})
	uc.logger.Info(action, zap.String("reference", out.Reference))
	return out, nil
}
