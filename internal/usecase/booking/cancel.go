package booking

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BonisOleg/coresync-sub000/internal/audit"
	clockpkg "github.com/BonisOleg/coresync-sub000/internal/clock"
	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/domain/tier"
	"github.com/BonisOleg/coresync-sub000/internal/events"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

type CancelBooking struct {
	repo   domain.Repository
	policy tier.Policy
	clock  clockpkg.Clock
	events *events.Dispatcher
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewCancelBooking(
	repo domain.Repository,
	policy tier.Policy,
	clk clockpkg.Clock,
	eventsDispatcher *events.Dispatcher,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		policy: policy,
		clock:  clk,
		events: eventsDispatcher,
		audit:  auditDispatcher,
		logger: logger,
	}
}

// Execute cancels the member's booking. The guard uses the tier
// snapshot captured at creation; the slot capacity is released in the
// same transaction as the status change.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	memberID uint,
	bookingID uint,
	reason string,
) (*models.Booking, error) {

	now := uc.clock.Now()

	var cancelled *models.Booking
	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.MemberID != memberID {
			return domain.NewNotFound("booking_not_found", "booking not found")
		}

		if err := domain.Cancel(b, uc.policy, now, reason); err != nil {
			return err
		}

		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}
		if err := tx.DecrementSlotUsage(ctx, b.SlotID); err != nil {
			return err
		}

		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		ID:         uuid.NewString(),
		Type:       events.TypeBookingCancelled,
		Reference:  cancelled.Reference,
		MemberID:   cancelled.MemberID,
		Date:       cancelled.Date.Format("2006-01-02"),
		TimeRange:  cancelled.StartTime.Format("15:04") + "-" + cancelled.EndTime.Format("15:04"),
		OccurredAt: now,
	})

	uc.audit.Dispatch(audit.Event{
		MemberID: &cancelled.MemberID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &cancelled.ID,
		Metadata: map[string]any{"reference": cancelled.Reference, "reason": reason},
	})

	uc.logger.Info("booking cancelled", zap.String("reference", cancelled.Reference))
	return cancelled, nil
}
