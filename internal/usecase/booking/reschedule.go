package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/BonisOleg/coresync-sub000/internal/audit"
	clockpkg "github.com/BonisOleg/coresync-sub000/internal/clock"
	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/domain/tier"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// RescheduleBooking closes a confirmed booking as rescheduled and
// allocates its replacement in the same transaction, so either both
// happen or neither does.
type RescheduleBooking struct {
	create *CreateBooking
	policy tier.Policy
	clock  clockpkg.Clock
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewRescheduleBooking(
	create *CreateBooking,
	policy tier.Policy,
	clk clockpkg.Clock,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *RescheduleBooking {
	return &RescheduleBooking{
		create: create,
		policy: policy,
		clock:  clk,
		audit:  auditDispatcher,
		logger: logger,
	}
}

func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	memberID uint,
	bookingID uint,
	in CreateBookingInput,
) (*models.Booking, error) {

	in.MemberID = memberID
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	cap, err := uc.create.membership.GetTier(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	var replacement *models.Booking
	err = uc.create.repo.WithTx(ctx, func(tx domain.Repository) error {
		old, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if old.MemberID != memberID {
			return domain.NewNotFound("booking_not_found", "booking not found")
		}

		if err := domain.MarkRescheduled(old, uc.policy, now); err != nil {
			return err
		}
		if err := tx.UpdateBooking(ctx, old); err != nil {
			return err
		}
		if err := tx.DecrementSlotUsage(ctx, old.SlotID); err != nil {
			return err
		}

		b, err := uc.create.executeInTx(ctx, tx, in, cap)
		if err != nil {
			return err
		}
		replacement = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.create.afterCommit(replacement)

	uc.audit.Dispatch(audit.Event{
		MemberID: &memberID,
		Action:   "booking_rescheduled",
		Entity:   "booking",
		EntityID: &bookingID,
		Metadata: map[string]any{"replacement": replacement.Reference},
	})
	uc.logger.Info("booking rescheduled",
		zap.Uint("old_id", bookingID),
		zap.String("replacement", replacement.Reference),
	)
	return replacement, nil
}
