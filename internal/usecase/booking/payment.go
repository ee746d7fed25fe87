package booking

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	clockpkg "github.com/BonisOleg/coresync-sub000/internal/clock"
	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/events"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// PaymentCallback applies the payment collaborator's callbacks:
// payment_succeeded confirms a pending booking, payment_failed cancels
// it and releases the slot capacity.
type PaymentCallback struct {
	repo   domain.Repository
	clock  clockpkg.Clock
	events *events.Dispatcher
	logger *zap.Logger
}

func NewPaymentCallback(
	repo domain.Repository,
	clk clockpkg.Clock,
	eventsDispatcher *events.Dispatcher,
	logger *zap.Logger,
) *PaymentCallback {
	return &PaymentCallback{
		repo:   repo,
		clock:  clk,
		events: eventsDispatcher,
		logger: logger,
	}
}

func (uc *PaymentCallback) Succeeded(ctx context.Context, reference string) (*models.Booking, error) {
	var confirmed *models.Booking
	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		b, err := tx.GetBookingByReference(ctx, reference)
		if err != nil {
			return err
		}
		if err := domain.Confirm(b); err != nil {
			return err
		}
		b.PaymentStatus = "paid"
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}
		confirmed = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		ID:         uuid.NewString(),
		Type:       events.TypeBookingConfirmed,
		Reference:  confirmed.Reference,
		MemberID:   confirmed.MemberID,
		Date:       confirmed.Date.Format("2006-01-02"),
		TimeRange:  confirmed.StartTime.Format("15:04") + "-" + confirmed.EndTime.Format("15:04"),
		OccurredAt: uc.clock.Now(),
	})

	uc.logger.Info("booking confirmed", zap.String("reference", reference))
	return confirmed, nil
}

func (uc *PaymentCallback) Failed(ctx context.Context, reference string) (*models.Booking, error) {
	now := uc.clock.Now()

	var cancelled *models.Booking
	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		b, err := tx.GetBookingByReference(ctx, reference)
		if err != nil {
			return err
		}
		if domain.Status(b.Status) != domain.StatusPending {
			return domain.NewValidation("invalid_state", "only pending bookings can fail payment")
		}
		if err := domain.ForceCancel(b, now, "payment_failed"); err != nil {
			return err
		}
		b.PaymentStatus = "failed"
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

	uc.logger.Info("booking cancelled after failed payment", zap.String("reference", reference))
	return cancelled, nil
}
