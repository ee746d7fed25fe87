package booking

import (
	"time"

	"github.com/BonisOleg/coresync-sub000/internal/domain/tier"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// TierSnapshot returns the capability frozen on the booking at creation.
// Guards keep using the snapshot even if the live tier changes later.
func TierSnapshot(b *models.Booking) tier.Capability {
	return tier.Capability{
		TierName:        tier.Parse(b.TierName),
		IsMember:        b.TierIsMember,
		PriorityBooking: b.TierPriorityBooking,
		DiscountPercent: b.TierDiscountPercent,
	}
}

func Confirm(b *models.Booking) error {
	if !CanTransition(Status(b.Status), StatusConfirmed) {
		return NewValidation("invalid_state", "booking cannot be confirmed")
	}
	b.Status = string(StatusConfirmed)
	return nil
}

func Begin(b *models.Booking) error {
	if !CanTransition(Status(b.Status), StatusInProgress) {
		return NewValidation("invalid_state", "booking cannot be started")
	}
	b.Status = string(StatusInProgress)
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if !CanTransition(Status(b.Status), StatusCompleted) {
		return NewValidation("invalid_state", "booking cannot be completed")
	}
	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// Cancel applies the guard and marks the booking cancelled. Capacity
// compensation happens in the same transaction at the use-case layer.
func Cancel(b *models.Booking, policy tier.Policy, now time.Time, reason string) error {
	if err := CanCancel(Status(b.Status), policy, TierSnapshot(b), now, b.StartTime); err != nil {
		return err
	}
	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.CancellationReason = reason
	return nil
}

// ForceCancel skips the cutoff guard; used for payment-failure rollback
// where the requester is not the actor.
func ForceCancel(b *models.Booking, now time.Time, reason string) error {
	if Status(b.Status).Terminal() {
		return NewValidation("invalid_state", "booking is already closed")
	}
	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.CancellationReason = reason
	return nil
}

func MarkNoShow(b *models.Booking) error {
	if !CanTransition(Status(b.Status), StatusNoShow) {
		return NewValidation("invalid_state", "booking cannot be marked no-show")
	}
	b.Status = string(StatusNoShow)
	return nil
}

// MarkRescheduled closes the old booking; the replacement is created
// separately inside the same transaction.
func MarkRescheduled(b *models.Booking, policy tier.Policy, now time.Time) error {
	if err := CanReschedule(Status(b.Status), policy, TierSnapshot(b), now, b.StartTime); err != nil {
		return err
	}
	b.Status = string(StatusRescheduled)
	return nil
}
