package booking

import (
	"time"

	"github.com/BonisOleg/coresync-sub000/internal/domain/tier"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no_show"
	StatusRescheduled Status = "rescheduled"
)

// ActiveStatuses are the statuses that hold capacity and technician
// time: only these participate in conflict detection.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed, StatusInProgress}

func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

func (s Status) Active() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	}
	return false
}

// transitions is the full status graph; anything absent is illegal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether from → to is a legal edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Guards
// ===============================

// CanCancel is false in terminal states and inside the tier-dependent
// cutoff window before the booking starts. The lead time must strictly
// exceed the cutoff: cancelling at exactly cutoff hours before start is
// already too late.
func CanCancel(current Status, policy tier.Policy, cap tier.Capability, now, start time.Time) error {
	if current.Terminal() {
		return NewValidation("invalid_state", "booking can no longer be cancelled")
	}
	if !now.Add(policy.CancelCutoff(cap)).Before(start) {
		return NewValidation("cutoff_passed", "too close to the booking start to cancel")
	}
	return nil
}

// CanReschedule requires a cancellable, confirmed booking.
func CanReschedule(current Status, policy tier.Policy, cap tier.Capability, now, start time.Time) error {
	if err := CanCancel(current, policy, cap, now, start); err != nil {
		return err
	}
	if current != StatusConfirmed {
		return NewValidation("invalid_state", "only confirmed bookings can be rescheduled")
	}
	return nil
}
