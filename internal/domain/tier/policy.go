package tier

import "time"

// Policy is the single holder of the tier-dependent booking windows and
// cancellation cutoffs. It is loaded from configuration once and passed
// into the engine; call sites never carry their own copies of these
// numbers.
type Policy struct {
	AdvanceDaysNonMember int
	AdvanceDaysMember    int
	AdvanceDaysPriority  int
	AdvanceDaysVIP       int

	CancelCutoffMemberHours    int
	CancelCutoffNonMemberHours int
}

func DefaultPolicy() Policy {
	return Policy{
		AdvanceDaysNonMember: 3,
		AdvanceDaysMember:    30,
		AdvanceDaysPriority:  60,
		AdvanceDaysVIP:       90,

		CancelCutoffMemberHours:    24,
		CancelCutoffNonMemberHours: 48,
	}
}

// MaxAdvanceDays returns how far ahead the capability may book.
func (p Policy) MaxAdvanceDays(cap Capability) int {
	switch {
	case cap.IsVIP():
		return p.AdvanceDaysVIP
	case cap.IsMember && cap.PriorityBooking:
		return p.AdvanceDaysPriority
	case cap.IsMember:
		return p.AdvanceDaysMember
	default:
		return p.AdvanceDaysNonMember
	}
}

// WithinWindow reports whether the target date falls inside the
// capability's advance-booking window, measured from now. The window is
// counted in calendar days: a booking on the last allowed day is open
// regardless of its time of day.
func (p Policy) WithinWindow(cap Capability, now, date time.Time) bool {
	today := now.Truncate(24 * time.Hour)
	day := date.Truncate(24 * time.Hour)
	if day.Before(today) {
		return false
	}
	limit := today.AddDate(0, 0, p.MaxAdvanceDays(cap))
	return !day.After(limit)
}

// CancelCutoff returns the minimum lead time before start at which a
// booking may still be cancelled.
func (p Policy) CancelCutoff(cap Capability) time.Duration {
	if cap.IsMember {
		return time.Duration(p.CancelCutoffMemberHours) * time.Hour
	}
	return time.Duration(p.CancelCutoffNonMemberHours) * time.Hour
}

// SlotOpenTo applies slot-level gating on top of the tier window: while
// now < memberOnlyUntil only members may book, and while now <
// vipOnlyUntil only VIP/unlimited may. At the boundary instant the gate
// opens.
func SlotOpenTo(cap Capability, now time.Time, memberOnlyUntil time.Time, vipOnlyUntil *time.Time) bool {
	if vipOnlyUntil != nil && now.Before(*vipOnlyUntil) && !cap.IsVIP() {
		return false
	}
	if !memberOnlyUntil.IsZero() && now.Before(memberOnlyUntil) && !cap.IsMember {
		return false
	}
	return true
}
