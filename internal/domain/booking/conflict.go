package booking

import (
	"time"

	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// Overlaps is the half-open interval test used for technician conflicts:
// [aStart, aEnd) and [bStart, bEnd) collide when each starts before the
// other ends.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ConflictResult reports the outcome of a technician conflict check.
type ConflictResult struct {
	Valid       bool
	Conflicting []models.Booking
	Message     string
}

// FindConflicts scans the technician's existing active bookings for
// overlap with [start, end). The caller supplies bookings already
// filtered to active statuses and, for reschedules, with the edited
// booking excluded.
func FindConflicts(existing []models.Booking, start, end time.Time) ConflictResult {
	var hits []models.Booking
	for _, b := range existing {
		if Overlaps(b.StartTime, b.EndTime, start, end) {
			hits = append(hits, b)
		}
	}

	if len(hits) == 0 {
		return ConflictResult{Valid: true}
	}
	return ConflictResult{
		Valid:       false,
		Conflicting: hits,
		Message:     "technician already booked in this window",
	}
}

// Refs extracts the conflicting booking references for error payloads.
func (r ConflictResult) Refs() []string {
	refs := make([]string, 0, len(r.Conflicting))
	for _, b := range r.Conflicting {
		refs = append(refs, b.Reference)
	}
	return refs
}
