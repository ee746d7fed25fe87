package booking

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	techdomain "github.com/BonisOleg/coresync-sub000/internal/domain/technician"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// matchTechnician returns the assigned technician id, or (nil, true) when
// no qualified technician is free: the booking then proceeds unassigned
// and is flagged for manual assignment. An explicitly requested
// technician that is double-booked is a hard ConflictError naming the
// colliding references.
func (uc *CreateBooking) matchTechnician(
	ctx context.Context,
	tx domain.Repository,
	service *models.Service,
	date time.Time,
	start time.Time,
	end time.Time,
	requested *uint,
	excludeBookingID uint,
) (*uint, bool, error) {

	required := techdomain.RequiredFor(service.Category)

	techs, err := tx.ListActiveTechnicians(ctx)
	if err != nil {
		return nil, false, err
	}

	var candidates []models.Technician
	for _, t := range techs {
		if requested != nil && t.ID != *requested {
			continue
		}
		if techdomain.Qualifies(techdomain.ParseSpecialties(t.Specialties), required) {
			candidates = append(candidates, t)
		}
	}

	if requested != nil && len(candidates) == 0 {
		return nil, false, domain.NewNotFound("technician_not_found", "requested technician is not available for this service")
	}

	// Deterministic candidate order: fewest active bookings on the day
	// first, id as the tie-breaker.
	loads := make(map[uint]int64, len(candidates))
	for _, t := range candidates {
		n, err := tx.CountActiveBookings(ctx, t.ID, date)
		if err != nil {
			return nil, false, err
		}
		loads[t.ID] = n
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if loads[candidates[i].ID] != loads[candidates[j].ID] {
			return loads[candidates[i].ID] < loads[candidates[j].ID]
		}
		return candidates[i].ID < candidates[j].ID
	})

	for _, t := range candidates {
		schedules, err := tx.ListSchedules(ctx, t.ID)
		if err != nil {
			// Fail closed: an unreadable schedule rejects the candidate
			// instead of silently treating them as available.
			uc.logger.Warn("schedule lookup failed, skipping technician",
				zap.Uint("technician_id", t.ID),
				zap.Error(err),
			)
			if requested != nil {
				return nil, false, err
			}
			continue
		}
		if !techdomain.Covers(schedules, date, start, end) {
			continue
		}

		existing, err := tx.ListTechnicianBookings(ctx, t.ID, date, domain.ActiveStatuses, excludeBookingID)
		if err != nil {
			return nil, false, err
		}

		res := domain.FindConflicts(existing, start, end)
		if res.Valid {
			id := t.ID
			return &id, false, nil
		}
		if requested != nil {
			return nil, false, domain.NewConflict("technician_conflict", res.Message, res.Refs()...)
		}
	}

	if requested != nil {
		return nil, false, domain.NewConflict("technician_unavailable", "requested technician has no free schedule for this window")
	}

	// Intentional policy: no free technician is not an error.
	return nil, true, nil
}
