package technician

import (
	"time"

	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// Covers reports whether any active schedule entry (recurring weekday or
// one-off date) fully contains [start, end) on the given date.
func Covers(schedules []models.TechnicianSchedule, date, start, end time.Time) bool {
	weekday := int(date.Weekday())

	for _, sc := range schedules {
		if !sc.Active {
			continue
		}

		if sc.Date != nil {
			if !sameDay(*sc.Date, date) {
				continue
			}
		} else if sc.Weekday == nil || *sc.Weekday != weekday {
			continue
		}

		winStart, okStart := atTime(date, sc.StartTime)
		winEnd, okEnd := atTime(date, sc.EndTime)
		if !okStart || !okEnd {
			continue
		}

		if !start.Before(winStart) && !end.After(winEnd) {
			return true
		}
	}

	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func atTime(date time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), true
}
