package booking

import (
	"context"
	"time"

	clockpkg "github.com/BonisOleg/coresync-sub000/internal/clock"
	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/domain/pricing"
	"github.com/BonisOleg/coresync-sub000/internal/domain/tier"
	"github.com/BonisOleg/coresync-sub000/internal/membership"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// SlotOption is an open slot offered to a requester, with the price the
// requester's tier would pay.
type SlotOption struct {
	SlotID    uint      `json:"slot_id"`
	RoomID    uint      `json:"room_id"`
	RoomName  string    `json:"room_name"`
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Remaining int       `json:"remaining"`
	Price     float64   `json:"price"`
}

type GetAvailability struct {
	repo       domain.Repository
	membership membership.Client
	policy     tier.Policy
	clock      clockpkg.Clock

	// Defaults for the alternatives scan when the caller passes none.
	altDays  int
	altLimit int
}

func NewGetAvailability(
	repo domain.Repository,
	membershipClient membership.Client,
	policy tier.Policy,
	clk clockpkg.Clock,
	altDays int,
	altLimit int,
) *GetAvailability {
	return &GetAvailability{
		repo:       repo,
		membership: membershipClient,
		policy:     policy,
		clock:      clk,
		altDays:    altDays,
		altLimit:   altLimit,
	}
}

// Execute lists the slots the member can actually book on the date:
// open capacity, inside the tier window, and past any slot-level gates.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	memberID uint,
	serviceID uint,
	date time.Time,
) ([]SlotOption, error) {

	cap, err := uc.membership.GetTier(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if !uc.policy.WithinWindow(cap, now, date) {
		return nil, domain.NewSlotUnavailable("outside_window", "date is beyond the tier's advance-booking window")
	}

	service, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	slots, err := uc.repo.FindOpenSlots(ctx, date, service.RoomType)
	if err != nil {
		return nil, err
	}

	out := make([]SlotOption, 0, len(slots))
	for _, s := range slots {
		if !tier.SlotOpenTo(cap, now, s.MemberOnlyUntil, s.VIPOnlyUntil) {
			continue
		}
		if s.EndTime.Sub(s.StartTime) < time.Duration(service.DurationMin)*time.Minute {
			continue
		}
		out = append(out, uc.option(s, service, cap))
	}
	return out, nil
}

func (uc *GetAvailability) option(s models.AvailabilitySlot, service *models.Service, cap tier.Capability) SlotOption {
	base := pricing.SlotPrice(service.PriceFor(cap.IsMember), s.Room.PriceMultiplier, s.PriceModifier)
	quote := pricing.Calculate(base, nil, cap.DiscountPercent)

	return SlotOption{
		SlotID:    s.ID,
		RoomID:    s.RoomID,
		RoomName:  s.Room.Name,
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Remaining: s.MaxBookings - s.CurrentBookings,
		Price:     quote.FinalTotal,
	}
}

// Alternatives suggests replacement slots after a SlotUnavailable
// failure: same room type, earliest open slots across the following
// days, capped at limit.
func (uc *GetAvailability) Alternatives(
	ctx context.Context,
	memberID uint,
	serviceID uint,
	from time.Time,
	days int,
	limit int,
) ([]SlotOption, error) {

	cap, err := uc.membership.GetTier(ctx, memberID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if days <= 0 {
		days = uc.altDays
	}
	if limit <= 0 {
		limit = uc.altLimit
	}

	now := uc.clock.Now()
	var out []SlotOption

	for d := 0; d < days && len(out) < limit; d++ {
		date := from.AddDate(0, 0, d)
		if !uc.policy.WithinWindow(cap, now, date) {
			break
		}

		slots, err := uc.repo.FindOpenSlots(ctx, date, service.RoomType)
		if err != nil {
			return nil, err
		}
		for _, s := range slots {
			if len(out) >= limit {
				break
			}
			if !tier.SlotOpenTo(cap, now, s.MemberOnlyUntil, s.VIPOnlyUntil) {
				continue
			}
			out = append(out, uc.option(s, service, cap))
		}
	}
	return out, nil
}
