package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BonisOleg/coresync-sub000/internal/audit"
	clockpkg "github.com/BonisOleg/coresync-sub000/internal/clock"
	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/domain/pricing"
	"github.com/BonisOleg/coresync-sub000/internal/domain/tier"
	"github.com/BonisOleg/coresync-sub000/internal/events"
	"github.com/BonisOleg/coresync-sub000/internal/membership"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AddonInput struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type CreateBookingInput struct {
	MemberID  uint
	ServiceID uint

	// Either an explicit slot, or a date + start time the allocator
	// resolves against the service's room type.
	SlotID    uint
	Date      time.Time
	StartTime time.Time

	// Optional explicit technician request; when nil the matcher picks.
	TechnicianID *uint

	Addons           []AddonInput
	ScenePreferences string
	Notes            string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo       domain.Repository
	membership membership.Client
	policy     tier.Policy
	clock      clockpkg.Clock
	events     *events.Dispatcher
	audit      *audit.Dispatcher
	logger     *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	membershipClient membership.Client,
	policy tier.Policy,
	clk clockpkg.Clock,
	eventsDispatcher *events.Dispatcher,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:       repo,
		membership: membershipClient,
		policy:     policy,
		clock:      clk,
		events:     eventsDispatcher,
		audit:      auditDispatcher,
		logger:     logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute runs the full allocation pipeline (tier window, slot
// reservation, technician match, pricing, reference) inside one
// transaction. Any failing step rolls everything back: no booking row,
// no addons, no charged capacity, no consumed reference.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	cap, err := uc.membership.GetTier(ctx, in.MemberID)
	if err != nil {
		return nil, err
	}

	var created *models.Booking
	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		b, err := uc.executeInTx(ctx, tx, in, cap)
		if err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.afterCommit(created)
	return created, nil
}

// executeInTx is the transactional body, shared with the reschedule
// flow which wraps it in its own transaction.
func (uc *CreateBooking) executeInTx(
	ctx context.Context,
	tx domain.Repository,
	in CreateBookingInput,
	cap tier.Capability,
) (*models.Booking, error) {

	now := uc.clock.Now()

	service, err := tx.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Slot selection + row lock
	// --------------------------------------------------
	slotID := in.SlotID
	if slotID == 0 {
		id, err := uc.resolveSlot(ctx, tx, in, service, cap, now)
		if err != nil {
			return nil, err
		}
		slotID = id
	}

	slot, err := tx.GetSlotForUpdate(ctx, slotID)
	if err != nil {
		return nil, err
	}

	// All gate checks re-run under the lock; the pre-lock pass in
	// resolveSlot only narrows candidates.
	if slot.Blocked {
		return nil, domain.NewSlotUnavailable("slot_blocked", "slot is blocked: "+slot.BlockedReason)
	}
	if !slot.HasCapacity() {
		return nil, domain.NewSlotUnavailable("slot_full", "slot has no remaining capacity")
	}
	if !uc.policy.WithinWindow(cap, now, slot.Date) {
		return nil, domain.NewSlotUnavailable("outside_window", "date is beyond the tier's advance-booking window")
	}
	if !tier.SlotOpenTo(cap, now, slot.MemberOnlyUntil, slot.VIPOnlyUntil) {
		return nil, domain.NewSlotUnavailable("tier_gated", "slot is not yet open to this tier")
	}

	room, err := tx.GetRoom(ctx, slot.RoomID)
	if err != nil {
		return nil, err
	}
	if service.RoomType != "" && room.Type != service.RoomType {
		return nil, domain.NewValidation("room_type_mismatch", "service cannot run in this room")
	}

	start := slot.StartTime
	end := start.Add(time.Duration(service.DurationMin) * time.Minute)
	if end.After(slot.EndTime) {
		return nil, domain.NewSlotUnavailable("slot_too_short", "service does not fit in the slot window")
	}

	// --------------------------------------------------
	// Technician
	// --------------------------------------------------
	technicianID, needsAssignment, err := uc.matchTechnician(ctx, tx, service, slot.Date, start, end, in.TechnicianID, 0)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Pricing
	// --------------------------------------------------
	addons := make([]pricing.Addon, 0, len(in.Addons))
	for _, a := range in.Addons {
		addons = append(addons, pricing.Addon{Name: a.Name, UnitPrice: a.UnitPrice, Quantity: a.Quantity})
	}

	base := pricing.SlotPrice(service.PriceFor(cap.IsMember), room.PriceMultiplier, slot.PriceModifier)
	quote := pricing.Calculate(base, addons, cap.DiscountPercent)

	// --------------------------------------------------
	// Reservation: capacity + reference + insert, one commit
	// --------------------------------------------------
	if err := tx.IncrementSlotUsage(ctx, slot.ID); err != nil {
		return nil, err
	}

	seq, err := tx.NextReference(ctx, domain.PrefixBooking, start.Year())
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		Reference: domain.FormatReference(domain.PrefixBooking, start.Year(), seq),

		MemberID:  in.MemberID,
		ServiceID: service.ID,
		RoomID:    room.ID,
		SlotID:    slot.ID,

		Date:        slot.Date,
		StartTime:   start,
		EndTime:     end,
		DurationMin: service.DurationMin,

		Status: string(domain.InitialStatus()),

		TierName:            string(cap.TierName),
		TierIsMember:        cap.IsMember,
		TierPriorityBooking: cap.PriorityBooking,
		TierDiscountPercent: cap.DiscountPercent,

		TechnicianID:    technicianID,
		NeedsAssignment: needsAssignment,

		BasePrice:       quote.BasePrice,
		AddonsTotal:     quote.AddonsTotal,
		DiscountApplied: quote.DiscountApplied,
		FinalTotal:      quote.FinalTotal,

		ScenePreferences: in.ScenePreferences,
		Notes:            in.Notes,
	}

	if err := tx.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	rows := make([]models.BookingAddon, 0, len(addons))
	for _, a := range addons {
		rows = append(rows, models.BookingAddon{
			BookingID:  b.ID,
			Name:       a.Name,
			Quantity:   a.Quantity,
			UnitPrice:  a.UnitPrice,
			TotalPrice: a.Total(),
		})
	}
	if err := tx.CreateAddons(ctx, rows); err != nil {
		return nil, err
	}
	b.Addons = rows

	b.Service = *service
	b.Room = *room
	return b, nil
}

func (uc *CreateBooking) afterCommit(b *models.Booking) {
	uc.events.Dispatch(events.Event{
		ID:               uuid.NewString(),
		Type:             events.TypeBookingCreated,
		Reference:        b.Reference,
		MemberID:         b.MemberID,
		Service:          b.Service.Name,
		Room:             b.Room.Name,
		Date:             b.Date.Format("2006-01-02"),
		TimeRange:        b.StartTime.Format("15:04") + "-" + b.EndTime.Format("15:04"),
		ScenePreferences: b.ScenePreferences,
		OccurredAt:       uc.clock.Now(),
	})

	uc.audit.Dispatch(audit.Event{
		MemberID: &b.MemberID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"reference": b.Reference},
	})

	uc.logger.Info("booking created",
		zap.String("reference", b.Reference),
		zap.Uint("member_id", b.MemberID),
		zap.Bool("needs_assignment", b.NeedsAssignment),
	)
}

// resolveSlot picks the first open slot on the requested date whose
// window starts at the requested time, matches the service's room type,
// and passes the tier gates. Selection is provisional; the chosen row is
// re-verified under FOR UPDATE.
func (uc *CreateBooking) resolveSlot(
	ctx context.Context,
	tx domain.Repository,
	in CreateBookingInput,
	service *models.Service,
	cap tier.Capability,
	now time.Time,
) (uint, error) {

	slots, err := tx.FindOpenSlots(ctx, in.Date, service.RoomType)
	if err != nil {
		return 0, err
	}

	for _, s := range slots {
		if !in.StartTime.IsZero() && !s.StartTime.Equal(in.StartTime) {
			continue
		}
		if !tier.SlotOpenTo(cap, now, s.MemberOnlyUntil, s.VIPOnlyUntil) {
			continue
		}
		if s.EndTime.Sub(s.StartTime) < time.Duration(service.DurationMin)*time.Minute {
			continue
		}
		return s.ID, nil
	}

	return 0, domain.NewSlotUnavailable("no_slot", "no open slot matches the requested time")
}

func validateCreateInput(in CreateBookingInput) error {
	if in.MemberID == 0 {
		return domain.NewValidation("missing_member", "member id is required")
	}
	if in.ServiceID == 0 {
		return domain.NewValidation("missing_service", "service id is required")
	}
	if in.SlotID == 0 && in.Date.IsZero() {
		return domain.NewValidation("missing_slot", "either a slot id or a date is required")
	}
	for _, a := range in.Addons {
		if a.Quantity <= 0 {
			return domain.NewValidation("invalid_addon_quantity", "addon quantity must be positive")
		}
		if a.UnitPrice < 0 {
			return domain.NewValidation("invalid_addon_price", "addon price cannot be negative")
		}
	}
	return nil
}
