package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BonisOleg/coresync-sub000/internal/audit"
	clockpkg "github.com/BonisOleg/coresync-sub000/internal/clock"
	"github.com/BonisOleg/coresync-sub000/internal/domain/tier"
	"github.com/BonisOleg/coresync-sub000/internal/events"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// Fixture times: the clock is pinned two days before a seeded afternoon
// slot, inside every tier's booking window and outside every cutoff.
var (
	testNow       = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	testSlotDate  = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	testSlotStart = time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	testSlotEnd   = time.Date(2025, 6, 3, 16, 0, 0, 0, time.UTC)
)

type fakeTierClient struct {
	caps map[uint]tier.Capability
}

func (f *fakeTierClient) GetTier(ctx context.Context, memberID uint) (tier.Capability, error) {
	cap, ok := f.caps[memberID]
	if !ok {
		return tier.Capability{TierName: tier.NonMember}, nil
	}
	return cap, nil
}

type noopAudit struct{}

func (noopAudit) Log(memberID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}

type engine struct {
	repo  *fakeRepo
	tiers *fakeTierClient
	clock clockpkg.Clock

	create       *CreateBooking
	cancel       *CancelBooking
	reschedule   *RescheduleBooking
	transition   *TransitionBooking
	payment      *PaymentCallback
	availability *GetAvailability
}

func newEngine(repo *fakeRepo, now time.Time) *engine {
	logger := zap.NewNop()
	clk := clockpkg.NewFixed(now)
	policy := tier.DefaultPolicy()

	tiers := &fakeTierClient{caps: map[uint]tier.Capability{
		1: {TierName: tier.Member, IsMember: true, DiscountPercent: 10},
		2: {TierName: tier.NonMember},
		3: {TierName: tier.VIPUnlimited, IsMember: true, PriorityBooking: true, DiscountPercent: 20},
	}}

	eventsDispatcher := events.NewDispatcher(events.NewLogEmitter(logger), logger)
	auditDispatcher := audit.NewDispatcher(noopAudit{}, logger)

	create := NewCreateBooking(repo, tiers, policy, clk, eventsDispatcher, auditDispatcher, logger)

	return &engine{
		repo:  repo,
		tiers: tiers,
		clock: clk,

		create:       create,
		cancel:       NewCancelBooking(repo, policy, clk, eventsDispatcher, auditDispatcher, logger),
		reschedule:   NewRescheduleBooking(create, policy, clk, auditDispatcher, logger),
		transition:   NewTransitionBooking(repo, clk, auditDispatcher, logger),
		payment:      NewPaymentCallback(repo, clk, eventsDispatcher, logger),
		availability: NewGetAvailability(repo, tiers, policy, clk, 7, 5),
	}
}

// seedSpa seeds one standard room, a 60-minute massage service, a
// two-seat afternoon slot and a qualified on-shift technician.
func seedSpa(repo *fakeRepo) {
	repo.rooms[1] = models.Room{
		ID: 1, Name: "Cedar Room", Type: models.RoomStandard,
		OpenTime: "09:00", CloseTime: "21:00", PriceMultiplier: 1,
	}
	repo.services[1] = models.Service{
		ID: 1, Name: "Swedish Massage", Category: "massage", DurationMin: 60,
		PriceNonMember: 120, PriceMember: 100,
		RoomType: models.RoomStandard, Active: true,
	}
	repo.slots[1] = &models.AvailabilitySlot{
		ID: 1, RoomID: 1,
		Date: testSlotDate, StartTime: testSlotStart, EndTime: testSlotEnd,
		MaxBookings: 2, PriceModifier: 1,
	}

	tuesday := int(testSlotDate.Weekday())
	repo.technicians = []models.Technician{
		{ID: 1, Name: "Ava", Specialties: "massage,wellness", Active: true},
	}
	repo.schedules[1] = []models.TechnicianSchedule{
		{ID: 1, TechnicianID: 1, Weekday: &tuesday, StartTime: "09:00", EndTime: "18:00", Active: true},
	}
}

func slotInput(memberID uint) CreateBookingInput {
	return CreateBookingInput{MemberID: memberID, ServiceID: 1, SlotID: 1}
}
