package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// fakeRepo is an in-memory Repository. WithTx serializes transactions
// with a mutex and restores a snapshot on error, mimicking the
// serialization the row locks give the real implementation.
type fakeRepo struct {
	mu sync.Mutex

	rooms       map[uint]models.Room
	services    map[uint]models.Service
	slots       map[uint]*models.AvailabilitySlot
	bookings    map[uint]*models.Booking
	addons      []models.BookingAddon
	technicians []models.Technician
	schedules   map[uint][]models.TechnicianSchedule
	counters    map[string]int64
	concierge   []models.ConciergeRequest

	nextBookingID   uint
	nextConciergeID uint

	// Injected ListSchedules failures, per technician.
	scheduleErrs map[uint]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rooms:        map[uint]models.Room{},
		services:     map[uint]models.Service{},
		slots:        map[uint]*models.AvailabilitySlot{},
		bookings:     map[uint]*models.Booking{},
		schedules:    map[uint][]models.TechnicianSchedule{},
		counters:     map[string]int64{},
		scheduleErrs: map[uint]error{},
	}
}

type repoSnapshot struct {
	slots           map[uint]*models.AvailabilitySlot
	bookings        map[uint]*models.Booking
	addons          []models.BookingAddon
	counters        map[string]int64
	concierge       []models.ConciergeRequest
	nextBookingID   uint
	nextConciergeID uint
}

func (r *fakeRepo) snapshot() repoSnapshot {
	s := repoSnapshot{
		slots:           make(map[uint]*models.AvailabilitySlot, len(r.slots)),
		bookings:        make(map[uint]*models.Booking, len(r.bookings)),
		addons:          append([]models.BookingAddon(nil), r.addons...),
		counters:        make(map[string]int64, len(r.counters)),
		concierge:       append([]models.ConciergeRequest(nil), r.concierge...),
		nextBookingID:   r.nextBookingID,
		nextConciergeID: r.nextConciergeID,
	}
	for id, slot := range r.slots {
		cp := *slot
		s.slots[id] = &cp
	}
	for id, b := range r.bookings {
		cp := *b
		s.bookings[id] = &cp
	}
	for k, v := range r.counters {
		s.counters[k] = v
	}
	return s
}

func (r *fakeRepo) restore(s repoSnapshot) {
	r.slots = s.slots
	r.bookings = s.bookings
	r.addons = s.addons
	r.counters = s.counters
	r.concierge = s.concierge
	r.nextBookingID = s.nextBookingID
	r.nextConciergeID = s.nextConciergeID
}

func (r *fakeRepo) WithTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.snapshot()
	if err := fn(r); err != nil {
		r.restore(snap)
		return err
	}
	return nil
}

// -------- Catalog --------

func (r *fakeRepo) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, domain.NewNotFound("room_not_found", "room not found")
	}
	return &room, nil
}

func (r *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok || !svc.Active {
		return nil, domain.NewNotFound("service_not_found", "service not found")
	}
	return &svc, nil
}

// -------- Slots --------

func (r *fakeRepo) GetSlot(ctx context.Context, id uint) (*models.AvailabilitySlot, error) {
	slot, ok := r.slots[id]
	if !ok {
		return nil, domain.NewNotFound("slot_not_found", "availability slot not found")
	}
	cp := *slot
	cp.Room = r.rooms[cp.RoomID]
	return &cp, nil
}

func (r *fakeRepo) GetSlotForUpdate(ctx context.Context, id uint) (*models.AvailabilitySlot, error) {
	return r.GetSlot(ctx, id)
}

func (r *fakeRepo) FindOpenSlots(
	ctx context.Context,
	date time.Time,
	roomType models.RoomType,
) ([]models.AvailabilitySlot, error) {

	var out []models.AvailabilitySlot
	for _, slot := range r.slots {
		if !sameDay(slot.Date, date) || slot.Blocked || !slot.HasCapacity() {
			continue
		}
		room := r.rooms[slot.RoomID]
		if roomType != "" && room.Type != roomType {
			continue
		}
		cp := *slot
		cp.Room = room
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) IncrementSlotUsage(ctx context.Context, slotID uint) error {
	slot, ok := r.slots[slotID]
	if !ok || slot.Blocked || !slot.HasCapacity() {
		return domain.NewSlotUnavailable("slot_full", "slot has no remaining capacity")
	}
	slot.CurrentBookings++
	return nil
}

func (r *fakeRepo) DecrementSlotUsage(ctx context.Context, slotID uint) error {
	slot, ok := r.slots[slotID]
	if !ok {
		return nil
	}
	if slot.CurrentBookings > 0 {
		slot.CurrentBookings--
	}
	return nil
}

// -------- Bookings --------

func (r *fakeRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	for _, existing := range r.bookings {
		if existing.Reference == b.Reference {
			return domain.NewConcurrency("reference_collision", "booking reference already taken, retry the operation")
		}
	}
	r.nextBookingID++
	b.ID = r.nextBookingID
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) CreateAddons(ctx context.Context, addons []models.BookingAddon) error {
	r.addons = append(r.addons, addons...)
	return nil
}

func (r *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return domain.NewNotFound("booking_not_found", "booking not found")
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFound("booking_not_found", "booking not found")
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) GetBookingByReference(ctx context.Context, ref string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.Reference == ref {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.NewNotFound("booking_not_found", "booking not found")
}

func (r *fakeRepo) ListTechnicianBookings(
	ctx context.Context,
	technicianID uint,
	date time.Time,
	statuses []domain.Status,
	excludeBookingID uint,
) ([]models.Booking, error) {

	var out []models.Booking
	for _, b := range r.bookings {
		if b.TechnicianID == nil || *b.TechnicianID != technicianID {
			continue
		}
		if b.ID == excludeBookingID || !sameDay(b.StartTime, date) {
			continue
		}
		if !statusIn(domain.Status(b.Status), statuses) {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// -------- Technician directory --------

func (r *fakeRepo) ListActiveTechnicians(ctx context.Context) ([]models.Technician, error) {
	var out []models.Technician
	for _, t := range r.technicians {
		if t.Active {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) ListSchedules(ctx context.Context, technicianID uint) ([]models.TechnicianSchedule, error) {
	if err := r.scheduleErrs[technicianID]; err != nil {
		return nil, err
	}
	return r.schedules[technicianID], nil
}

func (r *fakeRepo) CountActiveBookings(ctx context.Context, technicianID uint, date time.Time) (int64, error) {
	var count int64
	for _, b := range r.bookings {
		if b.TechnicianID != nil && *b.TechnicianID == technicianID &&
			sameDay(b.StartTime, date) && domain.Status(b.Status).Active() {
			count++
		}
	}
	return count, nil
}

// -------- References --------

func (r *fakeRepo) NextReference(ctx context.Context, prefix string, year int) (int64, error) {
	key := fmt.Sprintf("%s-%d", prefix, year)
	r.counters[key]++
	return r.counters[key], nil
}

func (r *fakeRepo) CreateConciergeRequest(ctx context.Context, cr *models.ConciergeRequest) error {
	r.nextConciergeID++
	cr.ID = r.nextConciergeID
	r.concierge = append(r.concierge, *cr)
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func statusIn(s domain.Status, in []domain.Status) bool {
	for _, x := range in {
		if x == s {
			return true
		}
	}
	return false
}

var _ domain.Repository = (*fakeRepo)(nil)
