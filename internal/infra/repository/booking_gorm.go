package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB

	// Applied as SET LOCAL lock_timeout inside WithTx so contended row
	// locks fail fast as ConcurrencyError instead of queueing.
	lockTimeout time.Duration
}

func NewBookingGormRepository(db *gorm.DB, lockTimeout time.Duration) *BookingGormRepository {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}
	return &BookingGormRepository{db: db, lockTimeout: lockTimeout}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *BookingGormRepository) WithTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET LOCAL lock_timeout = ?", r.lockTimeout.Milliseconds()).Error; err != nil {
			return err
		}
		return fn(&BookingGormRepository{db: tx, lockTimeout: r.lockTimeout})
	})

	if isLockTimeout(err) {
		return domain.NewConcurrency("lock_timeout", "could not acquire lock, retry the operation")
	}
	return err
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetRoom(
	ctx context.Context,
	id uint,
) (*models.Room, error) {

	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, notFoundOr(err, "room_not_found", "room not found")
	}
	return &room, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = true", id).
		First(&svc).Error; err != nil {
		return nil, notFoundOr(err, "service_not_found", "service not found")
	}
	return &svc, nil
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *BookingGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.AvailabilitySlot, error) {

	var slot models.AvailabilitySlot
	if err := r.db.WithContext(ctx).
		Preload("Room").
		First(&slot, id).Error; err != nil {
		return nil, notFoundOr(err, "slot_not_found", "availability slot not found")
	}
	return &slot, nil
}

func (r *BookingGormRepository) GetSlotForUpdate(
	ctx context.Context,
	id uint,
) (*models.AvailabilitySlot, error) {

	var slot models.AvailabilitySlot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&slot, id).Error; err != nil {
		if isLockTimeout(err) {
			return nil, domain.NewConcurrency("lock_timeout", "slot is locked by another request")
		}
		return nil, notFoundOr(err, "slot_not_found", "availability slot not found")
	}
	return &slot, nil
}

func (r *BookingGormRepository) FindOpenSlots(
	ctx context.Context,
	date time.Time,
	roomType models.RoomType,
) ([]models.AvailabilitySlot, error) {

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var slots []models.AvailabilitySlot
	q := r.db.WithContext(ctx).
		Preload("Room").
		Joins("JOIN rooms ON rooms.id = availability_slots.room_id").
		Where(
			"availability_slots.date >= ? AND availability_slots.date < ? AND availability_slots.blocked = false AND availability_slots.current_bookings < availability_slots.max_bookings",
			dayStart, dayEnd,
		)
	if roomType != "" {
		q = q.Where("rooms.type = ?", roomType)
	}
	if err := q.Order("availability_slots.start_time ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *BookingGormRepository) IncrementSlotUsage(
	ctx context.Context,
	slotID uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.AvailabilitySlot{}).
		Where("id = ? AND current_bookings < max_bookings AND blocked = false", slotID).
		UpdateColumn("current_bookings", gorm.Expr("current_bookings + 1"))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewSlotUnavailable("slot_full", "slot has no remaining capacity")
	}
	return nil
}

func (r *BookingGormRepository) DecrementSlotUsage(
	ctx context.Context,
	slotID uint,
) error {

	// The floor guard keeps current_bookings from ever going below zero.
	res := r.db.WithContext(ctx).
		Model(&models.AvailabilitySlot{}).
		Where("id = ? AND current_bookings > 0", slotID).
		UpdateColumn("current_bookings", gorm.Expr("current_bookings - 1"))

	return res.Error
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.NewConcurrency("reference_collision", "booking reference already taken, retry the operation")
		}
		return err
	}
	return nil
}

func (r *BookingGormRepository) CreateAddons(
	ctx context.Context,
	addons []models.BookingAddon,
) error {

	if len(addons) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&addons).Error
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Addons").
		First(&b, id).Error; err != nil {
		return nil, notFoundOr(err, "booking_not_found", "booking not found")
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingByReference(
	ctx context.Context,
	ref string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Addons").
		Where("reference = ?", ref).
		First(&b).Error; err != nil {
		return nil, notFoundOr(err, "booking_not_found", "booking not found")
	}
	return &b, nil
}

func (r *BookingGormRepository) ListTechnicianBookings(
	ctx context.Context,
	technicianID uint,
	date time.Time,
	statuses []domain.Status,
	excludeBookingID uint,
) ([]models.Booking, error) {

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	q := r.db.WithContext(ctx).
		Where(
			"technician_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			technicianID, statusStrings(statuses), dayStart, dayEnd,
		)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var out []models.Booking
	if err := q.Order("start_time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Technician directory (read-only)
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveTechnicians(
	ctx context.Context,
) ([]models.Technician, error) {

	var techs []models.Technician
	if err := r.db.WithContext(ctx).
		Where("active = true").
		Order("id ASC").
		Find(&techs).Error; err != nil {
		return nil, err
	}
	return techs, nil
}

func (r *BookingGormRepository) ListSchedules(
	ctx context.Context,
	technicianID uint,
) ([]models.TechnicianSchedule, error) {

	var scs []models.TechnicianSchedule
	if err := r.db.WithContext(ctx).
		Where("technician_id = ? AND active = true", technicianID).
		Find(&scs).Error; err != nil {
		return nil, err
	}
	return scs, nil
}

func (r *BookingGormRepository) CountActiveBookings(
	ctx context.Context,
	technicianID uint,
	date time.Time,
) (int64, error) {

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"technician_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			technicianID, statusStrings(domain.ActiveStatuses), dayStart, dayEnd,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// References
// --------------------------------------------------

// NextReference locks the (prefix, year) counter row and advances it.
// The lock is held until the surrounding transaction commits, so two
// concurrent creations can never observe the same sequence.
func (r *BookingGormRepository) NextReference(
	ctx context.Context,
	prefix string,
	year int,
) (int64, error) {

	var counter models.BookingCounter
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("prefix = ? AND year = ?", prefix, year).
		First(&counter).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = models.BookingCounter{Prefix: prefix, Year: year, LastSeq: 1}
		if err := r.db.WithContext(ctx).Create(&counter).Error; err != nil {
			if isUniqueViolation(err) {
				// Another transaction created the row first; lock it and
				// advance normally.
				return r.NextReference(ctx, prefix, year)
			}
			return 0, err
		}
		return counter.LastSeq, nil
	}
	if err != nil {
		if isLockTimeout(err) {
			return 0, domain.NewConcurrency("lock_timeout", "reference counter is locked by another request")
		}
		return 0, err
	}

	counter.LastSeq++
	if err := r.db.WithContext(ctx).Save(&counter).Error; err != nil {
		return 0, err
	}
	return counter.LastSeq, nil
}

func (r *BookingGormRepository) CreateConciergeRequest(
	ctx context.Context,
	cr *models.ConciergeRequest,
) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

func notFoundOr(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFound(code, message)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "55P03"
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
