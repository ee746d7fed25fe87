package booking

import (
	"context"
	"time"

	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// Repository is the transactional storage contract of the booking
// engine. WithTx runs fn against a repository bound to one transaction;
// the *ForUpdate methods take row-level locks that live until that
// transaction commits or rolls back.
type Repository interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error

	// -------- Catalog --------
	GetRoom(ctx context.Context, id uint) (*models.Room, error)

	GetService(ctx context.Context, id uint) (*models.Service, error)

	// -------- Slots --------
	GetSlot(ctx context.Context, id uint) (*models.AvailabilitySlot, error)

	GetSlotForUpdate(ctx context.Context, id uint) (*models.AvailabilitySlot, error)

	FindOpenSlots(
		ctx context.Context,
		date time.Time,
		roomType models.RoomType,
	) ([]models.AvailabilitySlot, error)

	IncrementSlotUsage(ctx context.Context, slotID uint) error

	DecrementSlotUsage(ctx context.Context, slotID uint) error

	// -------- Bookings --------
	CreateBooking(ctx context.Context, b *models.Booking) error

	CreateAddons(ctx context.Context, addons []models.BookingAddon) error

	UpdateBooking(ctx context.Context, b *models.Booking) error

	GetBooking(ctx context.Context, id uint) (*models.Booking, error)

	GetBookingByReference(ctx context.Context, ref string) (*models.Booking, error)

	ListTechnicianBookings(
		ctx context.Context,
		technicianID uint,
		date time.Time,
		statuses []Status,
		excludeBookingID uint,
	) ([]models.Booking, error)

	// -------- Technician directory (read-only) --------
	ListActiveTechnicians(ctx context.Context) ([]models.Technician, error)

	ListSchedules(ctx context.Context, technicianID uint) ([]models.TechnicianSchedule, error)

	CountActiveBookings(ctx context.Context, technicianID uint, date time.Time) (int64, error)

	// -------- References --------
	NextReference(ctx context.Context, prefix string, year int) (int64, error)

	CreateConciergeRequest(ctx context.Context, cr *models.ConciergeRequest) error
}
