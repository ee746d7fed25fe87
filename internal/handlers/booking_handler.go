package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BonisOleg/coresync-sub000/internal/dto"
	"github.com/BonisOleg/coresync-sub000/internal/httperr"
	"github.com/BonisOleg/coresync-sub000/internal/httpresp"
	"github.com/BonisOleg/coresync-sub000/internal/middleware"
	"github.com/BonisOleg/coresync-sub000/internal/models"
	"github.com/BonisOleg/coresync-sub000/internal/timezone"
	ucBooking "github.com/BonisOleg/coresync-sub000/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db         *gorm.DB
	create     *ucBooking.CreateBooking
	cancel     *ucBooking.CancelBooking
	reschedule *ucBooking.RescheduleBooking
	transition *ucBooking.TransitionBooking
}

func NewBookingHandler(
	db *gorm.DB,
	create *ucBooking.CreateBooking,
	cancel *ucBooking.CancelBooking,
	reschedule *ucBooking.RescheduleBooking,
	transition *ucBooking.TransitionBooking,
) *BookingHandler {
	return &BookingHandler{
		db:         db,
		create:     create,
		cancel:     cancel,
		reschedule: reschedule,
		transition: transition,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`

	SlotID uint   `json:"slot_id"`
	Date   string `json:"date"`
	Time   string `json:"time"`

	TechnicianID *uint `json:"technician_id"`

	Addons           []ucBooking.AddonInput `json:"addons"`
	ScenePreferences string                 `json:"scene_preferences"`
	Notes            string                 `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	memberID := c.MustGet(middleware.ContextMemberID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid booking payload")
		return
	}

	in, err := buildCreateInput(memberID, req)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "invalid date or time")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(201, b)
}

func buildCreateInput(memberID uint, req CreateBookingRequest) (ucBooking.CreateBookingInput, error) {
	in := ucBooking.CreateBookingInput{
		MemberID:         memberID,
		ServiceID:        req.ServiceID,
		SlotID:           req.SlotID,
		TechnicianID:     req.TechnicianID,
		Addons:           req.Addons,
		ScenePreferences: req.ScenePreferences,
		Notes:            req.Notes,
	}

	if req.SlotID == 0 && req.Date != "" {
		// Wall-clock input is interpreted in the spa's local timezone.
		loc := timezone.Location(timezone.DefaultTimezone)

		date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
		if err != nil {
			return in, err
		}
		in.Date = date

		if req.Time != "" {
			t, err := time.Parse("15:04", req.Time)
			if err != nil {
				return in, err
			}
			in.StartTime = time.Date(
				date.Year(), date.Month(), date.Day(),
				t.Hour(), t.Minute(), 0, 0, loc,
			)
		}
	}

	return in, nil
}

// ======================================================
// CANCEL / RESCHEDULE
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	memberID := c.MustGet(middleware.ContextMemberID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid booking id")
		return
	}

	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.cancel.Execute(c.Request.Context(), memberID, uint(id), req.Reason)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	memberID := c.MustGet(middleware.ContextMemberID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid booking id")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid booking payload")
		return
	}

	in, err := buildCreateInput(memberID, req)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "invalid date or time")
		return
	}

	b, err := h.reschedule.Execute(c.Request.Context(), memberID, uint(id), in)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(201, b)
}

// ======================================================
// STAFF TRANSITIONS
// ======================================================

func (h *BookingHandler) Begin(c *gin.Context) {
	h.staffTransition(c, h.transition.Begin)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.staffTransition(c, h.transition.Complete)
}

func (h *BookingHandler) NoShow(c *gin.Context) {
	h.staffTransition(c, h.transition.NoShow)
}

func (h *BookingHandler) staffTransition(
	c *gin.Context,
	fn func(ctx context.Context, id uint) (*models.Booking, error),
) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid booking id")
		return
	}

	b, err := fn(c.Request.Context(), uint(id))
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// LISTING
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	memberID := c.MustGet(middleware.ContextMemberID).(uint)

	var bookings []models.Booking
	if err := h.db.
		Preload("Service").
		Preload("Room").
		Where("member_id = ?", memberID).
		Order("start_time DESC").
		Limit(100).
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list bookings")
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:          b.ID,
			Reference:   b.Reference,
			ServiceName: b.Service.Name,
			RoomName:    b.Room.Name,
			Date:        b.Date,
			StartTime:   b.StartTime,
			EndTime:     b.EndTime,
			Status:      b.Status,
			FinalTotal:  b.FinalTotal,
		})
	}

	httpresp.List(c, out)
}

func (h *BookingHandler) GetByReference(c *gin.Context) {
	memberID := c.MustGet(middleware.ContextMemberID).(uint)

	var b models.Booking
	if err := h.db.
		Preload("Addons").
		Preload("Service").
		Preload("Room").
		Where("reference = ? AND member_id = ?", c.Param("reference"), memberID).
		First(&b).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "booking not found")
		return
	}

	httpresp.OK(c, b)
}
