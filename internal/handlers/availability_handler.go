package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BonisOleg/coresync-sub000/internal/httperr"
	"github.com/BonisOleg/coresync-sub000/internal/httpresp"
	"github.com/BonisOleg/coresync-sub000/internal/middleware"
	"github.com/BonisOleg/coresync-sub000/internal/timezone"
	ucBooking "github.com/BonisOleg/coresync-sub000/internal/usecase/booking"
)

type AvailabilityHandler struct {
	availability *ucBooking.GetAvailability
}

func NewAvailabilityHandler(availability *ucBooking.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// List returns the slots the caller's tier can book on ?date for
// ?service_id, each with its quoted price.
func (h *AvailabilityHandler) List(c *gin.Context) {
	memberID := c.MustGet(middleware.ContextMemberID).(uint)

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "invalid service id")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), timezone.Location(timezone.DefaultTimezone))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "invalid date")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), memberID, uint(serviceID), date)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.List(c, slots)
}

// Alternatives suggests open slots over the following days, for use
// after a slot_unavailable rejection.
func (h *AvailabilityHandler) Alternatives(c *gin.Context) {
	memberID := c.MustGet(middleware.ContextMemberID).(uint)

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "invalid service id")
		return
	}

	from, err := time.ParseInLocation("2006-01-02", c.Query("from"), timezone.Location(timezone.DefaultTimezone))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "invalid date")
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	slots, err := h.availability.Alternatives(c.Request.Context(), memberID, uint(serviceID), from, days, limit)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.List(c, slots)
}
