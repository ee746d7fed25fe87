package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BonisOleg/coresync-sub000/internal/httperr"
	"github.com/BonisOleg/coresync-sub000/internal/httpresp"
	"github.com/BonisOleg/coresync-sub000/internal/models"
)

// CatalogHandler serves the read-only service, room and technician
// directories the booking flow picks from.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	var services []models.Service
	q := h.db.WithContext(c.Request.Context()).Where("active = ?", true)
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("name").Find(&services).Error; err != nil {
		httperr.Internal(c, "list_services_failed", "could not list services")
		return
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) ListRooms(c *gin.Context) {
	var rooms []models.Room
	q := h.db.WithContext(c.Request.Context())
	if roomType := c.Query("type"); roomType != "" {
		q = q.Where("type = ?", roomType)
	}
	if err := q.Order("name").Find(&rooms).Error; err != nil {
		httperr.Internal(c, "list_rooms_failed", "could not list rooms")
		return
	}
	httpresp.List(c, rooms)
}

func (h *CatalogHandler) ListTechnicians(c *gin.Context) {
	var technicians []models.Technician
	err := h.db.WithContext(c.Request.Context()).
		Preload("Schedules", "active = ?", true).
		Where("active = ?", true).
		Order("name").
		Find(&technicians).Error
	if err != nil {
		httperr.Internal(c, "list_technicians_failed", "could not list technicians")
		return
	}
	httpresp.List(c, technicians)
}
