package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:20;uniqueIndex;not null" json:"reference"`

	MemberID uint   `gorm:"index;not null" json:"member_id"`
	Member   Member `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"member"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	RoomID uint `json:"room_id"`
	Room   Room `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"room"`

	SlotID uint             `gorm:"index;not null" json:"slot_id"`
	Slot   AvailabilitySlot `gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"slot"`

	Date        time.Time `gorm:"index" json:"date"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`

	Status string `gorm:"size:20;index;default:'pending'" json:"status"`

	// Tier snapshot, captured at creation and immutable afterwards even
	// if the member's live tier changes.
	TierName            string  `gorm:"size:20" json:"tier_name"`
	TierIsMember        bool    `json:"tier_is_member"`
	TierPriorityBooking bool    `json:"tier_priority_booking"`
	TierDiscountPercent float64 `json:"tier_discount_percent"`

	TechnicianID    *uint       `gorm:"index" json:"technician_id"`
	Technician      *Technician `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"technician"`
	NeedsAssignment bool        `gorm:"default:false" json:"needs_assignment"`

	BasePrice       float64 `json:"base_price"`
	AddonsTotal     float64 `json:"addons_total"`
	DiscountApplied float64 `json:"discount_applied"`
	FinalTotal      float64 `json:"final_total"`

	// Owned by the payment collaborator.
	PaymentStatus string `gorm:"size:20;default:'unpaid'" json:"payment_status"`

	ScenePreferences string `gorm:"size:255" json:"scene_preferences"`
	Notes            string `gorm:"size:255" json:"notes"`

	CancelledAt        *time.Time `json:"cancelled_at"`
	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`
	CompletedAt        *time.Time `json:"completed_at"`

	Addons []BookingAddon `json:"addons"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
