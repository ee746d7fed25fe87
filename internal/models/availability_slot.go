package models

import "time"

type AvailabilitySlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID uint `gorm:"index;not null" json:"room_id"`
	Room   Room `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"room"`

	Date      time.Time `gorm:"index;not null" json:"date"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	MaxBookings     int `gorm:"default:1" json:"max_bookings"`
	CurrentBookings int `gorm:"default:0" json:"current_bookings"`

	// Tier gating: before these instants the slot is closed to
	// non-members / non-VIP respectively.
	MemberOnlyUntil time.Time  `json:"member_only_until"`
	VIPOnlyUntil    *time.Time `json:"vip_only_until"`

	PriceModifier float64 `gorm:"default:1" json:"price_modifier"`

	Blocked       bool   `gorm:"default:false" json:"blocked"`
	BlockedReason string `gorm:"size:255" json:"blocked_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasCapacity reports whether another booking still fits in the slot.
func (s *AvailabilitySlot) HasCapacity() bool {
	return s.CurrentBookings < s.MaxBookings
}
