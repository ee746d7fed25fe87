package models

import "time"

// BookingAddon is owned exclusively by its Booking and is removed with it
// when a failed creation rolls back.
type BookingAddon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint `gorm:"index;not null" json:"booking_id"`

	Name       string  `gorm:"size:100;not null" json:"name"`
	Quantity   int     `gorm:"default:1" json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`

	CreatedAt time.Time `json:"created_at"`
}
