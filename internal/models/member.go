package models

import "time"

type Member struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	// Membership fields, owned by the membership collaborator.
	TierName        string  `gorm:"size:20;default:'non_member'" json:"tier_name"`
	PriorityBooking bool    `gorm:"default:false" json:"priority_booking"`
	DiscountPercent float64 `gorm:"default:0" json:"discount_percent"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
