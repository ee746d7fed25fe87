package models

import "time"

// ConciergeRequest covers both pickup orders (PO references) and concierge
// requests (CR references); both go through the same reference generator.
type ConciergeRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:20;uniqueIndex;not null" json:"reference"`

	MemberID uint `gorm:"index;not null" json:"member_id"`

	Kind    string `gorm:"size:20;not null" json:"kind"`
	Details string `gorm:"size:500" json:"details"`
	Status  string `gorm:"size:20;default:'open'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
