package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50" json:"category"`
	DurationMin int    `json:"duration_min"`

	PriceNonMember float64 `json:"price_non_member"`
	PriceMember    float64 `json:"price_member"`

	RoomType RoomType `gorm:"size:20" json:"room_type"`
	Active   bool     `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PriceFor returns the tier-dependent base price of the service.
func (s *Service) PriceFor(isMember bool) float64 {
	if isMember {
		return s.PriceMember
	}
	return s.PriceNonMember
}
