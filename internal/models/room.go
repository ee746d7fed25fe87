package models

import "time"

type RoomType string

const (
	RoomStandard RoomType = "standard"
	RoomPrivate  RoomType = "private"
	RoomShared   RoomType = "shared"
	RoomVIP      RoomType = "vip"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string   `gorm:"size:100;not null" json:"name"`
	Type     RoomType `gorm:"size:20;not null" json:"type"`
	Capacity int      `gorm:"default:1" json:"capacity"`

	// Operating window, local spa time ("15:04").
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`

	PriceMultiplier float64 `gorm:"default:1" json:"price_multiplier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
