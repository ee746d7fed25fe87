package models

import "time"

// BookingCounter holds the last issued sequence per (prefix, year).
// The row is locked FOR UPDATE while a reference is issued.
type BookingCounter struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Prefix string `gorm:"size:5;not null;uniqueIndex:idx_counter_prefix_year" json:"prefix"`
	Year   int    `gorm:"not null;uniqueIndex:idx_counter_prefix_year" json:"year"`

	LastSeq int64 `gorm:"default:0" json:"last_seq"`

	UpdatedAt time.Time `json:"updated_at"`
}
