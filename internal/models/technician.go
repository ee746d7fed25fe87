package models

import "time"

type Technician struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	// Comma-separated specialty tags, parsed into the closed
	// technician.Specialty set at the domain boundary.
	Specialties string `gorm:"size:255" json:"specialties"`

	Active bool `gorm:"default:true" json:"active"`

	Schedules []TechnicianSchedule `json:"schedules"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TechnicianSchedule is either a recurring weekday window (Weekday set)
// or a one-off date window (Date set).
type TechnicianSchedule struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	TechnicianID uint `gorm:"index;not null" json:"technician_id"`

	Weekday *int       `json:"weekday"`
	Date    *time.Time `json:"date"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
