package models

import "time"

// Schedule is a barber's day container. Slots hang off it; the pair
// (barber, date) is unique.
type Schedule struct {
	ID       uint   `gorm:"primaryKey" json:"schedule_id"`
	BarberID uint   `gorm:"not null;uniqueIndex:idx_schedules_barber_date" json:"barber_id"`
	Date     string `gorm:"size:10;not null;uniqueIndex:idx_schedules_barber_date" json:"date"`

	IsWorking bool `gorm:"default:true" json:"is_working"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
