package models

import "time"

// TimeSlot is a fixed interval within a schedule, reservable by exactly one
// active appointment at a time. (start, end) is unique per schedule.
type TimeSlot struct {
	ID         uint `gorm:"primaryKey" json:"slot_id"`
	ScheduleID uint `gorm:"not null;uniqueIndex:idx_slots_schedule_window" json:"schedule_id"`

	StartTime string `gorm:"size:5;not null;uniqueIndex:idx_slots_schedule_window" json:"start_time"`
	EndTime   string `gorm:"size:5;not null;uniqueIndex:idx_slots_schedule_window" json:"end_time"`

	IsAvailable bool `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
