package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"appointment_id"`

	UserID   uint `gorm:"not null;index" json:"user_id"`
	BarberID uint `gorm:"not null;index" json:"barber_id"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentTimeSlot links an appointment to the slots it holds.
type AppointmentTimeSlot struct {
	AppointmentID uint `gorm:"primaryKey" json:"appointment_id"`
	SlotID        uint `gorm:"primaryKey" json:"slot_id"`
}

// AppointmentService links an appointment to the services booked for it.
type AppointmentService struct {
	AppointmentID uint `gorm:"primaryKey" json:"appointment_id"`
	ServiceID     uint `gorm:"primaryKey" json:"service_id"`
}
