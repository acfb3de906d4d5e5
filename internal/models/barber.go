package models

import "time"

// Barber is a user opted into providing services. One profile per user.
type Barber struct {
	ID     uint `gorm:"primaryKey" json:"barber_id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
