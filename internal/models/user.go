package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"user_id"`

	FirstName   string `gorm:"size:50;not null" json:"first_name"`
	LastName    string `gorm:"size:50;not null" json:"last_name"`
	Email       string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PhoneNumber string `gorm:"size:10;uniqueIndex;not null" json:"phone_number"`
	IsAdmin     bool   `gorm:"default:false" json:"is_admin"`

	// Account id on the identity provider side. Credentials never live here.
	ExternalID string `gorm:"size:36;uniqueIndex" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
