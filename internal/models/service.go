package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"service_id"`

	Name        string  `gorm:"size:50;not null" json:"name"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Price       float64 `gorm:"not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
