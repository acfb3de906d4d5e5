package models

import "time"

// Thread is a two-party conversation between users.
type Thread struct {
	ID uint `gorm:"primaryKey" json:"thread_id"`

	SendingUserID   uint `gorm:"not null;index" json:"sending_user_id"`
	ReceivingUserID uint `gorm:"not null;index" json:"receiving_user_id"`

	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID       uint `gorm:"primaryKey" json:"message_id"`
	ThreadID uint `gorm:"not null;index" json:"thread_id"`

	Active bool   `gorm:"default:true" json:"active"`
	Text   string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `json:"created_at"`
}
