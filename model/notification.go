package model

import "time"

// Notification is a persisted per-user notification record. Rows are created
// by the dispatcher, mutated only by the owner marking them read, and deleted
// only by the owner.
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	UserID    string    `json:"user_id" gorm:"not null;index"`
	Type      string    `json:"type" gorm:"size:30;not null"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Link      string    `json:"link,omitempty" gorm:"size:512"`
	Read      bool      `json:"read" gorm:"default:false;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}
