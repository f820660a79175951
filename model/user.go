package model

import "time"

type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:text;not null"`
	Name      string `json:"name" gorm:"size:100;not null"`
	Email     string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password  string `json:"-" gorm:"not null"`
	Role      string `json:"role" gorm:"size:20;default:CLIENTE;not null"`
	Telefono  string `json:"telefono,omitempty" gorm:"size:30"`
	Direccion string `json:"direccion,omitempty" gorm:"size:255"`
	Activo    bool   `json:"activo" gorm:"default:true;not null"`

	ResetToken       string     `json:"-" gorm:"size:64;index"`
	ResetTokenExpiry *time.Time `json:"-"`

	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"not null"`
}
