package model

import (
	"time"

	"gorm.io/datatypes"
)

// RestaurantConfig is a singleton row; the config service creates it with
// defaults on first read.
type RestaurantConfig struct {
	ID             string         `json:"id" gorm:"primaryKey;type:text;not null"`
	RestaurantName string         `json:"restaurant_name" gorm:"size:100;not null"`
	Country        string         `json:"country" gorm:"size:60"`
	Currency       string         `json:"currency" gorm:"size:10;default:MXN"`
	TaxRate        float64        `json:"tax_rate" gorm:"default:0.10;not null"`
	Telefono       string         `json:"telefono,omitempty" gorm:"size:30"`
	Direccion      string         `json:"direccion,omitempty" gorm:"size:255"`
	Horario        string         `json:"horario,omitempty" gorm:"size:255"`
	Extras         datatypes.JSON `json:"extras,omitempty" gorm:"type:json"`
	CreatedAt      time.Time      `json:"created_at" gorm:"not null"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"not null"`
}
