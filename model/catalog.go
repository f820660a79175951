package model

import "time"

type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Nombre      string    `json:"nombre" gorm:"uniqueIndex;size:100;not null"`
	Descripcion string    `json:"descripcion,omitempty" gorm:"type:text"`
	Imagen      string    `json:"imagen,omitempty" gorm:"size:512"`
	Activo      bool      `json:"activo" gorm:"default:true;not null"`
	Orden       int       `json:"orden" gorm:"default:0;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`
}

type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Nombre      string    `json:"nombre" gorm:"size:150;not null;index"`
	Descripcion string    `json:"descripcion,omitempty" gorm:"type:text"`
	Precio      float64   `json:"precio" gorm:"not null"`
	Imagen      string    `json:"imagen,omitempty" gorm:"size:512"`
	CategoryID  string    `json:"category_id" gorm:"not null;index"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Activo      bool      `json:"activo" gorm:"default:true;not null"`
	Destacado   bool      `json:"destacado" gorm:"default:false;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`
}
