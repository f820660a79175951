package model

import (
	"time"

	"gorm.io/datatypes"
)

type Order struct {
	ID          string `json:"id" gorm:"primaryKey;type:text;not null"`
	NumeroOrden string `json:"numero_orden" gorm:"uniqueIndex;size:20;not null"`
	UserID      string `json:"user_id" gorm:"not null;index"`
	User        *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Estado    string  `json:"estado" gorm:"size:20;default:PENDIENTE;not null;index"`
	Subtotal  float64 `json:"subtotal" gorm:"not null"`
	Impuestos float64 `json:"impuestos" gorm:"not null"`
	Total     float64 `json:"total" gorm:"not null"`

	MetodoPago       string         `json:"metodo_pago,omitempty" gorm:"size:30"`
	PaymentMeta      datatypes.JSON `json:"payment_meta,omitempty" gorm:"type:json"`
	Notas            string         `json:"notas,omitempty" gorm:"type:text"`
	DireccionEntrega string         `json:"direccion_entrega,omitempty" gorm:"size:255"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

type OrderItem struct {
	ID             string   `json:"id" gorm:"primaryKey;type:text;not null"`
	OrderID        string   `json:"order_id" gorm:"not null;index"`
	ProductID      string   `json:"product_id" gorm:"not null"`
	Product        *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Cantidad       int      `json:"cantidad" gorm:"not null"`
	PrecioUnitario float64  `json:"precio_unitario" gorm:"not null"`
	Subtotal       float64  `json:"subtotal" gorm:"not null"`
	Notas          string   `json:"notas,omitempty" gorm:"type:text"`
}
