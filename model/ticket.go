package model

import "time"

type Ticket struct {
	ID           string `json:"id" gorm:"primaryKey;type:text;not null"`
	NumeroTicket string `json:"numero_ticket" gorm:"uniqueIndex;size:20;not null"`
	UserID       string `json:"user_id" gorm:"not null;index"`
	User         *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Asunto      string `json:"asunto" gorm:"size:200;not null"`
	Descripcion string `json:"descripcion" gorm:"type:text;not null"`
	Categoria   string `json:"categoria" gorm:"size:40;default:general;not null"`
	Prioridad   string `json:"prioridad" gorm:"size:20;default:MEDIA;not null"`
	Estado      string `json:"estado" gorm:"size:20;default:ABIERTO;not null;index"`

	Respuesta       string     `json:"respuesta,omitempty" gorm:"type:text"`
	FechaResolucion *time.Time `json:"fecha_resolucion,omitempty"`
	Calificacion    *int       `json:"calificacion,omitempty"`

	Messages []ChatMessage `json:"messages,omitempty" gorm:"foreignKey:TicketID"`

	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

type ChatMessage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	TicketID  string    `json:"ticket_id" gorm:"not null;index"`
	UserID    string    `json:"user_id" gorm:"not null"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Mensaje   string    `json:"mensaje" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}
