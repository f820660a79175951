package dto

import "time"

type CreateTicketRequest struct {
	Asunto      string `json:"asunto" validate:"required,min=3,max=200"`
	Descripcion string `json:"descripcion" validate:"required,min=10"`
	Prioridad   string `json:"prioridad,omitempty" validate:"omitempty,oneof=BAJA MEDIA ALTA URGENTE"`
	Categoria   string `json:"categoria,omitempty" validate:"omitempty,max=40"`
}

func (r CreateTicketRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateTicketRequest struct {
	Estado    string `json:"estado,omitempty" validate:"omitempty,oneof=ABIERTO EN_PROCESO RESUELTO CERRADO"`
	Prioridad string `json:"prioridad,omitempty" validate:"omitempty,oneof=BAJA MEDIA ALTA URGENTE"`
	Categoria string `json:"categoria,omitempty" validate:"omitempty,max=40"`
	Respuesta string `json:"respuesta,omitempty"`
}

func (r UpdateTicketRequest) Validate() error {
	return validate.Struct(r)
}

type RateTicketRequest struct {
	Calificacion int `json:"calificacion" validate:"required,gte=1,lte=5"`
}

func (r RateTicketRequest) Validate() error {
	return validate.Struct(r)
}

type ChatMessageRequest struct {
	Mensaje string `json:"mensaje" validate:"required,min=1,max=2000"`
}

func (r ChatMessageRequest) Validate() error {
	return validate.Struct(r)
}

type ChatUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// ChatEventPayload is the wire payload published on the per-ticket channel.
type ChatEventPayload struct {
	ID        string    `json:"id"`
	Mensaje   string    `json:"mensaje"`
	CreatedAt time.Time `json:"createdAt"`
	User      ChatUser  `json:"user"`
}
