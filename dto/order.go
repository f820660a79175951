package dto

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Cantidad  int    `json:"cantidad" validate:"required,gt=0"`
	Notas     string `json:"notas,omitempty" validate:"omitempty,max=500"`
}

type CreateOrderRequest struct {
	Items            []OrderItemRequest     `json:"items" validate:"required,min=1,dive"`
	MetodoPago       string                 `json:"metodo_pago" validate:"required,oneof=EFECTIVO TARJETA TRANSFERENCIA"`
	PaymentMeta      map[string]interface{} `json:"payment_meta,omitempty"`
	Notas            string                 `json:"notas,omitempty" validate:"omitempty,max=500"`
	DireccionEntrega string                 `json:"direccion_entrega,omitempty" validate:"omitempty,max=255"`
}

func (r CreateOrderRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateOrderStatusRequest struct {
	Estado string `json:"estado" validate:"required,oneof=PENDIENTE PREPARANDO LISTO ENTREGADO CANCELADO"`
}

func (r UpdateOrderStatusRequest) Validate() error {
	return validate.Struct(r)
}
