package dto

type UpdateConfigRequest struct {
	RestaurantName string                 `json:"restaurant_name,omitempty" validate:"omitempty,min=2,max=100"`
	Country        string                 `json:"country,omitempty" validate:"omitempty,max=60"`
	Currency       string                 `json:"currency,omitempty" validate:"omitempty,max=10"`
	TaxRate        *float64               `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
	Telefono       string                 `json:"telefono,omitempty" validate:"omitempty,max=30"`
	Direccion      string                 `json:"direccion,omitempty" validate:"omitempty,max=255"`
	Horario        string                 `json:"horario,omitempty" validate:"omitempty,max=255"`
	Extras         map[string]interface{} `json:"extras,omitempty"`
}

func (r UpdateConfigRequest) Validate() error {
	return validate.Struct(r)
}
