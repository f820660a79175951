package dto

type UpdateProfileRequest struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Telefono  string `json:"telefono,omitempty" validate:"omitempty,min=10,max=20"`
	Direccion string `json:"direccion,omitempty" validate:"omitempty,max=255"`
}

func (r UpdateProfileRequest) Validate() error {
	return validate.Struct(r)
}

type AdminCreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
	Role     string `json:"role" validate:"required,oneof=ADMIN STAFF CLIENTE"`
	Telefono string `json:"telefono,omitempty" validate:"omitempty,min=10,max=20"`
}

func (r AdminCreateUserRequest) Validate() error {
	return validate.Struct(r)
}

type AdminUpdateUserRequest struct {
	Name   string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Role   string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN STAFF CLIENTE"`
	Activo *bool  `json:"activo,omitempty"`
}

func (r AdminUpdateUserRequest) Validate() error {
	return validate.Struct(r)
}
