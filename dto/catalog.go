package dto

import "github.com/fastbite-labs/fastbite-api/model"

type CreateCategoryRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=2,max=100"`
	Descripcion string `json:"descripcion,omitempty"`
	Imagen      string `json:"imagen,omitempty" validate:"omitempty,url"`
	Orden       int    `json:"orden,omitempty"`
}

func (r CreateCategoryRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateCategoryRequest struct {
	Nombre      string `json:"nombre,omitempty" validate:"omitempty,min=2,max=100"`
	Descripcion string `json:"descripcion,omitempty"`
	Imagen      string `json:"imagen,omitempty" validate:"omitempty,url"`
	Orden       *int   `json:"orden,omitempty"`
	Activo      *bool  `json:"activo,omitempty"`
}

func (r UpdateCategoryRequest) Validate() error {
	return validate.Struct(r)
}

type CreateProductRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=150"`
	Descripcion string  `json:"descripcion,omitempty"`
	Precio      float64 `json:"precio" validate:"required,gt=0"`
	Imagen      string  `json:"imagen,omitempty" validate:"omitempty,url"`
	CategoryID  string  `json:"category_id" validate:"required"`
	Destacado   bool    `json:"destacado,omitempty"`
}

func (r CreateProductRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateProductRequest struct {
	Nombre      string   `json:"nombre,omitempty" validate:"omitempty,min=2,max=150"`
	Descripcion string   `json:"descripcion,omitempty"`
	Precio      *float64 `json:"precio,omitempty" validate:"omitempty,gt=0"`
	Imagen      string   `json:"imagen,omitempty" validate:"omitempty,url"`
	CategoryID  string   `json:"category_id,omitempty"`
	Activo      *bool    `json:"activo,omitempty"`
	Destacado   *bool    `json:"destacado,omitempty"`
}

func (r UpdateProductRequest) Validate() error {
	return validate.Struct(r)
}

// MenuCategory is a category with its active products, as served on the
// public menu.
type MenuCategory struct {
	model.Category
	Products []model.Product `json:"products"`
}

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID      string
	Search          string
	OnlyDestacados  bool
	IncludeInactive bool
}

type MediaUploadResponse struct {
	URL        string `json:"url"`
	ObjectName string `json:"object_name"`
	Size       int64  `json:"size"`
}
