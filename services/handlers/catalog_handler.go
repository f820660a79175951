package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/shared"
)

type CatalogHandler struct {
	catalogSvc CatalogServiceInterface
	mediaSvc   MediaServiceInterface
}

func NewCatalogHandler(catalogSvc CatalogServiceInterface, mediaSvc MediaServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogSvc: catalogSvc,
		mediaSvc:   mediaSvc,
	}
}

// @Summary Public menu
// @Description Active categories with their active products
// @Tags catalog
// @Produce json
// @Success 200 {object} shared.Response
// @Router /api/v1/menu [get]
func (h *CatalogHandler) Menu(c *fiber.Ctx) error {
	menu, err := h.catalogSvc.Menu(c.Context())
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, menu)
}

// @Summary List categories
// @Tags catalog
// @Produce json
// @Param include_inactive query bool false "Include inactive categories (staff)"
// @Success 200 {object} shared.Response{data=[]model.Category}
// @Router /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("include_inactive") && isStaff(c)

	categories, err := h.catalogSvc.ListCategories(includeInactive)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, categories)
}

// @Summary Create category
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryRequest body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} shared.Response{data=model.Category}
// @Router /api/v1/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	category, err := h.catalogSvc.CreateCategory(&req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, category)
}

// @Summary Update category
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category id"
// @Param categoryRequest body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=model.Category}
// @Router /api/v1/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	category, err := h.catalogSvc.UpdateCategory(c.Params("id"), &req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, category)
}

// @Summary Delete category
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category id"
// @Success 200 {object} shared.Response
// @Router /api/v1/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.catalogSvc.DeleteCategory(c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseOK(c, nil)
}

// @Summary List products
// @Tags catalog
// @Produce json
// @Param category_id query string false "Filter by category"
// @Param search query string false "Name or description search"
// @Param destacados query bool false "Only featured products"
// @Success 200 {object} shared.Response{data=[]model.Product}
// @Router /api/v1/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	filter := dto.ProductFilter{
		CategoryID:      c.Query("category_id"),
		Search:          c.Query("search"),
		OnlyDestacados:  c.QueryBool("destacados"),
		IncludeInactive: c.QueryBool("include_inactive") && isStaff(c),
	}

	products, err := h.catalogSvc.ListProducts(filter)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, products)
}

// @Summary Get product
// @Tags catalog
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} shared.Response{data=model.Product}
// @Router /api/v1/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.catalogSvc.GetProduct(c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, product)
}

// @Summary Create product
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productRequest body dto.CreateProductRequest true "Product"
// @Success 201 {object} shared.Response{data=model.Product}
// @Router /api/v1/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	product, err := h.catalogSvc.CreateProduct(&req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, product)
}

// @Summary Update product
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product id"
// @Param productRequest body dto.UpdateProductRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=model.Product}
// @Router /api/v1/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	product, err := h.catalogSvc.UpdateProduct(c.Params("id"), &req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, product)
}

// @Summary Delete product
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product id"
// @Success 200 {object} shared.Response
// @Router /api/v1/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.catalogSvc.DeleteProduct(c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseOK(c, nil)
}

// @Summary Product image download link
// @Description Short-lived presigned URL for a stored image object
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param object query string true "Object name returned by the upload"
// @Success 200 {object} shared.Response
// @Router /api/v1/products/images/link [get]
func (h *CatalogHandler) ProductImageLink(c *fiber.Ctx) error {
	objectName := c.Query("object")
	if objectName == "" {
		return shared.ErrBadRequest("Se requiere el parámetro 'object'")
	}

	url, err := h.mediaSvc.PresignedURL(objectName, 15*time.Minute)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, fiber.Map{"url": url})
}

// @Summary Upload product image
// @Tags catalog
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file (jpg, png, webp)"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/products/images [post]
func (h *CatalogHandler) UploadProductImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return shared.ErrBadRequest("Se requiere el archivo 'image'")
	}

	resp, err := h.mediaSvc.UploadImage("products", fileHeader)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, resp)
}

func isStaff(c *fiber.Ctx) bool {
	role, _ := c.Locals(shared.UserRole).(string)
	return role == shared.RoleAdmin || role == shared.RoleStaff
}
