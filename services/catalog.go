package services

import (
	ctx "context"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
)

// CatalogService manages categories and products. The public menu read path
// is cached in redis and invalidated on every write.
type CatalogService struct {
	context.DefaultService

	sqlSvc   SqlService
	redisSvc *RedisService
}

const CATALOG_SVC = "catalog_svc"

const (
	menuCacheKey = "catalog:menu"
	menuCacheTTL = 5 * time.Minute

	menuQueryTimeout = 5 * time.Second
)

func (svc CatalogService) Id() string {
	return CATALOG_SVC
}

func (svc *CatalogService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *CatalogService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// Menu returns active categories with their active products, cache-first.
// The DB fallback is bounded so a stalled storage layer surfaces as a timeout
// instead of hanging the public menu endpoint.
func (svc *CatalogService) Menu(c ctx.Context) ([]dto.MenuCategory, error) {
	var cached []dto.MenuCategory
	hit, err := svc.redisSvc.GetJSON(c, menuCacheKey, &cached)
	if err != nil {
		log.WithError(err).Warn("Menu cache read failed")
	}
	if hit {
		return cached, nil
	}

	menu, err := shared.WithTimeout(c, menuQueryTimeout, svc.menuFromDB)
	if err != nil {
		return nil, err
	}

	if err := svc.redisSvc.Set(c, menuCacheKey, menu, menuCacheTTL); err != nil {
		log.WithError(err).Warn("Menu cache write failed")
	}

	return menu, nil
}

func (svc *CatalogService) menuFromDB(c ctx.Context) ([]dto.MenuCategory, error) {
	var categories []model.Category
	err := svc.sqlSvc.Db().WithContext(c).
		Where("activo = ?", true).
		Order("orden ASC, nombre ASC").
		Find(&categories).Error
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	menu := make([]dto.MenuCategory, 0, len(categories))
	for _, cat := range categories {
		var products []model.Product
		err = svc.sqlSvc.Db().WithContext(c).
			Where("category_id = ? AND activo = ?", cat.ID, true).
			Order("destacado DESC, nombre ASC").
			Find(&products).Error
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		menu = append(menu, dto.MenuCategory{Category: cat, Products: products})
	}

	return menu, nil
}

func (svc *CatalogService) invalidateMenuCache() {
	c, cancel := ctx.WithTimeout(ctx.Background(), 2*time.Second)
	defer cancel()
	if err := svc.redisSvc.Delete(c, menuCacheKey); err != nil {
		log.WithError(err).Warn("Menu cache invalidation failed")
	}
}

func (svc *CatalogService) ListCategories(includeInactive bool) ([]model.Category, error) {
	q := svc.sqlSvc.Db().Order("orden ASC, nombre ASC")
	if !includeInactive {
		q = q.Where("activo = ?", true)
	}

	var categories []model.Category
	if err := q.Find(&categories).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return categories, nil
}

func (svc *CatalogService) GetCategory(id string) (*model.Category, error) {
	var category model.Category
	if err := svc.sqlSvc.Db().First(&category, "id = ?", id).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return &category, nil
}

func (svc *CatalogService) CreateCategory(req *dto.CreateCategoryRequest) (*model.Category, error) {
	category := model.Category{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Imagen:      req.Imagen,
		Orden:       req.Orden,
		Activo:      true,
	}

	if err := svc.sqlSvc.Db().Create(&category).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.invalidateMenuCache()
	return &category, nil
}

func (svc *CatalogService) UpdateCategory(id string, req *dto.UpdateCategoryRequest) (*model.Category, error) {
	category, err := svc.GetCategory(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Nombre != "" {
		updates["nombre"] = req.Nombre
	}
	if req.Descripcion != "" {
		updates["descripcion"] = req.Descripcion
	}
	if req.Imagen != "" {
		updates["imagen"] = req.Imagen
	}
	if req.Orden != nil {
		updates["orden"] = *req.Orden
	}
	if req.Activo != nil {
		updates["activo"] = *req.Activo
	}

	if len(updates) > 0 {
		if err := svc.sqlSvc.Db().Model(category).Updates(updates).Error; err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	svc.invalidateMenuCache()
	return category, nil
}

// DeleteCategory refuses to remove a category that still has products.
func (svc *CatalogService) DeleteCategory(id string) error {
	category, err := svc.GetCategory(id)
	if err != nil {
		return err
	}

	var productCount int64
	if err := svc.sqlSvc.Db().Model(&model.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if productCount > 0 {
		return shared.ErrConflict("La categoría tiene productos asociados")
	}

	if err := svc.sqlSvc.Db().Delete(category).Error; err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	svc.invalidateMenuCache()
	return nil
}

func (svc *CatalogService) ListProducts(f dto.ProductFilter) ([]model.Product, error) {
	q := svc.sqlSvc.Db().Preload("Category").Order("nombre ASC")

	if !f.IncludeInactive {
		q = q.Where("activo = ?", true)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.OnlyDestacados {
		q = q.Where("destacado = ?", true)
	}
	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(nombre) LIKE ? OR LOWER(descripcion) LIKE ?", term, term)
	}

	var products []model.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return products, nil
}

func (svc *CatalogService) GetProduct(id string) (*model.Product, error) {
	var product model.Product
	if err := svc.sqlSvc.Db().Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return &product, nil
}

func (svc *CatalogService) CreateProduct(req *dto.CreateProductRequest) (*model.Product, error) {
	if _, err := svc.GetCategory(req.CategoryID); err != nil {
		return nil, shared.ErrBadRequest("La categoría no existe")
	}

	product := model.Product{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Imagen:      req.Imagen,
		CategoryID:  req.CategoryID,
		Destacado:   req.Destacado,
		Activo:      true,
	}

	if err := svc.sqlSvc.Db().Create(&product).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.invalidateMenuCache()
	return &product, nil
}

func (svc *CatalogService) UpdateProduct(id string, req *dto.UpdateProductRequest) (*model.Product, error) {
	product, err := svc.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Nombre != "" {
		updates["nombre"] = req.Nombre
	}
	if req.Descripcion != "" {
		updates["descripcion"] = req.Descripcion
	}
	if req.Precio != nil {
		updates["precio"] = *req.Precio
	}
	if req.Imagen != "" {
		updates["imagen"] = req.Imagen
	}
	if req.CategoryID != "" {
		if _, err := svc.GetCategory(req.CategoryID); err != nil {
			return nil, shared.ErrBadRequest("La categoría no existe")
		}
		updates["category_id"] = req.CategoryID
	}
	if req.Activo != nil {
		updates["activo"] = *req.Activo
	}
	if req.Destacado != nil {
		updates["destacado"] = *req.Destacado
	}

	if len(updates) > 0 {
		if err := svc.sqlSvc.Db().Model(product).Updates(updates).Error; err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	svc.invalidateMenuCache()
	return product, nil
}

// DeleteProduct soft-disables instead of removing when the product appears
// on past orders, so order history keeps its references.
func (svc *CatalogService) DeleteProduct(id string) error {
	product, err := svc.GetProduct(id)
	if err != nil {
		return err
	}

	var orderItemCount int64
	if err := svc.sqlSvc.Db().Model(&model.OrderItem{}).Where("product_id = ?", id).Count(&orderItemCount).Error; err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	if orderItemCount > 0 {
		if err := svc.sqlSvc.Db().Model(product).Update("activo", false).Error; err != nil {
			return svc.sqlSvc.HandleError(err)
		}
	} else {
		if err := svc.sqlSvc.Db().Delete(product).Error; err != nil {
			return svc.sqlSvc.HandleError(err)
		}
	}

	svc.invalidateMenuCache()
	return nil
}
