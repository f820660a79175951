package services

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
)

// newTestSqlService opens a throwaway in-memory database migrated with the
// full schema.
func newTestSqlService(t *testing.T) *SqliteService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(migratedModels()...); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return &SqliteService{db: db}
}

func createTestUser(t *testing.T, s *SqliteService, role string) *model.User {
	t.Helper()

	user := &model.User{
		ID:       uuid.Must(uuid.NewV7()).String(),
		Name:     "Juan Pérez",
		Email:    uuid.Must(uuid.NewV7()).String() + "@email.com",
		Password: "hashed",
		Role:     role,
		Activo:   true,
	}
	if err := s.Db().Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestProduct(t *testing.T, s *SqliteService, nombre string, precio float64, activo bool) *model.Product {
	t.Helper()

	category := &model.Category{
		ID:     uuid.Must(uuid.NewV7()).String(),
		Nombre: "Categoría " + uuid.Must(uuid.NewV7()).String(),
		Activo: true,
	}
	if err := s.Db().Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	product := &model.Product{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Nombre:     nombre,
		Precio:     precio,
		CategoryID: category.ID,
		Activo:     activo,
	}
	if err := s.Db().Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

func requireAppError(t *testing.T, err error, statusCode int) *shared.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected an error with status %d, got nil", statusCode)
	}
	appErr, ok := shared.GetAppError(err)
	if !ok {
		t.Fatalf("expected an AppError, got %T: %v", err, err)
	}
	if appErr.StatusCode != statusCode {
		t.Fatalf("expected status %d, got %d (%s)", statusCode, appErr.StatusCode, appErr.Message)
	}
	return appErr
}
