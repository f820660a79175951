package seeders

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
)

// UserSeeder creates the default admin, staff and demo customer accounts.
type UserSeeder struct {
	db *gorm.DB
}

func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{db: db}
}

func (s *UserSeeder) SeedUsers() error {
	var count int64
	if err := s.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Users already exist, skipping user seeding")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []model.User{
		{
			ID:       uuid.Must(uuid.NewV7()).String(),
			Name:     "Admin Principal",
			Email:    "admin@fastbite.com",
			Password: string(hashed),
			Role:     shared.RoleAdmin,
			Telefono: "555-0001",
			Activo:   true,
		},
		{
			ID:       uuid.Must(uuid.NewV7()).String(),
			Name:     "Personal Cocina",
			Email:    "staff@fastbite.com",
			Password: string(hashed),
			Role:     shared.RoleStaff,
			Telefono: "555-0002",
			Activo:   true,
		},
		{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Name:      "Juan Pérez",
			Email:     "juan@email.com",
			Password:  string(hashed),
			Role:      shared.RoleCliente,
			Telefono:  "555-1001",
			Direccion: "Calle Principal 123",
			Activo:    true,
		},
		{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Name:      "María García",
			Email:     "maria@email.com",
			Password:  string(hashed),
			Role:      shared.RoleCliente,
			Telefono:  "555-1002",
			Direccion: "Avenida Central 456",
			Activo:    true,
		},
	}

	for _, user := range users {
		if err := s.db.Create(&user).Error; err != nil {
			return err
		}
	}

	log.Println("Created default users (password: password123)")
	return nil
}
