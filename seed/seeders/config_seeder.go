package seeders

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fastbite-labs/fastbite-api/model"
)

// ConfigSeeder ensures the restaurant configuration singleton exists.
type ConfigSeeder struct {
	db *gorm.DB
}

func NewConfigSeeder(db *gorm.DB) *ConfigSeeder {
	return &ConfigSeeder{db: db}
}

func (s *ConfigSeeder) SeedConfig() error {
	var count int64
	if err := s.db.Model(&model.RestaurantConfig{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Restaurant config already exists, skipping config seeding")
		return nil
	}

	cfg := model.RestaurantConfig{
		ID:             uuid.Must(uuid.NewV7()).String(),
		RestaurantName: "FastBite",
		Country:        "México",
		Currency:       "MXN",
		TaxRate:        0.10,
		Telefono:       "555-0000",
		Direccion:      "Av. Insurgentes Sur 1000, CDMX",
		Horario:        "Lun-Dom 11:00-23:00",
	}
	if err := s.db.Create(&cfg).Error; err != nil {
		return err
	}

	log.Println("Created restaurant config")
	return nil
}
