package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in dependency order.
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := NewConfigSeeder(s.db).SeedConfig(); err != nil {
		log.Printf("Config seeding failed: %v", err)
		return err
	}

	if err := NewUserSeeder(s.db).SeedUsers(); err != nil {
		log.Printf("User seeding failed: %v", err)
		return err
	}

	if err := NewCatalogSeeder(s.db).SeedCatalog(); err != nil {
		log.Printf("Catalog seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) SeedUsersOnly() error {
	return NewUserSeeder(s.db).SeedUsers()
}

func (s *MainSeeder) SeedCatalogOnly() error {
	return NewCatalogSeeder(s.db).SeedCatalog()
}

func (s *MainSeeder) SeedConfigOnly() error {
	return NewConfigSeeder(s.db).SeedConfig()
}
