package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, users, catalog, config")
		dbPath   = flag.String("db", "", "SQLite database path (overrides DB_DATABASE env var)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := openDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Ticket{},
		&model.ChatMessage{},
		&model.Notification{},
		&model.RestaurantConfig{},
	); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		err = mainSeeder.SeedAll()
	case "users":
		err = mainSeeder.SeedUsersOnly()
	case "catalog":
		err = mainSeeder.SeedCatalogOnly()
	case "config":
		err = mainSeeder.SeedConfigOnly()
	default:
		log.Fatalf("Unknown seed type: %s", *seedType)
	}

	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding completed")
}

func openDatabase(sqlitePath string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Info)}

	if os.Getenv("DB_DRIVER") == "postgres" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			envOr("DB_HOST", "localhost"),
			envOr("DB_PORT", "5432"),
			envOr("DB_USERNAME", "postgres"),
			os.Getenv("DB_PASSWORD"),
			envOr("DB_DATABASE", "fastbite"),
			envOr("DB_SSLMODE", "disable"),
		)
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	path := sqlitePath
	if path == "" {
		path = envOr("DB_DATABASE", "fastbite.db")
	}
	return gorm.Open(sqlite.Open(path), cfg)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func showHelp() {
	fmt.Println(`FastBite database seeder

Usage:
  seed [flags]

Flags:
  -type string   Type of seeding: all, users, catalog, config (default "all")
  -db string     SQLite database path (overrides DB_DATABASE env var)
  -help          Show this help message

Environment:
  DB_DRIVER      "sqlite" (default) or "postgres"
  DB_DATABASE    database name / sqlite file path`)
}
