package services

import (
	"errors"
	"net/http"
	"os"

	"github.com/alphabatem/common/context"
	"github.com/fastbite-labs/fastbite-api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteService is the file-backed storage used for local development
// (DB_DRIVER=sqlite); it serves the same registry id as PostgresService.
type SqliteService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

func (ds SqliteService) Id() string {
	return SQL_SVC
}

func (ds SqliteService) Db() *gorm.DB {
	return ds.db
}

func (ds *SqliteService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DB_DATABASE")
	if ds.database == "" {
		ds.database = "fastbite.db"
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *SqliteService) Start() (err error) {
	ds.db, err = gorm.Open(sqlite.Open(ds.database), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return err
	}

	if err = ds.db.AutoMigrate(migratedModels()...); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqliteService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (ds *SqliteService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &shared.AppError{StatusCode: http.StatusNotFound, Message: "NOT_FOUND"}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &shared.AppError{StatusCode: http.StatusConflict, Message: "CONFLICT"}
	default:
		log.WithError(err).Warn("Database operation failed")
		return &shared.AppError{StatusCode: http.StatusInternalServerError, Message: "INTERNAL_ERROR"}
	}
}
