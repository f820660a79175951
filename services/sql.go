package services

import (
	"github.com/fastbite-labs/fastbite-api/model"
	"gorm.io/gorm"
)

// SQL_SVC is the registry id shared by the storage services. Exactly one of
// PostgresService or SqliteService is registered per process; dependents look
// the storage up by this id and talk to it through SqlService.
const SQL_SVC = "sql_svc"

type SqlService interface {
	Db() *gorm.DB
	HandleError(err error) error
}

func migratedModels() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Ticket{},
		&model.ChatMessage{},
		&model.Notification{},
		&model.RestaurantConfig{},
	}
}
