package handlers

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/model"
)

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest, ipAddress string) (*model.User, error)
	Login(req *dto.LoginRequest, ipAddress string) (*dto.LoginResponse, error)
	ForgotPassword(req *dto.ForgotPasswordRequest, ipAddress string) error
	ResetPassword(req *dto.ResetPasswordRequest) error
	ChangePassword(userID string, req *dto.ChangePasswordRequest) error
	Me(userID string) (*model.User, error)
}

type UserServiceInterface interface {
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*model.User, error)
	List(role string, limit int) ([]model.User, error)
	AdminCreate(adminID string, req *dto.AdminCreateUserRequest) (*model.User, error)
	AdminUpdate(adminID, userID string, req *dto.AdminUpdateUserRequest) (*model.User, error)
	AdminDelete(adminID, userID string) error
}

type CatalogServiceInterface interface {
	Menu(ctx context.Context) ([]dto.MenuCategory, error)
	ListCategories(includeInactive bool) ([]model.Category, error)
	GetCategory(id string) (*model.Category, error)
	CreateCategory(req *dto.CreateCategoryRequest) (*model.Category, error)
	UpdateCategory(id string, req *dto.UpdateCategoryRequest) (*model.Category, error)
	DeleteCategory(id string) error
	ListProducts(f dto.ProductFilter) ([]model.Product, error)
	GetProduct(id string) (*model.Product, error)
	CreateProduct(req *dto.CreateProductRequest) (*model.Product, error)
	UpdateProduct(id string, req *dto.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(id string) error
}

type OrderServiceInterface interface {
	Create(userID string, req *dto.CreateOrderRequest) (*model.Order, error)
	List(userID, estado string, limit int) ([]model.Order, error)
	Get(id string) (*model.Order, error)
	GetOwned(id, userID string) (*model.Order, error)
	UpdateStatus(id string, req *dto.UpdateOrderStatusRequest) (*model.Order, error)
	Cancel(id, userID string) (*model.Order, error)
}

type TicketServiceInterface interface {
	Create(userID string, req *dto.CreateTicketRequest) (*model.Ticket, error)
	List(userID, estado, prioridad string, limit int) ([]model.Ticket, error)
	Get(id string) (*model.Ticket, error)
	GetOwned(id, userID string) (*model.Ticket, error)
	Update(id string, req *dto.UpdateTicketRequest) (*model.Ticket, error)
	Rate(id, userID string, req *dto.RateTicketRequest) (*model.Ticket, error)
	Close(id, userID string) (*model.Ticket, error)
	Delete(id string) error
	Stats() (map[string]int64, error)
}

type ChatServiceInterface interface {
	Send(ticketID, userID, role string, req *dto.ChatMessageRequest) (*model.ChatMessage, error)
	Messages(ticketID, userID, role string) ([]model.ChatMessage, error)
}

type NotificationServiceInterface interface {
	Create(userID, notificationType, title, message, link string) (*model.Notification, error)
	CreateBulk(userIDs []string, notificationType, title, message, link string) (int, error)
	List(userID string, unreadOnly bool, limit int) (*dto.NotificationListResponse, error)
	MarkRead(notificationID, userID string) (*model.Notification, error)
	MarkAllRead(userID string) error
	Delete(notificationID, userID string) error
}

type ConfigServiceInterface interface {
	Get() (*model.RestaurantConfig, error)
	Update(req *dto.UpdateConfigRequest) (*model.RestaurantConfig, error)
}

type MediaServiceInterface interface {
	UploadImage(folder string, fileHeader *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	PresignedURL(objectName string, expiry time.Duration) (string, error)
}

type SecurityLogServiceInterface interface {
	RecentEvents(limit int) []dto.SecurityEvent
	EventsByType(eventType string) []dto.SecurityEvent
	EventsByUser(userID string) []dto.SecurityEvent
	CriticalEvents() []dto.SecurityEvent
	Clear()
}

type RateLimitServiceInterface interface {
	Stats() dto.RateLimitStats
	Reset(identifier string)
}
