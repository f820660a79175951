package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/services/handlers"
	"github.com/fastbite-labs/fastbite-api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc         *AuthService
	userSvc         *UserService
	catalogSvc      *CatalogService
	orderSvc        *OrderService
	ticketSvc       *TicketService
	chatSvc         *ChatService
	notificationSvc *NotificationService
	configSvc       *ConfigService
	mediaSvc        *MediaService
	securitySvc     *SecurityLogService
	rateLimitSvc    *RateLimitService
	monitoringSvc   *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.catalogSvc = svc.Service(CATALOG_SVC).(*CatalogService)
	svc.orderSvc = svc.Service(ORDER_SVC).(*OrderService)
	svc.ticketSvc = svc.Service(TICKET_SVC).(*TicketService)
	svc.chatSvc = svc.Service(CHAT_SVC).(*ChatService)
	svc.notificationSvc = svc.Service(NOTIFICATION_SVC).(*NotificationService)
	svc.configSvc = svc.Service(CONFIG_SVC).(*ConfigService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.securitySvc = svc.Service(SECURITY_LOG_SVC).(*SecurityLogService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	app := fiber.New(fiber.Config{
		AppName:      "FastBite API",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("CORS_ORIGINS"),
		AllowCredentials: os.Getenv("CORS_ORIGINS") != "",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(svc.securityHeaders)
	app.Use(MonitoringMiddleware(svc.monitoringSvc))
	app.Use(svc.inspectInput)

	svc.registerRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	svc.server = app

	log.WithField("port", svc.port).Info("HTTP server starting")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc, svc.userSvc)
	catalogHandler := handlers.NewCatalogHandler(svc.catalogSvc, svc.mediaSvc)
	orderHandler := handlers.NewOrderHandler(svc.orderSvc)
	ticketHandler := handlers.NewTicketHandler(svc.ticketSvc, svc.chatSvc)
	notificationHandler := handlers.NewNotificationHandler(svc.notificationSvc)
	adminHandler := handlers.NewAdminHandler(svc.userSvc, svc.configSvc, svc.ticketSvc, svc.securitySvc, svc.rateLimitSvc)

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	v1 := app.Group("/api/v1", svc.rateLimitSvc.Limit(APIRateLimit))

	v1.Get("/ping", svc.ping)

	// Public
	auth := v1.Group("/auth", svc.rateLimitSvc.Limit(AuthRateLimit))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	v1.Get("/menu", catalogHandler.Menu)
	v1.Get("/categories", catalogHandler.ListCategories)
	v1.Get("/products", svc.rateLimitSvc.Limit(SearchRateLimit), catalogHandler.ListProducts)
	v1.Get("/products/:id", catalogHandler.GetProduct)
	v1.Get("/config", adminHandler.GetConfig)

	// Authenticated
	authed := v1.Group("", svc.authSvc.RequiredAuth())

	authed.Get("/auth/me", authHandler.Me)
	authed.Put("/auth/me", authHandler.UpdateProfile)
	authed.Post("/auth/change-password", authHandler.ChangePassword)

	authed.Post("/orders", svc.rateLimitSvc.UserLimit(CreateRateLimit), orderHandler.Create)
	authed.Get("/orders", orderHandler.List)
	authed.Get("/orders/:id", orderHandler.Get)
	authed.Post("/orders/:id/cancel", orderHandler.Cancel)

	authed.Post("/tickets", svc.rateLimitSvc.UserLimit(CreateRateLimit), ticketHandler.Create)
	authed.Get("/tickets", ticketHandler.List)
	authed.Get("/tickets/:id", ticketHandler.Get)
	authed.Post("/tickets/:id/rate", ticketHandler.Rate)
	authed.Post("/tickets/:id/close", ticketHandler.Close)
	authed.Get("/tickets/:id/messages", ticketHandler.Messages)
	authed.Post("/tickets/:id/messages", svc.rateLimitSvc.UserLimit(CreateRateLimit), ticketHandler.SendMessage)

	authed.Get("/notifications", notificationHandler.List)
	authed.Put("/notifications", notificationHandler.MarkAllRead)
	authed.Put("/notifications/:id", notificationHandler.MarkRead)
	authed.Delete("/notifications/:id", notificationHandler.Delete)

	// Staff
	staff := v1.Group("/admin", svc.authSvc.RequiredAuth(), svc.authSvc.RequireRole(shared.RoleAdmin, shared.RoleStaff))

	staff.Get("/orders", orderHandler.ListAll)
	staff.Put("/orders/:id/status", orderHandler.UpdateStatus)

	staff.Get("/tickets", ticketHandler.ListAll)
	staff.Get("/tickets/stats", adminHandler.TicketStats)
	staff.Put("/tickets/:id", ticketHandler.Update)

	staff.Post("/notifications", notificationHandler.Create)
	staff.Post("/notifications/bulk", notificationHandler.CreateBulk)

	// Catalog management is staff territory too
	catalog := v1.Group("", svc.authSvc.RequiredAuth(), svc.authSvc.RequireRole(shared.RoleAdmin, shared.RoleStaff))
	catalog.Post("/categories", catalogHandler.CreateCategory)
	catalog.Put("/categories/:id", catalogHandler.UpdateCategory)
	catalog.Delete("/categories/:id", catalogHandler.DeleteCategory)
	catalog.Post("/products", catalogHandler.CreateProduct)
	catalog.Put("/products/:id", catalogHandler.UpdateProduct)
	catalog.Delete("/products/:id", catalogHandler.DeleteProduct)
	catalog.Post("/products/images", svc.rateLimitSvc.UserLimit(UploadRateLimit), catalogHandler.UploadProductImage)
	catalog.Get("/products/images/link", catalogHandler.ProductImageLink)

	// Admin only
	admin := v1.Group("/admin", svc.authSvc.RequiredAuth(), svc.authSvc.RequireRole(shared.RoleAdmin))

	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)

	admin.Delete("/tickets/:id", ticketHandler.Delete)

	admin.Put("/config", adminHandler.UpdateConfig)

	admin.Get("/security/events", adminHandler.SecurityEvents)
	admin.Delete("/security/events", adminHandler.ClearSecurityEvents)
	admin.Get("/rate-limits", adminHandler.RateLimitStats)
	admin.Delete("/rate-limits/:identifier", adminHandler.ResetRateLimit)
}

// @Summary Ping
// @Description Health check
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseOK(c, "pong")
}

func (svc *HttpService) securityHeaders(c *fiber.Ctx) error {
	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("X-XSS-Protection", "1; mode=block")
	c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
	return c.Next()
}

// inspectInput scans query parameters for injection patterns before any
// handler runs. Body inspection is left to the validators since parsed
// fields get sanitized per-type.
func (svc *HttpService) inspectInput(c *fiber.Ctx) error {
	raw := string(c.Request().URI().QueryString())
	if raw == "" {
		return c.Next()
	}

	if malicious, reasons := shared.DetectMaliciousInput(raw); malicious {
		userID, _ := c.Locals(shared.UserID).(string)
		svc.securitySvc.LogMaliciousInput(userID, raw, reasons, c.Path(), getClientIP(c))
		return shared.ResponseBadRequest(c, "Entrada no permitida")
	}

	return c.Next()
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	if errors.Is(err, shared.ErrOperationTimeout) {
		return shared.ResponseJSON(c, fiber.StatusGatewayTimeout, "Operation timed out", nil)
	}

	// Body parser failures surface as generic errors; treat malformed
	// payloads as client mistakes.
	if strings.Contains(err.Error(), "unexpected end of JSON") || strings.Contains(err.Error(), "invalid character") {
		return shared.ResponseBadRequest(c, "JSON inválido")
	}

	log.WithError(err).WithFields(log.Fields{
		"path":   c.Path(),
		"method": c.Method(),
	}).Error("Unhandled request error")

	userID, _ := c.Locals(shared.UserID).(string)
	svc.securitySvc.Log(shared.EventAPIError, shared.LevelError, err.Error(), &dto.SecurityEventMeta{
		UserID:    userID,
		IPAddress: getClientIP(c),
		Endpoint:  c.Path(),
		Method:    c.Method(),
	})

	return shared.ResponseInternalError(c, err)
}
