package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/shared"
)

// AdminHandler is the back-office surface: user accounts, restaurant
// configuration, the security log and rate limiter introspection.
type AdminHandler struct {
	userSvc      UserServiceInterface
	configSvc    ConfigServiceInterface
	ticketSvc    TicketServiceInterface
	securitySvc  SecurityLogServiceInterface
	rateLimitSvc RateLimitServiceInterface
}

func NewAdminHandler(userSvc UserServiceInterface, configSvc ConfigServiceInterface, ticketSvc TicketServiceInterface, securitySvc SecurityLogServiceInterface, rateLimitSvc RateLimitServiceInterface) *AdminHandler {
	return &AdminHandler{
		userSvc:      userSvc,
		configSvc:    configSvc,
		ticketSvc:    ticketSvc,
		securitySvc:  securitySvc,
		rateLimitSvc: rateLimitSvc,
	}
}

// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Param limit query int false "Max results (default 100)"
// @Success 200 {object} shared.Response{data=[]model.User}
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userSvc.List(c.Query("role"), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, users)
}

// @Summary Create user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userRequest body dto.AdminCreateUserRequest true "Account details"
// @Success 201 {object} shared.Response{data=model.User}
// @Router /api/v1/admin/users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.AdminCreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	adminID := c.Locals(shared.UserID).(string)
	user, err := h.userSvc.AdminCreate(adminID, &req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, user)
}

// @Summary Update user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Param userRequest body dto.AdminUpdateUserRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=model.User}
// @Router /api/v1/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var req dto.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	adminID := c.Locals(shared.UserID).(string)
	user, err := h.userSvc.AdminUpdate(adminID, c.Params("id"), &req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, user)
}

// @Summary Delete user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	adminID := c.Locals(shared.UserID).(string)

	if err := h.userSvc.AdminDelete(adminID, c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseOK(c, nil)
}

// @Summary Restaurant configuration
// @Tags admin
// @Produce json
// @Success 200 {object} shared.Response{data=model.RestaurantConfig}
// @Router /api/v1/config [get]
func (h *AdminHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.configSvc.Get()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, cfg)
}

// @Summary Update restaurant configuration
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param configRequest body dto.UpdateConfigRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=model.RestaurantConfig}
// @Router /api/v1/admin/config [put]
func (h *AdminHandler) UpdateConfig(c *fiber.Ctx) error {
	var req dto.UpdateConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	cfg, err := h.configSvc.Update(&req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, cfg)
}

// @Summary Ticket statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/tickets/stats [get]
func (h *AdminHandler) TicketStats(c *fiber.Ctx) error {
	stats, err := h.ticketSvc.Stats()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, stats)
}

// @Summary Security log
// @Description Recent security events, optionally filtered by type or user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param event_type query string false "Filter by event type"
// @Param user_id query string false "Filter by user"
// @Param critical query bool false "Only critical events"
// @Param limit query int false "Max results (default 100)"
// @Success 200 {object} shared.Response{data=[]dto.SecurityEvent}
// @Router /api/v1/admin/security/events [get]
func (h *AdminHandler) SecurityEvents(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	if limit <= 0 {
		limit = 100
	}

	var events []dto.SecurityEvent
	switch {
	case c.QueryBool("critical"):
		events = h.securitySvc.CriticalEvents()
	case c.Query("event_type") != "":
		events = h.securitySvc.EventsByType(c.Query("event_type"))
	case c.Query("user_id") != "":
		events = h.securitySvc.EventsByUser(c.Query("user_id"))
	default:
		events = h.securitySvc.RecentEvents(limit)
	}

	if len(events) > limit {
		events = events[len(events)-limit:]
	}

	return shared.ResponseOK(c, events)
}

// @Summary Clear security log
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/security/events [delete]
func (h *AdminHandler) ClearSecurityEvents(c *fiber.Ctx) error {
	h.securitySvc.Clear()
	return shared.ResponseOK(c, nil)
}

// @Summary Rate limiter stats
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=dto.RateLimitStats}
// @Router /api/v1/admin/rate-limits [get]
func (h *AdminHandler) RateLimitStats(c *fiber.Ctx) error {
	return shared.ResponseOK(c, h.rateLimitSvc.Stats())
}

// @Summary Reset a rate limit window
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "Limiter identifier (e.g. auth:1.2.3.4)"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/rate-limits/{identifier} [delete]
func (h *AdminHandler) ResetRateLimit(c *fiber.Ctx) error {
	h.rateLimitSvc.Reset(c.Params("identifier"))
	return shared.ResponseOK(c, nil)
}
