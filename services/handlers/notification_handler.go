package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/shared"
)

type NotificationHandler struct {
	notificationSvc NotificationServiceInterface
}

func NewNotificationHandler(notificationSvc NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// @Summary List notifications
// @Description The authenticated user's notifications with unread count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread notifications"
// @Param limit query int false "Max results (default 50)"
// @Success 200 {object} shared.Response{data=dto.NotificationListResponse}
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.notificationSvc.List(userID, c.QueryBool("unread"), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification id"
// @Success 200 {object} shared.Response{data=model.Notification}
// @Router /api/v1/notifications/{id} [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	notification, err := h.notificationSvc.MarkRead(c.Params("id"), userID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, notification)
}

// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response
// @Router /api/v1/notifications [put]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.notificationSvc.MarkAllRead(userID); err != nil {
		return err
	}
	return shared.ResponseOK(c, nil)
}

// @Summary Delete notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification id"
// @Success 200 {object} shared.Response
// @Router /api/v1/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.notificationSvc.Delete(c.Params("id"), userID); err != nil {
		return err
	}
	return shared.ResponseOK(c, nil)
}

// @Summary Send notification (staff)
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param notificationRequest body dto.CreateNotificationRequest true "Notification"
// @Success 201 {object} shared.Response{data=model.Notification}
// @Router /api/v1/admin/notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	notification, err := h.notificationSvc.Create(req.UserID, req.Type, req.Title, req.Message, req.Link)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, notification)
}

// @Summary Send bulk notification (staff)
// @Description Deliver one notification to many users; reports how many were created
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bulkRequest body dto.BulkNotificationRequest true "Bulk notification"
// @Success 201 {object} shared.Response
// @Router /api/v1/admin/notifications/bulk [post]
func (h *NotificationHandler) CreateBulk(c *fiber.Ctx) error {
	var req dto.BulkNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	created, err := h.notificationSvc.CreateBulk(req.UserIDs, req.Type, req.Title, req.Message, req.Link)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, fiber.Map{"created": created, "requested": len(req.UserIDs)})
}
