package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/shared"
)

type OrderHandler struct {
	orderSvc OrderServiceInterface
}

func NewOrderHandler(orderSvc OrderServiceInterface) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// @Summary Create order
// @Description Place an order; prices and totals are computed server-side
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orderRequest body dto.CreateOrderRequest true "Order items and payment method"
// @Success 201 {object} shared.Response{data=model.Order}
// @Router /api/v1/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID := c.Locals(shared.UserID).(string)
	order, err := h.orderSvc.Create(userID, &req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, order)
}

// @Summary List own orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param estado query string false "Filter by status"
// @Param limit query int false "Max results (default 50)"
// @Success 200 {object} shared.Response{data=[]model.Order}
// @Router /api/v1/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	orders, err := h.orderSvc.List(userID, c.Query("estado"), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, orders)
}

// @Summary List all orders (staff)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param estado query string false "Filter by status"
// @Param limit query int false "Max results (default 50)"
// @Success 200 {object} shared.Response{data=[]model.Order}
// @Router /api/v1/admin/orders [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	orders, err := h.orderSvc.List("", c.Query("estado"), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, orders)
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order id"
// @Success 200 {object} shared.Response{data=model.Order}
// @Router /api/v1/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	if isStaff(c) {
		order, err := h.orderSvc.Get(id)
		if err != nil {
			return err
		}
		return shared.ResponseOK(c, order)
	}

	userID := c.Locals(shared.UserID).(string)
	order, err := h.orderSvc.GetOwned(id, userID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, order)
}

// @Summary Update order status (staff)
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order id"
// @Param statusRequest body dto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} shared.Response{data=model.Order}
// @Router /api/v1/admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	order, err := h.orderSvc.UpdateStatus(c.Params("id"), &req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, order)
}

// @Summary Cancel order
// @Description Customers cancel their own pending orders; staff cancel any order still in a cancellable state
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order id"
// @Success 200 {object} shared.Response{data=model.Order}
// @Router /api/v1/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")

	if isStaff(c) {
		order, err := h.orderSvc.UpdateStatus(id, &dto.UpdateOrderStatusRequest{Estado: shared.OrderCancelado})
		if err != nil {
			return err
		}
		return shared.ResponseOK(c, order)
	}

	userID := c.Locals(shared.UserID).(string)
	order, err := h.orderSvc.Cancel(id, userID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, order)
}
