package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/shared"
)

type TicketHandler struct {
	ticketSvc TicketServiceInterface
	chatSvc   ChatServiceInterface
}

func NewTicketHandler(ticketSvc TicketServiceInterface, chatSvc ChatServiceInterface) *TicketHandler {
	return &TicketHandler{
		ticketSvc: ticketSvc,
		chatSvc:   chatSvc,
	}
}

// @Summary Create support ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ticketRequest body dto.CreateTicketRequest true "Ticket"
// @Success 201 {object} shared.Response{data=model.Ticket}
// @Router /api/v1/tickets [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID := c.Locals(shared.UserID).(string)
	ticket, err := h.ticketSvc.Create(userID, &req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, ticket)
}

// @Summary List own tickets
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param estado query string false "Filter by status"
// @Param prioridad query string false "Filter by priority"
// @Success 200 {object} shared.Response{data=[]model.Ticket}
// @Router /api/v1/tickets [get]
func (h *TicketHandler) List(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	tickets, err := h.ticketSvc.List(userID, c.Query("estado"), c.Query("prioridad"), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, tickets)
}

// @Summary List all tickets (staff)
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param estado query string false "Filter by status"
// @Param prioridad query string false "Filter by priority"
// @Success 200 {object} shared.Response{data=[]model.Ticket}
// @Router /api/v1/admin/tickets [get]
func (h *TicketHandler) ListAll(c *fiber.Ctx) error {
	tickets, err := h.ticketSvc.List("", c.Query("estado"), c.Query("prioridad"), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, tickets)
}

// @Summary Get ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket id"
// @Success 200 {object} shared.Response{data=model.Ticket}
// @Router /api/v1/tickets/{id} [get]
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	if isStaff(c) {
		ticket, err := h.ticketSvc.Get(id)
		if err != nil {
			return err
		}
		return shared.ResponseOK(c, ticket)
	}

	userID := c.Locals(shared.UserID).(string)
	ticket, err := h.ticketSvc.GetOwned(id, userID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, ticket)
}

// @Summary Update ticket (staff)
// @Description Change status, priority, category or write the formal response
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket id"
// @Param ticketRequest body dto.UpdateTicketRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=model.Ticket}
// @Router /api/v1/admin/tickets/{id} [put]
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	ticket, err := h.ticketSvc.Update(c.Params("id"), &req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, ticket)
}

// @Summary Rate resolved ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket id"
// @Param rateRequest body dto.RateTicketRequest true "Score 1-5"
// @Success 200 {object} shared.Response{data=model.Ticket}
// @Router /api/v1/tickets/{id}/rate [post]
func (h *TicketHandler) Rate(c *fiber.Ctx) error {
	var req dto.RateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID := c.Locals(shared.UserID).(string)
	ticket, err := h.ticketSvc.Rate(c.Params("id"), userID, &req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, ticket)
}

// @Summary Close own ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket id"
// @Success 200 {object} shared.Response{data=model.Ticket}
// @Router /api/v1/tickets/{id}/close [post]
func (h *TicketHandler) Close(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	ticket, err := h.ticketSvc.Close(c.Params("id"), userID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, ticket)
}

// @Summary Send chat message
// @Description Append a message to the ticket conversation and broadcast it
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket id"
// @Param messageRequest body dto.ChatMessageRequest true "Message"
// @Success 201 {object} shared.Response{data=model.ChatMessage}
// @Router /api/v1/tickets/{id}/messages [post]
func (h *TicketHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID := c.Locals(shared.UserID).(string)
	role, _ := c.Locals(shared.UserRole).(string)

	message, err := h.chatSvc.Send(c.Params("id"), userID, role, &req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, message)
}

// @Summary Ticket conversation
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket id"
// @Success 200 {object} shared.Response{data=[]model.ChatMessage}
// @Router /api/v1/tickets/{id}/messages [get]
func (h *TicketHandler) Messages(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	role, _ := c.Locals(shared.UserRole).(string)

	messages, err := h.chatSvc.Messages(c.Params("id"), userID, role)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, messages)
}

// @Summary Delete ticket
// @Description Removes a ticket and its conversation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket id"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/tickets/{id} [delete]
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	if err := h.ticketSvc.Delete(c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseOK(c, nil)
}
