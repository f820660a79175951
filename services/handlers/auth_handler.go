package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/shared"
)

type AuthHandler struct {
	authSvc AuthServiceInterface
	userSvc UserServiceInterface
}

func NewAuthHandler(authSvc AuthServiceInterface, userSvc UserServiceInterface) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
		userSvc: userSvc,
	}
}

// @Summary Register a new user
// @Description Create a customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body dto.RegisterRequest true "Registration details"
// @Success 201 {object} shared.Response{data=dto.RegisterResponse}
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	user, err := h.authSvc.Register(&req, c.IP())
	if err != nil {
		return err
	}

	resp := dto.RegisterResponse{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}
	return shared.ResponseJSON(c, http.StatusCreated, "Usuario registrado", resp)
}

// @Summary Login
// @Description Authenticate and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body dto.LoginRequest true "Login credentials"
// @Success 200 {object} shared.Response{data=dto.LoginResponse}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.Login(&req, c.IP())
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Login exitoso", resp)
}

// @Summary Request password reset
// @Description Send a reset link to the given email if it exists
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotRequest body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} shared.Response
// @Router /api/v1/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.authSvc.ForgotPassword(&req, c.IP()); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Si el correo existe, recibirás un enlace de recuperación", nil)
}

// @Summary Reset password
// @Description Set a new password using a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param resetRequest body dto.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} shared.Response
// @Router /api/v1/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.authSvc.ResetPassword(&req); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Contraseña restablecida", nil)
}

// @Summary Change password
// @Description Change the authenticated user's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param changeRequest body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} shared.Response
// @Router /api/v1/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID := c.Locals(shared.UserID).(string)
	if err := h.authSvc.ChangePassword(userID, &req); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Contraseña actualizada", nil)
}

// @Summary Current user
// @Description Return the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=model.User}
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	user, err := h.authSvc.Me(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, user)
}

// @Summary Update profile
// @Description Update the authenticated user's profile fields
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profileRequest body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} shared.Response{data=model.User}
// @Router /api/v1/auth/me [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID := c.Locals(shared.UserID).(string)
	user, err := h.userSvc.UpdateProfile(userID, &req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, user)
}
