package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
)

// AuthService owns registration, login and credential recovery, plus the
// fiber middleware that guards protected routes. Failed and suspicious
// attempts are recorded in the security log.
type AuthService struct {
	context.DefaultService

	sqlSvc      SqlService
	jwtSvc      *JWTService
	emailSvc    *EmailService
	securitySvc *SecurityLogService
}

const AUTH_SVC = "auth_svc"

const resetTokenTTL = time.Hour

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.emailSvc = svc.Service(EMAIL_SVC).(*EmailService)
	svc.securitySvc = svc.Service(SECURITY_LOG_SVC).(*SecurityLogService)
	return nil
}

// Register creates a CLIENTE account. Email uniqueness is enforced here and
// by the column index.
func (svc *AuthService) Register(req *dto.RegisterRequest, ipAddress string) (*model.User, error) {
	var existing model.User
	err := svc.sqlSvc.Db().Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, shared.ErrConflict("El correo ya está registrado")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      shared.RoleCliente,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Activo:    true,
	}

	if err := svc.sqlSvc.Db().Create(&user).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.securitySvc.LogUserCreated(user.ID, user.ID, user.Email, user.Role)
	log.WithFields(log.Fields{"user_id": user.ID, "ip": ipAddress}).Info("User registered")

	return &user, nil
}

// Login verifies credentials and issues a JWT. Unknown email, wrong password
// and disabled accounts all yield the same generic 401 to the caller; the
// distinction lives only in the security log.
func (svc *AuthService) Login(req *dto.LoginRequest, ipAddress string) (*dto.LoginResponse, error) {
	var user model.User
	if err := svc.sqlSvc.Db().Where("email = ?", req.Email).First(&user).Error; err != nil {
		svc.securitySvc.LogLoginFailed(req.Email, ipAddress, "user not found")
		return nil, shared.ErrUnauthorized("Credenciales inválidas")
	}

	if !user.Activo {
		svc.securitySvc.LogLoginFailed(req.Email, ipAddress, "account disabled")
		return nil, shared.ErrUnauthorized("Credenciales inválidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		svc.securitySvc.LogLoginFailed(req.Email, ipAddress, "invalid password")
		return nil, shared.ErrUnauthorized("Credenciales inválidas")
	}

	token, err := svc.jwtSvc.ToJWT(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := svc.sqlSvc.Db().Model(&user).Update("last_login", now).Error; err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to update last login")
	}

	svc.securitySvc.LogLoginSuccess(user.ID, user.Email, ipAddress)

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(svc.jwtSvc.AccessTokenDuration.Seconds()),
		User: dto.UserInfo{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

// ForgotPassword issues a reset token. The response is identical whether or
// not the email exists, so the endpoint cannot be used to probe accounts.
func (svc *AuthService) ForgotPassword(req *dto.ForgotPasswordRequest, ipAddress string) error {
	svc.securitySvc.LogPasswordResetRequested(req.Email, ipAddress)

	var user model.User
	if err := svc.sqlSvc.Db().Where("email = ? AND activo = ?", req.Email, true).First(&user).Error; err != nil {
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	expiry := time.Now().Add(resetTokenTTL)
	updates := map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}
	if err := svc.sqlSvc.Db().Model(&user).Updates(updates).Error; err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	if err := svc.emailSvc.SendPasswordResetEmail(user.Email, user.Name, token); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Failed to send password reset email")
	}

	return nil
}

// ResetPassword consumes a reset token.
func (svc *AuthService) ResetPassword(req *dto.ResetPasswordRequest) error {
	var user model.User
	err := svc.sqlSvc.Db().
		Where("reset_token = ? AND reset_token_expiry > ?", req.Token, time.Now()).
		First(&user).Error
	if err != nil {
		return shared.ErrBadRequest("Token inválido o expirado")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"password":           string(hashed),
		"reset_token":        "",
		"reset_token_expiry": nil,
	}
	if err := svc.sqlSvc.Db().Model(&user).Updates(updates).Error; err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	log.WithField("user_id", user.ID).Info("Password reset completed")
	return nil
}

// ChangePassword requires the current password of the authenticated user.
func (svc *AuthService) ChangePassword(userID string, req *dto.ChangePasswordRequest) error {
	var user model.User
	if err := svc.sqlSvc.Db().First(&user, "id = ?", userID).Error; err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return shared.ErrBadRequest("La contraseña actual es incorrecta")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := svc.sqlSvc.Db().Model(&user).Update("password", string(hashed)).Error; err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	return nil
}

// Me returns the authenticated user's profile.
func (svc *AuthService) Me(userID string) (*model.User, error) {
	var user model.User
	if err := svc.sqlSvc.Db().First(&user, "id = ?", userID).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return &user, nil
}

// RequiredAuth verifies the bearer token and loads the identity into the
// request locals.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get("Authorization"))
		if err != nil {
			svc.securitySvc.LogUnauthorizedAccess("", c.Path(), getClientIP(c))
			return shared.ResponseUnauthorized(c)
		}

		userID, role, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil || userID == "" {
			svc.securitySvc.LogUnauthorizedAccess(userID, c.Path(), getClientIP(c))
			return shared.ResponseUnauthorized(c)
		}

		var user model.User
		if err := svc.sqlSvc.Db().Select("id", "email", "role", "activo").First(&user, "id = ?", userID).Error; err != nil {
			svc.securitySvc.LogUnauthorizedAccess(userID, c.Path(), getClientIP(c))
			return shared.ResponseUnauthorized(c)
		}
		if !user.Activo {
			svc.securitySvc.LogUnauthorizedAccess(userID, c.Path(), getClientIP(c))
			return shared.ResponseUnauthorized(c)
		}

		c.Locals(shared.UserID, user.ID)
		c.Locals(shared.UserRole, role)
		c.Locals(shared.UserEmail, user.Email)
		return c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run after RequiredAuth.
func (svc *AuthService) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(shared.UserID).(string)
		role, _ := c.Locals(shared.UserRole).(string)

		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}

		svc.securitySvc.LogUnauthorizedAccess(userID, c.Path(), getClientIP(c))
		return shared.ResponseForbidden(c)
	}
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
