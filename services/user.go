package services

import (
	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
)

// UserService covers the customer's own profile plus the admin account
// management surface. Every admin mutation lands in the security log.
type UserService struct {
	context.DefaultService

	sqlSvc      SqlService
	securitySvc *SecurityLogService
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlService)
	svc.securitySvc = svc.Service(SECURITY_LOG_SVC).(*SecurityLogService)
	return nil
}

func (svc *UserService) Get(id string) (*model.User, error) {
	var user model.User
	if err := svc.sqlSvc.Db().First(&user, "id = ?", id).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return &user, nil
}

func (svc *UserService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*model.User, error) {
	user, err := svc.Get(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Telefono != "" {
		updates["telefono"] = req.Telefono
	}
	if req.Direccion != "" {
		updates["direccion"] = req.Direccion
	}

	if len(updates) > 0 {
		if err := svc.sqlSvc.Db().Model(user).Updates(updates).Error; err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	return user, nil
}

// List returns users for the admin panel, optionally filtered by role.
func (svc *UserService) List(role string, limit int) ([]model.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	q := svc.sqlSvc.Db().Order("created_at DESC").Limit(limit)
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var users []model.User
	if err := q.Find(&users).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return users, nil
}

// AdminCreate provisions an account with an explicit role.
func (svc *UserService) AdminCreate(adminID string, req *dto.AdminCreateUserRequest) (*model.User, error) {
	var existing model.User
	if err := svc.sqlSvc.Db().Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, shared.ErrConflict("El correo ya está registrado")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID:       uuid.Must(uuid.NewV7()).String(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
		Telefono: req.Telefono,
		Activo:   true,
	}

	if err := svc.sqlSvc.Db().Create(&user).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.securitySvc.LogUserCreated(user.ID, adminID, user.Email, user.Role)
	return &user, nil
}

// AdminUpdate changes name, role or active flag. Role changes are logged
// with both the old and new role. An admin cannot demote themselves.
func (svc *UserService) AdminUpdate(adminID, userID string, req *dto.AdminUpdateUserRequest) (*model.User, error) {
	user, err := svc.Get(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}

	roleChanged := req.Role != "" && req.Role != user.Role
	oldRole := user.Role
	if roleChanged {
		if userID == adminID {
			return nil, shared.ErrBadRequest("No puedes cambiar tu propio rol")
		}
		updates["role"] = req.Role
	}
	if req.Activo != nil {
		if userID == adminID && !*req.Activo {
			return nil, shared.ErrBadRequest("No puedes desactivar tu propia cuenta")
		}
		updates["activo"] = *req.Activo
	}

	if len(updates) > 0 {
		if err := svc.sqlSvc.Db().Model(user).Updates(updates).Error; err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	if roleChanged {
		svc.securitySvc.LogUserRoleChanged(userID, adminID, oldRole, req.Role)
		log.WithFields(log.Fields{
			"user_id":  userID,
			"old_role": oldRole,
			"new_role": req.Role,
		}).Info("User role changed")
	}

	return user, nil
}

// AdminDelete removes an account. Self-deletion is rejected.
func (svc *UserService) AdminDelete(adminID, userID string) error {
	if userID == adminID {
		return shared.ErrBadRequest("No puedes eliminar tu propia cuenta")
	}

	user, err := svc.Get(userID)
	if err != nil {
		return err
	}

	if err := svc.sqlSvc.Db().Delete(user).Error; err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	svc.securitySvc.LogUserDeleted(userID, adminID, user.Email)
	return nil
}
