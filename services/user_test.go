package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
)

func newTestUserService(t *testing.T) (*UserService, *SqliteService) {
	t.Helper()
	s := newTestSqlService(t)
	return &UserService{sqlSvc: s, securitySvc: newTestSecurityLog(100)}, s
}

func TestUpdateProfile(t *testing.T) {
	svc, s := newTestUserService(t)
	user := createTestUser(t, s, shared.RoleCliente)

	updated, err := svc.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Name:      "Juan P. Actualizado",
		Telefono:  "555-123-4567",
		Direccion: "Calle Principal 123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Juan P. Actualizado", updated.Name)
	assert.Equal(t, "555-123-4567", updated.Telefono)
	assert.Equal(t, user.Email, updated.Email, "email is not editable from the profile")
}

func TestAdminCreateUser(t *testing.T) {
	svc, _ := newTestUserService(t)
	admin := &model.User{ID: "admin-1"}

	user, err := svc.AdminCreate(admin.ID, &dto.AdminCreateUserRequest{
		Name:     "Personal Cocina",
		Email:    "staff@fastbite.com",
		Password: "Segura#2024",
		Role:     shared.RoleStaff,
	})
	require.NoError(t, err)

	assert.Equal(t, shared.RoleStaff, user.Role)
	assert.NotEqual(t, "Segura#2024", user.Password)

	_, err = svc.AdminCreate(admin.ID, &dto.AdminCreateUserRequest{
		Name:     "Duplicado",
		Email:    "staff@fastbite.com",
		Password: "Segura#2024",
		Role:     shared.RoleStaff,
	})
	requireAppError(t, err, http.StatusConflict)
}

func TestAdminUpdateRoleChangeIsLogged(t *testing.T) {
	svc, s := newTestUserService(t)
	admin := createTestUser(t, s, shared.RoleAdmin)
	user := createTestUser(t, s, shared.RoleCliente)

	_, err := svc.AdminUpdate(admin.ID, user.ID, &dto.AdminUpdateUserRequest{Role: shared.RoleStaff})
	require.NoError(t, err)

	events := svc.securitySvc.EventsByType(shared.EventUserRoleChanged)
	require.Len(t, events, 1)
	assert.Equal(t, user.ID, events[0].UserID)
	assert.Equal(t, shared.RoleCliente, events[0].Metadata["old_role"])
	assert.Equal(t, shared.RoleStaff, events[0].Metadata["new_role"])
}

func TestAdminCannotChangeOwnRole(t *testing.T) {
	svc, s := newTestUserService(t)
	admin := createTestUser(t, s, shared.RoleAdmin)

	_, err := svc.AdminUpdate(admin.ID, admin.ID, &dto.AdminUpdateUserRequest{Role: shared.RoleCliente})
	requireAppError(t, err, http.StatusBadRequest)
}

func TestAdminCannotDeactivateSelf(t *testing.T) {
	svc, s := newTestUserService(t)
	admin := createTestUser(t, s, shared.RoleAdmin)

	inactive := false
	_, err := svc.AdminUpdate(admin.ID, admin.ID, &dto.AdminUpdateUserRequest{Activo: &inactive})
	requireAppError(t, err, http.StatusBadRequest)
}

func TestAdminDelete(t *testing.T) {
	svc, s := newTestUserService(t)
	admin := createTestUser(t, s, shared.RoleAdmin)
	user := createTestUser(t, s, shared.RoleCliente)

	require.NoError(t, svc.AdminDelete(admin.ID, user.ID))

	var count int64
	s.Db().Model(&model.User{}).Where("id = ?", user.ID).Count(&count)
	assert.Zero(t, count)

	err := svc.AdminDelete(admin.ID, admin.ID)
	requireAppError(t, err, http.StatusBadRequest)

	assert.Len(t, svc.securitySvc.EventsByType(shared.EventUserDeleted), 1)
}

func TestListUsersFiltersByRole(t *testing.T) {
	svc, s := newTestUserService(t)
	createTestUser(t, s, shared.RoleAdmin)
	createTestUser(t, s, shared.RoleCliente)
	createTestUser(t, s, shared.RoleCliente)

	all, err := svc.List("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	clientes, err := svc.List(shared.RoleCliente, 0)
	require.NoError(t, err)
	assert.Len(t, clientes, 2)
}
