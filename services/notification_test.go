package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
)

func newTestNotificationService(t *testing.T) (*NotificationService, *SqliteService) {
	t.Helper()
	s := newTestSqlService(t)
	return &NotificationService{sqlSvc: s}, s
}

func TestNotifyOrderStatusChangePendienteIsSilent(t *testing.T) {
	svc, s := newTestNotificationService(t)

	notification, err := svc.NotifyOrderStatusChange("user-1", "order-1", "ORD-000001", shared.OrderPendiente)
	require.NoError(t, err)
	assert.Nil(t, notification, "creating an order must not notify")

	var count int64
	s.Db().Model(&model.Notification{}).Count(&count)
	assert.Zero(t, count)
}

func TestNotifyOrderStatusChangeEntregado(t *testing.T) {
	svc, _ := newTestNotificationService(t)

	notification, err := svc.NotifyOrderStatusChange("user-1", "order-1", "ORD-000001", shared.OrderEntregado)
	require.NoError(t, err)
	require.NotNil(t, notification)

	assert.Equal(t, shared.NotificationOrderStatus, notification.Type)
	assert.Equal(t, "user-1", notification.UserID)
	assert.Equal(t, "/pedidos/order-1", notification.Link)
	assert.Contains(t, notification.Message, "ORD-000001")
	assert.False(t, notification.Read)
}

func TestNotifyTicketResponseOnlyForStaffReplies(t *testing.T) {
	svc, s := newTestNotificationService(t)

	notification, err := svc.NotifyTicketResponse("user-1", "ticket-1", "TKT-000001", false)
	require.NoError(t, err)
	assert.Nil(t, notification, "customer messages must not notify the customer back")

	notification, err = svc.NotifyTicketResponse("user-1", "ticket-1", "TKT-000001", true)
	require.NoError(t, err)
	require.NotNil(t, notification)
	assert.Equal(t, shared.NotificationTicketResponse, notification.Type)
	assert.Equal(t, "/cliente/tickets/ticket-1", notification.Link)

	var count int64
	s.Db().Model(&model.Notification{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateBulk(t *testing.T) {
	svc, s := newTestNotificationService(t)

	created, err := svc.CreateBulk([]string{"user-1", "user-2", "user-3"},
		shared.NotificationPromotion, "2x1 en hamburguesas", "Solo este fin de semana.", "/menu")
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	var count int64
	s.Db().Model(&model.Notification{}).Where("read = ?", false).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestListCountsUnread(t *testing.T) {
	svc, _ := newTestNotificationService(t)

	first, err := svc.NotifySystem("user-1", "Aviso", "Mantenimiento programado.", "")
	require.NoError(t, err)
	_, err = svc.NotifySystem("user-1", "Aviso", "Segundo aviso.", "")
	require.NoError(t, err)
	_, err = svc.NotifySystem("user-2", "Aviso", "Para otro usuario.", "")
	require.NoError(t, err)

	list, err := svc.List("user-1", false, 0)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, int64(2), list.UnreadCount)

	_, err = svc.MarkRead(first.ID, "user-1")
	require.NoError(t, err)

	list, err = svc.List("user-1", true, 0)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 1)
	assert.Equal(t, int64(1), list.UnreadCount)
}

func TestMarkAllRead(t *testing.T) {
	svc, _ := newTestNotificationService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.NotifySystem("user-1", "Aviso", "Mensaje.", "")
		require.NoError(t, err)
	}

	require.NoError(t, svc.MarkAllRead("user-1"))

	list, err := svc.List("user-1", false, 0)
	require.NoError(t, err)
	assert.Zero(t, list.UnreadCount)
}

func TestMarkReadRejectsForeignOwner(t *testing.T) {
	svc, _ := newTestNotificationService(t)

	notification, err := svc.NotifySystem("user-1", "Aviso", "Mensaje.", "")
	require.NoError(t, err)

	_, err = svc.MarkRead(notification.ID, "user-2")
	requireAppError(t, err, http.StatusForbidden)
}

func TestDeleteNotification(t *testing.T) {
	svc, s := newTestNotificationService(t)

	notification, err := svc.NotifySystem("user-1", "Aviso", "Mensaje.", "")
	require.NoError(t, err)

	err = svc.Delete(notification.ID, "user-2")
	requireAppError(t, err, http.StatusForbidden)

	require.NoError(t, svc.Delete(notification.ID, "user-1"))

	var count int64
	s.Db().Model(&model.Notification{}).Count(&count)
	assert.Zero(t, count)
}
