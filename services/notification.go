package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// NotificationService translates business events into persisted per-user
// notification records and serves the read model behind the notification
// endpoints. Storage failures propagate to the caller; call sites decide
// whether a failed notification should fail the parent operation (in this
// codebase they log and continue).
type NotificationService struct {
	context.DefaultService

	sqlSvc SqlService
}

const NOTIFICATION_SVC = "notification_svc"

func (svc NotificationService) Id() string {
	return NOTIFICATION_SVC
}

func (svc *NotificationService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *NotificationService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlService)
	return nil
}

// ==================== DISPATCH ====================

func (svc *NotificationService) Create(userID, notificationType, title, message, link string) (*model.Notification, error) {
	id, _ := uuid.NewV7()
	notification := &model.Notification{
		ID:        id.String(),
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		Link:      link,
		Read:      false,
		CreatedAt: time.Now(),
	}

	if err := svc.sqlSvc.Db().Create(notification).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	notificationsCreatedTotal.WithLabelValues(notificationType).Inc()
	return notification, nil
}

// NotifyOrderStatusChange maps an order status transition onto a fixed
// notification template. PENDIENTE is the creation state and deliberately
// produces no notification.
func (svc *NotificationService) NotifyOrderStatusChange(userID, orderID, numeroOrden, newStatus string) (*model.Notification, error) {
	var title, message string

	switch newStatus {
	case shared.OrderPreparando:
		title = "Tu pedido está en preparación"
		message = fmt.Sprintf("Tu pedido #%s está siendo preparado por nuestro equipo.", numeroOrden)
	case shared.OrderListo:
		title = "¡Tu pedido está listo!"
		message = fmt.Sprintf("Tu pedido #%s está listo para ser entregado.", numeroOrden)
	case shared.OrderEntregado:
		title = "Pedido entregado"
		message = fmt.Sprintf("Tu pedido #%s ha sido entregado. ¡Disfruta tu comida!", numeroOrden)
	case shared.OrderCancelado:
		title = "Pedido cancelado"
		message = fmt.Sprintf("Tu pedido #%s ha sido cancelado. Si tienes dudas, contáctanos.", numeroOrden)
	case shared.OrderPendiente:
		return nil, nil
	default:
		return nil, nil
	}

	return svc.Create(userID, shared.NotificationOrderStatus, title, message, fmt.Sprintf("/pedidos/%s", orderID))
}

// NotifyTicketResponse notifies the customer when support replies. Customer
// messages do not notify staff here; staff follow the live chat channel.
func (svc *NotificationService) NotifyTicketResponse(userID, ticketID, numeroTicket string, isAdminResponse bool) (*model.Notification, error) {
	if !isAdminResponse {
		return nil, nil
	}

	return svc.Create(
		userID,
		shared.NotificationTicketResponse,
		"Nueva respuesta a tu ticket",
		fmt.Sprintf("Nuestro equipo de soporte ha respondido a tu ticket #%s.", numeroTicket),
		fmt.Sprintf("/cliente/tickets/%s", ticketID),
	)
}

func (svc *NotificationService) NotifyPromotion(userID, title, message, link string) (*model.Notification, error) {
	return svc.Create(userID, shared.NotificationPromotion, title, message, link)
}

func (svc *NotificationService) NotifySystem(userID, title, message, link string) (*model.Notification, error) {
	return svc.Create(userID, shared.NotificationSystem, title, message, link)
}

// CreateBulk fans one notification out to many users. Each insert stands
// alone; a failure for one user does not roll back the rest.
func (svc *NotificationService) CreateBulk(userIDs []string, notificationType, title, message, link string) (int, error) {
	var created int
	var lastErr error

	for _, userID := range userIDs {
		if _, err := svc.Create(userID, notificationType, title, message, link); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to create bulk notification")
			lastErr = err
			continue
		}
		created++
	}

	if created == 0 && lastErr != nil {
		return 0, lastErr
	}
	return created, nil
}

// ==================== READ MODEL ====================

func (svc *NotificationService) List(userID string, unreadOnly bool, limit int) (*dto.NotificationListResponse, error) {
	if limit <= 0 {
		limit = 50
	}

	query := svc.sqlSvc.Db().Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []model.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	var unreadCount int64
	if err := svc.sqlSvc.Db().Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&unreadCount).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if notifications == nil {
		notifications = []model.Notification{}
	}

	return &dto.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unreadCount,
	}, nil
}

func (svc *NotificationService) getOwned(notificationID, userID string) (*model.Notification, error) {
	var notification model.Notification
	if err := svc.sqlSvc.Db().First(&notification, "id = ?", notificationID).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if notification.UserID != userID {
		return nil, &shared.AppError{StatusCode: http.StatusForbidden, Message: "Forbidden"}
	}
	return &notification, nil
}

func (svc *NotificationService) MarkRead(notificationID, userID string) (*model.Notification, error) {
	notification, err := svc.getOwned(notificationID, userID)
	if err != nil {
		return nil, err
	}

	if err := svc.sqlSvc.Db().Model(notification).Update("read", true).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	notification.Read = true
	return notification, nil
}

func (svc *NotificationService) MarkAllRead(userID string) error {
	err := svc.sqlSvc.Db().Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}

func (svc *NotificationService) Delete(notificationID, userID string) error {
	notification, err := svc.getOwned(notificationID, userID)
	if err != nil {
		return err
	}

	if err := svc.sqlSvc.Db().Delete(notification).Error; err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}
