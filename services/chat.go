package services

import (
	ctx "context"
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
)

// ChatService persists per-ticket messages and fans them out over redis
// pub/sub. The publish is best-effort: a broker outage never loses the
// message, only its live delivery.
type ChatService struct {
	context.DefaultService

	sqlSvc          SqlService
	redisSvc        *RedisService
	ticketSvc       *TicketService
	notificationSvc *NotificationService
}

const CHAT_SVC = "chat_svc"

const chatEventName = "new-message"

func (svc ChatService) Id() string {
	return CHAT_SVC
}

func (svc *ChatService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ChatService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.ticketSvc = svc.Service(TICKET_SVC).(*TicketService)
	svc.notificationSvc = svc.Service(NOTIFICATION_SVC).(*NotificationService)
	return nil
}

func chatChannel(ticketID string) string {
	return fmt.Sprintf("ticket-%s", ticketID)
}

// Send stores a message on the ticket and publishes it to the ticket's
// channel. Customers can only write to their own tickets; staff to any.
// Closed tickets accept no messages.
func (svc *ChatService) Send(ticketID, userID, role string, req *dto.ChatMessageRequest) (*model.ChatMessage, error) {
	var ticket *model.Ticket
	var err error
	if role == shared.RoleCliente {
		ticket, err = svc.ticketSvc.GetOwned(ticketID, userID)
	} else {
		ticket, err = svc.ticketSvc.Get(ticketID)
	}
	if err != nil {
		return nil, err
	}

	if ticket.Estado == shared.TicketCerrado {
		return nil, shared.ErrBadRequest("El ticket está cerrado")
	}

	message := model.ChatMessage{
		ID:       uuid.Must(uuid.NewV7()).String(),
		TicketID: ticketID,
		UserID:   userID,
		Mensaje:  shared.SanitizeString(req.Mensaje),
	}
	if err := svc.sqlSvc.Db().Create(&message).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if err := svc.sqlSvc.Db().Preload("User").First(&message, "id = ?", message.ID).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.publish(&message)

	// A staff message on someone else's ticket also pings the owner.
	if role != shared.RoleCliente && ticket.UserID != userID {
		if _, err := svc.notificationSvc.NotifyTicketResponse(ticket.UserID, ticket.ID, ticket.NumeroTicket, true); err != nil {
			log.WithError(err).WithField("ticket_id", ticket.ID).Error("Failed to create chat notification")
		}
	}

	return &message, nil
}

// Messages returns the ticket's conversation in chronological order.
func (svc *ChatService) Messages(ticketID, userID, role string) ([]model.ChatMessage, error) {
	if role == shared.RoleCliente {
		if _, err := svc.ticketSvc.GetOwned(ticketID, userID); err != nil {
			return nil, err
		}
	} else {
		if _, err := svc.ticketSvc.Get(ticketID); err != nil {
			return nil, err
		}
	}

	var messages []model.ChatMessage
	err := svc.sqlSvc.Db().
		Preload("User").
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return messages, nil
}

func (svc *ChatService) publish(message *model.ChatMessage) {
	payload := dto.ChatEventPayload{
		ID:        message.ID,
		Mensaje:   message.Mensaje,
		CreatedAt: message.CreatedAt,
	}
	if message.User != nil {
		payload.User = dto.ChatUser{
			ID:   message.User.ID,
			Name: message.User.Name,
			Role: message.User.Role,
		}
	}

	event := map[string]interface{}{
		"event": chatEventName,
		"data":  payload,
	}

	c, cancel := ctx.WithTimeout(ctx.Background(), 2*time.Second)
	defer cancel()
	if err := svc.redisSvc.Publish(c, chatChannel(message.TicketID), event); err != nil {
		log.WithError(err).WithField("ticket_id", message.TicketID).Error("Failed to publish chat message")
	}
}
