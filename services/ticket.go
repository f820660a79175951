package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
)

// TicketService owns support tickets. Staff responses trigger the customer
// notification; customer-authored changes never do.
type TicketService struct {
	context.DefaultService

	sqlSvc          SqlService
	notificationSvc *NotificationService
	emailSvc        *EmailService
}

const TICKET_SVC = "ticket_svc"

func (svc TicketService) Id() string {
	return TICKET_SVC
}

func (svc *TicketService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *TicketService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlService)
	svc.notificationSvc = svc.Service(NOTIFICATION_SVC).(*NotificationService)
	svc.emailSvc = svc.Service(EMAIL_SVC).(*EmailService)
	return nil
}

func (svc *TicketService) Create(userID string, req *dto.CreateTicketRequest) (*model.Ticket, error) {
	prioridad := req.Prioridad
	if prioridad == "" {
		prioridad = shared.PriorityMedia
	}
	categoria := req.Categoria
	if categoria == "" {
		categoria = "general"
	}

	var ticket model.Ticket
	err := svc.sqlSvc.Db().Transaction(func(tx *gorm.DB) error {
		numero, err := nextSequenceNumber(tx, &model.Ticket{}, "TKT")
		if err != nil {
			return err
		}

		ticket = model.Ticket{
			ID:           uuid.Must(uuid.NewV7()).String(),
			NumeroTicket: numero,
			UserID:       userID,
			Asunto:       shared.SanitizeString(req.Asunto),
			Descripcion:  shared.SanitizeString(req.Descripcion),
			Categoria:    categoria,
			Prioridad:    prioridad,
			Estado:       shared.TicketAbierto,
		}
		return tx.Create(&ticket).Error
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	ticketsCreatedTotal.Inc()
	log.WithFields(log.Fields{
		"ticket_id": ticket.ID,
		"numero":    ticket.NumeroTicket,
		"user_id":   userID,
		"prioridad": prioridad,
	}).Info("Ticket created")

	var user model.User
	if err := svc.sqlSvc.Db().First(&user, "id = ?", userID).Error; err == nil {
		go func(email, name, numero, asunto, prioridad string) {
			if err := svc.emailSvc.SendTicketCreatedEmail(email, name, numero, asunto, prioridad); err != nil {
				log.WithError(err).WithField("ticket_id", ticket.ID).Error("Failed to send ticket created email")
			}
		}(user.Email, user.Name, ticket.NumeroTicket, ticket.Asunto, ticket.Prioridad)
	}

	return &ticket, nil
}

// List returns tickets newest-first. A non-empty userID restricts to that
// owner; estado and prioridad filter when set.
func (svc *TicketService) List(userID, estado, prioridad string, limit int) ([]model.Ticket, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := svc.sqlSvc.Db().
		Preload("User").
		Order("created_at DESC").
		Limit(limit)

	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	if prioridad != "" {
		q = q.Where("prioridad = ?", prioridad)
	}

	var tickets []model.Ticket
	if err := q.Find(&tickets).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return tickets, nil
}

func (svc *TicketService) Get(id string) (*model.Ticket, error) {
	var ticket model.Ticket
	err := svc.sqlSvc.Db().
		Preload("User").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Messages.User").
		First(&ticket, "id = ?", id).Error
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return &ticket, nil
}

// GetOwned fetches a ticket enforcing ownership for customer callers.
func (svc *TicketService) GetOwned(id, userID string) (*model.Ticket, error) {
	ticket, err := svc.Get(id)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, shared.ErrForbidden("No tienes acceso a este ticket")
	}
	return ticket, nil
}

// Update is the staff-side mutation: status, priority, category and the
// formal response. Writing a respuesta notifies the customer; closing as
// RESUELTO stamps the resolution time.
func (svc *TicketService) Update(id string, req *dto.UpdateTicketRequest) (*model.Ticket, error) {
	ticket, err := svc.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Estado != "" {
		updates["estado"] = req.Estado
		if req.Estado == shared.TicketResuelto && ticket.FechaResolucion == nil {
			updates["fecha_resolucion"] = time.Now()
		}
	}
	if req.Prioridad != "" {
		updates["prioridad"] = req.Prioridad
	}
	if req.Categoria != "" {
		updates["categoria"] = req.Categoria
	}

	respuestaAdded := req.Respuesta != "" && req.Respuesta != ticket.Respuesta
	if respuestaAdded {
		updates["respuesta"] = req.Respuesta
	}

	if len(updates) > 0 {
		if err := svc.sqlSvc.Db().Model(&model.Ticket{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	if respuestaAdded {
		if _, err := svc.notificationSvc.NotifyTicketResponse(ticket.UserID, ticket.ID, ticket.NumeroTicket, true); err != nil {
			log.WithError(err).WithField("ticket_id", ticket.ID).Error("Failed to create ticket response notification")
		}
	}

	return svc.Get(id)
}

// Rate records the customer's satisfaction score; only resolved or closed
// tickets the customer owns can be rated.
func (svc *TicketService) Rate(id, userID string, req *dto.RateTicketRequest) (*model.Ticket, error) {
	ticket, err := svc.GetOwned(id, userID)
	if err != nil {
		return nil, err
	}

	if ticket.Estado != shared.TicketResuelto && ticket.Estado != shared.TicketCerrado {
		return nil, shared.ErrBadRequest("Solo se pueden calificar tickets resueltos o cerrados")
	}

	if err := svc.sqlSvc.Db().Model(&model.Ticket{}).Where("id = ?", id).Update("calificacion", req.Calificacion).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return svc.Get(id)
}

// Close is the customer-side close of their own ticket.
func (svc *TicketService) Close(id, userID string) (*model.Ticket, error) {
	ticket, err := svc.GetOwned(id, userID)
	if err != nil {
		return nil, err
	}

	if ticket.Estado == shared.TicketCerrado {
		return ticket, nil
	}

	if err := svc.sqlSvc.Db().Model(&model.Ticket{}).Where("id = ?", id).Update("estado", shared.TicketCerrado).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return svc.Get(id)
}

// Delete removes a ticket and its conversation. Admin-side; customers close
// instead.
func (svc *TicketService) Delete(id string) error {
	if _, err := svc.Get(id); err != nil {
		return err
	}

	err := svc.sqlSvc.Db().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", id).Delete(&model.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Ticket{}, "id = ?", id).Error
	})
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	log.WithField("ticket_id", id).Info("Ticket deleted")
	return nil
}

// Stats summarizes ticket load for the admin dashboard.
func (svc *TicketService) Stats() (map[string]int64, error) {
	stats := map[string]int64{}
	for _, estado := range []string{shared.TicketAbierto, shared.TicketEnProceso, shared.TicketResuelto, shared.TicketCerrado} {
		var count int64
		if err := svc.sqlSvc.Db().Model(&model.Ticket{}).Where("estado = ?", estado).Count(&count).Error; err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		stats[estado] = count
	}
	return stats, nil
}
