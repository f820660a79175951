package services

import (
	"fmt"
	"math"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
)

// OrderService owns order creation and lifecycle. Prices are always taken
// from the catalog at creation time, never from the request, and totals are
// computed server-side. Status-change side effects (notification, email) are
// best-effort and never fail the update.
type OrderService struct {
	context.DefaultService

	sqlSvc          SqlService
	configSvc       *ConfigService
	notificationSvc *NotificationService
	emailSvc        *EmailService
}

const ORDER_SVC = "order_svc"

func (svc OrderService) Id() string {
	return ORDER_SVC
}

func (svc *OrderService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *OrderService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(SqlService)
	svc.configSvc = svc.Service(CONFIG_SVC).(*ConfigService)
	svc.notificationSvc = svc.Service(NOTIFICATION_SVC).(*NotificationService)
	svc.emailSvc = svc.Service(EMAIL_SVC).(*EmailService)
	return nil
}

// Create builds an order from catalog prices inside a single transaction.
// Inactive or unknown products reject the whole order.
func (svc *OrderService) Create(userID string, req *dto.CreateOrderRequest) (*model.Order, error) {
	taxRate := svc.configSvc.TaxRate()

	// Delivery address falls back to the customer's profile.
	direccion := req.DireccionEntrega
	if direccion == "" {
		var user model.User
		if err := svc.sqlSvc.Db().Select("direccion").First(&user, "id = ?", userID).Error; err == nil {
			direccion = user.Direccion
		}
	}

	// Gateway references (card last four, authorization id) ride along as an
	// opaque JSON column.
	var paymentMeta datatypes.JSON
	if req.PaymentMeta != nil {
		raw, err := sonic.Marshal(req.PaymentMeta)
		if err != nil {
			return nil, shared.ErrBadRequest("payment_meta no serializable")
		}
		paymentMeta = datatypes.JSON(raw)
	}

	var order model.Order
	err := svc.sqlSvc.Db().Transaction(func(tx *gorm.DB) error {
		var subtotal float64
		items := make([]model.OrderItem, 0, len(req.Items))

		for _, item := range req.Items {
			var product model.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				return shared.ErrBadRequest(fmt.Sprintf("Producto %s no encontrado", item.ProductID))
			}
			if !product.Activo {
				return shared.ErrBadRequest(fmt.Sprintf("El producto %s no está disponible", product.Nombre))
			}

			lineSubtotal := roundMoney(product.Precio * float64(item.Cantidad))
			subtotal += lineSubtotal

			items = append(items, model.OrderItem{
				ID:             uuid.Must(uuid.NewV7()).String(),
				ProductID:      product.ID,
				Cantidad:       item.Cantidad,
				PrecioUnitario: product.Precio,
				Subtotal:       lineSubtotal,
				Notas:          item.Notas,
			})
		}

		subtotal = roundMoney(subtotal)
		impuestos := roundMoney(subtotal * taxRate)

		numero, err := nextSequenceNumber(tx, &model.Order{}, "ORD")
		if err != nil {
			return err
		}

		order = model.Order{
			ID:               uuid.Must(uuid.NewV7()).String(),
			NumeroOrden:      numero,
			UserID:           userID,
			Estado:           shared.OrderPendiente,
			Subtotal:         subtotal,
			Impuestos:        impuestos,
			Total:            roundMoney(subtotal + impuestos),
			MetodoPago:       req.MetodoPago,
			PaymentMeta:      paymentMeta,
			Notas:            req.Notas,
			DireccionEntrega: direccion,
			Items:            items,
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok {
			return nil, appErr
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	ordersCreatedTotal.Inc()
	log.WithFields(log.Fields{
		"order_id": order.ID,
		"numero":   order.NumeroOrden,
		"user_id":  userID,
		"total":    order.Total,
	}).Info("Order created")

	return svc.Get(order.ID)
}

// List returns orders newest-first. A non-empty userID restricts to that
// owner; staff pass an empty userID to see everything. An estado filters by
// status.
func (svc *OrderService) List(userID, estado string, limit int) ([]model.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := svc.sqlSvc.Db().
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Limit(limit)

	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}

	var orders []model.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return orders, nil
}

func (svc *OrderService) Get(id string) (*model.Order, error) {
	var order model.Order
	err := svc.sqlSvc.Db().
		Preload("User").
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return &order, nil
}

// GetOwned fetches an order enforcing that userID owns it. Staff callers
// should use Get instead.
func (svc *OrderService) GetOwned(id, userID string) (*model.Order, error) {
	order, err := svc.Get(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, shared.ErrForbidden("No tienes acceso a este pedido")
	}
	return order, nil
}

var allowedTransitions = map[string][]string{
	shared.OrderPendiente:  {shared.OrderPreparando, shared.OrderCancelado},
	shared.OrderPreparando: {shared.OrderListo, shared.OrderCancelado},
	shared.OrderListo:      {shared.OrderEntregado},
	shared.OrderEntregado:  {},
	shared.OrderCancelado:  {},
}

// UpdateStatus moves an order along its lifecycle. On success the customer
// is notified in-app and by email; both are best-effort.
func (svc *OrderService) UpdateStatus(id string, req *dto.UpdateOrderStatusRequest) (*model.Order, error) {
	order, err := svc.Get(id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(order.Estado, req.Estado) {
		return nil, shared.ErrBadRequest(fmt.Sprintf("No se puede pasar de %s a %s", order.Estado, req.Estado))
	}

	if err := svc.sqlSvc.Db().Model(order).Update("estado", req.Estado).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	order.Estado = req.Estado

	svc.notifyStatusChange(order)

	return order, nil
}

// Cancel is the customer-facing cancel; only PENDIENTE orders qualify.
func (svc *OrderService) Cancel(id, userID string) (*model.Order, error) {
	order, err := svc.GetOwned(id, userID)
	if err != nil {
		return nil, err
	}

	if order.Estado != shared.OrderPendiente {
		return nil, shared.ErrBadRequest("Solo se pueden cancelar pedidos pendientes")
	}

	if err := svc.sqlSvc.Db().Model(order).Update("estado", shared.OrderCancelado).Error; err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	order.Estado = shared.OrderCancelado

	svc.notifyStatusChange(order)

	return order, nil
}

func (svc *OrderService) notifyStatusChange(order *model.Order) {
	if _, err := svc.notificationSvc.NotifyOrderStatusChange(order.UserID, order.ID, order.NumeroOrden, order.Estado); err != nil {
		log.WithError(err).WithField("order_id", order.ID).Error("Failed to create order status notification")
	}

	if order.User == nil {
		return
	}

	title, message := orderStatusEmailCopy(order.Estado, order.NumeroOrden)
	if title == "" {
		return
	}

	go func(email, name, numero, id, estado, title, message string) {
		if err := svc.emailSvc.SendOrderStatusEmail(email, name, numero, id, estado, title, message); err != nil {
			log.WithError(err).WithField("order_id", id).Error("Failed to send order status email")
		}
	}(order.User.Email, order.User.Name, order.NumeroOrden, order.ID, order.Estado, title, message)
}

func orderStatusEmailCopy(estado, numeroOrden string) (string, string) {
	switch estado {
	case shared.OrderPreparando:
		return "Tu pedido está en preparación", fmt.Sprintf("Estamos preparando tu pedido #%s.", numeroOrden)
	case shared.OrderListo:
		return "¡Tu pedido está listo!", fmt.Sprintf("Tu pedido #%s está listo para entregar.", numeroOrden)
	case shared.OrderEntregado:
		return "Pedido entregado", fmt.Sprintf("Tu pedido #%s fue entregado. ¡Buen provecho!", numeroOrden)
	case shared.OrderCancelado:
		return "Pedido cancelado", fmt.Sprintf("Tu pedido #%s fue cancelado.", numeroOrden)
	default:
		return "", ""
	}
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// nextSequenceNumber derives the next display number (ORD-000001 style) from
// the current row count. Runs inside the caller's transaction so concurrent
// creates cannot race on sqlite; postgres callers tolerate the rare retry
// via the unique index on the column.
func nextSequenceNumber(tx *gorm.DB, m interface{}, prefix string) (string, error) {
	var count int64
	if err := tx.Model(m).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", prefix, count+1), nil
}
