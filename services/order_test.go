package services

import (
	"net/http"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/model"
	"github.com/fastbite-labs/fastbite-api/shared"
)

func newTestOrderService(t *testing.T) (*OrderService, *SqliteService) {
	t.Helper()
	s := newTestSqlService(t)
	svc := &OrderService{
		sqlSvc:          s,
		configSvc:       &ConfigService{sqlSvc: s, redisSvc: &RedisService{}},
		notificationSvc: &NotificationService{sqlSvc: s},
		emailSvc:        &EmailService{},
	}
	return svc, s
}

func TestCreateOrderUsesCatalogPrices(t *testing.T) {
	svc, s := newTestOrderService(t)
	user := createTestUser(t, s, shared.RoleCliente)
	burger := createTestProduct(t, s, "Hamburguesa Clásica", 8.99, true)
	soda := createTestProduct(t, s, "Coca-Cola", 2.49, true)

	order, err := svc.Create(user.ID, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: burger.ID, Cantidad: 2},
			{ProductID: soda.ID, Cantidad: 1},
		},
		MetodoPago: "EFECTIVO",
	})
	require.NoError(t, err)

	assert.Equal(t, "ORD-000001", order.NumeroOrden)
	assert.Equal(t, shared.OrderPendiente, order.Estado)
	assert.Equal(t, 20.47, order.Subtotal)
	assert.Equal(t, 2.05, order.Impuestos)
	assert.Equal(t, 22.52, order.Total)

	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		if item.ProductID == burger.ID {
			assert.Equal(t, 8.99, item.PrecioUnitario)
			assert.Equal(t, 17.98, item.Subtotal)
		}
	}
}

func TestCreateOrderSequenceNumbers(t *testing.T) {
	svc, s := newTestOrderService(t)
	user := createTestUser(t, s, shared.RoleCliente)
	product := createTestProduct(t, s, "Hamburguesa Doble", 12.99, true)

	req := &dto.CreateOrderRequest{
		Items:      []dto.OrderItemRequest{{ProductID: product.ID, Cantidad: 1}},
		MetodoPago: "TARJETA",
	}

	first, err := svc.Create(user.ID, req)
	require.NoError(t, err)
	second, err := svc.Create(user.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "ORD-000001", first.NumeroOrden)
	assert.Equal(t, "ORD-000002", second.NumeroOrden)
}

func TestCreateOrderRejectsUnknownProduct(t *testing.T) {
	svc, s := newTestOrderService(t)
	user := createTestUser(t, s, shared.RoleCliente)

	_, err := svc.Create(user.ID, &dto.CreateOrderRequest{
		Items:      []dto.OrderItemRequest{{ProductID: "missing", Cantidad: 1}},
		MetodoPago: "EFECTIVO",
	})
	requireAppError(t, err, http.StatusBadRequest)

	var count int64
	s.Db().Model(&model.Order{}).Count(&count)
	assert.Zero(t, count, "a rejected order must not leave rows behind")
}

func TestCreateOrderRejectsInactiveProduct(t *testing.T) {
	svc, s := newTestOrderService(t)
	user := createTestUser(t, s, shared.RoleCliente)
	product := createTestProduct(t, s, "Descontinuada", 9.99, false)

	_, err := svc.Create(user.ID, &dto.CreateOrderRequest{
		Items:      []dto.OrderItemRequest{{ProductID: product.ID, Cantidad: 1}},
		MetodoPago: "EFECTIVO",
	})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Contains(t, appErr.Message, "no está disponible")
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	svc, s := newTestOrderService(t)
	user := createTestUser(t, s, shared.RoleCliente)
	product := createTestProduct(t, s, "Hamburguesa Clásica", 8.99, true)

	order, err := svc.Create(user.ID, &dto.CreateOrderRequest{
		Items:      []dto.OrderItemRequest{{ProductID: product.ID, Cantidad: 1}},
		MetodoPago: "EFECTIVO",
	})
	require.NoError(t, err)

	for _, estado := range []string{shared.OrderPreparando, shared.OrderListo, shared.OrderEntregado} {
		order, err = svc.UpdateStatus(order.ID, &dto.UpdateOrderStatusRequest{Estado: estado})
		require.NoError(t, err)
		assert.Equal(t, estado, order.Estado)
	}

	// ENTREGADO is terminal.
	_, err = svc.UpdateStatus(order.ID, &dto.UpdateOrderStatusRequest{Estado: shared.OrderCancelado})
	requireAppError(t, err, http.StatusBadRequest)
}

func TestUpdateStatusRejectsSkippedStep(t *testing.T) {
	svc, s := newTestOrderService(t)
	user := createTestUser(t, s, shared.RoleCliente)
	product := createTestProduct(t, s, "Hamburguesa Clásica", 8.99, true)

	order, err := svc.Create(user.ID, &dto.CreateOrderRequest{
		Items:      []dto.OrderItemRequest{{ProductID: product.ID, Cantidad: 1}},
		MetodoPago: "EFECTIVO",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, &dto.UpdateOrderStatusRequest{Estado: shared.OrderEntregado})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Contains(t, appErr.Message, "No se puede pasar")
}

func TestUpdateStatusNotifiesCustomer(t *testing.T) {
	svc, s := newTestOrderService(t)
	user := createTestUser(t, s, shared.RoleCliente)
	product := createTestProduct(t, s, "Hamburguesa Clásica", 8.99, true)

	order, err := svc.Create(user.ID, &dto.CreateOrderRequest{
		Items:      []dto.OrderItemRequest{{ProductID: product.ID, Cantidad: 1}},
		MetodoPago: "EFECTIVO",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, &dto.UpdateOrderStatusRequest{Estado: shared.OrderPreparando})
	require.NoError(t, err)

	var notifications []model.Notification
	s.Db().Where("user_id = ?", user.ID).Find(&notifications)
	require.Len(t, notifications, 1)
	assert.Equal(t, shared.NotificationOrderStatus, notifications[0].Type)
	assert.Equal(t, "/pedidos/"+order.ID, notifications[0].Link)
}

func TestCancelOnlyPendingOrders(t *testing.T) {
	svc, s := newTestOrderService(t)
	user := createTestUser(t, s, shared.RoleCliente)
	product := createTestProduct(t, s, "Hamburguesa Clásica", 8.99, true)

	order, err := svc.Create(user.ID, &dto.CreateOrderRequest{
		Items:      []dto.OrderItemRequest{{ProductID: product.ID, Cantidad: 1}},
		MetodoPago: "EFECTIVO",
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.OrderCancelado, cancelled.Estado)

	_, err = svc.Cancel(order.ID, user.ID)
	requireAppError(t, err, http.StatusBadRequest)
}

func TestCancelRejectsForeignOwner(t *testing.T) {
	svc, s := newTestOrderService(t)
	owner := createTestUser(t, s, shared.RoleCliente)
	other := createTestUser(t, s, shared.RoleCliente)
	product := createTestProduct(t, s, "Hamburguesa Clásica", 8.99, true)

	order, err := svc.Create(owner.ID, &dto.CreateOrderRequest{
		Items:      []dto.OrderItemRequest{{ProductID: product.ID, Cantidad: 1}},
		MetodoPago: "EFECTIVO",
	})
	require.NoError(t, err)

	_, err = svc.Cancel(order.ID, other.ID)
	requireAppError(t, err, http.StatusForbidden)
}

func TestListFiltersByOwnerAndStatus(t *testing.T) {
	svc, s := newTestOrderService(t)
	juan := createTestUser(t, s, shared.RoleCliente)
	maria := createTestUser(t, s, shared.RoleCliente)
	product := createTestProduct(t, s, "Hamburguesa Clásica", 8.99, true)

	req := &dto.CreateOrderRequest{
		Items:      []dto.OrderItemRequest{{ProductID: product.ID, Cantidad: 1}},
		MetodoPago: "EFECTIVO",
	}
	_, err := svc.Create(juan.ID, req)
	require.NoError(t, err)
	mariaOrder, err := svc.Create(maria.ID, req)
	require.NoError(t, err)
	_, err = svc.Cancel(mariaOrder.ID, maria.ID)
	require.NoError(t, err)

	own, err := svc.List(juan.ID, "", 0)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.List("", "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cancelled, err := svc.List("", shared.OrderCancelado, 0)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, maria.ID, cancelled[0].UserID)
}

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{shared.OrderPendiente, shared.OrderPreparando, true},
		{shared.OrderPendiente, shared.OrderCancelado, true},
		{shared.OrderPendiente, shared.OrderEntregado, false},
		{shared.OrderPreparando, shared.OrderListo, true},
		{shared.OrderPreparando, shared.OrderCancelado, true},
		{shared.OrderListo, shared.OrderEntregado, true},
		{shared.OrderListo, shared.OrderCancelado, false},
		{shared.OrderEntregado, shared.OrderCancelado, false},
		{shared.OrderCancelado, shared.OrderPendiente, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, transitionAllowed(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 2.05, roundMoney(2.047))
	assert.Equal(t, 17.98, roundMoney(8.99*2))
	assert.Equal(t, 0.1, roundMoney(0.1+0.2-0.2))
}

func TestOrderStatusEmailCopy(t *testing.T) {
	title, message := orderStatusEmailCopy(shared.OrderListo, "ORD-000001")
	assert.NotEmpty(t, title)
	assert.Contains(t, message, "ORD-000001")

	title, _ = orderStatusEmailCopy(shared.OrderPendiente, "ORD-000001")
	assert.Empty(t, title, "order creation sends no status email")
}

func TestCreateOrderDefaultsAddressFromProfile(t *testing.T) {
	svc, s := newTestOrderService(t)
	user := createTestUser(t, s, shared.RoleCliente)
	product := createTestProduct(t, s, "Papas Grandes", 3.49, true)

	require.NoError(t, s.Db().Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("direccion", "Av. Insurgentes Sur 1602").Error)

	order, err := svc.Create(user.ID, &dto.CreateOrderRequest{
		Items:      []dto.OrderItemRequest{{ProductID: product.ID, Cantidad: 1}},
		MetodoPago: "EFECTIVO",
	})
	require.NoError(t, err)
	assert.Equal(t, "Av. Insurgentes Sur 1602", order.DireccionEntrega)

	explicit, err := svc.Create(user.ID, &dto.CreateOrderRequest{
		Items:            []dto.OrderItemRequest{{ProductID: product.ID, Cantidad: 1}},
		MetodoPago:       "EFECTIVO",
		DireccionEntrega: "Calle Madero 10",
	})
	require.NoError(t, err)
	assert.Equal(t, "Calle Madero 10", explicit.DireccionEntrega)
}

func TestCreateOrderStoresPaymentMeta(t *testing.T) {
	svc, s := newTestOrderService(t)
	user := createTestUser(t, s, shared.RoleCliente)
	product := createTestProduct(t, s, "Malteada de Fresa", 4.99, true)

	order, err := svc.Create(user.ID, &dto.CreateOrderRequest{
		Items:      []dto.OrderItemRequest{{ProductID: product.ID, Cantidad: 1}},
		MetodoPago: "TARJETA",
		PaymentMeta: map[string]interface{}{
			"last4":            "4242",
			"authorization_id": "auth_789",
		},
	})
	require.NoError(t, err)

	var reloaded model.Order
	require.NoError(t, s.Db().First(&reloaded, "id = ?", order.ID).Error)

	var meta map[string]interface{}
	require.NoError(t, sonic.Unmarshal(reloaded.PaymentMeta, &meta))
	assert.Equal(t, "4242", meta["last4"])
	assert.Equal(t, "auth_789", meta["authorization_id"])

	// Cash orders carry no gateway reference.
	cash, err := svc.Create(user.ID, &dto.CreateOrderRequest{
		Items:      []dto.OrderItemRequest{{ProductID: product.ID, Cantidad: 1}},
		MetodoPago: "EFECTIVO",
	})
	require.NoError(t, err)

	require.NoError(t, s.Db().First(&reloaded, "id = ?", cash.ID).Error)
	assert.Empty(t, reloaded.PaymentMeta)
}
