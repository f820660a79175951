package shared

const (
	UserID    = "user_id"
	UserRole  = "user_role"
	UserEmail = "user_email"

	RoleAdmin   = "ADMIN"
	RoleStaff   = "STAFF"
	RoleCliente = "CLIENTE"

	OrderPendiente  = "PENDIENTE"
	OrderPreparando = "PREPARANDO"
	OrderListo      = "LISTO"
	OrderEntregado  = "ENTREGADO"
	OrderCancelado  = "CANCELADO"

	TicketAbierto   = "ABIERTO"
	TicketEnProceso = "EN_PROCESO"
	TicketResuelto  = "RESUELTO"
	TicketCerrado   = "CERRADO"

	PriorityBaja    = "BAJA"
	PriorityMedia   = "MEDIA"
	PriorityAlta    = "ALTA"
	PriorityUrgente = "URGENTE"

	NotificationOrderStatus    = "ORDER_STATUS"
	NotificationTicketResponse = "TICKET_RESPONSE"
	NotificationSystem         = "SYSTEM"
	NotificationPromotion      = "PROMOTION"
)

// Security event types recorded by the security log service.
const (
	EventLoginSuccess           = "LOGIN_SUCCESS"
	EventLoginFailed            = "LOGIN_FAILED"
	EventLogout                 = "LOGOUT"
	EventPasswordResetRequested = "PASSWORD_RESET_REQUESTED"
	EventPasswordResetCompleted = "PASSWORD_RESET_COMPLETED"
	EventUnauthorizedAccess     = "UNAUTHORIZED_ACCESS"
	EventForbiddenAction        = "FORBIDDEN_ACTION"
	EventRateLimitExceeded      = "RATE_LIMIT_EXCEEDED"
	EventMaliciousInput         = "MALICIOUS_INPUT_DETECTED"
	EventValidationFailed       = "VALIDATION_FAILED"
	EventUserCreated            = "USER_CREATED"
	EventUserDeleted            = "USER_DELETED"
	EventUserRoleChanged        = "USER_ROLE_CHANGED"
	EventBulkOperation          = "BULK_OPERATION"
	EventAPIError               = "API_ERROR"
)

// Security levels, ordered by severity.
const (
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
)
