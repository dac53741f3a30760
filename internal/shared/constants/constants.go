package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Keys set on gin.Context by the auth middleware.
	ContextKeyUserID      = "user_id"
	ContextKeyUserRole    = "user_role"
	ContextKeyDisplayName = "display_name"
	ContextKeyRequestID   = "request_id"

	TableTickets        = "tickets"
	TableTicketMessages = "ticket_messages"
	TableUsers          = "users"
	TablePartnerClients = "partner_clients"
	TableNotifications  = "notifications"
	TableSystemSettings = "system_settings"

	// SettingActiveAIModel is the system_settings key holding the active model id.
	SettingActiveAIModel = "ai.active_model"
)
