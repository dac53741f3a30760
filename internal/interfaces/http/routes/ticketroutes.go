package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/clientdesk/clientdesk/internal/infrastructure/permission"
	tickethandlers "github.com/clientdesk/clientdesk/internal/interfaces/http/handlers/ticket"
	"github.com/clientdesk/clientdesk/internal/interfaces/http/middleware"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimiter          *middleware.RateLimiter
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	perm := config.PermissionMiddleware.RequirePermission

	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth(), config.RateLimiter.Limit())
	{
		// Specific paths are registered before parameterized ones.
		tickets.POST("",
			perm(permission.ResourceTicket, permission.ActionCreate),
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			perm(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.ListTickets)
		tickets.POST("/insights",
			authorization.RequireAdmin(),
			perm(permission.ResourceTicket, permission.ActionCreateInsight),
			config.TicketHandler.CreateInsightTicket)

		tickets.POST("/:id/messages",
			perm(permission.ResourceTicket, permission.ActionReply),
			config.TicketHandler.ReplyTicket)
		tickets.POST("/:id/close",
			perm(permission.ResourceTicket, permission.ActionClose),
			config.TicketHandler.CloseTicket)
		tickets.POST("/:id/reopen",
			perm(permission.ResourceTicket, permission.ActionReopen),
			config.TicketHandler.ReopenTicket)
		tickets.PATCH("/:id/snooze",
			authorization.RequireStaff(),
			perm(permission.ResourceTicket, permission.ActionSnooze),
			config.TicketHandler.SnoozeTicket)

		tickets.GET("/:id",
			perm(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.GetThread)
		tickets.PATCH("/:id",
			authorization.RequireStaff(),
			perm(permission.ResourceTicket, permission.ActionUpdate),
			config.TicketHandler.UpdateTicket)
	}
}
