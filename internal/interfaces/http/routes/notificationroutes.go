package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/clientdesk/clientdesk/internal/infrastructure/permission"
	"github.com/clientdesk/clientdesk/internal/interfaces/http/handlers"
	"github.com/clientdesk/clientdesk/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler  *handlers.NotificationHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupNotificationRoutes(engine *gin.Engine, config *NotificationRouteConfig) {
	perm := config.PermissionMiddleware.RequirePermission

	notifications := engine.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	{
		notifications.GET("",
			perm(permission.ResourceNotification, permission.ActionRead),
			config.NotificationHandler.ListNotifications)
		notifications.PATCH("/:id/read",
			perm(permission.ResourceNotification, permission.ActionUpdate),
			config.NotificationHandler.MarkNotificationAsRead)
	}
}
