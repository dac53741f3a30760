package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/clientdesk/clientdesk/internal/infrastructure/permission"
	"github.com/clientdesk/clientdesk/internal/interfaces/http/handlers"
	"github.com/clientdesk/clientdesk/internal/interfaces/http/middleware"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
)

type AdminRouteConfig struct {
	AIModelHandler       *handlers.AIModelHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupAdminRoutes(engine *gin.Engine, config *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(config.AuthMiddleware.RequireAuth(), authorization.RequireAdmin())
	{
		admin.POST("/ai/model/refresh",
			config.PermissionMiddleware.RequirePermission(permission.ResourceAIModel, permission.ActionRefresh),
			config.AIModelHandler.RefreshModel)
	}
}
