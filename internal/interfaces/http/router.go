package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/clientdesk/clientdesk/docs"
	"github.com/clientdesk/clientdesk/internal/interfaces/http/middleware"
	"github.com/clientdesk/clientdesk/internal/interfaces/http/routes"
	"github.com/clientdesk/clientdesk/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	container *Container
}

func NewRouter(container *Container) *Router {
	return &Router{container: container}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container
	engine := c.router

	utils.RegisterBindingValidators()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(c.log))
	engine.Use(middleware.Recovery(c.log))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	if c.cfg.Server.Mode != gin.ReleaseMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupTicketRoutes(engine, &routes.TicketRouteConfig{
		TicketHandler:        c.hdlrs.ticketHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		RateLimiter:          c.rateLimiter,
	})

	routes.SetupNotificationRoutes(engine, &routes.NotificationRouteConfig{
		NotificationHandler:  c.hdlrs.notificationHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupAdminRoutes(engine, &routes.AdminRouteConfig{
		AIModelHandler:       c.hdlrs.aiModelHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.container.router
}
