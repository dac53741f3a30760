package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/clientdesk/clientdesk/internal/application/ticket/escalation"
	"github.com/clientdesk/clientdesk/internal/application/ticket/runner"
	"github.com/clientdesk/clientdesk/internal/application/ticket/usecases"
	"github.com/clientdesk/clientdesk/internal/infrastructure/ai"
	"github.com/clientdesk/clientdesk/internal/infrastructure/auth"
	"github.com/clientdesk/clientdesk/internal/infrastructure/config"
	"github.com/clientdesk/clientdesk/internal/infrastructure/notify"
	"github.com/clientdesk/clientdesk/internal/interfaces/http/middleware"
	"github.com/clientdesk/clientdesk/internal/shared/db"
	"github.com/clientdesk/clientdesk/internal/shared/keylock"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
	"github.com/clientdesk/clientdesk/internal/shared/services/markdown"
)

// Container holds the infrastructure, repositories, use cases and handlers of the
// ticket core and wires them together.
type Container struct {
	// Core infrastructure
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter

	// Shared services
	markdown   markdown.MarkdownService
	txMgr      *db.TransactionManager
	locks      *keylock.Locker
	runner     *runner.Runner
	publisher  notify.EventPublisher
	dispatcher *notify.Dispatcher
	jwtSvc     *auth.JWTService

	// Automated replies; nil when AI is disabled.
	gateway *ai.Gateway
	engine  *escalation.Engine
}

// NewContainer wires every component. redisClient may be nil when Redis is disabled.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		router: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	c.initUseCases()
	c.initHandlers()

	return c, nil
}

// AutoCloseIdleUseCase is exposed for the scheduler and the sweep command.
func (c *Container) AutoCloseIdleUseCase() *usecases.AutoCloseIdleUseCase {
	return c.ucs.autoCloseIdleUC
}

// Shutdown releases resources owned by the container. The database and Redis
// clients belong to the caller.
func (c *Container) Shutdown() error {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}
	return nil
}
