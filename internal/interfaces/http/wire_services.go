package http

import (
	"fmt"

	"github.com/clientdesk/clientdesk/internal/application/ticket/escalation"
	"github.com/clientdesk/clientdesk/internal/application/ticket/runner"
	"github.com/clientdesk/clientdesk/internal/infrastructure/ai"
	"github.com/clientdesk/clientdesk/internal/infrastructure/auth"
	"github.com/clientdesk/clientdesk/internal/infrastructure/billing"
	"github.com/clientdesk/clientdesk/internal/infrastructure/email"
	"github.com/clientdesk/clientdesk/internal/infrastructure/notify"
	"github.com/clientdesk/clientdesk/internal/infrastructure/permission"
	"github.com/clientdesk/clientdesk/internal/infrastructure/ratelimit"
	"github.com/clientdesk/clientdesk/internal/interfaces/http/middleware"
	"github.com/clientdesk/clientdesk/internal/shared/db"
	"github.com/clientdesk/clientdesk/internal/shared/keylock"
	"github.com/clientdesk/clientdesk/internal/shared/services/markdown"
)

func (c *Container) initServices() error {
	c.markdown = markdown.NewMarkdownService()
	c.txMgr = db.NewTransactionManager(c.db)
	c.locks = keylock.New()
	c.runner = runner.New(c.repos.ticketRepo, c.txMgr, c.locks)

	c.initPublisher()
	c.dispatcher = notify.NewDispatcher(
		c.repos.userDirectory,
		c.repos.notificationRepo,
		c.newMailer(),
		c.publisher,
		c.log.Named("notify"),
	)

	if c.cfg.AI.Enabled {
		if err := c.initEscalation(); err != nil {
			return err
		}
	} else {
		c.log.Infow("automated replies disabled")
	}

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Issuer, c.cfg.Auth.JWT.AccessTTL)

	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitDefaultPolicies(enforcer, c.log); err != nil {
		return fmt.Errorf("failed to initialize permission policies: %w", err)
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, c.log)
	if c.cfg.RateLimit.Enabled && c.redis != nil {
		c.rateLimiter = middleware.NewRateLimiter(
			ratelimit.NewRedisRateLimiter(c.redis),
			c.cfg.RateLimit.Limit,
			c.cfg.RateLimit.Window,
			c.log,
		)
	}
	return nil
}

// initPublisher falls back to no event publishing when the broker is unreachable.
func (c *Container) initPublisher() {
	if c.cfg.MQ.URL == "" {
		c.publisher = notify.NoopPublisher{}
		return
	}
	pub, err := notify.NewRabbitPublisher(c.cfg.MQ.URL, c.cfg.MQ.Exchange)
	if err != nil {
		c.log.Warnw("ticket event publishing disabled", "error", err)
		c.publisher = notify.NoopPublisher{}
		return
	}
	c.publisher = pub
}

func (c *Container) newMailer() notify.Mailer {
	if !c.cfg.Email.Enabled {
		return nil
	}
	return email.NewSMTPEmailService(email.SMTPConfig{
		Host:        c.cfg.Email.SMTPHost,
		Port:        c.cfg.Email.SMTPPort,
		Username:    c.cfg.Email.SMTPUser,
		Password:    c.cfg.Email.SMTPPassword,
		FromAddress: c.cfg.Email.FromAddress,
		FromName:    c.cfg.Email.FromName,
		BaseURL:     c.cfg.Server.BaseURL,
	}, c.markdown)
}

func (c *Container) newModelCache() ai.ModelCache {
	switch c.cfg.AI.ModelCache {
	case "redis":
		if c.redis != nil {
			return ai.NewRedisModelCache(c.redis)
		}
		c.log.Warnw("redis model cache requested but redis is disabled, using memory")
		return ai.NewMemoryModelCache()
	case "memory":
		return ai.NewMemoryModelCache()
	default:
		return ai.NewSettingModelCache(c.repos.settingRepo)
	}
}

func (c *Container) initEscalation() error {
	provider := ai.NewGeminiProvider(c.cfg.AI.BaseURL, c.cfg.AI.APIKey, c.cfg.AI.RequestTimeout, c.log.Named("gemini"))
	c.gateway = ai.NewGateway(provider, c.newModelCache(), c.cfg.AI.FallbackModel, c.log.Named("ai"))

	kb, err := escalation.LoadKnowledgeBase(c.cfg.Escalation.KnowledgeBasePath)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	var billingClient escalation.BillingClient = billing.NoopClient{}
	if c.cfg.Billing.BaseURL != "" {
		billingClient = billing.NewHTTPClient(c.cfg.Billing.BaseURL, c.cfg.Billing.APIKey, c.cfg.Billing.Timeout, c.log.Named("billing"))
	}

	c.engine = escalation.NewEngine(
		c.repos.ticketRepo,
		c.repos.messageRepo,
		c.repos.userDirectory,
		c.runner,
		c.gateway,
		billingClient,
		c.dispatcher,
		kb,
		escalation.Config{
			ThinkingDelay: c.cfg.Escalation.ThinkingDelay,
			SpacingDelay:  c.cfg.Escalation.SpacingDelay,
		},
		c.log,
	)
	return nil
}
