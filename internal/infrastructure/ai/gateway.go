package ai

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

// Gateway resolves the active model and heals itself when the provider retires it.
type Gateway struct {
	provider      Provider
	cache         ModelCache
	fallbackModel string
	refreshGroup  singleflight.Group
	logger        logger.Interface
}

func NewGateway(provider Provider, cache ModelCache, fallbackModel string, log logger.Interface) *Gateway {
	if fallbackModel == "" {
		fallbackModel = DefaultModel
	}
	return &Gateway{
		provider:      provider,
		cache:         cache,
		fallbackModel: fallbackModel,
		logger:        log,
	}
}

// Complete returns the model's raw text. A model that is reported missing or unsupported
// triggers one catalog refresh and, if that yields a different model, one retry.
func (g *Gateway) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model := g.activeModel(ctx)

	text, err := g.provider.Generate(ctx, model, systemPrompt, userPrompt)
	if err != nil && IsModelUnavailable(err) {
		g.logger.Warnw("active model unavailable, refreshing catalog",
			"model", model,
			"error", err,
		)
		refreshed, rerr := g.RefreshModel(ctx)
		if rerr == nil && refreshed != model {
			model = refreshed
			text, err = g.provider.Generate(ctx, model, systemPrompt, userPrompt)
		}
	}
	if err != nil {
		return "", &GatewayError{Op: "generate", Model: model, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &GatewayError{Op: "generate", Model: model, Err: ErrEmptyCompletion}
	}
	return text, nil
}

// activeModel reads the cache and refreshes on a miss. Cache failures degrade to a refresh.
func (g *Gateway) activeModel(ctx context.Context) string {
	model, err := g.cache.Get(ctx)
	if err != nil {
		g.logger.Warnw("failed to read active model", "error", err)
	}
	if model != "" {
		return model
	}

	refreshed, err := g.RefreshModel(ctx)
	if err != nil {
		return g.fallbackModel
	}
	return refreshed
}

// RefreshModel picks the first flash model that supports content generation and stores it.
// Concurrent callers share one catalog request.
func (g *Gateway) RefreshModel(ctx context.Context) (string, error) {
	v, err, _ := g.refreshGroup.Do("refresh", func() (interface{}, error) {
		models, err := g.provider.ListModels(ctx)
		if err != nil {
			g.logger.Errorw("failed to list models, using fallback",
				"fallback", g.fallbackModel,
				"error", err,
			)
			// The fallback is not cached so the next call retries the catalog.
			return g.fallbackModel, nil
		}

		selected := SelectModel(models, g.fallbackModel)
		if err := g.cache.Set(ctx, selected); err != nil {
			g.logger.Warnw("failed to persist active model", "model", selected, "error", err)
		}
		g.logger.Infow("active model selected", "model", selected, "catalog_size", len(models))
		return selected, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// SelectModel returns the first catalog entry whose name contains "flash" and which
// supports content generation, or fallback when there is none.
func SelectModel(models []ModelInfo, fallback string) string {
	for _, m := range models {
		if strings.Contains(strings.ToLower(m.Name), "flash") && m.SupportsGeneration() {
			return m.Name
		}
	}
	return fallback
}
