package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/clientdesk/clientdesk/internal/domain/setting"
	"github.com/clientdesk/clientdesk/internal/shared/constants"
)

const activeModelRedisKey = "ai:active_model"

// ModelCache stores the active model identifier. Get returns "" when nothing is cached.
type ModelCache interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, model string) error
}

// RedisModelCache keeps the identifier in Redis without expiry.
type RedisModelCache struct {
	client *redis.Client
}

func NewRedisModelCache(client *redis.Client) *RedisModelCache {
	return &RedisModelCache{client: client}
}

func (c *RedisModelCache) Get(ctx context.Context) (string, error) {
	val, err := c.client.Get(ctx, activeModelRedisKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get active model: %w", err)
	}
	return val, nil
}

func (c *RedisModelCache) Set(ctx context.Context, model string) error {
	if err := c.client.Set(ctx, activeModelRedisKey, model, 0).Err(); err != nil {
		return fmt.Errorf("failed to save active model: %w", err)
	}
	return nil
}

// SettingModelCache keeps the identifier in the system_settings table.
type SettingModelCache struct {
	repo setting.Repository
}

func NewSettingModelCache(repo setting.Repository) *SettingModelCache {
	return &SettingModelCache{repo: repo}
}

func (c *SettingModelCache) Get(ctx context.Context) (string, error) {
	s, err := c.repo.Get(ctx, constants.SettingActiveAIModel)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return "", nil
		}
		return "", err
	}
	return s.Value, nil
}

func (c *SettingModelCache) Set(ctx context.Context, model string) error {
	return c.repo.Upsert(ctx, constants.SettingActiveAIModel, model)
}

// MemoryModelCache is process-local.
type MemoryModelCache struct {
	mu    sync.RWMutex
	model string
}

func NewMemoryModelCache() *MemoryModelCache {
	return &MemoryModelCache{}
}

func (c *MemoryModelCache) Get(_ context.Context) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model, nil
}

func (c *MemoryModelCache) Set(_ context.Context, model string) error {
	c.mu.Lock()
	c.model = model
	c.mu.Unlock()
	return nil
}
