// Package cache provides Redis-backed caches for hot read paths.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	accountingapp "github.com/simpleaccounting/backend/internal/application/accounting"
	workspaceapp "github.com/simpleaccounting/backend/internal/application/workspace"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
	"github.com/simpleaccounting/backend/internal/domain/workspace"
	"github.com/simpleaccounting/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure WorkspaceSettingsCache serves both application-layer contracts
var (
	_ accountingapp.SettingsProvider   = (*WorkspaceSettingsCache)(nil)
	_ workspaceapp.SettingsInvalidator = (*WorkspaceSettingsCache)(nil)
)

const defaultSettingsTTL = 10 * time.Minute

// WorkspaceSettingsCache is a cache-aside layer over the workspace repository
// for the settings consumed on every record write, most importantly the
// workspace default currency. A stale entry only delays visibility of a
// currency change, so values expire on a short TTL and are invalidated
// explicitly when the workspace is updated.
type WorkspaceSettingsCache struct {
	client        *redis.Client
	ownsClient    bool
	workspaceRepo workspace.WorkspaceRepository
	ttl           time.Duration
	logger        *zap.Logger
}

// WorkspaceSettingsCacheOption is a functional option for configuring the cache
type WorkspaceSettingsCacheOption func(*WorkspaceSettingsCache)

// WithSettingsTTL sets the cache entry TTL
func WithSettingsTTL(ttl time.Duration) WorkspaceSettingsCacheOption {
	return func(c *WorkspaceSettingsCache) {
		c.ttl = ttl
	}
}

// WithSettingsLogger sets the logger for the cache
func WithSettingsLogger(logger *zap.Logger) WorkspaceSettingsCacheOption {
	return func(c *WorkspaceSettingsCache) {
		c.logger = logger
	}
}

// NewWorkspaceSettingsCache creates a new Redis-backed settings cache
func NewWorkspaceSettingsCache(cfg config.RedisConfig, workspaceRepo workspace.WorkspaceRepository, opts ...WorkspaceSettingsCacheOption) (*WorkspaceSettingsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &WorkspaceSettingsCache{
		client:        client,
		ownsClient:    true,
		workspaceRepo: workspaceRepo,
		ttl:           defaultSettingsTTL,
		logger:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewWorkspaceSettingsCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewWorkspaceSettingsCacheWithClient(client *redis.Client, workspaceRepo workspace.WorkspaceRepository, opts ...WorkspaceSettingsCacheOption) *WorkspaceSettingsCache {
	cache := &WorkspaceSettingsCache{
		client:        client,
		ownsClient:    false,
		workspaceRepo: workspaceRepo,
		ttl:           defaultSettingsTTL,
		logger:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *WorkspaceSettingsCache) currencyKey(workspaceID uuid.UUID) string {
	return fmt.Sprintf("workspace_settings:currency:%s", workspaceID)
}

// DefaultCurrency returns the workspace default currency, reading through the
// cache. A Redis failure falls back to the repository; the write is retried
// on the next miss.
func (c *WorkspaceSettingsCache) DefaultCurrency(ctx context.Context, workspaceID uuid.UUID) (valueobject.Currency, error) {
	key := c.currencyKey(workspaceID)

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return valueobject.Currency(cached), nil
	}
	if err != nil && err != redis.Nil {
		c.logger.Warn("Settings cache read failed, falling back to repository",
			zap.String("workspace_id", workspaceID.String()),
			zap.Error(err))
	}

	ws, err := c.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return "", err
	}
	if ws == nil {
		return "", shared.NewDomainError("NOT_FOUND", "Workspace not found")
	}

	if err := c.client.Set(ctx, key, string(ws.DefaultCurrency), c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache workspace currency",
			zap.String("workspace_id", workspaceID.String()),
			zap.Error(err))
	}

	return ws.DefaultCurrency, nil
}

// Invalidate drops the cached settings for a workspace
func (c *WorkspaceSettingsCache) Invalidate(ctx context.Context, workspaceID uuid.UUID) error {
	if err := c.client.Del(ctx, c.currencyKey(workspaceID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate workspace settings: %w", err)
	}
	return nil
}

// Close releases the Redis client if this cache owns it
func (c *WorkspaceSettingsCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
