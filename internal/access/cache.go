package access

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// roleCacheTTL bounds staleness after an out-of-band membership change.
// Membership mutations made through this service invalidate the affected
// key directly; the TTL only covers writers this process never sees.
const roleCacheTTL = 30 * time.Second

// missSentinel caches "not a member" so repeated probes by non-members do
// not hit the database every time.
const missSentinel = "__none__"

// CachedLookup is a read-through redis cache in front of another RoleLookup.
// A nil client degrades to the wrapped lookup, which keeps tests and
// redis-less deployments working.
type CachedLookup struct {
	next   RoleLookup
	client *redis.Client
	logger *zap.Logger
}

// NewCachedLookup wraps next with a redis read-through cache.
func NewCachedLookup(next RoleLookup, client *redis.Client, logger *zap.Logger) *CachedLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedLookup{next: next, client: client, logger: logger}
}

// GetRole implements RoleLookup.
func (c *CachedLookup) GetRole(ctx context.Context, projectID, userID uuid.UUID) (domain.ProjectRole, error) {
	if c.client == nil {
		return c.next.GetRole(ctx, projectID, userID)
	}

	key := roleCacheKey(projectID, userID)
	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		if cached == missSentinel {
			return "", gorm.ErrRecordNotFound
		}
		return domain.ProjectRole(cached), nil
	}
	if err != redis.Nil {
		// Cache trouble must not block authorization.
		c.logger.Warn("Role cache read failed, falling through", zap.Error(err))
	}

	role, err := c.next.GetRole(ctx, projectID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.set(ctx, key, missSentinel)
		}
		return "", err
	}

	c.set(ctx, key, string(role))
	return role, nil
}

// Invalidate drops the cached role for (projectID, userID) so a membership
// change is visible on the next authorization rather than after the TTL.
func (c *CachedLookup) Invalidate(ctx context.Context, projectID, userID uuid.UUID) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, roleCacheKey(projectID, userID)).Err(); err != nil {
		c.logger.Warn("Role cache invalidation failed", zap.Error(err))
	}
}

func (c *CachedLookup) set(ctx context.Context, key, value string) {
	if err := c.client.Set(ctx, key, value, roleCacheTTL).Err(); err != nil {
		c.logger.Warn("Role cache write failed", zap.Error(err))
	}
}

func roleCacheKey(projectID, userID uuid.UUID) string {
	return fmt.Sprintf("role:%s:%s", projectID, userID)
}
