package customer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"retail-customers/internal/domain"
)

const (
	cacheKeyPrefix  = "customer:"
	defaultCacheTTL = 15 * time.Minute
)

type cachedRepo struct {
	inner  Repository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCached wraps inner with a Redis read-through cache for FindByID.
// Writes go to inner first and then evict the cached entry, so only reads
// populate the cache. Cache errors are logged and never fail the call.
func NewCached(inner Repository, client *redis.Client, ttl time.Duration, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &cachedRepo{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(id domain.CustomerID) string {
	return cacheKeyPrefix + id.String()
}

func (r *cachedRepo) Save(ctx context.Context, c *domain.Customer) error {
	if err := r.inner.Save(ctx, c); err != nil {
		return err
	}
	r.evict(ctx, c.ID())
	return nil
}

func (r *cachedRepo) FindByID(ctx context.Context, id domain.CustomerID) (*domain.Customer, error) {
	data, err := r.client.Get(ctx, cacheKey(id)).Bytes()
	switch {
	case err == nil:
		var rec Record
		if err := json.Unmarshal(data, &rec); err == nil {
			if c, err := rec.Customer(); err == nil {
				return c, nil
			}
		}
		r.logger.Warn("discarding unreadable cache entry", zap.String("id", id.String()))
		r.evict(ctx, id)
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("cache get failed", zap.String("id", id.String()), zap.Error(err))
	}

	c, err := r.inner.FindByID(ctx, id)
	if err != nil || c == nil {
		return c, err
	}
	r.store(ctx, c)
	return c, nil
}

func (r *cachedRepo) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	return r.inner.FindAll(ctx)
}

func (r *cachedRepo) Update(ctx context.Context, c *domain.Customer) error {
	if err := r.inner.Update(ctx, c); err != nil {
		return err
	}
	r.evict(ctx, c.ID())
	return nil
}

func (r *cachedRepo) Delete(ctx context.Context, id domain.CustomerID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *cachedRepo) FindAllSortedByCredit(ctx context.Context, ascending bool) ([]*domain.Customer, error) {
	return r.inner.FindAllSortedByCredit(ctx, ascending)
}

func (r *cachedRepo) store(ctx context.Context, c *domain.Customer) {
	data, err := json.Marshal(ToRecord(c))
	if err != nil {
		r.logger.Warn("encode cache entry", zap.String("id", c.ID().String()), zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, cacheKey(c.ID()), data, r.ttl).Err(); err != nil {
		r.logger.Warn("cache set failed", zap.String("id", c.ID().String()), zap.Error(err))
	}
}

func (r *cachedRepo) evict(ctx context.Context, id domain.CustomerID) {
	if err := r.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		r.logger.Warn("cache delete failed", zap.String("id", id.String()), zap.Error(err))
	}
}
