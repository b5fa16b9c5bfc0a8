// Package storage picks and assembles the customer repository from config.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"retail-customers/internal/config"
	"retail-customers/internal/db"
	"retail-customers/internal/logger"
	"retail-customers/internal/migrate"
	customerrepo "retail-customers/internal/repository/customer"
)

// Store is the configured repository plus the resources backing it.
type Store struct {
	Repo   customerrepo.Repository
	Driver string

	pool  *pgxpool.Pool
	redis *redis.Client
}

// Open builds the repository selected by cfg.StorageDriver and, when
// cfg.RedisURL is set, wraps it with the Redis cache.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (*Store, error) {
	log = logger.OrNop(log)
	s := &Store{Driver: cfg.StorageDriver}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		s.Repo = customerrepo.NewMemory()
	case config.DriverFile, "":
		s.Driver = config.DriverFile
		repo, err := customerrepo.NewFile(cfg.DataFile, log.Named("repo.file"))
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		s.Repo = repo
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		if err := migrate.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		s.pool = pool
		s.Repo = customerrepo.NewPostgres(pool, log.Named("repo.postgres"))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable at startup; cache calls will fall through", zap.Error(err))
		}
		s.redis = client
		s.Repo = customerrepo.NewCached(s.Repo, client, cfg.CacheTTL, log.Named("repo.cache"))
	}

	log.Info("storage ready", zap.String("driver", s.Driver), zap.Bool("cache", s.redis != nil))
	return s, nil
}

// Ping reports whether the backing database is reachable. Stores without a
// database are always ready; the cache is optional and not checked.
func (s *Store) Ping(ctx context.Context) error {
	if s.pool != nil {
		return db.Ping(ctx, s.pool)
	}
	return nil
}

// Close releases the database pool and Redis client.
func (s *Store) Close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}
