package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pinkslip/internal/shared/config"
	"pinkslip/internal/shared/logger"
)

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.GetAddr(), err)
	}
	return client, nil
}

// ImportLock serializes import batches.
type ImportLock interface {
	Acquire(ctx context.Context) (func(), error)
}

// NewImportLock returns a redis-backed lock when redis is enabled and a
// process-local one otherwise. The returned close func is never nil.
func NewImportLock(ctx context.Context, cfg *config.RedisConfig, log logger.Interface) (ImportLock, func() error, error) {
	if !cfg.Enabled {
		log.Infow("redis disabled, import batches serialize in-process")
		return NewLocalImportLock(), func() error { return nil }, nil
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Infow("import lock backed by redis", "addr", cfg.GetAddr())
	ttl := time.Duration(cfg.LockTTLMs) * time.Millisecond
	return NewRedisImportLock(client, ttl, log), client.Close, nil
}
