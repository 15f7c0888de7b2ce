package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pinkslip/internal/shared/logger"
)

const (
	// ImportLockKey is the redis key held while a batch is being applied.
	ImportLockKey = "pinkslip:import:lock"

	defaultLockTTL   = 2 * time.Minute
	defaultLockRetry = 100 * time.Millisecond
)

// releaseLockScript deletes the lock only if it still holds our token, so
// an expired lock taken over by another process is left alone.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisImportLock serializes import batches across processes sharing one
// redis instance.
type RedisImportLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	retry  time.Duration
	logger logger.Interface
}

func NewRedisImportLock(client *redis.Client, ttl time.Duration, log logger.Interface) *RedisImportLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisImportLock{
		client: client,
		key:    ImportLockKey,
		ttl:    ttl,
		retry:  defaultLockRetry,
		logger: log,
	}
}

// Acquire polls SET NX until the lock is free or ctx is done.
func (l *RedisImportLock) Acquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire import lock: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for import lock: %w", ctx.Err())
		case <-ticker.C:
		}
	}

	return func() {
		// Release even when the request context is already cancelled.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := releaseLockScript.Run(releaseCtx, l.client, []string{l.key}, token).Err(); err != nil {
			l.logger.Warnw("failed to release import lock", "key", l.key, "error", err)
		}
	}, nil
}

// LocalImportLock serializes import batches within one process.
type LocalImportLock struct {
	sem chan struct{}
}

func NewLocalImportLock() *LocalImportLock {
	return &LocalImportLock{sem: make(chan struct{}, 1)}
}

func (l *LocalImportLock) Acquire(ctx context.Context) (func(), error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("timed out waiting for import lock: %w", ctx.Err())
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		<-l.sem
	}, nil
}
