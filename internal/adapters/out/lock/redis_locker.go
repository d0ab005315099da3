package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultKeyPrefix = "storefront:order-lock:"
	defaultTTL       = 30 * time.Second
	defaultRetry     = 50 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another process is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLockerConfig tunes the Redis lock. Zero values fall back to defaults.
type RedisLockerConfig struct {
	KeyPrefix string
	// TTL bounds how long a crashed holder can block an order.
	TTL        time.Duration
	RetryDelay time.Duration
}

// RedisLocker is an OrderLocker shared by every instance of the service.
type RedisLocker struct {
	client     redis.UniversalClient
	keyPrefix  string
	ttl        time.Duration
	retryDelay time.Duration
	logger     *zap.Logger
}

var _ ports.OrderLocker = (*RedisLocker)(nil)

func NewRedisLocker(client redis.UniversalClient, config RedisLockerConfig, logger *zap.Logger) *RedisLocker {
	l := &RedisLocker{
		client:     client,
		keyPrefix:  config.KeyPrefix,
		ttl:        config.TTL,
		retryDelay: config.RetryDelay,
		logger:     logger.With(zap.String("component", "order-locker")),
	}
	if l.keyPrefix == "" {
		l.keyPrefix = defaultKeyPrefix
	}
	if l.ttl <= 0 {
		l.ttl = defaultTTL
	}
	if l.retryDelay <= 0 {
		l.retryDelay = defaultRetry
	}
	return l
}

// Lock polls SET NX PX until the key is ours or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, orderID kernel.UUID) (ports.UnlockFunc, error) {
	key := l.keyPrefix + orderID.String()
	token := uuid.NewString()

	ticker := time.NewTicker(l.retryDelay)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("failed to acquire order lock: %w", err)
		}
		if ok {
			return l.unlock(key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlock(key, token string) ports.UnlockFunc {
	return func() {
		// The caller's context may already be cancelled; release regardless.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			l.logger.Warn("failed to release order lock", zap.String("key", key), zap.Error(err))
		}
	}
}
