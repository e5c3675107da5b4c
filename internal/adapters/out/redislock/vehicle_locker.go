// Package redislock serialises order intake per vehicle with Redis locks.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tracker/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix      = "lock:"
	defaultMaxWait = 5 * time.Second
)

var errLockHeld = errors.New("lock held")

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another caller is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewClient connects to Redis and checks the connection.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redislock: ping: %w", err)
	}

	return client, nil
}

// VehicleLocker implements ports.VehicleLocker with SET NX PX. Acquisition is
// retried with exponential backoff for at most maxWait.
type VehicleLocker struct {
	client  redis.UniversalClient
	maxWait time.Duration
	logger  *slog.Logger
}

func NewVehicleLocker(client redis.UniversalClient, maxWait time.Duration, logger *slog.Logger) *VehicleLocker {
	if maxWait <= 0 {
		maxWait = defaultMaxWait
	}
	return &VehicleLocker{
		client:  client,
		maxWait: maxWait,
		logger:  logger.With("component", "VehicleLocker"),
	}
}

// Lock blocks until key is acquired, ctx is done or maxWait has elapsed.
// ports.ErrLockNotAcquired is returned when the key stayed held.
func (l *VehicleLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 25 * time.Millisecond
	policy.MaxInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = l.maxWait

	err := backoff.Retry(func() error {
		ok, err := l.client.SetNX(ctx, redisKey, token, ttl).Result()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ok {
			return errLockHeld
		}
		return nil
	}, backoff.WithContext(policy, ctx))

	switch {
	case err == nil:
	case errors.Is(err, errLockHeld):
		l.logger.WarnContext(ctx, "Lock still held after waiting", "key", redisKey, "max_wait", l.maxWait)
		return nil, fmt.Errorf("%w: %s", ports.ErrLockNotAcquired, key)
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	return func(ctx context.Context) error {
		released, err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int()
		if err != nil {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		if released == 0 {
			l.logger.WarnContext(ctx, "Lock expired before release", "key", redisKey)
		}
		return nil
	}, nil
}
