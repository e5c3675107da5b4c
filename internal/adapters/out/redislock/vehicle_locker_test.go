package redislock

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tracker/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLocker(t *testing.T, maxWait time.Duration) (*VehicleLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewVehicleLocker(client, maxWait, slog.New(slog.NewTextHandler(io.Discard, nil))), mr
}

func TestVehicleLocker_LockAndUnlock(t *testing.T) {
	locker, mr := setupLocker(t, 100*time.Millisecond)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "intake:any:ABC123", 15*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:intake:any:ABC123"))
	assert.Equal(t, 15*time.Second, mr.TTL("lock:intake:any:ABC123"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("lock:intake:any:ABC123"))
}

func TestVehicleLocker_HeldLockIsNotAcquired(t *testing.T) {
	locker, _ := setupLocker(t, 100*time.Millisecond)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "intake:any:ABC123", 15*time.Second)
	require.NoError(t, err)
	defer func() { _ = unlock(ctx) }()

	_, err = locker.Lock(ctx, "intake:any:ABC123", 15*time.Second)
	require.ErrorIs(t, err, ports.ErrLockNotAcquired)
}

func TestVehicleLocker_DifferentKeysDoNotBlock(t *testing.T) {
	locker, _ := setupLocker(t, 100*time.Millisecond)
	ctx := context.Background()

	_, err := locker.Lock(ctx, "intake:any:ABC123", time.Minute)
	require.NoError(t, err)

	_, err = locker.Lock(ctx, "intake:any:XYZ789", time.Minute)
	require.NoError(t, err)
}

func TestVehicleLocker_WaitsForRelease(t *testing.T) {
	locker, _ := setupLocker(t, 2*time.Second)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "intake:any:ABC123", time.Minute)
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = unlock(ctx)
	}()

	second, err := locker.Lock(ctx, "intake:any:ABC123", time.Minute)
	require.NoError(t, err)
	require.NoError(t, second(ctx))
}

func TestVehicleLocker_ExpiredLockIsNotReleasedByOldOwner(t *testing.T) {
	locker, mr := setupLocker(t, 100*time.Millisecond)
	ctx := context.Background()

	stale, err := locker.Lock(ctx, "intake:any:ABC123", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	fresh, err := locker.Lock(ctx, "intake:any:ABC123", time.Minute)
	require.NoError(t, err)

	require.NoError(t, stale(ctx))
	assert.True(t, mr.Exists("lock:intake:any:ABC123"))

	require.NoError(t, fresh(ctx))
	assert.False(t, mr.Exists("lock:intake:any:ABC123"))
}

func TestVehicleLocker_CancelledContext(t *testing.T) {
	locker, _ := setupLocker(t, 5*time.Second)

	unlock, err := locker.Lock(context.Background(), "intake:any:ABC123", time.Minute)
	require.NoError(t, err)
	defer func() { _ = unlock(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, "intake:any:ABC123", time.Minute)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrLockNotAcquired)
}

func TestVehicleLocker_OneHolderAtATime(t *testing.T) {
	locker, _ := setupLocker(t, 3*time.Second)
	ctx := context.Background()

	var (
		holders int32
		maxSeen int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(ctx, "intake:any:ABC123", time.Minute)
			if !assert.NoError(t, err) {
				return
			}
			current := atomic.AddInt32(&holders, 1)
			for {
				seen := atomic.LoadInt32(&maxSeen)
				if current <= seen || atomic.CompareAndSwapInt32(&maxSeen, seen, current) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&holders, -1)
			assert.NoError(t, unlock(ctx))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
}
