package ports

import (
	"context"
	"errors"
	"time"

	"tracker/internal/core/domain/model/order"
)

// ErrLockNotAcquired is returned when a lock stays held by someone else for
// longer than the locker is willing to wait.
var ErrLockNotAcquired = errors.New("lock not acquired")

// UnlockFunc releases a lock obtained from VehicleLocker.
type UnlockFunc func(ctx context.Context) error

// VehicleLocker serialises the lookup-then-create sequence for one plate.
type VehicleLocker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}

// EventPublisher ships order lifecycle events. Publishing is fire-and-forget:
// a delivery failure never undoes the committed change.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event)
}

// Clock returns the current time. Handlers take it so tests can pin time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in UTC.
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })
