package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventplanner/internal/shared/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SlotLocker serialises creates and edits touching the same
// vendor/service/date before they reach the database.
type SlotLocker interface {
	Acquire(ctx context.Context, vendorID, serviceID uuid.UUID, date Date) (release func(), err error)
}

var errSlotBusy = errors.New("slot lock busy")

// Compare-and-delete so an expired holder cannot release a newer lock
const luaReleaseSlotLock = `
-- KEYS[1] = lock key
-- ARGV[1] = owner token
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`

type redisSlotLocker struct {
	client  *redis.Client
	release *redis.Script
	ttl     time.Duration
	wait    time.Duration
	retry   time.Duration
}

func NewRedisSlotLocker(client *redis.Client, ttl, wait time.Duration) SlotLocker {
	return &redisSlotLocker{
		client:  client,
		release: redis.NewScript(luaReleaseSlotLock),
		ttl:     ttl,
		wait:    wait,
		retry:   25 * time.Millisecond,
	}
}

// Acquire blocks up to the configured wait. A lock still held after that
// is reported as a scheduling conflict.
func (l *redisSlotLocker) Acquire(ctx context.Context, vendorID, serviceID uuid.UUID, date Date) (func(), error) {
	key := constants.BuildBookingSlotLockKey(vendorID.String(), serviceID.String(), date.String())
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire slot lock: %w", err)
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
				defer cancel()
				_ = l.release.Run(releaseCtx, l.client, []string{key}, token).Err()
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %w", ErrSchedulingConflict, errSlotBusy)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

type noopSlotLocker struct{}

func (noopSlotLocker) Acquire(context.Context, uuid.UUID, uuid.UUID, Date) (func(), error) {
	return func() {}, nil
}
