package events

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studyhub-backend/internal/logger"
)

// Bus publishes dashboard events on per-user Redis channels. Delivery is
// fire-and-forget and at-most-once: a subscriber attached after publish
// never sees the event.
type Bus struct {
	redis *redis.Client
	log   *logger.Logger
}

func NewBus(redisClient *redis.Client, log *logger.Logger) *Bus {
	return &Bus{redis: redisClient, log: log}
}

func Channel(userID uuid.UUID) string {
	return fmt.Sprintf("dashboard-updates:%s", userID)
}

// Publish never returns an error to the caller: the channel is advisory and
// a lost notification must not fail the mutation that triggered it.
func (b *Bus) Publish(ctx context.Context, userID uuid.UUID, kind Kind, payload interface{}) {
	data, err := Encode(kind, payload)
	if err != nil {
		b.log.Error("encode dashboard event", "kind", kind, "error", err)
		return
	}

	if err := b.redis.Publish(ctx, Channel(userID), data).Err(); err != nil {
		b.log.Warn("publish dashboard event", "kind", kind, "user_id", userID, "error", err)
	}
}

// Subscribe opens the user's dashboard channel. The caller owns the
// subscription and must Close it when the last consumer goes away.
func (b *Bus) Subscribe(ctx context.Context, userID uuid.UUID) *redis.PubSub {
	return b.redis.Subscribe(ctx, Channel(userID))
}
