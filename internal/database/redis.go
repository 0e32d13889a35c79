package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClients separates the two Redis roles onto their own connections:
// Queue carries the blocking BLPOP answer queue and refresh tokens, PubSub
// carries the dashboard-updates subscriptions. A blocked queue read must
// never stall an event delivery.
type RedisClients struct {
	Queue  *redis.Client
	PubSub *redis.Client
}

func NewRedisClients(redisURL string) (*RedisClients, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	queueClient, err := connect(ctx, opt, "studyhub-queue")
	if err != nil {
		return nil, err
	}

	pubsubClient, err := connect(ctx, opt, "studyhub-pubsub")
	if err != nil {
		queueClient.Close()
		return nil, err
	}

	return &RedisClients{
		Queue:  queueClient,
		PubSub: pubsubClient,
	}, nil
}

func connect(ctx context.Context, opt *redis.Options, name string) (*redis.Client, error) {
	role := *opt
	role.ClientName = name

	client := redis.NewClient(&role)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis (%s): %w", name, err)
	}
	return client, nil
}

func (r *RedisClients) Close() {
	r.Queue.Close()
	r.PubSub.Close()
}
