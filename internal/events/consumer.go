package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// KitchenConsumer consumes restaurant-side status updates from Redis Streams
type KitchenConsumer struct {
	rdb          *redis.Client
	groupName    string
	consumerName string
}

// NewKitchenConsumer creates a new KitchenConsumer instance
func NewKitchenConsumer(redisURL, consumerName string) (*KitchenConsumer, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	// Read timeout must exceed the XReadGroup Block duration (5s)
	// to avoid spurious i/o timeout errors on idle streams.
	opts.ReadTimeout = 10 * time.Second

	client := redis.NewClient(opts)

	// Start ID "0" means read from beginning if group is new
	err = client.XGroupCreateMkStream(context.Background(), StreamKitchenUpdates, GroupAPIWorkers, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}
	// Ignore BUSYGROUP error - group already exists

	return &KitchenConsumer{
		rdb:          client,
		groupName:    GroupAPIWorkers,
		consumerName: consumerName,
	}, nil
}

// Consume runs a blocking loop applying kitchen updates from the stream
func (c *KitchenConsumer) Consume(ctx context.Context, handler func(KitchenUpdate) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		streams, err := c.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupName,
			Consumer: c.consumerName,
			Streams:  []string{StreamKitchenUpdates, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err == redis.Nil {
			continue
		}

		if err != nil {
			// Blocking reads return a timeout when no messages arrive
			// within the Block duration. Normal on idle streams.
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			slog.Error("Failed to read from stream", "error", err)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				payloadStr, ok := message.Values["payload"].(string)
				if !ok {
					slog.Error("Invalid message payload", "message_id", message.ID)
					continue
				}

				var update KitchenUpdate
				if err := json.Unmarshal([]byte(payloadStr), &update); err != nil {
					slog.Error("Failed to unmarshal kitchen update", "error", err, "message_id", message.ID)
					continue
				}

				if err := handler(update); err != nil {
					slog.Error("Handler failed", "error", err, "order_id", update.OrderID)
					// Message stays in PEL for retry, don't ACK
					continue
				}

				if err := c.rdb.XAck(ctx, StreamKitchenUpdates, c.groupName, message.ID).Err(); err != nil {
					slog.Error("Failed to ACK message", "error", err, "message_id", message.ID)
				}
			}
		}
	}
}

// Close closes the Redis client connection
func (c *KitchenConsumer) Close() error {
	return c.rdb.Close()
}

// StartKitchenConsumer starts the kitchen update consumer in a background
// goroutine and returns a stop function
func StartKitchenConsumer(redisURL string, db *gorm.DB) (stop func(), err error) {
	consumer, err := NewKitchenConsumer(redisURL, "api-worker-1")
	if err != nil {
		return nil, fmt.Errorf("failed to create kitchen consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := consumer.Consume(ctx, HandleKitchenUpdate(db)); err != nil {
			if err != context.Canceled {
				slog.Error("Kitchen consumer stopped with error", "error", err)
			}
		}
	}()

	slog.Info("Kitchen consumer started")

	return func() {
		cancel()
		consumer.Close()
	}, nil
}
