package worker

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	TaskOrderNotify     = "order:notify"
	TaskStaleOrderSweep = "order:sweep"
)

// Package-level Asynq client (singleton)
var client *asynq.Client

// InitClient initializes the global Asynq client for task enqueueing.
// Must be called before any EnqueueX functions.
func InitClient(redisURL string) error {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return err
	}

	client = asynq.NewClient(opt)
	return nil
}

// CloseClient closes the Asynq client connection gracefully.
func CloseClient() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// EnqueueOrderNotification enqueues a restaurant notification task for the
// given order ID. The task retries up to 3 times with a 1-minute timeout and
// is retained for 24 hours after completion.
func EnqueueOrderNotification(orderID uint) error {
	payload, err := json.Marshal(map[string]uint{
		"order_id": orderID,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(
		TaskOrderNotify,
		payload,
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
		asynq.Retention(24*time.Hour),
	)

	_, err = client.Enqueue(task)
	return err
}
