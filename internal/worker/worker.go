package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodoo/foodoo/internal/config"
	"github.com/foodoo/foodoo/internal/models"
	"github.com/foodoo/foodoo/internal/notify"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// asynqLoggerAdapter wraps slog.Logger to implement asynq.Logger interface
type asynqLoggerAdapter struct {
	logger *slog.Logger
}

func (a *asynqLoggerAdapter) Debug(args ...interface{}) {
	a.logger.Debug(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Info(args ...interface{}) {
	a.logger.Info(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Warn(args ...interface{}) {
	a.logger.Warn(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Error(args ...interface{}) {
	a.logger.Error(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Fatal(args ...interface{}) {
	a.logger.Error(fmt.Sprint(args...))
	panic(fmt.Sprint(args...))
}

// Start starts the Asynq worker in non-blocking mode and returns a stop
// function so the caller can coordinate shutdown.
func Start(cfg *config.Config, db *gorm.DB, notifyClient *notify.Client) (stop func(), err error) {
	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	logger := NewLogger(cfg.LogLevel, cfg.LogFormat)

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:     5,
			ShutdownTimeout: 30 * time.Second,
			ErrorHandler:    asynq.ErrorHandlerFunc(makeErrorHandler(logger)),
			Logger:          &asynqLoggerAdapter{logger: logger},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskOrderNotify, handleOrderNotify(logger, db, notifyClient))
	mux.HandleFunc(TaskStaleOrderSweep, handleStaleOrderSweep(logger, db, cfg.StaleOrderMaxAge))

	logger.Info("Worker starting", "concurrency", 5, "redis", cfg.RedisURL)

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start worker: %w", err)
	}
	return func() { srv.Shutdown() }, nil
}

// handleOrderNotify loads the order and posts a new-order notification to
// the restaurant webhook.
func handleOrderNotify(logger *slog.Logger, db *gorm.DB, notifyClient *notify.Client) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload struct {
			OrderID uint `json:"order_id"`
		}
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			// Invalid payload - don't retry
			return fmt.Errorf("invalid payload: %w", asynq.SkipRetry)
		}

		var order models.Order
		if err := db.WithContext(ctx).Preload("Items").Preload("User").First(&order, payload.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Record not found - don't retry
				logger.Error("Order not found", "order_id", payload.OrderID)
				return fmt.Errorf("order not found: %w", asynq.SkipRetry)
			}
			// Database error - retryable
			return fmt.Errorf("failed to fetch order: %w", err)
		}

		logger.Info(
			"Processing order:notify task",
			"order_id", payload.OrderID,
			"user_id", order.UserID,
		)

		notification := notify.OrderNotification{
			OrderID:       order.ID,
			CustomerName:  order.User.Name,
			CustomerPhone: order.Phone,
			Address:       order.Address,
			PaymentMethod: order.PaymentMethod,
			Total:         order.Total,
			PlacedAt:      order.CreatedAt,
		}
		for _, item := range order.Items {
			notification.Items = append(notification.Items, notify.NotificationItem{
				RestaurantID:   item.RestaurantID,
				RestaurantName: item.RestaurantName,
				ItemName:       item.ItemName,
				Quantity:       item.Quantity,
				Price:          item.Price,
			})
		}

		if err := notifyClient.NotifyOrderCreated(ctx, notification); err != nil {
			logger.Error(
				"Webhook notification failed",
				"order_id", payload.OrderID,
				"error", err.Error(),
			)
			// Retryable, the webhook may be temporarily unavailable
			return fmt.Errorf("webhook notification failed: %w", err)
		}

		logger.Info("Order notification delivered", "order_id", payload.OrderID)

		return nil
	}
}

// handleStaleOrderSweep cancels pending orders that were never confirmed
// within the configured window. Pending orders are always cancellable, so
// the sweep never conflicts with the lifecycle rules.
func handleStaleOrderSweep(logger *slog.Logger, db *gorm.DB, maxAge time.Duration) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		cutoff := time.Now().Add(-maxAge)

		result := db.WithContext(ctx).
			Model(&models.Order{}).
			Where("status = ? AND created_at < ?", models.OrderStatusPending, cutoff).
			Update("status", models.OrderStatusCancelled)
		if result.Error != nil {
			return fmt.Errorf("failed to sweep stale orders: %w", result.Error)
		}

		if result.RowsAffected > 0 {
			logger.Info(
				"Cancelled stale pending orders",
				"count", result.RowsAffected,
				"older_than", maxAge.String(),
			)
		}

		return nil
	}
}

// makeErrorHandler creates an error handler function with logger closure.
func makeErrorHandler(logger *slog.Logger) func(context.Context, *asynq.Task, error) {
	return func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)

		logger.Error(
			"Task execution failed",
			"task_type", task.Type(),
			"error", err.Error(),
			"retry_count", retried,
			"max_retry", maxRetry,
		)

		if retried >= maxRetry {
			logger.Error(
				"Task moved to dead letter queue (all retries exhausted)",
				"task_type", task.Type(),
				"payload", string(task.Payload()),
			)
		}
	}
}
