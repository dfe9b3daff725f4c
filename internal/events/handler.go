package events

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodoo/foodoo/internal/models"
	"gorm.io/gorm"
)

// HandleKitchenUpdate returns a handler that applies restaurant-side status
// changes to orders. Transitions follow the same permissive rules as the
// user-facing API: any enum status is accepted, delivered stamps the
// delivery time.
func HandleKitchenUpdate(db *gorm.DB) func(KitchenUpdate) error {
	return func(update KitchenUpdate) error {
		if !models.ValidOrderStatus(update.Status) {
			return fmt.Errorf("unknown status: %s", update.Status)
		}

		var order models.Order
		if err := db.First(&order, update.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order not found: %d", update.OrderID)
			}
			return fmt.Errorf("failed to find order: %w", err)
		}

		updates := map[string]interface{}{
			"status": update.Status,
		}
		if update.Status == models.OrderStatusDelivered {
			updates["delivered_at"] = time.Now()
		}

		if err := db.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}

		slog.Info("Applied kitchen update",
			"order_id", update.OrderID,
			"status", update.Status,
		)

		return nil
	}
}
