package events

import (
	"time"

	"github.com/foodoo/foodoo/internal/models"
	"github.com/google/uuid"
)

// Stream name constants
const (
	StreamOrderEvents    = "orders:events"
	StreamKitchenUpdates = "orders:kitchen"
)

// Consumer group constants
const (
	GroupKitchenWorkers = "kitchen-workers" // restaurant side
	GroupAPIWorkers     = "api-workers"     // our side
)

// Schema version constant
const (
	SchemaVersionV1 = "v1"
)

// OrderEvent is published to the order event stream on every lifecycle change
type OrderEvent struct {
	EventID    string    `json:"event_id"`
	OrderID    uint      `json:"order_id"`
	UserID     uint      `json:"user_id"`
	Status     string    `json:"status"`
	Total      float64   `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewOrderEvent builds an event snapshot for the order's current state
func NewOrderEvent(order *models.Order) OrderEvent {
	return OrderEvent{
		EventID:    uuid.New().String(),
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: time.Now(),
	}
}

// KitchenUpdate is a status change pushed by the restaurant side
type KitchenUpdate struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}
