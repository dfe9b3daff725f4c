package models

import (
	"time"

	"gorm.io/gorm"
)

// Order status constants
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// Payment method constants
const (
	PaymentMethodUPI  = "upi"
	PaymentMethodCard = "card"
	PaymentMethodNet  = "net"
	PaymentMethodCOD  = "cod"
)

// Order is a food order owned by exactly one user. The owner is set at
// creation and never changes; line items are immutable after creation.
type Order struct {
	gorm.Model
	UserID        uint        `gorm:"not null;index" json:"userId"`
	User          User        `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Items         []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`
	Total         float64     `gorm:"not null" json:"total"`
	Address       string      `gorm:"not null" json:"address"`
	Phone         string      `gorm:"not null;default:''" json:"phone"`
	PaymentMethod string      `gorm:"not null;default:'cod'" json:"paymentMethod"`
	Status        string      `gorm:"not null;default:'pending';index" json:"status"`
	DeliveredAt   *time.Time  `json:"deliveredAt"`
}

// OrderItem is one ordered quantity of a named dish from a named restaurant
// at a fixed price.
type OrderItem struct {
	ID             uint    `gorm:"primaryKey" json:"-"`
	OrderID        uint    `gorm:"not null;index" json:"-"`
	RestaurantID   string  `gorm:"not null" json:"restaurantId"`
	RestaurantName string  `gorm:"not null" json:"restaurantName"`
	ItemName       string  `gorm:"not null" json:"itemName"`
	Quantity       int     `gorm:"not null" json:"quantity"`
	Price          float64 `gorm:"not null" json:"price"`
}

// ValidOrderStatus reports whether s is a member of the order status enum.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a member of the payment method enum.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodUPI, PaymentMethodCard, PaymentMethodNet, PaymentMethodCOD:
		return true
	}
	return false
}

// CanCancel reports whether the order may still be cancelled.
// Cancellation is only permitted before the kitchen starts preparing.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}
