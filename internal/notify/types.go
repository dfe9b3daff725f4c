package notify

import "time"

// NotificationItem is one line item in an order notification
type NotificationItem struct {
	RestaurantID   string  `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName"`
	ItemName       string  `json:"itemName"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
}

// OrderNotification is the payload posted to the restaurant webhook when a
// new order is placed
type OrderNotification struct {
	OrderID       uint               `json:"orderId"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	Address       string             `json:"address"`
	PaymentMethod string             `json:"paymentMethod"`
	Total         float64            `json:"total"`
	Items         []NotificationItem `json:"items"`
	PlacedAt      time.Time          `json:"placedAt"`
}
