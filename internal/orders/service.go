package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/foodoo/foodoo/internal/events"
	"github.com/foodoo/foodoo/internal/models"
)

// Sentinel errors mapped to HTTP statuses by the handlers
var (
	ErrValidation        = errors.New("invalid order")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("cannot cancel order in current status")
	ErrOrderNotFound     = errors.New("order not found")
)

// EventPublisher publishes order lifecycle events downstream
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, evt events.OrderEvent) (string, error)
}

// Notifier enqueues a restaurant notification for a newly created order
type Notifier interface {
	EnqueueOrderNotification(orderID uint) error
}

// NotifierFunc adapts a plain function to the Notifier interface
type NotifierFunc func(orderID uint) error

func (f NotifierFunc) EnqueueOrderNotification(orderID uint) error { return f(orderID) }

// ItemInput is one line item of a new order
type ItemInput struct {
	RestaurantID   string  `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName"`
	ItemName       string  `json:"itemName"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
}

// CreateOrderInput carries the client-supplied fields of a new order.
// The total is trusted as-is; it is not recomputed from the line items.
type CreateOrderInput struct {
	Items         []ItemInput `json:"items"`
	Total         float64     `json:"total"`
	Address       string      `json:"address"`
	Phone         string      `json:"phone"`
	PaymentMethod string      `json:"paymentMethod"`
}

// Service implements the order lifecycle. Every operation is scoped to the
// owning user; an ownership mismatch is indistinguishable from absence.
type Service struct {
	repo      Repository
	publisher EventPublisher
	notifier  Notifier
}

// NewService creates an order service over the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetEventPublisher wires an optional order event publisher.
func (s *Service) SetEventPublisher(p EventPublisher) {
	s.publisher = p
}

// SetNotifier wires an optional restaurant notification enqueuer.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Create inserts a new order owned by userID. Status is forced to pending
// regardless of input.
func (s *Service) Create(ctx context.Context, userID uint, input CreateOrderInput) (*models.Order, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCOD
	}

	order := &models.Order{
		UserID:        userID,
		Total:         input.Total,
		Address:       input.Address,
		Phone:         input.Phone,
		PaymentMethod: paymentMethod,
		Status:        models.OrderStatusPending,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, models.OrderItem{
			RestaurantID:   item.RestaurantID,
			RestaurantName: item.RestaurantName,
			ItemName:       item.ItemName,
			Quantity:       item.Quantity,
			Price:          item.Price,
		})
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, order)

	if s.notifier != nil {
		if err := s.notifier.EnqueueOrderNotification(order.ID); err != nil {
			// The order is already persisted; a lost notification is not fatal
			log.Printf("Failed to enqueue notification for order %d: %v", order.ID, err)
		}
	}

	return order, nil
}

// ListMine returns all orders owned by userID, newest first.
func (s *Service) ListMine(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.repo.FindByUser(ctx, userID)
}

// Get returns the order only if it exists and is owned by userID.
func (s *Service) Get(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	order, err := s.repo.FindOwned(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus sets the order's status. Transitions are caller-driven and
// unconstrained beyond enum membership; moving into delivered stamps the
// delivery time.
func (s *Service) UpdateStatus(ctx context.Context, userID, orderID uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	order, err := s.repo.FindOwned(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	order.Status = status
	if status == models.OrderStatusDelivered {
		now := time.Now()
		order.DeliveredAt = &now
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, order)

	return order, nil
}

// Cancel sets the order to cancelled, permitted only from pending or
// confirmed.
func (s *Service) Cancel(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	order, err := s.repo.FindOwned(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if !order.CanCancel() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, order.Status)
	}

	order.Status = models.OrderStatusCancelled
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, order)

	return order, nil
}

func (s *Service) publishEvent(ctx context.Context, order *models.Order) {
	if s.publisher == nil {
		return
	}
	if _, err := s.publisher.PublishOrderEvent(ctx, events.NewOrderEvent(order)); err != nil {
		log.Printf("Failed to publish event for order %d: %v", order.ID, err)
	}
}

func validateCreate(input CreateOrderInput) error {
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	for _, item := range input.Items {
		if item.ItemName == "" || item.RestaurantName == "" || item.Price <= 0 || item.Quantity < 1 {
			return fmt.Errorf("%w: each item must have itemName, restaurantName, price, and quantity", ErrValidation)
		}
	}
	if input.Total <= 0 {
		return fmt.Errorf("%w: invalid order total", ErrValidation)
	}
	if strings.TrimSpace(input.Address) == "" {
		return fmt.Errorf("%w: delivery address is required", ErrValidation)
	}
	if input.PaymentMethod != "" && !models.ValidPaymentMethod(input.PaymentMethod) {
		return fmt.Errorf("%w: invalid payment method", ErrValidation)
	}
	return nil
}
