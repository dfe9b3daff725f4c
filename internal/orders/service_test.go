package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/foodoo/foodoo/internal/events"
	"github.com/foodoo/foodoo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockRepository) FindByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockRepository) FindOwned(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	args := m.Called(ctx, orderID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderEvent(ctx context.Context, evt events.OrderEvent) (string, error) {
	args := m.Called(ctx, evt)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) EnqueueOrderNotification(orderID uint) error {
	args := m.Called(orderID)
	return args.Error(0)
}

func validInput() CreateOrderInput {
	return CreateOrderInput{
		Items: []ItemInput{
			{RestaurantID: "r1", RestaurantName: "R1", ItemName: "Pizza", Quantity: 2, Price: 200},
		},
		Total:   440,
		Address: "X",
	}
}

func TestServiceCreate(t *testing.T) {
	tests := []struct {
		name          string
		input         CreateOrderInput
		setupMocks    func(*MockRepository, *MockPublisher, *MockNotifier)
		expectedError error
		check         func(*testing.T, *models.Order)
	}{
		{
			name:  "successful creation forces pending status",
			input: validInput(),
			setupMocks: func(repo *MockRepository, pub *MockPublisher, n *MockNotifier) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil).Run(func(args mock.Arguments) {
					order := args.Get(1).(*models.Order)
					order.ID = 1
				})
				pub.On("PublishOrderEvent", mock.Anything, mock.Anything).Return("1-0", nil)
				n.On("EnqueueOrderNotification", uint(1)).Return(nil)
			},
			check: func(t *testing.T, order *models.Order) {
				assert.Equal(t, models.OrderStatusPending, order.Status)
				assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
				assert.Equal(t, float64(440), order.Total)
				assert.Len(t, order.Items, 1)
				assert.Equal(t, "Pizza", order.Items[0].ItemName)
				assert.Equal(t, "R1", order.Items[0].RestaurantName)
				assert.Equal(t, 2, order.Items[0].Quantity)
				assert.Equal(t, float64(200), order.Items[0].Price)
				assert.Nil(t, order.DeliveredAt)
			},
		},
		{
			name: "empty item list rejected",
			input: CreateOrderInput{
				Total:   100,
				Address: "X",
			},
			setupMocks:    func(*MockRepository, *MockPublisher, *MockNotifier) {},
			expectedError: ErrValidation,
		},
		{
			name: "item missing name rejected",
			input: CreateOrderInput{
				Items:   []ItemInput{{RestaurantName: "R1", Quantity: 1, Price: 100}},
				Total:   100,
				Address: "X",
			},
			setupMocks:    func(*MockRepository, *MockPublisher, *MockNotifier) {},
			expectedError: ErrValidation,
		},
		{
			name: "zero quantity rejected",
			input: CreateOrderInput{
				Items:   []ItemInput{{RestaurantName: "R1", ItemName: "Pizza", Quantity: 0, Price: 100}},
				Total:   100,
				Address: "X",
			},
			setupMocks:    func(*MockRepository, *MockPublisher, *MockNotifier) {},
			expectedError: ErrValidation,
		},
		{
			name: "zero total rejected",
			input: CreateOrderInput{
				Items:   validInput().Items,
				Total:   0,
				Address: "X",
			},
			setupMocks:    func(*MockRepository, *MockPublisher, *MockNotifier) {},
			expectedError: ErrValidation,
		},
		{
			name: "blank address rejected",
			input: CreateOrderInput{
				Items:   validInput().Items,
				Total:   440,
				Address: "   ",
			},
			setupMocks:    func(*MockRepository, *MockPublisher, *MockNotifier) {},
			expectedError: ErrValidation,
		},
		{
			name: "unknown payment method rejected",
			input: CreateOrderInput{
				Items:         validInput().Items,
				Total:         440,
				Address:       "X",
				PaymentMethod: "bitcoin",
			},
			setupMocks:    func(*MockRepository, *MockPublisher, *MockNotifier) {},
			expectedError: ErrValidation,
		},
		{
			name:  "repository failure surfaces",
			input: validInput(),
			setupMocks: func(repo *MockRepository, pub *MockPublisher, n *MockNotifier) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
		{
			name:  "notification failure does not fail the order",
			input: validInput(),
			setupMocks: func(repo *MockRepository, pub *MockPublisher, n *MockNotifier) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Order).ID = 2
				})
				pub.On("PublishOrderEvent", mock.Anything, mock.Anything).Return("", errors.New("stream down"))
				n.On("EnqueueOrderNotification", uint(2)).Return(errors.New("redis down"))
			},
			check: func(t *testing.T, order *models.Order) {
				assert.Equal(t, uint(2), order.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			pub := new(MockPublisher)
			notifier := new(MockNotifier)
			tt.setupMocks(repo, pub, notifier)

			svc := NewService(repo)
			svc.SetEventPublisher(pub)
			svc.SetNotifier(notifier)

			order, err := svc.Create(context.Background(), 10, tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				if errors.Is(tt.expectedError, ErrValidation) {
					assert.ErrorIs(t, err, ErrValidation)
				}
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				assert.Equal(t, uint(10), order.UserID)
				if tt.check != nil {
					tt.check(t, order)
				}
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestServiceGetOwnershipScoping(t *testing.T) {
	repo := new(MockRepository)
	// FindOwned returns nil for both absent orders and other users' orders
	repo.On("FindOwned", mock.Anything, uint(5), uint(10)).Return(nil, nil)

	svc := NewService(repo)
	order, err := svc.Get(context.Background(), 10, 5)

	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Nil(t, order)
	repo.AssertExpectations(t)
}

func TestServiceUpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		existing      *models.Order
		expectedError error
		wantDelivered bool
	}{
		{
			name:     "any enum status is accepted",
			status:   models.OrderStatusPreparing,
			existing: &models.Order{Model: gorm.Model{ID: 5}, UserID: 10, Status: models.OrderStatusPending},
		},
		{
			name:          "delivered stamps delivery time",
			status:        models.OrderStatusDelivered,
			existing:      &models.Order{Model: gorm.Model{ID: 5}, UserID: 10, Status: models.OrderStatusOutForDelivery},
			wantDelivered: true,
		},
		{
			name:          "unknown status rejected",
			status:        "shipped",
			existing:      nil,
			expectedError: ErrInvalidStatus,
		},
		{
			name:          "absent order is not found",
			status:        models.OrderStatusConfirmed,
			existing:      nil,
			expectedError: ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if models.ValidOrderStatus(tt.status) {
				if tt.existing != nil {
					repo.On("FindOwned", mock.Anything, uint(5), uint(10)).Return(tt.existing, nil)
					repo.On("Save", mock.Anything, tt.existing).Return(nil)
				} else {
					repo.On("FindOwned", mock.Anything, uint(5), uint(10)).Return(nil, nil)
				}
			}

			svc := NewService(repo)
			order, err := svc.UpdateStatus(context.Background(), 10, 5, tt.status)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, order)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.status, order.Status)
			if tt.wantDelivered {
				assert.NotNil(t, order.DeliveredAt)
			} else {
				assert.Nil(t, order.DeliveredAt)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestServiceCancel(t *testing.T) {
	tests := []struct {
		name          string
		currentStatus string
		expectedError error
	}{
		{"cancel from pending", models.OrderStatusPending, nil},
		{"cancel from confirmed", models.OrderStatusConfirmed, nil},
		{"cancel from preparing rejected", models.OrderStatusPreparing, ErrInvalidTransition},
		{"cancel from out_for_delivery rejected", models.OrderStatusOutForDelivery, ErrInvalidTransition},
		{"cancel from delivered rejected", models.OrderStatusDelivered, ErrInvalidTransition},
		{"cancel from cancelled rejected", models.OrderStatusCancelled, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := &models.Order{Model: gorm.Model{ID: 5}, UserID: 10, Status: tt.currentStatus}

			repo := new(MockRepository)
			repo.On("FindOwned", mock.Anything, uint(5), uint(10)).Return(existing, nil)
			if tt.expectedError == nil {
				repo.On("Save", mock.Anything, existing).Return(nil)
			}

			svc := NewService(repo)
			order, err := svc.Cancel(context.Background(), 10, 5)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, models.OrderStatusCancelled, order.Status)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestServiceCancelAbsentOrder(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindOwned", mock.Anything, uint(99), uint(10)).Return(nil, nil)

	svc := NewService(repo)
	_, err := svc.Cancel(context.Background(), 10, 99)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestServiceListMineNewestFirst(t *testing.T) {
	expected := []models.Order{
		{Model: gorm.Model{ID: 3}, UserID: 10, Status: models.OrderStatusPending},
		{Model: gorm.Model{ID: 1}, UserID: 10, Status: models.OrderStatusDelivered},
	}

	repo := new(MockRepository)
	repo.On("FindByUser", mock.Anything, uint(10)).Return(expected, nil)

	svc := NewService(repo)
	orders, err := svc.ListMine(context.Background(), 10)

	assert.NoError(t, err)
	assert.Equal(t, expected, orders)
	repo.AssertExpectations(t)
}
