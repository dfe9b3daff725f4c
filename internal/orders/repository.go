package orders

import (
	"context"
	"errors"

	"github.com/foodoo/foodoo/internal/models"
	"gorm.io/gorm"
)

// Repository is the persistence boundary for orders. FindOwned returns
// (nil, nil) when the order does not exist or belongs to another user, so
// callers cannot distinguish the two cases.
type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByUser(ctx context.Context, userID uint) ([]models.Order, error)
	FindOwned(ctx context.Context, orderID, userID uint) (*models.Order, error)
	Save(ctx context.Context, order *models.Order) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed order repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *gormRepository) FindByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var out []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gormRepository) FindOwned(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormRepository) Save(ctx context.Context, order *models.Order) error {
	// Items are immutable after creation; only the order row changes
	return r.db.WithContext(ctx).Omit("Items").Save(order).Error
}
