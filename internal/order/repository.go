package order

import (
	"context"

	"gorm.io/gorm"
)

type OrderRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	orders := []Order{}
	err := r.db.WithContext(ctx).
		Preload("Details.Course").
		Where("user_id = ?", userID).
		Order("order_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
