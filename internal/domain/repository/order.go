package repository

import (
	"context"

	"github.com/polkiloo/coffeeshop/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Insert(ctx context.Context, order model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	// Update runs fn against the stored order atomically. The change is kept
	// only when fn returns nil.
	Update(ctx context.Context, id string, fn func(*model.Order) error) (*model.Order, error)
}
