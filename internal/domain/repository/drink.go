package repository

import (
	"context"

	"github.com/polkiloo/coffeeshop/internal/domain/model"
)

// DrinkRepository provides read-only access to the drink catalog.
type DrinkRepository interface {
	List(ctx context.Context) ([]model.Drink, error)
	Get(ctx context.Context, id string) (*model.Drink, error)
}
