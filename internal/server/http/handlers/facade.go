package handlers

import (
	"context"

	"github.com/polkiloo/coffeeshop/internal/domain/model"
)

// CatalogFacade describes catalog operations exposed via HTTP.
type CatalogFacade interface {
	Drinks(ctx context.Context) ([]model.Drink, error)
	Drink(ctx context.Context, id string) (*model.Drink, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, idempotencyKey string, req model.CreateOrder) (*model.Order, bool, error)
	Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	ChangeOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	OrderStats(ctx context.Context) (model.OrderStats, error)
}

// CoffeeShopFacade aggregates the full set of operations used across handlers.
type CoffeeShopFacade interface {
	CatalogFacade
	OrderFacade
}
