package app

import (
	"context"

	"github.com/polkiloo/coffeeshop/internal/domain/model"
	"github.com/polkiloo/coffeeshop/internal/idempotency"
	"github.com/polkiloo/coffeeshop/internal/usecase"
)

// OrderMetrics receives order lifecycle events.
type OrderMetrics interface {
	OrderCreated()
	StatusChanged(status string)
}

// CoffeeShopFacade is the single entry point of the HTTP layer into the use cases.
type CoffeeShopFacade struct {
	catalog *usecase.CatalogUseCase
	orders  *usecase.OrderUseCase
	keys    *idempotency.Store
	metrics OrderMetrics
}

func NewCoffeeShopFacade(catalog *usecase.CatalogUseCase, orders *usecase.OrderUseCase, keys *idempotency.Store, metrics OrderMetrics) *CoffeeShopFacade {
	return &CoffeeShopFacade{catalog: catalog, orders: orders, keys: keys, metrics: metrics}
}

func (f *CoffeeShopFacade) Drinks(ctx context.Context) ([]model.Drink, error) {
	return f.catalog.ListDrinks(ctx)
}

func (f *CoffeeShopFacade) Drink(ctx context.Context, id string) (*model.Drink, error) {
	return f.catalog.FindDrink(ctx, id)
}

// CreateOrder places an order. With a non-empty key a repeated request returns
// the order created by the first one and reports replayed; the same key with a
// different request fails with ErrKeyReused.
func (f *CoffeeShopFacade) CreateOrder(ctx context.Context, key string, req model.CreateOrder) (*model.Order, bool, error) {
	if key == "" {
		order, err := f.create(ctx, req)
		return order, false, err
	}

	var created *model.Order
	id, replayed, err := f.keys.Do(ctx, key, req.Fingerprint(), func(ctx context.Context) (string, error) {
		order, err := f.create(ctx, req)
		if err != nil {
			return "", err
		}
		created = order
		return order.ID, nil
	})
	if err != nil {
		return nil, false, err
	}
	if created != nil {
		return created, false, nil
	}

	order, err := f.orders.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return order, replayed, nil
}

func (f *CoffeeShopFacade) create(ctx context.Context, req model.CreateOrder) (*model.Order, error) {
	order, err := f.orders.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	f.metrics.OrderCreated()
	return order, nil
}

func (f *CoffeeShopFacade) Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, filter)
}

func (f *CoffeeShopFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *CoffeeShopFacade) ChangeOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	order, err := f.orders.ChangeStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	f.metrics.StatusChanged(string(order.Status))
	return order, nil
}

func (f *CoffeeShopFacade) OrderStats(ctx context.Context) (model.OrderStats, error) {
	return f.orders.Stats(ctx)
}
