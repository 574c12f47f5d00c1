package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/coffeeshop/internal/domain/model"
)

// SampleDrink returns the espresso entry of the builtin menu.
func SampleDrink() model.Drink {
	return model.Drink{
		ID:          "1",
		Name:        "Espresso",
		Description: "Strong and bold coffee shot",
		Prices: []model.SizePrice{
			{Size: "small", Price: decimal.RequireFromString("2.0")},
			{Size: "medium", Price: decimal.RequireFromString("2.5")},
			{Size: "large", Price: decimal.RequireFromString("3.0")},
		},
	}
}

// SampleOrder returns a pending single espresso order.
func SampleOrder(id string) model.Order {
	at := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	return model.Order{
		ID:        id,
		Status:    model.OrderStatusPending,
		CreatedAt: at,
		UpdatedAt: at,
		LineItems: []model.LineItem{{ID: "1-small-0", DrinkID: "1", Name: "Espresso", Size: "small", Price: decimal.RequireFromString("2.0")}},
	}
}

// CatalogFacadeStub provides controllable behaviour for drink endpoints.
type CatalogFacadeStub struct {
	DrinksFn func(context.Context) ([]model.Drink, error)
	DrinkFn  func(context.Context, string) (*model.Drink, error)
}

// Drinks delegates to provided function or returns the sample drink.
func (s CatalogFacadeStub) Drinks(ctx context.Context) ([]model.Drink, error) {
	if s.DrinksFn != nil {
		return s.DrinksFn(ctx)
	}
	return []model.Drink{SampleDrink()}, nil
}

// Drink delegates to provided function or returns the sample drink.
func (s CatalogFacadeStub) Drink(ctx context.Context, id string) (*model.Drink, error) {
	if s.DrinkFn != nil {
		return s.DrinkFn(ctx, id)
	}
	d := SampleDrink()
	return &d, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn func(context.Context, string, model.CreateOrder) (*model.Order, bool, error)
	OrdersFn func(context.Context, model.OrderFilter) ([]model.Order, error)
	OrderFn  func(context.Context, string) (*model.Order, error)
	ChangeFn func(context.Context, string, model.OrderStatus) (*model.Order, error)
	StatsFn  func(context.Context) (model.OrderStats, error)
}

// CreateOrder delegates to provided function or returns a fresh sample order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, key string, req model.CreateOrder) (*model.Order, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, key, req)
	}
	o := SampleOrder("order-1")
	return &o, false, nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, filter)
	}
	return []model.Order{SampleOrder("order-1")}, nil
}

// Order returns the sample order under the requested id.
func (s OrderFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	o := SampleOrder(id)
	return &o, nil
}

// ChangeOrderStatus applies the status to the sample order.
func (s OrderFacadeStub) ChangeOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if s.ChangeFn != nil {
		return s.ChangeFn(ctx, id, status)
	}
	o := SampleOrder(id)
	o.Status = status
	return &o, nil
}

// OrderStats returns configured stats or zero values.
func (s OrderFacadeStub) OrderStats(ctx context.Context) (model.OrderStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return model.ComputeStats(nil), nil
}

// CoffeeShopFacadeStub aggregates facade dependencies for HTTP layer tests.
type CoffeeShopFacadeStub struct {
	CatalogFacadeStub
	OrderFacadeStub
}

// ExpiringStoreStub counts sweeps requested by the worker.
type ExpiringStoreStub struct {
	Removed int

	mu    sync.Mutex
	calls int
}

// Sweep records the call and returns the configured count.
func (s *ExpiringStoreStub) Sweep(time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.Removed
}

// Calls reports how many sweeps happened.
func (s *ExpiringStoreStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// OrderMetricsStub records lifecycle events.
type OrderMetricsStub struct {
	mu      sync.Mutex
	Created int
	Changed []string
}

// OrderCreated counts a created order.
func (s *OrderMetricsStub) OrderCreated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Created++
}

// StatusChanged records the target status.
func (s *OrderMetricsStub) StatusChanged(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Changed = append(s.Changed, status)
}
