package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/coffeeshop/internal/domain/errors"
	"github.com/polkiloo/coffeeshop/internal/domain/model"
	"github.com/polkiloo/coffeeshop/internal/storage/memory"
)

type fixture struct {
	storage  *memory.Storage
	catalog  *CatalogUseCase
	resolver *PricingResolver
	orders   *OrderUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage, err := memory.New(memory.DefaultMenu(), logger)
	require.NoError(t, err)

	catalog := NewCatalogUseCase(storage.Drinks())
	resolver := NewPricingResolver(catalog)
	orders := NewOrderUseCase(storage.Orders(), resolver, logger)

	clock := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	orders.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	seq := 0
	orders.newID = func() string {
		seq++
		return fmt.Sprintf("order-%d", seq)
	}

	return &fixture{storage: storage, catalog: catalog, resolver: resolver, orders: orders}
}

func items(pairs ...string) []model.LineItemRequest {
	out := make([]model.LineItemRequest, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.LineItemRequest{DrinkID: pairs[i], Size: pairs[i+1]})
	}
	return out
}

type stubOrderRepository struct {
	insertFn func(context.Context, model.Order) error
	listFn   func(context.Context, model.OrderFilter) ([]model.Order, error)
	getFn    func(context.Context, string) (*model.Order, error)
	updateFn func(context.Context, string, func(*model.Order) error) (*model.Order, error)
}

func (s stubOrderRepository) Insert(ctx context.Context, o model.Order) error {
	return s.insertFn(ctx, o)
}

func (s stubOrderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	return s.getFn(ctx, id)
}

func (s stubOrderRepository) List(ctx context.Context, f model.OrderFilter) ([]model.Order, error) {
	return s.listFn(ctx, f)
}

func (s stubOrderRepository) Update(ctx context.Context, id string, fn func(*model.Order) error) (*model.Order, error) {
	return s.updateFn(ctx, id, fn)
}

func TestCreateSingleEspresso(t *testing.T) {
	f := newFixture(t)

	order, err := f.orders.Create(context.Background(), model.CreateOrder{Items: items("1", "small")})
	require.NoError(t, err)

	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, "Espresso", order.LineItems[0].Name)
	assert.Equal(t, "1-small-0", order.LineItems[0].ID)
	assert.True(t, order.Total().Equal(decimal.RequireFromString("2.0")))
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)
	assert.Equal(t, time.UTC, order.CreatedAt.Location())

	stored, err := f.orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.LineItems, stored.LineItems)
}

func TestCreateKeepsRequestOrderAndSumsExactly(t *testing.T) {
	f := newFixture(t)

	order, err := f.orders.Create(context.Background(), model.CreateOrder{
		Items:    items("1", "small", "2", "medium"),
		Customer: "Ann",
	})
	require.NoError(t, err)

	require.Len(t, order.LineItems, 2)
	assert.Equal(t, "Espresso", order.LineItems[0].Name)
	assert.Equal(t, "Latte", order.LineItems[1].Name)
	assert.Equal(t, "5.9", order.Total().String())
	assert.Equal(t, "Ann", order.Customer)
}

func TestCreateSameDrinkTwiceGetsDistinctLineItemIDs(t *testing.T) {
	f := newFixture(t)

	order, err := f.orders.Create(context.Background(), model.CreateOrder{Items: items("1", "small", "1", "small")})
	require.NoError(t, err)
	assert.NotEqual(t, order.LineItems[0].ID, order.LineItems[1].ID)
}

func TestCreateEmptyOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.Create(context.Background(), model.CreateOrder{})
	assert.ErrorIs(t, err, domainErrors.ErrEmptyOrder)
	assert.Equal(t, 0, f.storage.Len())
}

func TestCreateIsAllOrNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.Create(context.Background(), model.CreateOrder{Items: items("1", "small", "999", "small", "2", "large")})
	var notFound *domainErrors.DrinkNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "999", notFound.DrinkID)
	assert.Equal(t, 0, f.storage.Len())

	_, err = f.orders.Create(context.Background(), model.CreateOrder{Items: items("1", "small", "3", "small")})
	var sizeErr *domainErrors.SizeNotFoundError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, "Drink size small of drink 3 not found", sizeErr.Error())
	assert.Equal(t, 0, f.storage.Len())
}

func TestCreatePropagatesInsertError(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage, err := memory.New(memory.DefaultMenu(), logger)
	require.NoError(t, err)

	boom := errors.New("store unavailable")
	uc := NewOrderUseCase(stubOrderRepository{insertFn: func(context.Context, model.Order) error { return boom }},
		NewPricingResolver(NewCatalogUseCase(storage.Drinks())), logger)

	_, err = uc.Create(context.Background(), model.CreateOrder{Items: items("1", "small")})
	assert.ErrorIs(t, err, boom)
}

func TestListNewestFirstWithFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.orders.Create(ctx, model.CreateOrder{Items: items("1", "small"), Customer: "ann"})
	require.NoError(t, err)
	second, err := f.orders.Create(ctx, model.CreateOrder{Items: items("2", "large"), Customer: "bob"})
	require.NoError(t, err)
	_, err = f.orders.ChangeStatus(ctx, first.ID, model.OrderStatusCompleted)
	require.NoError(t, err)

	all, err := f.orders.List(ctx, model.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	completed, err := f.orders.List(ctx, model.OrderFilter{Status: model.OrderStatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, first.ID, completed[0].ID)

	bobs, err := f.orders.List(ctx, model.OrderFilter{Customer: "bob"})
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, second.ID, bobs[0].ID)

	_, err = f.orders.List(ctx, model.OrderFilter{Status: "DONE"})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidStatus)
}

func TestGetUnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.Get(context.Background(), "missing")
	var notFound *domainErrors.OrderNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestChangeStatusLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, model.CreateOrder{Items: items("1", "small")})
	require.NoError(t, err)

	updated, err := f.orders.ChangeStatus(ctx, order.ID, model.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	require.Len(t, updated.History, 1)
	assert.Equal(t, model.OrderStatusPending, updated.History[0].From)

	_, err = f.orders.ChangeStatus(ctx, order.ID, model.OrderStatusCancelled)
	var transitionErr *domainErrors.TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "COMPLETED", transitionErr.From)
	assert.Equal(t, "CANCELLED", transitionErr.To)

	stored, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, stored.Status)
}

func TestChangeStatusRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, model.CreateOrder{Items: items("1", "small")})
	require.NoError(t, err)

	_, err = f.orders.ChangeStatus(ctx, order.ID, "SHIPPED")
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidStatus)

	_, err = f.orders.ChangeStatus(ctx, order.ID, model.OrderStatusPending)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

	_, err = f.orders.ChangeStatus(ctx, "missing", model.OrderStatusCompleted)
	var notFound *domainErrors.OrderNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.OrderID)

	all, err := f.orders.List(ctx, model.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, model.OrderStatusPending, all[0].Status)
}

func TestChangeStatusPropagatesStoreError(t *testing.T) {
	boom := errors.New("store unavailable")
	uc := NewOrderUseCase(stubOrderRepository{
		updateFn: func(context.Context, string, func(*model.Order) error) (*model.Order, error) { return nil, boom },
	}, nil, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	_, err := uc.ChangeStatus(context.Background(), "x", model.OrderStatusCompleted)
	assert.ErrorIs(t, err, boom)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.orders.Create(ctx, model.CreateOrder{Items: items("1", "small", "2", "medium")})
	require.NoError(t, err)
	b, err := f.orders.Create(ctx, model.CreateOrder{Items: items("2", "large")})
	require.NoError(t, err)
	c, err := f.orders.Create(ctx, model.CreateOrder{Items: items("6", "large")})
	require.NoError(t, err)
	_, err = f.orders.Create(ctx, model.CreateOrder{Items: items("4", "small")})
	require.NoError(t, err)

	_, err = f.orders.ChangeStatus(ctx, a.ID, model.OrderStatusCompleted)
	require.NoError(t, err)
	_, err = f.orders.ChangeStatus(ctx, b.ID, model.OrderStatusCompleted)
	require.NoError(t, err)
	_, err = f.orders.ChangeStatus(ctx, c.ID, model.OrderStatusCancelled)
	require.NoError(t, err)

	stats, err := f.orders.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 2, stats.CompletedOrders)
	assert.Equal(t, 1, stats.CancelledOrders)
	assert.Equal(t, "10.2", stats.Revenue.String())
	assert.Equal(t, "5.1", stats.AverageOrderValue.String())
}

func TestStatsPropagatesStoreError(t *testing.T) {
	boom := errors.New("store unavailable")
	uc := NewOrderUseCase(stubOrderRepository{
		listFn: func(context.Context, model.OrderFilter) ([]model.Order, error) { return nil, boom },
	}, nil, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	_, err := uc.Stats(context.Background())
	assert.ErrorIs(t, err, boom)
}
