package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/coffeeshop/internal/app"
	"github.com/polkiloo/coffeeshop/internal/config"
	"github.com/polkiloo/coffeeshop/internal/idempotency"
	"github.com/polkiloo/coffeeshop/internal/metrics"
	"github.com/polkiloo/coffeeshop/internal/server/http/router"
	"github.com/polkiloo/coffeeshop/internal/storage/memory"
	"github.com/polkiloo/coffeeshop/internal/usecase"
	"github.com/polkiloo/coffeeshop/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// startServer runs the full HTTP stack over in-memory storage.
func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := testLogger()
	storage, err := memory.New(memory.DefaultMenu(), logger)
	require.NoError(t, err)

	catalog := usecase.NewCatalogUseCase(storage.Drinks())
	orders := usecase.NewOrderUseCase(storage.Orders(), usecase.NewPricingResolver(catalog), logger)
	m := metrics.New()
	facade := app.NewCoffeeShopFacade(catalog, orders, idempotency.NewStore(time.Hour, logger), m)
	engine := router.Setup(router.Params{
		Facade:  facade,
		Config:  &config.Config{RateLimit: 1000, RateWindow: time.Minute, CORSOrigins: []string{"*"}},
		Logger:  logger,
		Metrics: m,
	})

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, url string) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(url, testLogger())
	require.NoError(t, err)
	return c
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	_, err := NewHTTPClient("://bad-url", testLogger())
	assert.Error(t, err)
	_, err = NewHTTPClient("/relative", testLogger())
	assert.Error(t, err)
}

func TestHTTPClientAgainstServer(t *testing.T) {
	srv := startServer(t)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)

	drinks, err := c.Drinks(ctx)
	require.NoError(t, err)
	require.Len(t, drinks, 6)
	assert.Equal(t, "Espresso", drinks[0].Name)

	req := api.CreateOrderRequest{
		OrderDrinks: []api.OrderDrinkRequest{{ID: "1", Size: "small"}, {ID: "2", Size: "medium"}},
		Customer:    "Ada",
	}
	order, replayed, err := c.CreateOrder(ctx, "", req)
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, "5.9", order.Total.String())
	assert.Equal(t, api.StatusPending, order.Status)

	again, replayed, err := c.CreateOrder(ctx, "key-1", req)
	require.NoError(t, err)
	assert.False(t, replayed)
	dup, replayed, err := c.CreateOrder(ctx, "key-1", req)
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, again.ID, dup.ID)

	changed, err := c.ChangeStatus(ctx, order.ID, api.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, api.StatusCompleted, changed.Status)
	require.Len(t, changed.History, 1)

	fetched, err := c.Order(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, api.StatusCompleted, fetched.Status)

	completed, err := c.Orders(ctx, OrderQuery{Status: api.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, order.ID, completed[0].ID)

	all, err := c.Orders(ctx, OrderQuery{From: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, "5.9", stats.Revenue.String())
}

func TestHTTPClientMapsErrorEnvelopes(t *testing.T) {
	srv := startServer(t)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	_, _, err := c.CreateOrder(ctx, "", api.CreateOrderRequest{OrderDrinks: []api.OrderDrinkRequest{{ID: "3", Size: "small"}}})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Drink size small of drink 3 not found", apiErr.Message)
	assert.False(t, apiErr.Retryable())

	_, _, err = c.CreateOrder(ctx, "", api.CreateOrderRequest{OrderDrinks: []api.OrderDrinkRequest{{ID: "1"}}})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.NotEmpty(t, apiErr.Fields)
	assert.Equal(t, "orderDrinks.0.size", apiErr.Fields[0].Field)

	_, err = c.ChangeStatus(ctx, "missing", api.StatusCancelled)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestHTTPClientRetryableErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"success":false,"message":"Too many requests, please try again later"}`))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).Drinks(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.Retryable())
	assert.Equal(t, 7*time.Second, apiErr.RetryAfter)
	assert.Equal(t, "Too many requests, please try again later", apiErr.Message)

	plain := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer plain.Close()

	_, err = newClient(t, plain.URL).Drinks(context.Background())
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
	assert.True(t, apiErr.Retryable())
}

func TestHTTPClientSendsIdempotencyKeyAndBasePath(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(headerIdempotencyKey)
		gotPath = r.URL.Path
		w.Header().Set(headerReplayed, "true")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"o-1","orderDrinks":[],"total":0,"status":"PENDING"}}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL+"/shop")
	order, replayed, err := c.CreateOrder(context.Background(), "abc", api.CreateOrderRequest{})
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, "o-1", order.ID)
	assert.Equal(t, "abc", gotKey)
	assert.Equal(t, "/shop/api/orders", gotPath)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseRetryAfter(""))
	assert.Equal(t, 3*time.Second, parseRetryAfter("3"))
	assert.Equal(t, 5*time.Second, parseRetryAfter("soon"))
	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	assert.InDelta(t, time.Minute.Seconds(), parseRetryAfter(future).Seconds(), 2)
}
