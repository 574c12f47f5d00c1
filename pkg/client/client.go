// Package client talks to the coffeeshop HTTP API and keeps orders placed
// while the server is unreachable.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/polkiloo/coffeeshop/pkg/api"
)

const (
	defaultTimeout = 10 * time.Second

	headerIdempotencyKey = "Idempotency-Key"
	headerReplayed       = "Idempotent-Replayed"
)

// APIError is a failure reported by the server through its error envelope.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []api.FieldError
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("coffeeshop: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("coffeeshop: %d %s: %s %s", e.StatusCode, e.Message, e.Fields[0].Field, e.Fields[0].Message)
}

// Retryable reports whether the same request may succeed later.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// OrderQuery narrows GET /api/orders. Zero fields are not sent.
type OrderQuery struct {
	Status   string
	Customer string
	From     time.Time
	To       time.Time
}

func (q OrderQuery) values() url.Values {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Customer != "" {
		v.Set("customer", q.Customer)
	}
	if !q.From.IsZero() {
		v.Set("from", q.From.UTC().Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		v.Set("to", q.To.UTC().Format(time.RFC3339))
	}
	return v
}

// HTTPClient implements the coffeeshop API over HTTP.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// NewHTTPClient creates a client for the server at baseURL.
func NewHTTPClient(baseURL string, logger *slog.Logger, opts ...Option) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, errors.New("server url must be absolute")
	}
	c := &HTTPClient{
		baseURL:    parsed,
		logger:     logger,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Drinks returns the menu.
func (c *HTTPClient) Drinks(ctx context.Context) ([]api.Drink, error) {
	drinks, _, err := call[[]api.Drink](ctx, c, http.MethodGet, "/api/drinks", nil, nil, nil)
	return drinks, err
}

// Orders lists orders matching q, newest first.
func (c *HTTPClient) Orders(ctx context.Context, q OrderQuery) ([]api.Order, error) {
	orders, _, err := call[[]api.Order](ctx, c, http.MethodGet, "/api/orders", q.values(), nil, nil)
	return orders, err
}

// Order fetches one order.
func (c *HTTPClient) Order(ctx context.Context, id string) (*api.Order, error) {
	order, _, err := call[api.Order](ctx, c, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder places an order. A non-empty key makes the request safe to
// repeat; replayed reports that the server returned an earlier result.
func (c *HTTPClient) CreateOrder(ctx context.Context, key string, req api.CreateOrderRequest) (*api.Order, bool, error) {
	var headers http.Header
	if key != "" {
		headers = http.Header{headerIdempotencyKey: []string{key}}
	}
	order, respHeaders, err := call[api.Order](ctx, c, http.MethodPost, "/api/orders", nil, req, headers)
	if err != nil {
		return nil, false, err
	}
	return &order, respHeaders.Get(headerReplayed) == "true", nil
}

// ChangeStatus moves an order to status.
func (c *HTTPClient) ChangeStatus(ctx context.Context, id, status string) (*api.Order, error) {
	body := api.ChangeStatusRequest{Status: status}
	order, _, err := call[api.Order](ctx, c, http.MethodPost, "/api/orders/"+url.PathEscape(id)+"/change-status", nil, body, nil)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Stats returns the order summary.
func (c *HTTPClient) Stats(ctx context.Context) (api.OrderStats, error) {
	stats, _, err := call[api.OrderStats](ctx, c, http.MethodGet, "/api/orders/stats", nil, nil, nil)
	return stats, err
}

// Health checks server liveness.
func (c *HTTPClient) Health(ctx context.Context) (api.Health, error) {
	var health api.Health
	resp, err := c.send(ctx, http.MethodGet, "/health", nil, nil, nil)
	if err != nil {
		return health, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return health, c.apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return health, fmt.Errorf("decode health: %w", err)
	}
	return health, nil
}

func call[T any](ctx context.Context, c *HTTPClient, method, route string, query url.Values, body any, headers http.Header) (T, http.Header, error) {
	var zero T
	resp, err := c.send(ctx, method, route, query, body, headers)
	if err != nil {
		return zero, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, resp.Header, c.apiError(resp)
	}

	var envelope api.Response[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return zero, resp.Header, fmt.Errorf("decode %s %s: %w", method, route, err)
	}
	return envelope.Data, resp.Header, nil
}

func (c *HTTPClient) send(ctx context.Context, method, route string, query url.Values, body any, headers http.Header) (*http.Response, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, route)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	return c.httpClient.Do(req)
}

func (c *HTTPClient) apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	if resp.StatusCode == http.StatusTooManyRequests {
		apiErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var envelope api.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
		apiErr.Fields = envelope.Errors
	}

	if apiErr.Retryable() {
		c.logger.Warn("coffeeshop request failed", slog.Int("status", resp.StatusCode), slog.String("message", apiErr.Message))
	}
	return apiErr
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
