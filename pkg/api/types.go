// Package api holds the request and response types shared by the server and
// its Go clients. Money fields are Amount values encoded as JSON numbers.
package api

import "time"

// Response is the success envelope of every endpoint.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// FieldError names one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// SizePrice is the price of a drink in one size.
type SizePrice struct {
	Size  string `json:"size"`
	Price Amount `json:"price"`
}

// Drink is a catalog entry.
type Drink struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Prices      []SizePrice `json:"prices"`
}

// OrderDrink is a priced line item of an order.
type OrderDrink struct {
	ID      string `json:"id"`
	DrinkID string `json:"drinkId"`
	Name    string `json:"name"`
	Size    string `json:"size"`
	Price   Amount `json:"price"`
}

// StatusChange is one applied status transition.
type StatusChange struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

// Order statuses.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Order is the order representation returned by the API.
type Order struct {
	ID             string         `json:"id"`
	OrderDrinks    []OrderDrink   `json:"orderDrinks"`
	Total          Amount         `json:"total"`
	Status         string         `json:"status"`
	Customer       string         `json:"customer,omitempty"`
	OrderTimestamp time.Time      `json:"orderTimestamp"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	History        []StatusChange `json:"history,omitempty"`
}

// OrderDrinkRequest selects one drink in one size.
type OrderDrinkRequest struct {
	ID   string `json:"id" binding:"required"`
	Size string `json:"size" binding:"required"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	OrderDrinks []OrderDrinkRequest `json:"orderDrinks" binding:"required,dive"`
	Customer    string              `json:"customer,omitempty" binding:"max=100"`
}

// ChangeStatusRequest is the body of POST /api/orders/:id/change-status.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderStats is the dashboard summary.
type OrderStats struct {
	TotalOrders       int    `json:"totalOrders"`
	PendingOrders     int    `json:"pendingOrders"`
	CompletedOrders   int    `json:"completedOrders"`
	CancelledOrders   int    `json:"cancelledOrders"`
	Revenue           Amount `json:"revenue"`
	AverageOrderValue Amount `json:"averageOrderValue"`
}

// Health is the body of GET /health.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}
