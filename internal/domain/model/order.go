package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/coffeeshop/internal/domain/errors"
)

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists recognized statuses in lifecycle order.
var OrderStatuses = []OrderStatus{OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled}

// Valid reports whether s is one of the recognized statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition is defined out of s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransition reports whether an order may move from one status to another.
// Only PENDING orders can change, and only into a terminal status.
func CanTransition(from, to OrderStatus) bool {
	return from == OrderStatusPending && to.Terminal()
}

// LineItem is a priced drink+size selection copied from the catalog when the
// order was created. It never refers back to the catalog drink.
type LineItem struct {
	ID      string
	DrinkID string
	Name    string
	Size    string
	Price   decimal.Decimal
}

// StatusChange records one applied transition.
type StatusChange struct {
	From OrderStatus
	To   OrderStatus
	At   time.Time
}

// Order is a customer order.
type Order struct {
	ID        string
	Customer  string
	LineItems []LineItem
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	History   []StatusChange
}

// Total is the sum of line item prices.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.LineItems {
		total = total.Add(item.Price)
	}
	return total
}

// TransitionTo moves the order into status if the state machine allows it.
func (o *Order) TransitionTo(status OrderStatus, at time.Time) error {
	if !CanTransition(o.Status, status) {
		return &domainErrors.TransitionError{From: string(o.Status), To: string(status)}
	}
	o.History = append(o.History, StatusChange{From: o.Status, To: status, At: at})
	o.Status = status
	o.UpdatedAt = at
	return nil
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	o.LineItems = append([]LineItem(nil), o.LineItems...)
	o.History = append([]StatusChange(nil), o.History...)
	return o
}

// LineItemRequest is a raw (drink id, size) selection sent by a client.
type LineItemRequest struct {
	DrinkID string
	Size    string
}

// CreateOrder carries everything needed to place an order.
type CreateOrder struct {
	Items    []LineItemRequest
	Customer string
}

// Fingerprint identifies the request content. Item order matters.
func (c CreateOrder) Fingerprint() string {
	h := sha256.New()
	for _, it := range c.Items {
		fmt.Fprintf(h, "%q:%q;", it.DrinkID, it.Size)
	}
	fmt.Fprintf(h, "customer=%q", c.Customer)
	return hex.EncodeToString(h.Sum(nil))
}

// OrderFilter narrows order listings. Zero values match everything.
type OrderFilter struct {
	Status   OrderStatus
	Customer string
	From     time.Time
	To       time.Time
}

// Match reports whether the order satisfies the filter.
func (f OrderFilter) Match(o *Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.Customer != "" && o.Customer != f.Customer {
		return false
	}
	if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && o.CreatedAt.After(f.To) {
		return false
	}
	return true
}
