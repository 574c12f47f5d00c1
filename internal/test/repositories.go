package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/coffeeshop/internal/domain/errors"
	"github.com/polkiloo/coffeeshop/internal/domain/model"
)

// DrinkRepositoryStub serves a fixed catalog.
type DrinkRepositoryStub struct {
	Items []model.Drink
	Err   error
}

// List returns configured drinks.
func (s DrinkRepositoryStub) List(ctx context.Context) ([]model.Drink, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Drink(nil), s.Items...), nil
}

// Get finds a drink by id or returns not found.
func (s DrinkRepositoryStub) Get(ctx context.Context, id string) (*model.Drink, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, d := range s.Items {
		if d.ID == id {
			drink := d.Clone()
			return &drink, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in a slice and records inserts.
type OrderRepositoryStub struct {
	Err error

	mu     sync.Mutex
	Orders []model.Order
}

// Insert appends the order unless an error is configured.
func (s *OrderRepositoryStub) Insert(ctx context.Context, order model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Orders = append(s.Orders, order.Clone())
	return nil
}

// Get returns a stored order by id.
func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o.Clone()
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns matching orders, newest first.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Order
	for i := len(s.Orders) - 1; i >= 0; i-- {
		if filter.Match(&s.Orders[i]) {
			out = append(out, s.Orders[i].Clone())
		}
	}
	return out, nil
}

// Update applies fn to the stored order.
func (s *OrderRepositoryStub) Update(ctx context.Context, id string, fn func(*model.Order) error) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Orders {
		if s.Orders[i].ID != id {
			continue
		}
		working := s.Orders[i].Clone()
		if err := fn(&working); err != nil {
			return nil, err
		}
		s.Orders[i] = working.Clone()
		return &working, nil
	}
	return nil, domainErrors.ErrNotFound
}
