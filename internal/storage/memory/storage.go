package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	domainErrors "github.com/polkiloo/coffeeshop/internal/domain/errors"
	"github.com/polkiloo/coffeeshop/internal/domain/model"
	"github.com/polkiloo/coffeeshop/internal/domain/repository"
)

// Storage acts as repository facade backed by process memory. Everything is
// lost on restart.
type Storage struct {
	logger *slog.Logger

	drinks    []model.Drink
	drinkByID map[string]int

	mu     sync.RWMutex
	orders map[string]*model.Order
	// insertion order of order ids
	sequence []string
}

type drinkRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage serving the given catalog.
func New(drinks []model.Drink, logger *slog.Logger) (*Storage, error) {
	if err := ValidateCatalog(drinks); err != nil {
		return nil, err
	}

	s := &Storage{
		logger:    logger,
		drinks:    make([]model.Drink, 0, len(drinks)),
		drinkByID: make(map[string]int, len(drinks)),
		orders:    make(map[string]*model.Order),
	}
	for i, d := range drinks {
		s.drinks = append(s.drinks, d.Clone())
		s.drinkByID[d.ID] = i
	}
	return s, nil
}

// Factory methods for domain repositories.
func (s *Storage) Drinks() repository.DrinkRepository {
	return &drinkRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

// Len returns number of stored orders.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sequence)
}

// --- DrinkRepository implementation ---

func (r *drinkRepository) List(ctx context.Context) ([]model.Drink, error) {
	result := make([]model.Drink, 0, len(r.storage.drinks))
	for _, d := range r.storage.drinks {
		result = append(result, d.Clone())
	}
	return result, nil
}

func (r *drinkRepository) Get(ctx context.Context, id string) (*model.Drink, error) {
	idx, ok := r.storage.drinkByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	d := r.storage.drinks[idx].Clone()
	return &d, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Insert(ctx context.Context, order model.Order) error {
	if order.ID == "" {
		return fmt.Errorf("insert order: empty id")
	}

	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		s.logger.Warn("duplicate order id rejected", slog.String("order_id", order.ID))
		return domainErrors.ErrAlreadyExists
	}
	stored := order.Clone()
	s.orders[order.ID] = &stored
	s.sequence = append(s.sequence, order.ID)
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order := stored.Clone()
	return &order, nil
}

// List returns matching orders, most recent first.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Order, 0, len(s.sequence))
	for i := len(s.sequence) - 1; i >= 0; i-- {
		stored := s.orders[s.sequence[i]]
		if !filter.Match(stored) {
			continue
		}
		result = append(result, stored.Clone())
	}
	return result, nil
}

func (r *orderRepository) Update(ctx context.Context, id string, fn func(*model.Order) error) (*model.Order, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}

	working := stored.Clone()
	if err := fn(&working); err != nil {
		return nil, err
	}
	committed := working.Clone()
	s.orders[id] = &committed
	return &working, nil
}
