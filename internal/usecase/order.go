package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/coffeeshop/internal/domain/errors"
	"github.com/polkiloo/coffeeshop/internal/domain/model"
	"github.com/polkiloo/coffeeshop/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	resolver *PricingResolver
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, resolver *PricingResolver, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		resolver: resolver,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Create prices every requested item and stores a new PENDING order. Nothing
// is stored when any item fails to resolve.
func (u *OrderUseCase) Create(ctx context.Context, req model.CreateOrder) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	items, err := u.resolver.ResolveAll(ctx, req.Items)
	if err != nil {
		u.logger.Warn("order rejected", slog.Int("items", len(req.Items)), slog.Any("error", err))
		return nil, err
	}

	now := u.now()
	order := model.Order{
		ID:        u.newID(),
		Customer:  req.Customer,
		LineItems: items,
		Status:    model.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	u.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.Int("items", len(order.LineItems)),
		slog.String("total", order.Total().StringFixed(2)),
	)
	return &order, nil
}

// List returns orders matching filter, newest first.
func (u *OrderUseCase) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domainErrors.NewValidationError("status", statusMessage()).WithCause(domainErrors.ErrInvalidStatus)
	}
	return u.orders.List(ctx, filter)
}

// Get returns a single order.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, &domainErrors.OrderNotFoundError{OrderID: id}
		}
		return nil, err
	}
	return order, nil
}

// ChangeStatus applies a lifecycle transition and returns the updated order.
func (u *OrderUseCase) ChangeStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.NewValidationError("status", statusMessage()).WithCause(domainErrors.ErrInvalidStatus)
	}

	order, err := u.orders.Update(ctx, id, func(o *model.Order) error {
		return o.TransitionTo(status, u.now())
	})
	if err != nil {
		var transitionErr *domainErrors.TransitionError
		switch {
		case errors.As(err, &transitionErr):
			u.logger.Warn("status change rejected",
				slog.String("order_id", id),
				slog.String("from", transitionErr.From),
				slog.String("to", transitionErr.To),
			)
			return nil, err
		case errors.Is(err, domainErrors.ErrNotFound):
			return nil, &domainErrors.OrderNotFoundError{OrderID: id}
		default:
			return nil, err
		}
	}

	u.logger.Info("order status changed", slog.String("order_id", id), slog.String("status", string(status)))
	return order, nil
}

// Stats aggregates all stored orders for the dashboard.
func (u *OrderUseCase) Stats(ctx context.Context) (model.OrderStats, error) {
	orders, err := u.orders.List(ctx, model.OrderFilter{})
	if err != nil {
		return model.OrderStats{}, err
	}
	return model.ComputeStats(orders), nil
}
