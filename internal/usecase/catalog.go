package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/coffeeshop/internal/domain/errors"
	"github.com/polkiloo/coffeeshop/internal/domain/model"
	"github.com/polkiloo/coffeeshop/internal/domain/repository"
)

// CatalogUseCase exposes the read-only drink catalog.
type CatalogUseCase struct {
	drinks repository.DrinkRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(drinks repository.DrinkRepository) *CatalogUseCase {
	return &CatalogUseCase{drinks: drinks}
}

// ListDrinks returns the whole catalog in configured order.
func (u *CatalogUseCase) ListDrinks(ctx context.Context) ([]model.Drink, error) {
	return u.drinks.List(ctx)
}

// FindDrink looks a drink up by exact id.
func (u *CatalogUseCase) FindDrink(ctx context.Context, id string) (*model.Drink, error) {
	drink, err := u.drinks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, &domainErrors.DrinkNotFoundError{DrinkID: id}
		}
		return nil, err
	}
	return drink, nil
}

// FindPrice returns the drink's price for the exact size string.
func (u *CatalogUseCase) FindPrice(drink *model.Drink, size string) (decimal.Decimal, error) {
	price, ok := drink.PriceFor(size)
	if !ok {
		return decimal.Zero, &domainErrors.SizeNotFoundError{DrinkID: drink.ID, Size: size}
	}
	return price, nil
}
