package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/coffeeshop/internal/domain/errors"
	"github.com/polkiloo/coffeeshop/internal/domain/model"
)

// PricingResolver turns raw (drink id, size) selections into priced line items.
type PricingResolver struct {
	catalog *CatalogUseCase
}

// NewPricingResolver constructs PricingResolver.
func NewPricingResolver(catalog *CatalogUseCase) *PricingResolver {
	return &PricingResolver{catalog: catalog}
}

// ResolveLineItem prices a single selection. The returned item carries copies
// of the drink name and price only.
func (r *PricingResolver) ResolveLineItem(ctx context.Context, drinkID, size string) (model.LineItem, error) {
	var verr *domainErrors.ValidationError
	if drinkID == "" {
		verr = domainErrors.NewValidationError("id", "drink id is required")
	}
	if size == "" {
		if verr == nil {
			verr = domainErrors.NewValidationError("size", "size is required")
		} else {
			verr.Add("size", "size is required")
		}
	}
	if verr != nil {
		return model.LineItem{}, verr
	}

	drink, err := r.catalog.FindDrink(ctx, drinkID)
	if err != nil {
		return model.LineItem{}, err
	}

	price, err := r.catalog.FindPrice(drink, size)
	if err != nil {
		return model.LineItem{}, err
	}

	return model.LineItem{
		DrinkID: drink.ID,
		Name:    drink.Name,
		Size:    size,
		Price:   price,
	}, nil
}

// ResolveAll prices every selection into a fresh slice, stopping at the first
// failure. Line item ids are assigned from the position in the request.
func (r *PricingResolver) ResolveAll(ctx context.Context, items []model.LineItemRequest) ([]model.LineItem, error) {
	resolved := make([]model.LineItem, 0, len(items))
	for i, item := range items {
		li, err := r.ResolveLineItem(ctx, item.DrinkID, item.Size)
		if err != nil {
			return nil, err
		}
		li.ID = fmt.Sprintf("%s-%s-%d", li.DrinkID, li.Size, i)
		resolved = append(resolved, li)
	}
	return resolved, nil
}
