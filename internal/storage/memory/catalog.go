package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/coffeeshop/internal/domain/model"
)

var errEmptyCatalog = errors.New("catalog has no drinks")

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// DefaultMenu is the built-in drink catalog.
func DefaultMenu() []model.Drink {
	return []model.Drink{
		{
			ID:          "1",
			Name:        "Espresso",
			Description: "Rich, bold shot of pure coffee",
			Prices: []model.SizePrice{
				{Size: "small", Price: price("2.0")},
				{Size: "medium", Price: price("2.5")},
				{Size: "large", Price: price("3.0")},
			},
		},
		{
			ID:          "2",
			Name:        "Latte",
			Description: "Smooth espresso with steamed milk",
			Prices: []model.SizePrice{
				{Size: "small", Price: price("3.5")},
				{Size: "medium", Price: price("3.9")},
				{Size: "large", Price: price("4.3")},
			},
		},
		{
			ID:          "3",
			Name:        "Iced Americano",
			Description: "Espresso shots over ice with cold water",
			Prices: []model.SizePrice{
				{Size: "medium", Price: price("2.5")},
				{Size: "large", Price: price("3.0")},
			},
		},
		{
			ID:          "4",
			Name:        "Cappuccino",
			Description: "Classic Italian blend with velvety microfoam",
			Prices: []model.SizePrice{
				{Size: "small", Price: price("2.0")},
				{Size: "medium", Price: price("3.0")},
				{Size: "large", Price: price("3.5")},
			},
		},
		{
			ID:          "5",
			Name:        "Mocha",
			Description: "Rich espresso meets premium dark chocolate",
			Prices: []model.SizePrice{
				{Size: "small", Price: price("2.0")},
				{Size: "medium", Price: price("3.5")},
				{Size: "large", Price: price("4.0")},
			},
		},
		{
			ID:          "6",
			Name:        "Cold Brew",
			Description: "12-hour steeped coffee with natural sweetness",
			Prices: []model.SizePrice{
				{Size: "small", Price: price("2.0")},
				{Size: "medium", Price: price("2.8")},
				{Size: "large", Price: price("3.3")},
			},
		},
	}
}

type catalogFileDrink struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Prices      []struct {
		Size  string          `json:"size"`
		Price decimal.Decimal `json:"price"`
	} `json:"prices"`
}

// LoadCatalogFile reads a JSON array of drinks.
func LoadCatalogFile(path string) ([]model.Drink, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var raw []catalogFileDrink
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}

	drinks := make([]model.Drink, 0, len(raw))
	for _, r := range raw {
		d := model.Drink{ID: r.ID, Name: r.Name, Description: r.Description}
		for _, p := range r.Prices {
			d.Prices = append(d.Prices, model.SizePrice{Size: p.Size, Price: p.Price})
		}
		drinks = append(drinks, d)
	}

	if err := ValidateCatalog(drinks); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return drinks, nil
}

// ValidateCatalog checks ids, names and sizes are well formed.
func ValidateCatalog(drinks []model.Drink) error {
	if len(drinks) == 0 {
		return errEmptyCatalog
	}

	ids := make(map[string]struct{}, len(drinks))
	for i, d := range drinks {
		if d.ID == "" {
			return fmt.Errorf("drink #%d: empty id", i)
		}
		if _, dup := ids[d.ID]; dup {
			return fmt.Errorf("drink %s: duplicate id", d.ID)
		}
		ids[d.ID] = struct{}{}

		if d.Name == "" {
			return fmt.Errorf("drink %s: empty name", d.ID)
		}
		if len(d.Prices) == 0 {
			return fmt.Errorf("drink %s: no sizes", d.ID)
		}

		sizes := make(map[string]struct{}, len(d.Prices))
		for _, p := range d.Prices {
			if p.Size == "" {
				return fmt.Errorf("drink %s: empty size", d.ID)
			}
			if _, dup := sizes[p.Size]; dup {
				return fmt.Errorf("drink %s: duplicate size %s", d.ID, p.Size)
			}
			sizes[p.Size] = struct{}{}
			if p.Price.IsNegative() {
				return fmt.Errorf("drink %s: negative price for %s", d.ID, p.Size)
			}
		}
	}
	return nil
}
