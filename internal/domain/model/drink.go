package model

import "github.com/shopspring/decimal"

// SizePrice is the price of a drink in one size.
type SizePrice struct {
	Size  string
	Price decimal.Decimal
}

// Drink is a catalog entry. Drinks are defined at startup and never mutated.
type Drink struct {
	ID          string
	Name        string
	Description string
	Prices      []SizePrice
}

// PriceFor returns the price for the exact size string. Sizes are matched
// case-sensitively and without trimming.
func (d Drink) PriceFor(size string) (decimal.Decimal, bool) {
	for _, p := range d.Prices {
		if p.Size == size {
			return p.Price, true
		}
	}
	return decimal.Zero, false
}

// Clone returns a copy that does not share the price slice.
func (d Drink) Clone() Drink {
	d.Prices = append([]SizePrice(nil), d.Prices...)
	return d
}
