// Package dto converts domain models into the shared wire types.
package dto

import (
	"github.com/polkiloo/coffeeshop/internal/domain/model"
	"github.com/polkiloo/coffeeshop/pkg/api"
)

// Drink converts a catalog drink.
func Drink(d model.Drink) api.Drink {
	prices := make([]api.SizePrice, 0, len(d.Prices))
	for _, p := range d.Prices {
		prices = append(prices, api.SizePrice{Size: p.Size, Price: api.NewAmount(p.Price)})
	}
	return api.Drink{ID: d.ID, Name: d.Name, Description: d.Description, Prices: prices}
}

// Drinks converts a catalog listing, never returning nil.
func Drinks(drinks []model.Drink) []api.Drink {
	out := make([]api.Drink, 0, len(drinks))
	for _, d := range drinks {
		out = append(out, Drink(d))
	}
	return out
}

// Order converts an order, computing its total.
func Order(o model.Order) api.Order {
	items := make([]api.OrderDrink, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, api.OrderDrink{
			ID:      li.ID,
			DrinkID: li.DrinkID,
			Name:    li.Name,
			Size:    li.Size,
			Price:   api.NewAmount(li.Price),
		})
	}

	var history []api.StatusChange
	for _, h := range o.History {
		history = append(history, api.StatusChange{From: string(h.From), To: string(h.To), At: h.At.UTC()})
	}

	return api.Order{
		ID:             o.ID,
		OrderDrinks:    items,
		Total:          api.NewAmount(o.Total()),
		Status:         string(o.Status),
		Customer:       o.Customer,
		OrderTimestamp: o.CreatedAt.UTC(),
		UpdatedAt:      o.UpdatedAt.UTC(),
		History:        history,
	}
}

// Orders converts a listing, never returning nil.
func Orders(orders []model.Order) []api.Order {
	out := make([]api.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, Order(o))
	}
	return out
}

// Stats converts dashboard stats.
func Stats(s model.OrderStats) api.OrderStats {
	return api.OrderStats{
		TotalOrders:       s.TotalOrders,
		PendingOrders:     s.PendingOrders,
		CompletedOrders:   s.CompletedOrders,
		CancelledOrders:   s.CancelledOrders,
		Revenue:           api.NewAmount(s.Revenue),
		AverageOrderValue: api.NewAmount(s.AverageOrderValue),
	}
}

// CreateOrder converts a create request into the domain command.
func CreateOrder(req api.CreateOrderRequest) model.CreateOrder {
	items := make([]model.LineItemRequest, 0, len(req.OrderDrinks))
	for _, d := range req.OrderDrinks {
		items = append(items, model.LineItemRequest{DrinkID: d.ID, Size: d.Size})
	}
	return model.CreateOrder{Items: items, Customer: req.Customer}
}
