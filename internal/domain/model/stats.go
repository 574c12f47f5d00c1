package model

import "github.com/shopspring/decimal"

// OrderStats summarizes orders for the operations dashboard.
type OrderStats struct {
	TotalOrders       int
	PendingOrders     int
	CompletedOrders   int
	CancelledOrders   int
	Revenue           decimal.Decimal
	AverageOrderValue decimal.Decimal
}

// ComputeStats aggregates orders. Revenue only counts completed orders.
func ComputeStats(orders []Order) OrderStats {
	stats := OrderStats{TotalOrders: len(orders), Revenue: decimal.Zero, AverageOrderValue: decimal.Zero}
	for i := range orders {
		switch orders[i].Status {
		case OrderStatusPending:
			stats.PendingOrders++
		case OrderStatusCompleted:
			stats.CompletedOrders++
			stats.Revenue = stats.Revenue.Add(orders[i].Total())
		case OrderStatusCancelled:
			stats.CancelledOrders++
		}
	}
	if stats.CompletedOrders > 0 {
		stats.AverageOrderValue = stats.Revenue.Div(decimal.NewFromInt(int64(stats.CompletedOrders))).Round(2)
	}
	return stats
}
