package services

import (
	"forwarding/internal/core/domain/model/parcel"
)

// OrderStatusSummary describes the derived status of an order.
// The order status is never stored; it is recomputed from the parcels.
type OrderStatusSummary struct {
	OrderStatus  parcel.Status
	ParcelsCount int
	Breakdown    map[parcel.Status]int
}

// OrderStatusAggregator derives an order's displayed status from the
// statuses of its parcels.
//
// Aggregation rule:
//   - If every parcel shares one status, that is the order status.
//   - Otherwise the status held by the largest number of parcels wins.
//   - Ties are broken toward the least advanced status among the most
//     common ones, so an order never looks further along than its slowest
//     large parcel group.
//
// An order with no parcels yields UnknownStatus with a zero count.
type OrderStatusAggregator struct{}

// NewOrderStatusAggregator creates a new OrderStatusAggregator instance.
func NewOrderStatusAggregator() OrderStatusAggregator {
	return OrderStatusAggregator{}
}

// Aggregate computes the summary for the given parcel statuses.
// Returns an error when any status is invalid.
func (a OrderStatusAggregator) Aggregate(statuses []parcel.Status) (OrderStatusSummary, error) {
	breakdown := make(map[parcel.Status]int, len(statuses))
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return OrderStatusSummary{}, err
		}
		breakdown[s]++
	}

	summary := OrderStatusSummary{
		OrderStatus:  parcel.UnknownStatus,
		ParcelsCount: len(statuses),
		Breakdown:    breakdown,
	}

	if len(statuses) == 0 {
		return summary, nil
	}

	best := parcel.UnknownStatus
	bestCount := 0
	for status, count := range breakdown {
		switch {
		case count > bestCount:
			best = status
			bestCount = count
		case count == bestCount && best.IsMoreAdvancedThan(status):
			// Tie: prefer the least advanced status.
			best = status
		}
	}

	summary.OrderStatus = best
	return summary, nil
}
