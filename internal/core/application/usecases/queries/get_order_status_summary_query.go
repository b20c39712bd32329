package queries

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrGetOrderStatusSummaryQueryIsNotConstructed = errors.New(
		"GetOrderStatusSummaryQuery must be created via NewGetOrderStatusSummaryQuery constructor",
	)
)

// GetOrderStatusSummaryQuery derives one order's displayed status from its
// parcels. The order status is never stored; this query recomputes it on
// every read.
type GetOrderStatusSummaryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStatusSummaryQuery creates a query for an order's status summary.
func NewGetOrderStatusSummaryQuery(orderID kernel.UUID) (GetOrderStatusSummaryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusSummaryQuery{}, err
	}

	return GetOrderStatusSummaryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusSummaryQueryIsNotConstructed)
}

// OrderID returns the order whose summary is requested.
func (q GetOrderStatusSummaryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderStatusSummaryQueryResponse is the derived order status plus the
// per-status parcel breakdown.
type GetOrderStatusSummaryQueryResponse struct {
	OrderID         kernel.UUID
	OrderStatus     parcel.Status
	ParcelsCount    int
	StatusBreakdown map[parcel.Status]int
}
