package queries

import (
	"context"

	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetOrderStatusSummaryQueryHandler reads parcel statuses for one order and
// feeds them through the domain aggregator. An order whose parcels disagree
// reports the plurality status, ties broken toward the least advanced.
type GetOrderStatusSummaryQueryHandler struct {
	db         *gorm.DB
	aggregator services.OrderStatusAggregator
}

// NewGetOrderStatusSummaryQueryHandler creates a handler for order status
// summary queries. Requires a GORM database connection for query execution.
func NewGetOrderStatusSummaryQueryHandler(db *gorm.DB) GetOrderStatusSummaryQueryHandler {
	return GetOrderStatusSummaryQueryHandler{
		db:         db,
		aggregator: services.NewOrderStatusAggregator(),
	}
}

// Handle executes the query and returns the derived summary. An order with
// no parcels yields UnknownStatus with a zero count rather than an error.
func (h GetOrderStatusSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusSummaryQuery,
) (GetOrderStatusSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusSummaryQueryResponse{}, err
	}

	statuses := make([]parcel.Status, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM parcels
		WHERE order_id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderStatusSummaryQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status int
		if err = rows.Scan(&status); err != nil {
			return GetOrderStatusSummaryQueryResponse{}, err
		}
		statuses = append(statuses, parcel.Status(status))
	}

	if err = rows.Err(); err != nil {
		return GetOrderStatusSummaryQueryResponse{}, err
	}

	summary, err := h.aggregator.Aggregate(statuses)
	if err != nil {
		return GetOrderStatusSummaryQueryResponse{}, err
	}

	return GetOrderStatusSummaryQueryResponse{
		OrderID:         query.OrderID(),
		OrderStatus:     summary.OrderStatus,
		ParcelsCount:    summary.ParcelsCount,
		StatusBreakdown: summary.Breakdown,
	}, nil
}
