package queries

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRatesByServiceAndAgencyQueryHandler reads the flattened rate view from
// the database. Uses direct SQL for read performance in the CQRS pattern; no
// aggregates are materialized.
type GetRatesByServiceAndAgencyQueryHandler struct {
	db *gorm.DB
}

// NewGetRatesByServiceAndAgencyQueryHandler creates a handler for rate view
// queries. Requires a GORM database connection for query execution.
func NewGetRatesByServiceAndAgencyQueryHandler(db *gorm.DB) GetRatesByServiceAndAgencyQueryHandler {
	return GetRatesByServiceAndAgencyQueryHandler{db: db}
}

// Handle executes the query and returns one RateView per shipping rate of
// the service/agency pair, sorted by product name. An unmatched pair yields
// an empty slice, not an error.
func (h GetRatesByServiceAndAgencyQueryHandler) Handle(
	ctx context.Context,
	query GetRatesByServiceAndAgencyQuery,
) ([]RateView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]RateView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sr.id,
			p.name,
			p.description,
			p.unit,
			sr.price_in_cents,
			pa.price_in_cents,
			sr.is_active
		FROM shipping_rates sr
		JOIN products p ON p.id = sr.product_id
		JOIN pricing_agreements pa ON pa.id = sr.pricing_agreement_id
		WHERE sr.service_id = ? AND sr.agency_id = ?
		ORDER BY p.name
	`, query.ServiceID().Bytes(), query.AgencyID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view RateView
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&view.Name,
			&view.Description,
			&view.Unit,
			&view.PriceInCents,
			&view.CostInCents,
			&view.IsActive,
		)
		if err != nil {
			return nil, err
		}

		rateID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = rateID
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
