package queries

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetServicesWithRatesQueryHandler reads an agency's service catalog from
// the database: every service the agency holds shipping rates for, each with
// its flattened rate rows.
type GetServicesWithRatesQueryHandler struct {
	db *gorm.DB
}

// NewGetServicesWithRatesQueryHandler creates a handler for service catalog
// queries. Requires a GORM database connection for query execution.
func NewGetServicesWithRatesQueryHandler(db *gorm.DB) GetServicesWithRatesQueryHandler {
	return GetServicesWithRatesQueryHandler{db: db}
}

// Handle executes the query and returns the services sorted by name, rates
// within each service sorted by product name. An agency with no rates yields
// an empty slice.
func (h GetServicesWithRatesQueryHandler) Handle(
	ctx context.Context,
	query GetServicesWithRatesQuery,
) ([]ServiceWithRates, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	services := make([]ServiceWithRates, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.name,
			sr.id,
			p.name,
			p.description,
			p.unit,
			sr.price_in_cents,
			pa.price_in_cents,
			sr.is_active
		FROM shipping_rates sr
		JOIN services s ON s.id = sr.service_id
		JOIN products p ON p.id = sr.product_id
		JOIN pricing_agreements pa ON pa.id = sr.pricing_agreement_id
		WHERE sr.agency_id = ?
		ORDER BY s.name, p.name
	`, query.AgencyID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var serviceID, rateID uuid.UUID
		var serviceName string
		var view RateView

		err = rows.Scan(
			&serviceID,
			&serviceName,
			&rateID,
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

		if view.ID, err = kernel.UUIDFromBytes(rateID[:]); err != nil {
			return nil, err
		}
		sid, idErr := kernel.UUIDFromBytes(serviceID[:])
		if idErr != nil {
			return nil, idErr
		}

		// Rows arrive sorted by service, so a new service id starts a group.
		if len(services) == 0 || !services[len(services)-1].ServiceID.IsEqual(sid) {
			services = append(services, ServiceWithRates{
				ServiceID:   sid,
				ServiceName: serviceName,
				Rates:       make([]RateView, 0, 1),
			})
		}
		last := len(services) - 1
		services[last].Rates = append(services[last].Rates, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}
