package queries

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrGetServicesWithRatesQueryIsNotConstructed = errors.New(
		"GetServicesWithRatesQuery must be created via NewGetServicesWithRatesQuery constructor",
	)
)

// GetServicesWithRatesQuery retrieves every service offered to one buyer
// agency together with its flattened rate rows. Backs the agency catalog
// screen, where rates are grouped under their service.
type GetServicesWithRatesQuery struct {
	agencyID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetServicesWithRatesQuery creates a query for an agency's service catalog.
func NewGetServicesWithRatesQuery(agencyID kernel.UUID) (GetServicesWithRatesQuery, error) {
	if err := agencyID.Validate(); err != nil {
		return GetServicesWithRatesQuery{}, err
	}

	return GetServicesWithRatesQuery{
		agencyID: agencyID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetServicesWithRatesQuery) Validate() error {
	return q.guard.Validate(ErrGetServicesWithRatesQueryIsNotConstructed)
}

// AgencyID returns the buyer agency whose catalog is requested.
func (q GetServicesWithRatesQuery) AgencyID() kernel.UUID {
	return q.agencyID
}

// ServiceWithRates is one service and the rates the agency holds for it.
type ServiceWithRates struct {
	ServiceID   kernel.UUID
	ServiceName string
	Rates       []RateView
}
