// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrGetRatesByServiceAndAgencyQueryIsNotConstructed = errors.New(
		"GetRatesByServiceAndAgencyQuery must be created via NewGetRatesByServiceAndAgencyQuery constructor",
	)
)

// GetRatesByServiceAndAgencyQuery retrieves the flattened rate view for one
// service at one buyer agency. Each row joins a shipping rate with its
// product and its linked pricing agreement, so the caller sees sell and cost
// side by side.
type GetRatesByServiceAndAgencyQuery struct {
	serviceID kernel.UUID
	agencyID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRatesByServiceAndAgencyQuery creates a query for the rate view of a
// service/agency pair.
func NewGetRatesByServiceAndAgencyQuery(serviceID, agencyID kernel.UUID) (GetRatesByServiceAndAgencyQuery, error) {
	if err := errors.Join(serviceID.Validate(), agencyID.Validate()); err != nil {
		return GetRatesByServiceAndAgencyQuery{}, err
	}

	return GetRatesByServiceAndAgencyQuery{
		serviceID: serviceID,
		agencyID:  agencyID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRatesByServiceAndAgencyQuery) Validate() error {
	return q.guard.Validate(ErrGetRatesByServiceAndAgencyQueryIsNotConstructed)
}

// ServiceID returns the service whose rates are requested.
func (q GetRatesByServiceAndAgencyQuery) ServiceID() kernel.UUID {
	return q.serviceID
}

// AgencyID returns the buyer agency whose rates are requested.
func (q GetRatesByServiceAndAgencyQuery) AgencyID() kernel.UUID {
	return q.agencyID
}

// RateView is one row of the flattened rate listing: the shipping rate's
// sell price next to the linked agreement's cost price.
type RateView struct {
	ID           kernel.UUID
	Name         string
	Description  string
	Unit         string
	PriceInCents int64
	CostInCents  int64
	IsActive     bool
}
