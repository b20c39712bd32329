package queries

import (
	"errors"

	"forwarding/internal/core/domain/model/deliveryrate"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var (
	ErrResolveDeliveryRateQueryIsNotConstructed = errors.New(
		"ResolveDeliveryRateQuery must be created via NewResolveDeliveryRateQuery constructor",
	)
)

// ResolveDeliveryRateQuery resolves the effective delivery rate for one
// (agency, carrier, city) request, climbing the agency chain when the
// agency has no rate of its own.
type ResolveDeliveryRateQuery struct {
	agencyID  kernel.UUID
	carrierID kernel.UUID
	cityID    *kernel.UUID
	cityType  deliveryrate.CityType

	guard guard.ConstructorGuard
}

// NewResolveDeliveryRateQuery creates a resolution query. At least one of
// cityID and cityType must be given; without either there is nothing to
// match a rate against.
func NewResolveDeliveryRateQuery(
	agencyID kernel.UUID,
	carrierID kernel.UUID,
	cityID *kernel.UUID,
	cityType deliveryrate.CityType,
) (ResolveDeliveryRateQuery, error) {
	if err := errors.Join(agencyID.Validate(), carrierID.Validate()); err != nil {
		return ResolveDeliveryRateQuery{}, err
	}
	if cityID == nil && cityType == "" {
		return ResolveDeliveryRateQuery{}, errs.NewValueIsRequiredError("city id or city type")
	}
	if cityID != nil {
		if err := cityID.Validate(); err != nil {
			return ResolveDeliveryRateQuery{}, err
		}
	}

	return ResolveDeliveryRateQuery{
		agencyID:  agencyID,
		carrierID: carrierID,
		cityID:    cityID,
		cityType:  cityType,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ResolveDeliveryRateQuery) Validate() error {
	return q.guard.Validate(ErrResolveDeliveryRateQueryIsNotConstructed)
}

// AgencyID returns the agency the resolution starts at.
func (q ResolveDeliveryRateQuery) AgencyID() kernel.UUID {
	return q.agencyID
}

// CarrierID returns the carrier the rate must belong to.
func (q ResolveDeliveryRateQuery) CarrierID() kernel.UUID {
	return q.carrierID
}

// CityID returns the destination city, nil for city-type-only requests.
func (q ResolveDeliveryRateQuery) CityID() *kernel.UUID {
	return q.cityID
}

// CityType returns the destination city type.
func (q ResolveDeliveryRateQuery) CityType() deliveryrate.CityType {
	return q.cityType
}

// ResolveDeliveryRateQueryResponse is the resolved effective rate.
type ResolveDeliveryRateQueryResponse struct {
	RateInCents    int64
	CostInCents    int64
	IsInherited    bool
	SourceAgencyID *kernel.UUID
}
