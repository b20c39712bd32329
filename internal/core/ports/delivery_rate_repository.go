package ports

import (
	"context"

	"forwarding/internal/core/domain/model/deliveryrate"
	"forwarding/internal/core/domain/model/kernel"
)

// DeliveryRateRepository defines lookups for active delivery rates at one
// level of the agency hierarchy. The inheritance resolver climbs the tree by
// calling these per level; absence of a rate is signalled by an
// ObjectNotFoundError and is not a failure of the walk.
type DeliveryRateRepository interface {
	// GetAgencyCityRate retrieves the active city-specific rate owned
	// directly by the agency for the carrier.
	GetAgencyCityRate(
		ctx context.Context,
		agencyID kernel.UUID,
		carrierID kernel.UUID,
		cityID kernel.UUID,
	) (*deliveryrate.DeliveryRate, error)

	// GetAgencyCityTypeRate retrieves the active city-type rate (no city id)
	// owned directly by the agency for the carrier.
	GetAgencyCityTypeRate(
		ctx context.Context,
		agencyID kernel.UUID,
		carrierID kernel.UUID,
		cityType deliveryrate.CityType,
	) (*deliveryrate.DeliveryRate, error)

	// GetBaseCityRate retrieves the active forwarder-level (agency-less)
	// city-specific base rate for the carrier.
	GetBaseCityRate(
		ctx context.Context,
		carrierID kernel.UUID,
		cityID kernel.UUID,
	) (*deliveryrate.DeliveryRate, error)

	// GetBaseCityTypeRate retrieves the active forwarder-level city-type
	// base rate for the carrier.
	GetBaseCityTypeRate(
		ctx context.Context,
		carrierID kernel.UUID,
		cityType deliveryrate.CityType,
	) (*deliveryrate.DeliveryRate, error)

	// Add persists a new delivery rate.
	Add(ctx context.Context, aggregate *deliveryrate.DeliveryRate) error
}
