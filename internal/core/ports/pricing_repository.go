package ports

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pricing"
)

// PricingRepository defines the persistence contract for pricing agreements
// and their derived shipping rates.
//
// The (seller, buyer, product, service) tuple is unique: AddAgreement must
// surface a ConflictError when a concurrent writer wins the race, backed by
// the store's unique constraint.
type PricingRepository interface {
	// AddAgreement persists a new pricing agreement.
	// Returns a ConflictError when an agreement for the same
	// (seller, buyer, product, service) tuple already exists.
	AddAgreement(ctx context.Context, aggregate *pricing.Agreement) error

	// UpdateAgreement persists changes to an existing agreement.
	UpdateAgreement(ctx context.Context, aggregate *pricing.Agreement) error

	// GetAgreement retrieves an agreement by its unique identifier.
	// Returns an ObjectNotFoundError for unknown ids.
	GetAgreement(ctx context.Context, id kernel.UUID) (*pricing.Agreement, error)

	// GetAgreementByTuple retrieves the agreement for one
	// (seller, buyer, product, service) tuple.
	// Returns an ObjectNotFoundError when no agreement exists.
	GetAgreementByTuple(
		ctx context.Context,
		sellerAgencyID kernel.UUID,
		buyerAgencyID kernel.UUID,
		productID kernel.UUID,
		serviceID kernel.UUID,
	) (*pricing.Agreement, error)

	// AddRate persists a new shipping rate.
	AddRate(ctx context.Context, aggregate *pricing.ShippingRate) error

	// UpdateRate persists changes to an existing shipping rate.
	UpdateRate(ctx context.Context, aggregate *pricing.ShippingRate) error

	// GetRate retrieves a shipping rate by its unique identifier.
	// Returns an ObjectNotFoundError for unknown ids.
	GetRate(ctx context.Context, id kernel.UUID) (*pricing.ShippingRate, error)
}
