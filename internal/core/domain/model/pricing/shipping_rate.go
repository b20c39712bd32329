package pricing

import (
	"errors"
	"fmt"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// ErrShippingRateIsNotConstructed is returned when a ShippingRate instance
// was not created through NewShippingRate or RestoreShippingRate.
var ErrShippingRateIsNotConstructed = errors.New(
	"ShippingRate must be created via NewShippingRate or RestoreShippingRate")

// Scope represents the visibility of a shipping rate.
type Scope int

const (
	// UnknownScope represents an invalid or undefined scope.
	UnknownScope Scope = iota

	// Public rates are visible to every caller that may see the owning agency.
	Public

	// Private rates are visible to the owning agency only.
	Private
)

// getScopeStrings returns a map of Scope values to their string representations.
func getScopeStrings() map[Scope]string {
	return map[Scope]string{
		UnknownScope: "UNKNOWN",
		Public:       "PUBLIC",
		Private:      "PRIVATE",
	}
}

// Validate checks if the Scope value is valid.
func (s Scope) Validate() error {
	if s != Public && s != Private {
		return errs.NewValueIsInvalidErrorWithCause(
			"rate scope", fmt.Errorf("%d is not a valid rate scope", s))
	}
	return nil
}

// String returns the wire name of the scope, e.g. "PUBLIC".
func (s Scope) String() string {
	if str, ok := getScopeStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ShippingRate is the buyer agency's sell-side price for a product/service,
// linked at creation time to exactly one pricing agreement.
//
// The invariant that the sell price is not below the linked agreement's cost
// is a business rule checked at the request boundary, not here: restoring a
// historical rate whose agreement cost has since risen must not fail.
type ShippingRate struct {
	// id is the unique identifier for the rate
	id kernel.UUID

	// productID and serviceID locate the catalog entry being sold
	productID kernel.UUID
	serviceID kernel.UUID

	// agencyID is the buyer agency that owns and sells under this rate
	agencyID kernel.UUID

	// agreementID links the rate to the wholesale agreement it derives from
	agreementID kernel.UUID

	// price is the buyer-facing sell price
	price kernel.Cents

	// scope controls rate visibility, Public by default
	scope Scope

	// isActive marks whether the rate currently applies
	isActive bool

	// effectiveFrom is the instant the rate takes effect
	effectiveFrom time.Time

	// isConstructed ensures the rate was created via a constructor
	isConstructed bool
}

// NewShippingRate creates a shipping rate owned by the buyer agency and
// linked to the given agreement. The scope defaults to Public when the zero
// value is passed.
func NewShippingRate(
	id kernel.UUID,
	productID kernel.UUID,
	serviceID kernel.UUID,
	agencyID kernel.UUID,
	agreementID kernel.UUID,
	price kernel.Cents,
	scope Scope,
	isActive bool,
	effectiveFrom time.Time,
) (*ShippingRate, error) {
	if scope == UnknownScope {
		scope = Public
	}

	r := &ShippingRate{
		isActive:      isActive,
		effectiveFrom: effectiveFrom,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setProductID(productID),
		r.setServiceID(serviceID),
		r.setAgencyID(agencyID),
		r.setAgreementID(agreementID),
		r.setPrice(price),
		r.setScope(scope),
		validateEffectiveFrom(effectiveFrom),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreShippingRate reconstructs a shipping rate from persistence.
func RestoreShippingRate(
	id kernel.UUID,
	productID kernel.UUID,
	serviceID kernel.UUID,
	agencyID kernel.UUID,
	agreementID kernel.UUID,
	price kernel.Cents,
	scope Scope,
	isActive bool,
	effectiveFrom time.Time,
) (*ShippingRate, error) {
	return NewShippingRate(id, productID, serviceID, agencyID, agreementID, price, scope, isActive, effectiveFrom)
}

// Validate ensures the ShippingRate instance was properly constructed.
func (r *ShippingRate) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrShippingRateIsNotConstructed
	}
	return nil
}

// IsEqual compares two rates by their unique identifiers.
func (r *ShippingRate) IsEqual(other *ShippingRate) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the rate's unique identifier.
func (r *ShippingRate) ID() kernel.UUID {
	return r.id
}

// ProductID returns the sold product's id.
func (r *ShippingRate) ProductID() kernel.UUID {
	return r.productID
}

// ServiceID returns the sold service's id.
func (r *ShippingRate) ServiceID() kernel.UUID {
	return r.serviceID
}

// AgencyID returns the owning buyer agency's id.
func (r *ShippingRate) AgencyID() kernel.UUID {
	return r.agencyID
}

// AgreementID returns the linked agreement's id.
func (r *ShippingRate) AgreementID() kernel.UUID {
	return r.agreementID
}

// Price returns the buyer-facing sell price.
func (r *ShippingRate) Price() kernel.Cents {
	return r.price
}

// Scope returns the rate's visibility scope.
func (r *ShippingRate) Scope() Scope {
	return r.scope
}

// IsActive reports whether the rate currently applies.
func (r *ShippingRate) IsActive() bool {
	return r.isActive
}

// EffectiveFrom returns the instant the rate takes effect.
func (r *ShippingRate) EffectiveFrom() time.Time {
	return r.effectiveFrom
}

// ChangePrice replaces the sell price. Used by the atomic rate+agreement
// update path.
func (r *ShippingRate) ChangePrice(price kernel.Cents) error {
	return r.setPrice(price)
}

// SetActive toggles whether the rate applies.
func (r *ShippingRate) SetActive(active bool) {
	r.isActive = active
}

func (r *ShippingRate) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *ShippingRate) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.productID = id
	return nil
}

func (r *ShippingRate) setServiceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.serviceID = id
	return nil
}

func (r *ShippingRate) setAgencyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.agencyID = id
	return nil
}

func (r *ShippingRate) setAgreementID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.agreementID = id
	return nil
}

func (r *ShippingRate) setPrice(price kernel.Cents) error {
	if err := price.Validate(); err != nil {
		return err
	}
	r.price = price
	return nil
}

func (r *ShippingRate) setScope(scope Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	r.scope = scope
	return nil
}
