package pricing

import (
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// ErrAgreementIsNotConstructed is returned when an Agreement instance was
// not created through NewAgreement or RestoreAgreement.
var ErrAgreementIsNotConstructed = errors.New(
	"Agreement must be created via NewAgreement or RestoreAgreement")

// Agreement represents a seller-to-buyer wholesale price for one
// (product, service) pair. The price on the agreement is the buyer's cost.
//
// Agreement follows these invariants:
//   - All four participant/catalog identifiers are valid
//   - The cost is a non-negative amount of cents
//   - At most one agreement exists per (seller, buyer, product, service)
//     tuple; the uniqueness itself is enforced by the store
type Agreement struct {
	// id is the unique identifier for the agreement
	id kernel.UUID

	// sellerAgencyID is the agency selling the service
	sellerAgencyID kernel.UUID

	// buyerAgencyID is the agency buying the service
	buyerAgencyID kernel.UUID

	// productID and serviceID locate the catalog entry being priced
	productID kernel.UUID
	serviceID kernel.UUID

	// price is the wholesale cost to the buyer
	price kernel.Cents

	// isActive marks whether the agreement currently applies
	isActive bool

	// effectiveFrom is the instant the agreement takes effect
	effectiveFrom time.Time

	// isConstructed ensures the agreement was created via a constructor
	isConstructed bool
}

// NewAgreement creates an agreement with validation of all identifiers and
// the cost amount. The effectiveFrom instant is injected by the caller so
// handlers stay deterministic under test.
func NewAgreement(
	id kernel.UUID,
	sellerAgencyID kernel.UUID,
	buyerAgencyID kernel.UUID,
	productID kernel.UUID,
	serviceID kernel.UUID,
	price kernel.Cents,
	isActive bool,
	effectiveFrom time.Time,
) (*Agreement, error) {
	a := &Agreement{
		isActive:      isActive,
		effectiveFrom: effectiveFrom,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setSellerAgencyID(sellerAgencyID),
		a.setBuyerAgencyID(buyerAgencyID),
		a.setProductID(productID),
		a.setServiceID(serviceID),
		a.setPrice(price),
		validateEffectiveFrom(effectiveFrom),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAgreement reconstructs an agreement from persistence.
func RestoreAgreement(
	id kernel.UUID,
	sellerAgencyID kernel.UUID,
	buyerAgencyID kernel.UUID,
	productID kernel.UUID,
	serviceID kernel.UUID,
	price kernel.Cents,
	isActive bool,
	effectiveFrom time.Time,
) (*Agreement, error) {
	return NewAgreement(id, sellerAgencyID, buyerAgencyID, productID, serviceID, price, isActive, effectiveFrom)
}

// Validate ensures the Agreement instance was properly constructed.
func (a *Agreement) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAgreementIsNotConstructed
	}
	return nil
}

// IsEqual compares two agreements by their unique identifiers.
func (a *Agreement) IsEqual(other *Agreement) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the agreement's unique identifier.
func (a *Agreement) ID() kernel.UUID {
	return a.id
}

// SellerAgencyID returns the selling agency's id.
func (a *Agreement) SellerAgencyID() kernel.UUID {
	return a.sellerAgencyID
}

// BuyerAgencyID returns the buying agency's id.
func (a *Agreement) BuyerAgencyID() kernel.UUID {
	return a.buyerAgencyID
}

// ProductID returns the priced product's id.
func (a *Agreement) ProductID() kernel.UUID {
	return a.productID
}

// ServiceID returns the priced service's id.
func (a *Agreement) ServiceID() kernel.UUID {
	return a.serviceID
}

// Price returns the wholesale cost to the buyer.
func (a *Agreement) Price() kernel.Cents {
	return a.price
}

// IsActive reports whether the agreement currently applies.
func (a *Agreement) IsActive() bool {
	return a.isActive
}

// EffectiveFrom returns the instant the agreement takes effect.
func (a *Agreement) EffectiveFrom() time.Time {
	return a.effectiveFrom
}

// IsInternal reports whether the seller and buyer agency coincide.
// Internal agreements price an agency's own sales to itself and are derived,
// never stored.
func (a *Agreement) IsInternal() bool {
	return a.sellerAgencyID.IsEqual(a.buyerAgencyID)
}

// ChangePrice replaces the wholesale cost. Used by the atomic rate+agreement
// update path.
func (a *Agreement) ChangePrice(price kernel.Cents) error {
	return a.setPrice(price)
}

// SetActive toggles whether the agreement applies.
func (a *Agreement) SetActive(active bool) {
	a.isActive = active
}

func (a *Agreement) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agreement) setSellerAgencyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.sellerAgencyID = id
	return nil
}

func (a *Agreement) setBuyerAgencyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.buyerAgencyID = id
	return nil
}

func (a *Agreement) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.productID = id
	return nil
}

func (a *Agreement) setServiceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.serviceID = id
	return nil
}

func (a *Agreement) setPrice(price kernel.Cents) error {
	if err := price.Validate(); err != nil {
		return err
	}
	a.price = price
	return nil
}

func validateEffectiveFrom(effectiveFrom time.Time) error {
	if effectiveFrom.IsZero() {
		return errs.NewValueIsRequiredError("effective from")
	}
	return nil
}
