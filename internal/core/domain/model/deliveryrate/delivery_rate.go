package deliveryrate

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

var (
	// ErrDeliveryRateIsNotConstructed is returned when a DeliveryRate
	// instance was not created through NewDeliveryRate or RestoreDeliveryRate.
	ErrDeliveryRateIsNotConstructed = errors.New(
		"DeliveryRate must be created via NewDeliveryRate or RestoreDeliveryRate")

	// ErrBaseRateHasAgency is returned when a base rate carries an owning agency.
	ErrBaseRateHasAgency = errors.New("a base rate must not have an owning agency")

	// ErrAgencyRateWithoutAgency is returned when a non-base rate has no owning agency.
	ErrAgencyRateWithoutAgency = errors.New("a non-base rate must have an owning agency")
)

// CityType classifies destination cities for rates that are not bound to a
// single city, e.g. "CAPITAL" or "PROVINCE".
type CityType string

// Validate checks that the city type is not empty.
func (t CityType) Validate() error {
	if t == "" {
		return errs.NewValueIsRequiredError("city type")
	}
	return nil
}

// DeliveryRate prices one carrier's delivery to a city or a city type.
// Rates owned by an agency override inherited ones; base rates (no agency)
// sit at the forwarder level and terminate the inheritance chain.
type DeliveryRate struct {
	// id is the unique identifier for the rate
	id kernel.UUID

	// agencyID is the owning agency (nil for base/forwarder-level rates)
	agencyID *kernel.UUID

	// carrierID is the carrier this rate applies to
	carrierID kernel.UUID

	// cityID targets a specific city (nil for city-type rates)
	cityID *kernel.UUID

	// cityType targets a whole class of cities when cityID is nil
	cityType CityType

	// rate is the sell price, cost the wholesale price, both in cents
	rate kernel.Cents
	cost kernel.Cents

	// isBaseRate marks forwarder-level fallback rates
	isBaseRate bool

	// isActive marks whether the rate currently applies
	isActive bool

	// isConstructed ensures the rate was created via a constructor
	isConstructed bool
}

// NewDeliveryRate creates a delivery rate with validation of the
// agency/base-rate and city/city-type invariants.
func NewDeliveryRate(
	id kernel.UUID,
	agencyID *kernel.UUID,
	carrierID kernel.UUID,
	cityID *kernel.UUID,
	cityType CityType,
	rate kernel.Cents,
	cost kernel.Cents,
	isBaseRate bool,
	isActive bool,
) (*DeliveryRate, error) {
	r := &DeliveryRate{
		isBaseRate:    isBaseRate,
		isActive:      isActive,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setCarrierID(carrierID),
		r.setRate(rate),
		r.setCost(cost),
	); err != nil {
		return nil, err
	}

	if isBaseRate && agencyID != nil {
		return nil, ErrBaseRateHasAgency
	}
	if !isBaseRate && agencyID == nil {
		return nil, ErrAgencyRateWithoutAgency
	}
	if agencyID != nil {
		if err := agencyID.Validate(); err != nil {
			return nil, err
		}
	}

	if cityID == nil {
		if err := cityType.Validate(); err != nil {
			return nil, err
		}
	} else if err := cityID.Validate(); err != nil {
		return nil, err
	}

	r.agencyID = agencyID
	r.cityID = cityID
	r.cityType = cityType
	return r, nil
}

// RestoreDeliveryRate reconstructs a delivery rate from persistence.
func RestoreDeliveryRate(
	id kernel.UUID,
	agencyID *kernel.UUID,
	carrierID kernel.UUID,
	cityID *kernel.UUID,
	cityType CityType,
	rate kernel.Cents,
	cost kernel.Cents,
	isBaseRate bool,
	isActive bool,
) (*DeliveryRate, error) {
	return NewDeliveryRate(id, agencyID, carrierID, cityID, cityType, rate, cost, isBaseRate, isActive)
}

// Validate ensures the DeliveryRate instance was properly constructed.
func (r *DeliveryRate) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrDeliveryRateIsNotConstructed
	}
	return nil
}

// ID returns the rate's unique identifier.
func (r *DeliveryRate) ID() kernel.UUID {
	return r.id
}

// AgencyID returns the owning agency's id, or nil for base rates.
func (r *DeliveryRate) AgencyID() *kernel.UUID {
	return r.agencyID
}

// CarrierID returns the carrier this rate applies to.
func (r *DeliveryRate) CarrierID() kernel.UUID {
	return r.carrierID
}

// CityID returns the targeted city's id, or nil for city-type rates.
func (r *DeliveryRate) CityID() *kernel.UUID {
	return r.cityID
}

// CityType returns the targeted city class.
func (r *DeliveryRate) CityType() CityType {
	return r.cityType
}

// Rate returns the sell price in cents.
func (r *DeliveryRate) Rate() kernel.Cents {
	return r.rate
}

// Cost returns the wholesale price in cents.
func (r *DeliveryRate) Cost() kernel.Cents {
	return r.cost
}

// IsBaseRate reports whether this is a forwarder-level fallback rate.
func (r *DeliveryRate) IsBaseRate() bool {
	return r.isBaseRate
}

// IsActive reports whether the rate currently applies.
func (r *DeliveryRate) IsActive() bool {
	return r.isActive
}

func (r *DeliveryRate) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *DeliveryRate) setCarrierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.carrierID = id
	return nil
}

func (r *DeliveryRate) setRate(rate kernel.Cents) error {
	if err := rate.Validate(); err != nil {
		return err
	}
	r.rate = rate
	return nil
}

func (r *DeliveryRate) setCost(cost kernel.Cents) error {
	if err := cost.Validate(); err != nil {
		return err
	}
	r.cost = cost
	return nil
}
