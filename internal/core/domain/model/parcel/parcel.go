package parcel

import (
	"errors"
	"fmt"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New(
		"Parcel must be created via NewParcel or RestoreParcel")

	// ErrParcelAlreadyDelivered is returned when applying a status change to
	// a parcel whose lifecycle has finished.
	ErrParcelAlreadyDelivered = errors.New("parcel is already delivered")
)

// Parcel represents one order item travelling through the forwarding chain.
// It is the aggregate root for per-parcel lifecycle tracking.
//
// Parcel follows these invariants:
//   - Must have a valid unique identifier and belong to exactly one order
//   - Must carry a non-empty HBL tracking code (unique per parcel, enforced
//     by the store)
//   - Status is always a valid lifecycle status; a delivered parcel accepts
//     no further status changes
type Parcel struct {
	// id is the unique identifier for the parcel
	id kernel.UUID

	// orderID is the owning order's id
	orderID kernel.UUID

	// agencyID is the origin agency, used for data scoping
	agencyID kernel.UUID

	// hbl is the house bill of lading tracking code
	hbl string

	// status is the current lifecycle status
	status Status

	// isConstructed ensures the parcel was created via a constructor
	isConstructed bool
}

// NewParcel creates a parcel in the initial InAgency status.
func NewParcel(id kernel.UUID, orderID kernel.UUID, agencyID kernel.UUID, hbl string) (*Parcel, error) {
	p := &Parcel{
		status:        InAgency,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAgencyID(agencyID),
		p.setHBL(hbl),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a parcel from persistence with its stored status.
func RestoreParcel(
	id kernel.UUID,
	orderID kernel.UUID,
	agencyID kernel.UUID,
	hbl string,
	status Status,
) (*Parcel, error) {
	p := &Parcel{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAgencyID(agencyID),
		p.setHBL(hbl),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	p.status = status
	return p, nil
}

// Validate ensures the Parcel instance was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// OrderID returns the owning order's id.
func (p *Parcel) OrderID() kernel.UUID {
	return p.orderID
}

// AgencyID returns the origin agency's id.
func (p *Parcel) AgencyID() kernel.UUID {
	return p.agencyID
}

// HBL returns the house bill of lading tracking code.
func (p *Parcel) HBL() string {
	return p.hbl
}

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// ApplyStatus records a carrier-reported status change.
// Delivered parcels accept no further changes; everything else may move to
// any valid status, forwards or backwards, because carrier feeds correct
// earlier misreports.
func (p *Parcel) ApplyStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	if p.status == Delivered && status != Delivered {
		return ErrParcelAlreadyDelivered
	}

	p.status = status
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.orderID = id
	return nil
}

func (p *Parcel) setAgencyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.agencyID = id
	return nil
}

func (p *Parcel) setHBL(hbl string) error {
	if hbl == "" {
		return errs.NewValueIsRequiredErrorWithCause("hbl", fmt.Errorf("tracking code is empty"))
	}
	p.hbl = hbl
	return nil
}
