package security

import (
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// Caller is the authenticated identity a request acts as. It is built from
// the auth provider's token claims at the HTTP boundary and passed through
// handlers unchanged.
type Caller struct {
	role      Role
	agencyID  *kernel.UUID
	carrierID *kernel.UUID
}

// NewCaller creates a Caller after validating the role and any attached ids.
func NewCaller(role Role, agencyID, carrierID *kernel.UUID) (Caller, error) {
	if err := role.Validate(); err != nil {
		return Caller{}, err
	}
	if agencyID != nil {
		if err := agencyID.Validate(); err != nil {
			return Caller{}, errs.NewValueIsInvalidErrorWithCause("agency id", err)
		}
	}
	if carrierID != nil {
		if err := carrierID.Validate(); err != nil {
			return Caller{}, errs.NewValueIsInvalidErrorWithCause("carrier id", err)
		}
	}
	return Caller{role: role, agencyID: agencyID, carrierID: carrierID}, nil
}

// Role returns the caller's role.
func (c Caller) Role() Role {
	return c.role
}

// AgencyID returns the caller's agency id, nil for platform and carrier staff.
func (c Caller) AgencyID() *kernel.UUID {
	return c.agencyID
}

// CarrierID returns the caller's carrier id, nil for non-carrier callers.
func (c Caller) CarrierID() *kernel.UUID {
	return c.carrierID
}

// IsElevated reports whether the caller bypasses agency scoping.
func (c Caller) IsElevated() bool {
	return c.role.IsElevated()
}

// IsCarrierScoped reports whether the caller acts on behalf of a carrier.
// Carrier staff see parcel-level resources across agency boundaries.
func (c Caller) IsCarrierScoped() bool {
	return c.carrierID != nil
}

// ManagesCarrier reports whether the caller may administer the given carrier.
func (c Caller) ManagesCarrier(carrierID kernel.UUID) bool {
	if c.IsElevated() {
		return true
	}
	return c.carrierID != nil && c.carrierID.IsEqual(carrierID)
}
