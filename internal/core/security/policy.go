package security

import (
	"forwarding/internal/core/domain/model/kernel"
)

// capabilities is the role by action table consulted by CanPerform. A missing
// entry means the role may not perform the action at all, regardless of
// ownership.
func capabilities() map[Role]map[Action]bool {
	all := map[Action]bool{
		CreateAgency:       true,
		UpdateAgency:       true,
		CreatePricing:      true,
		UpdateRate:         true,
		ViewRates:          true,
		ViewParcels:        true,
		ImportStatusEvents: true,
	}

	return map[Role]map[Action]bool{
		Root:           all,
		Administrator:  all,
		ForwarderAdmin: all,
		ResellerAdmin: {
			CreateAgency:  true,
			UpdateAgency:  true,
			CreatePricing: true,
			UpdateRate:    true,
			ViewRates:     true,
			ViewParcels:   true,
		},
		AgencyAdmin: {
			UpdateAgency: true,
			UpdateRate:   true,
			ViewRates:    true,
			ViewParcels:  true,
		},
		CarrierAdmin: {
			ViewRates:          true,
			ViewParcels:        true,
			ImportStatusEvents: true,
		},
	}
}

// CanPerform reports whether the caller's role allows the action at all.
// It says nothing about which rows the caller may touch; that is CanAccess.
func CanPerform(caller Caller, action Action) bool {
	allowed, ok := capabilities()[caller.Role()]
	if !ok {
		return false
	}
	return allowed[action]
}

// CanAccess decides whether the caller may perform the action against a
// resource owned by the given agency or carrier.
//
// Decision order: the role must hold the capability; elevated roles then pass
// unconditionally; carrier callers pass for resources of their own carrier,
// and for agency-owned parcel-level resources; agency callers pass only when
// the owner agency is inside their visible set. The visible set is supplied
// by the caller of this function (see VisibleAgencies) so the decision itself
// stays pure.
func CanAccess(
	caller Caller,
	action Action,
	ownerAgencyID *kernel.UUID,
	ownerCarrierID *kernel.UUID,
	visibleAgencies []kernel.UUID,
) bool {
	if !CanPerform(caller, action) {
		return false
	}
	if caller.IsElevated() {
		return true
	}

	if ownerCarrierID != nil {
		return caller.ManagesCarrier(*ownerCarrierID)
	}

	if caller.IsCarrierScoped() {
		// Carrier staff cross agency boundaries for parcel-level reads.
		return action == ViewParcels || action == ImportStatusEvents
	}

	if ownerAgencyID == nil {
		return false
	}
	for _, id := range visibleAgencies {
		if id.IsEqual(*ownerAgencyID) {
			return true
		}
	}
	return false
}
