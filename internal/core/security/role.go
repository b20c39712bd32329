package security

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

// Role represents the authorization role of a caller, as issued by the
// external auth provider.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	UnknownRole Role = iota

	// Root is the platform superuser. Bypasses all scoping.
	Root

	// Administrator is a platform operator. Bypasses all scoping.
	Administrator

	// ForwarderAdmin manages a forwarder subtree. Elevated for agency-scoped
	// resources within the platform.
	ForwarderAdmin

	// ResellerAdmin manages a reseller agency and its descendants.
	ResellerAdmin

	// AgencyAdmin manages a single leaf agency.
	AgencyAdmin

	// CarrierAdmin manages one carrier. Carrier staff legitimately cross
	// agency boundaries for parcel-level resources.
	CarrierAdmin
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:    "UNKNOWN",
		Root:           "ROOT",
		Administrator:  "ADMINISTRATOR",
		ForwarderAdmin: "FORWARDER_ADMIN",
		ResellerAdmin:  "RESELLER_ADMIN",
		AgencyAdmin:    "AGENCY_ADMIN",
		CarrierAdmin:   "CARRIER_ADMIN",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // UnknownRole is intentionally excluded as it's invalid
	return map[Role]string{
		Root:           "ROOT",
		Administrator:  "ADMINISTRATOR",
		ForwarderAdmin: "FORWARDER_ADMIN",
		ResellerAdmin:  "RESELLER_ADMIN",
		AgencyAdmin:    "AGENCY_ADMIN",
		CarrierAdmin:   "CARRIER_ADMIN",
	}
}

// RoleFromString parses a role from its wire representation.
// Returns an error for unrecognized values.
func RoleFromString(s string) (Role, error) {
	for r, str := range getValidRoleStrings() {
		if str == s {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role, e.g. "FORWARDER_ADMIN".
// Safe to call on any Role value, including invalid ones.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsElevated reports whether the role bypasses agency scoping entirely.
func (r Role) IsElevated() bool {
	return r == Root || r == Administrator || r == ForwarderAdmin
}
