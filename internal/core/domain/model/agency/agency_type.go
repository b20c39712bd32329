package agency

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

// Type represents the kind of an agency node in the hierarchy.
// The kind determines where the node may sit in the tree and whether it may
// create children.
type Type int

const (
	// UnknownType represents an invalid or undefined agency type.
	// This value (0) helps catch uninitialized Type values.
	UnknownType Type = iota

	// Forwarder is the root-level agency type. A forwarder has no parent and
	// is the sole source of base (non-inherited) delivery rates.
	Forwarder

	// Reseller is an intermediate agency type that may both buy from and
	// sell to other agencies, and may create child agencies.
	Reseller

	// AgencyLeaf is the leaf agency type. It may not create children.
	AgencyLeaf
)

// getTypeStrings returns a map of Type values to their string representations.
func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType: "UNKNOWN",
		Forwarder:   "FORWARDER",
		Reseller:    "RESELLER",
		AgencyLeaf:  "AGENCY",
	}
}

// getValidTypeStrings returns a map of only valid Type values.
func getValidTypeStrings() map[Type]string {
	//nolint:exhaustive // UnknownType is intentionally excluded as it's invalid
	return map[Type]string{
		Forwarder:  "FORWARDER",
		Reseller:   "RESELLER",
		AgencyLeaf: "AGENCY",
	}
}

// TypeFromString parses an agency type from its wire representation.
// Returns an error for unrecognized values.
func TypeFromString(s string) (Type, error) {
	for t, str := range getValidTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause(
		"agency type", fmt.Errorf("%q is not a valid agency type", s))
}

// Validate checks if the Type value is valid.
// Valid types are Forwarder, Reseller and AgencyLeaf.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"agency type", fmt.Errorf("%d is not a valid agency type", t))
	}
	return nil
}

// String returns the wire name of the type, e.g. "FORWARDER".
// This method implements the fmt.Stringer interface and is safe to call on
// any Type value, including invalid ones.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanHaveChildren reports whether agencies of this type may create child
// agencies. Only Forwarder and Reseller agencies may.
func (t Type) CanHaveChildren() bool {
	return t == Forwarder || t == Reseller
}
