package parcel

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
//
// Statuses are totally ordered by advancement:
//
//	InAgency < InPallet < InDispatch < InWarehouse < ReceivedInDispatch < Delivered
//
// The numeric value doubles as the advancement rank, which the order-status
// aggregator uses to break ties toward the least advanced status.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// InAgency is the initial status: the parcel was received at the origin agency.
	InAgency

	// InPallet means the parcel has been packed onto a pallet and is ready
	// for dispatch.
	InPallet

	// InDispatch means the parcel is travelling in a dispatch.
	InDispatch

	// InWarehouse means the parcel is held at a warehouse.
	InWarehouse

	// ReceivedInDispatch means the destination dispatch has received the
	// parcel; it is ready for container loading.
	ReceivedInDispatch

	// Delivered is the final status.
	Delivered
)

// getStatusStrings returns a map of Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:      "UNKNOWN",
		InAgency:           "IN_AGENCY",
		InPallet:           "IN_PALLET",
		InDispatch:         "IN_DISPATCH",
		InWarehouse:        "IN_WAREHOUSE",
		ReceivedInDispatch: "RECEIVED_IN_DISPATCH",
		Delivered:          "DELIVERED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		InAgency:           "IN_AGENCY",
		InPallet:           "IN_PALLET",
		InDispatch:         "IN_DISPATCH",
		InWarehouse:        "IN_WAREHOUSE",
		ReceivedInDispatch: "RECEIVED_IN_DISPATCH",
		Delivered:          "DELIVERED",
	}
}

// StatusFromString parses a parcel status from its wire representation.
// Returns an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"parcel status", fmt.Errorf("%q is not a valid parcel status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"parcel status", fmt.Errorf("%d is not a valid parcel status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "IN_PALLET".
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Rank returns the advancement rank of the status. Higher means further
// along the lifecycle.
func (s Status) Rank() int {
	return int(s)
}

// IsMoreAdvancedThan reports whether s is strictly further along the
// lifecycle than other.
func (s Status) IsMoreAdvancedThan(other Status) bool {
	return s.Rank() > other.Rank()
}

// IsFinal reports whether the status terminates the lifecycle.
func (s Status) IsFinal() bool {
	return s == Delivered
}
