package security

import (
	"fmt"

	"forwarding/internal/pkg/errs"
)

// Action identifies one operation subject to a capability check.
type Action int

const (
	// UnknownAction represents an invalid or undefined action.
	UnknownAction Action = iota

	// CreateAgency creates a child agency under the caller's agency.
	CreateAgency

	// UpdateAgency patches an existing agency.
	UpdateAgency

	// CreatePricing creates a pricing agreement together with its rate.
	CreatePricing

	// UpdateRate changes a shipping rate and its linked agreement.
	UpdateRate

	// ViewRates reads rate views and resolved delivery rates.
	ViewRates

	// ViewParcels lists parcels and order status summaries.
	ViewParcels

	// ImportStatusEvents stages carrier status reports for backfill.
	ImportStatusEvents
)

// getActionStrings returns a map of Action values to their string
// representations.
func getActionStrings() map[Action]string {
	return map[Action]string{
		UnknownAction:      "UNKNOWN",
		CreateAgency:       "CREATE_AGENCY",
		UpdateAgency:       "UPDATE_AGENCY",
		CreatePricing:      "CREATE_PRICING",
		UpdateRate:         "UPDATE_RATE",
		ViewRates:          "VIEW_RATES",
		ViewParcels:        "VIEW_PARCELS",
		ImportStatusEvents: "IMPORT_STATUS_EVENTS",
	}
}

// Validate checks if the Action value is valid.
func (a Action) Validate() error {
	if a == UnknownAction {
		return errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("%d is not a valid action", a))
	}
	if _, ok := getActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// String returns the wire name of the action, e.g. "CREATE_AGENCY".
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "UNKNOWN"
}
