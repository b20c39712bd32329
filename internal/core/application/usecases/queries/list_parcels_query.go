package queries

import (
	"errors"
	"fmt"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/security"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var (
	ErrListParcelsQueryIsNotConstructed = errors.New(
		"ListParcelsQuery must be created via NewListParcelsQuery constructor",
	)
)

// ReadyFor filters the parcel listing to parcels awaiting the next handling
// step.
type ReadyFor string

const (
	// ReadyForNothing disables the readiness filter.
	ReadyForNothing ReadyFor = ""

	// ReadyForDispatch selects palletized parcels awaiting dispatch.
	ReadyForDispatch ReadyFor = "dispatch"

	// ReadyForContainer selects parcels received in dispatch and awaiting
	// container loading.
	ReadyForContainer ReadyFor = "container"
)

// maxParcelPageSize bounds one listing page.
const maxParcelPageSize = 200

// ListParcelsQuery retrieves a page of parcels visible to the caller. The
// scope is computed by the security layer before the query is built, so the
// handler never re-derives visibility.
type ListParcelsQuery struct {
	scope    security.Scope
	readyFor ReadyFor
	page     int
	limit    int

	guard guard.ConstructorGuard
}

// NewListParcelsQuery creates a parcel listing query. Page numbering starts
// at 1.
func NewListParcelsQuery(scope security.Scope, readyFor ReadyFor, page, limit int) (ListParcelsQuery, error) {
	if readyFor != ReadyForNothing && readyFor != ReadyForDispatch && readyFor != ReadyForContainer {
		return ListParcelsQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"ready_for", fmt.Errorf("%q is not a recognized readiness filter", readyFor))
	}
	if page < 1 {
		return ListParcelsQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if limit < 1 || limit > maxParcelPageSize {
		return ListParcelsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxParcelPageSize)
	}

	return ListParcelsQuery{
		scope:    scope,
		readyFor: readyFor,
		page:     page,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

// Scope returns the caller's visibility scope.
func (q ListParcelsQuery) Scope() security.Scope {
	return q.scope
}

// ReadyFor returns the readiness filter.
func (q ListParcelsQuery) ReadyFor() ReadyFor {
	return q.readyFor
}

// Page returns the 1-based page number.
func (q ListParcelsQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q ListParcelsQuery) Limit() int {
	return q.limit
}

// ParcelRow is one row of the parcel listing.
type ParcelRow struct {
	ID       kernel.UUID
	OrderID  kernel.UUID
	AgencyID kernel.UUID
	HBL      string
	Status   parcel.Status
}

// ListParcelsQueryResponse is one page of parcels plus the total matching
// row count for pagination.
type ListParcelsQueryResponse struct {
	Parcels []ParcelRow
	Total   int64
}
