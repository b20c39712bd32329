package security

import (
	"context"
	"errors"

	"forwarding/internal/core/domain/model/agency"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// maxTreeDepth bounds descendant expansion. The hierarchy invariant keeps
// trees shallow; hitting this limit means corrupt data.
const maxTreeDepth = 32

// ErrTreeTooDeep is returned when descendant expansion exceeds maxTreeDepth
// levels.
var ErrTreeTooDeep = errors.New("agency tree exceeds maximum depth")

// childSource yields the direct children of an agency. Implemented by
// ports.AgencyRepository; declared here so scoping depends only on what it
// consumes.
type childSource interface {
	GetChildren(ctx context.Context, id kernel.UUID) ([]*agency.Agency, error)
}

// Scope is the set of agencies a caller may read. All set means the caller
// sees every agency and AgencyIDs is left empty.
type Scope struct {
	All       bool
	AgencyIDs []kernel.UUID
}

// Contains reports whether the given agency is inside the scope.
func (s Scope) Contains(agencyID kernel.UUID) bool {
	if s.All {
		return true
	}
	for _, id := range s.AgencyIDs {
		if id.IsEqual(agencyID) {
			return true
		}
	}
	return false
}

// VisibleAgencies derives the caller's scope.
//
// Elevated callers and carrier staff see everything. Agency callers see
// their own agency plus every descendant, expanded level by level with a
// visited set. A caller with neither an agency nor a carrier and no elevated
// role is rejected.
func VisibleAgencies(ctx context.Context, caller Caller, agencies childSource) (Scope, error) {
	if caller.IsElevated() || caller.IsCarrierScoped() {
		return Scope{All: true}, nil
	}
	if caller.AgencyID() == nil {
		return Scope{}, errs.NewValueIsRequiredError("agency or carrier membership")
	}

	root := *caller.AgencyID()
	visited := map[kernel.UUID]struct{}{root: {}}
	ids := []kernel.UUID{root}

	frontier := []kernel.UUID{root}
	for depth := 0; len(frontier) > 0; depth++ {
		if depth > maxTreeDepth {
			return Scope{}, ErrTreeTooDeep
		}

		var next []kernel.UUID
		for _, id := range frontier {
			children, err := agencies.GetChildren(ctx, id)
			if err != nil {
				return Scope{}, err
			}
			for _, child := range children {
				if _, seen := visited[child.ID()]; seen {
					continue
				}
				visited[child.ID()] = struct{}{}
				ids = append(ids, child.ID())
				next = append(next, child.ID())
			}
		}
		frontier = next
	}

	return Scope{AgencyIDs: ids}, nil
}

// Descendants expands the full descendant id set of one agency, excluding
// the agency itself. Used when creating children and for reporting.
func Descendants(ctx context.Context, agencyID kernel.UUID, agencies childSource) ([]kernel.UUID, error) {
	scope, err := VisibleAgencies(ctx, mustAgencyCaller(agencyID), agencies)
	if err != nil {
		return nil, err
	}

	descendants := make([]kernel.UUID, 0, len(scope.AgencyIDs))
	for _, id := range scope.AgencyIDs {
		if !id.IsEqual(agencyID) {
			descendants = append(descendants, id)
		}
	}
	return descendants, nil
}

// mustAgencyCaller builds a synthetic agency-scoped caller for internal
// expansion. The agency id is already validated by the caller.
func mustAgencyCaller(agencyID kernel.UUID) Caller {
	return Caller{role: AgencyAdmin, agencyID: &agencyID}
}
