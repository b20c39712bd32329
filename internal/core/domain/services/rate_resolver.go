package services

import (
	"context"
	"errors"
	"fmt"

	"forwarding/internal/core/domain/model/agency"
	"forwarding/internal/core/domain/model/deliveryrate"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// maxInheritanceDepth bounds the climb over the agency chain. The hierarchy
// invariant makes trees shallow; hitting this limit means corrupt data.
const maxInheritanceDepth = 32

// ErrHierarchyCycle is returned when the parent chain revisits an agency.
// The hierarchy invariant forbids cycles, but the walk guards against
// corrupt data instead of looping forever.
var ErrHierarchyCycle = errors.New("agency hierarchy contains a cycle")

// ErrHierarchyTooDeep is returned when the parent chain exceeds
// maxInheritanceDepth levels.
var ErrHierarchyTooDeep = errors.New("agency hierarchy exceeds maximum depth")

// parentSource yields the parent of an agency. Implemented by
// ports.AgencyRepository; declared here so the resolver depends only on what
// it consumes.
type parentSource interface {
	GetParent(ctx context.Context, id kernel.UUID) (*agency.Agency, error)
}

// rateSource yields the active delivery rates visible at one level of the
// hierarchy. Implemented by ports.DeliveryRateRepository.
type rateSource interface {
	GetAgencyCityRate(
		ctx context.Context, agencyID, carrierID, cityID kernel.UUID,
	) (*deliveryrate.DeliveryRate, error)
	GetAgencyCityTypeRate(
		ctx context.Context, agencyID, carrierID kernel.UUID, cityType deliveryrate.CityType,
	) (*deliveryrate.DeliveryRate, error)
	GetBaseCityRate(
		ctx context.Context, carrierID, cityID kernel.UUID,
	) (*deliveryrate.DeliveryRate, error)
	GetBaseCityTypeRate(
		ctx context.Context, carrierID kernel.UUID, cityType deliveryrate.CityType,
	) (*deliveryrate.DeliveryRate, error)
}

// ResolvedRate is the outcome of a rate resolution.
//
// IsInherited is false only when the starting agency owns the winning rate
// directly; a rate found at any ancestor, or in the forwarder base set, is
// inherited. SourceAgencyID names the agency whose own rate won, and is nil
// when the forwarder base set supplied the rate.
type ResolvedRate struct {
	Rate           kernel.Cents
	Cost           kernel.Cents
	IsInherited    bool
	SourceAgencyID *kernel.UUID
}

// RateResolver resolves one effective delivery rate for an
// (agency, carrier, city, city type) request by climbing the agency chain.
//
// Precedence, evaluated at the starting agency first:
//  1. City-specific active rate owned directly by the agency.
//  2. City-type active rate owned directly by the agency.
//  3. The parent agency, recursively, under the same precedence.
//  4. At the forwarder root: city-specific, then city-type base rates.
//
// The absence of a rate at a level is not an error; it is the signal to
// climb one level. Only exhausting the chain and the base set fails.
type RateResolver struct {
	agencies parentSource
	rates    rateSource
}

// NewRateResolver creates a resolver over the given agency and rate sources.
func NewRateResolver(agencies parentSource, rates rateSource) RateResolver {
	return RateResolver{agencies: agencies, rates: rates}
}

// Resolve walks the hierarchy from agencyID upward and returns the first
// applicable rate under the documented precedence.
//
// Returns an ObjectNotFoundError naming the carrier, city and city type when
// no level of the hierarchy, including the forwarder base set, has an
// applicable rate.
func (r RateResolver) Resolve(
	ctx context.Context,
	agencyID kernel.UUID,
	carrierID kernel.UUID,
	cityID *kernel.UUID,
	cityType deliveryrate.CityType,
) (ResolvedRate, error) {
	if err := agencyID.Validate(); err != nil {
		return ResolvedRate{}, err
	}
	if err := carrierID.Validate(); err != nil {
		return ResolvedRate{}, err
	}
	if cityID == nil {
		if err := cityType.Validate(); err != nil {
			return ResolvedRate{}, err
		}
	}

	visited := make(map[kernel.UUID]struct{})
	return r.resolveAt(ctx, agencyID, carrierID, cityID, cityType, visited, 0)
}

// resolveAt evaluates one level of the hierarchy and recurses into the
// parent when the level has no applicable rate.
func (r RateResolver) resolveAt(
	ctx context.Context,
	agencyID kernel.UUID,
	carrierID kernel.UUID,
	cityID *kernel.UUID,
	cityType deliveryrate.CityType,
	visited map[kernel.UUID]struct{},
	depth int,
) (ResolvedRate, error) {
	if depth > maxInheritanceDepth {
		return ResolvedRate{}, ErrHierarchyTooDeep
	}
	if _, seen := visited[agencyID]; seen {
		return ResolvedRate{}, ErrHierarchyCycle
	}
	visited[agencyID] = struct{}{}

	own, err := r.lookupAgencyRate(ctx, agencyID, carrierID, cityID, cityType)
	if err != nil {
		return ResolvedRate{}, err
	}
	if own != nil {
		sourceID := agencyID
		return ResolvedRate{
			Rate:           own.Rate(),
			Cost:           own.Cost(),
			IsInherited:    depth > 0,
			SourceAgencyID: &sourceID,
		}, nil
	}

	parent, err := r.agencies.GetParent(ctx, agencyID)
	if err != nil {
		return ResolvedRate{}, err
	}
	if parent != nil {
		return r.resolveAt(ctx, parent.ID(), carrierID, cityID, cityType, visited, depth+1)
	}

	base, err := r.lookupBaseRate(ctx, carrierID, cityID, cityType)
	if err != nil {
		return ResolvedRate{}, err
	}
	if base != nil {
		return ResolvedRate{
			Rate:        base.Rate(),
			Cost:        base.Cost(),
			IsInherited: true,
		}, nil
	}

	return ResolvedRate{}, errs.NewObjectNotFoundError(
		"delivery rate",
		fmt.Sprintf("carrier %s, city %s, city type %q", carrierID, cityRef(cityID), cityType))
}

// lookupAgencyRate applies the city-specific-over-city-type precedence for
// rates owned directly by one agency. A nil result with a nil error means
// the level has no applicable rate.
func (r RateResolver) lookupAgencyRate(
	ctx context.Context,
	agencyID kernel.UUID,
	carrierID kernel.UUID,
	cityID *kernel.UUID,
	cityType deliveryrate.CityType,
) (*deliveryrate.DeliveryRate, error) {
	if cityID != nil {
		rate, err := r.rates.GetAgencyCityRate(ctx, agencyID, carrierID, *cityID)
		if err == nil {
			return rate, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
	}

	if cityType == "" {
		return nil, nil
	}

	rate, err := r.rates.GetAgencyCityTypeRate(ctx, agencyID, carrierID, cityType)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	return nil, nil
}

// lookupBaseRate applies the same precedence to the forwarder-level base set.
func (r RateResolver) lookupBaseRate(
	ctx context.Context,
	carrierID kernel.UUID,
	cityID *kernel.UUID,
	cityType deliveryrate.CityType,
) (*deliveryrate.DeliveryRate, error) {
	if cityID != nil {
		rate, err := r.rates.GetBaseCityRate(ctx, carrierID, *cityID)
		if err == nil {
			return rate, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
	}

	if cityType == "" {
		return nil, nil
	}

	rate, err := r.rates.GetBaseCityTypeRate(ctx, carrierID, cityType)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	return nil, nil
}

func cityRef(cityID *kernel.UUID) string {
	if cityID == nil {
		return "<none>"
	}
	return cityID.String()
}
