package queries

import (
	"context"

	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
)

// ResolveDeliveryRateQueryHandler runs the hierarchical rate resolver over
// the repository-backed agency chain and delivery rate store. Unlike the
// other read models this one is not a flat SQL projection; the climb is the
// domain algorithm and lives in services.RateResolver.
type ResolveDeliveryRateQueryHandler struct {
	resolver services.RateResolver
}

// NewResolveDeliveryRateQueryHandler creates a handler for rate resolution
// queries.
func NewResolveDeliveryRateQueryHandler(
	agencies ports.AgencyRepository,
	rates ports.DeliveryRateRepository,
) ResolveDeliveryRateQueryHandler {
	return ResolveDeliveryRateQueryHandler{
		resolver: services.NewRateResolver(agencies, rates),
	}
}

// Handle resolves the effective rate for the query's request tuple.
// Returns an ObjectNotFoundError when no level of the hierarchy, including
// the forwarder base set, has an applicable rate.
func (h ResolveDeliveryRateQueryHandler) Handle(
	ctx context.Context,
	query ResolveDeliveryRateQuery,
) (ResolveDeliveryRateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveDeliveryRateQueryResponse{}, err
	}

	resolved, err := h.resolver.Resolve(
		ctx, query.AgencyID(), query.CarrierID(), query.CityID(), query.CityType())
	if err != nil {
		return ResolveDeliveryRateQueryResponse{}, err
	}

	return ResolveDeliveryRateQueryResponse{
		RateInCents:    resolved.Rate.Amount(),
		CostInCents:    resolved.Cost.Amount(),
		IsInherited:    resolved.IsInherited,
		SourceAgencyID: resolved.SourceAgencyID,
	}, nil
}
