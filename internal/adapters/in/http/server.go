// Package http exposes the application's REST surface. Handlers translate
// requests into commands and queries, enforce the capability and scoping
// checks, and map the error taxonomy onto status codes.
package http

import (
	"errors"
	"net/http"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/model/agency"
	"forwarding/internal/core/domain/model/deliveryrate"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/ports"
	"forwarding/internal/core/security"
	"forwarding/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createAgencyHandler  commands.CreateAgencyCommandHandler
	renameAgencyHandler  commands.RenameAgencyCommandHandler
	createPricingHandler commands.CreatePricingWithRateCommandHandler
	updateRateHandler    commands.UpdateShippingRateCommandHandler

	ratesHandler             queries.GetRatesByServiceAndAgencyQueryHandler
	servicesWithRatesHandler queries.GetServicesWithRatesQueryHandler
	resolveRateHandler       queries.ResolveDeliveryRateQueryHandler
	statusSummaryHandler     queries.GetOrderStatusSummaryQueryHandler
	listParcelsHandler       queries.ListParcelsQueryHandler

	// agencies backs visibility scoping for scoped reads.
	agencies ports.AgencyRepository
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createAgencyHandler commands.CreateAgencyCommandHandler,
	renameAgencyHandler commands.RenameAgencyCommandHandler,
	createPricingHandler commands.CreatePricingWithRateCommandHandler,
	updateRateHandler commands.UpdateShippingRateCommandHandler,
	ratesHandler queries.GetRatesByServiceAndAgencyQueryHandler,
	servicesWithRatesHandler queries.GetServicesWithRatesQueryHandler,
	resolveRateHandler queries.ResolveDeliveryRateQueryHandler,
	statusSummaryHandler queries.GetOrderStatusSummaryQueryHandler,
	listParcelsHandler queries.ListParcelsQueryHandler,
	agencies ports.AgencyRepository,
) *Server {
	return &Server{
		createAgencyHandler:      createAgencyHandler,
		renameAgencyHandler:      renameAgencyHandler,
		createPricingHandler:     createPricingHandler,
		updateRateHandler:        updateRateHandler,
		ratesHandler:             ratesHandler,
		servicesWithRatesHandler: servicesWithRatesHandler,
		resolveRateHandler:       resolveRateHandler,
		statusSummaryHandler:     statusSummaryHandler,
		listParcelsHandler:       listParcelsHandler,
		agencies:                 agencies,
	}
}

// RegisterRoutes binds the API surface onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/agencies", s.CreateAgency)
	v1.PATCH("/agencies/:id", s.UpdateAgency)
	v1.GET("/agencies/:id/services-with-rates", s.GetServicesWithRates)

	v1.POST("/shipping-rates", s.CreateShippingRate)
	v1.PUT("/shipping-rates/:id", s.UpdateShippingRate)
	v1.GET("/shipping-rates/service/:serviceId/agency/:agencyId", s.GetRates)
	v1.GET("/delivery-rates/resolve", s.ResolveDeliveryRate)

	v1.GET("/orders/:id/status-summary", s.GetOrderStatusSummary)
	v1.GET("/parcels", s.ListParcels)
}

// CreateAgency handles POST /api/v1/agencies.
func (s *Server) CreateAgency(ctx echo.Context) error {
	caller, err := callerFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if !security.CanPerform(caller, security.CreateAgency) {
		return writeError(ctx, errs.NewAccessDeniedError("create agency"))
	}

	var req createAgencyRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	agencyType, err := agency.TypeFromString(req.AgencyType)
	if err != nil {
		return writeError(ctx, err)
	}

	var parentID *kernel.UUID
	if req.ParentAgencyID != nil {
		parsed, parseErr := kernel.UUIDFromString(*req.ParentAgencyID)
		if parseErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("parent_agency_id", parseErr))
		}
		parentID = &parsed
	}

	// Non-elevated callers may only create children inside their own subtree.
	if parentID != nil && !caller.IsElevated() {
		allowed, scopeErr := s.ownsAgency(ctx, caller, security.CreateAgency, *parentID)
		if scopeErr != nil {
			return writeError(ctx, scopeErr)
		}
		if !allowed {
			return writeError(ctx, errs.NewAccessDeniedError("parent agency is outside your subtree"))
		}
	}

	cmd, err := commands.NewCreateAgencyCommand(kernel.NewUUID(), req.Name, agencyType, parentID)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createAgencyHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil && created == nil {
		return writeError(ctx, err)
	}

	resp := agencyToResponse(created)
	if err != nil {
		// The agency was committed but admin provisioning failed. Surface
		// the partial success so the client can retry provisioning.
		resp.ProvisioningError = err.Error()
	}

	return ctx.JSON(http.StatusCreated, resp)
}

// UpdateAgency handles PATCH /api/v1/agencies/:id.
func (s *Server) UpdateAgency(ctx echo.Context) error {
	caller, err := callerFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	agencyID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("agency id", err))
	}

	allowed, err := s.ownsAgency(ctx, caller, security.UpdateAgency, agencyID)
	if err != nil {
		return writeError(ctx, err)
	}
	if !allowed {
		return writeError(ctx, errs.NewAccessDeniedError("update agency"))
	}

	var req updateAgencyRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}
	if req.Name == nil {
		return writeError(ctx, errs.NewValueIsRequiredError("name"))
	}

	cmd, err := commands.NewRenameAgencyCommand(agencyID, *req.Name)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.renameAgencyHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, agencyToResponse(updated))
}

// GetServicesWithRates handles GET /api/v1/agencies/:id/services-with-rates.
func (s *Server) GetServicesWithRates(ctx echo.Context) error {
	caller, err := callerFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	agencyID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("agency id", err))
	}

	allowed, err := s.ownsAgency(ctx, caller, security.ViewRates, agencyID)
	if err != nil {
		return writeError(ctx, err)
	}
	if !allowed {
		return writeError(ctx, errs.NewAccessDeniedError("view rates"))
	}

	query, err := queries.NewGetServicesWithRatesQuery(agencyID)
	if err != nil {
		return writeError(ctx, err)
	}

	services, err := s.servicesWithRatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := make([]serviceWithRatesResponse, 0, len(services))
	for _, svc := range services {
		rates := make([]rateViewResponse, 0, len(svc.Rates))
		for _, rate := range svc.Rates {
			rates = append(rates, rateViewToResponse(rate))
		}
		resp = append(resp, serviceWithRatesResponse{
			ServiceID:   svc.ServiceID.String(),
			ServiceName: svc.ServiceName,
			Rates:       rates,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// CreateShippingRate handles POST /api/v1/shipping-rates.
func (s *Server) CreateShippingRate(ctx echo.Context) error {
	caller, err := callerFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if !security.CanPerform(caller, security.CreatePricing) {
		return writeError(ctx, errs.NewAccessDeniedError("create pricing"))
	}

	var req createShippingRateRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	productID, serviceID, sellerID, buyerID, err := parsePricingIDs(req)
	if err != nil {
		return writeError(ctx, err)
	}

	cost, err := kernel.NewCents(req.CostInCents)
	if err != nil {
		return writeError(ctx, err)
	}
	sell, err := kernel.NewCents(req.PriceInCents)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreatePricingWithRateCommand(
		productID, serviceID, sellerID, buyerID, cost, sell, req.IsActive)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.createPricingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createShippingRateResponse{
		RateID:       result.Rate.ID().String(),
		AgreementID:  result.Agreement.ID().String(),
		PriceInCents: result.Rate.Price().Amount(),
		CostInCents:  result.Agreement.Price().Amount(),
		IsInternal:   result.IsInternal,
	})
}

// UpdateShippingRate handles PUT /api/v1/shipping-rates/:id.
func (s *Server) UpdateShippingRate(ctx echo.Context) error {
	caller, err := callerFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if !security.CanPerform(caller, security.UpdateRate) {
		return writeError(ctx, errs.NewAccessDeniedError("update rate"))
	}

	rateID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("rate id", err))
	}

	var req updateShippingRateRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cost, err := kernel.NewCents(req.CostInCents)
	if err != nil {
		return writeError(ctx, err)
	}
	sell, err := kernel.NewCents(req.PriceInCents)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateShippingRateCommand(rateID, cost, sell, req.IsActive)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.updateRateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, createShippingRateResponse{
		RateID:       result.Rate.ID().String(),
		AgreementID:  result.Agreement.ID().String(),
		PriceInCents: result.Rate.Price().Amount(),
		CostInCents:  result.Agreement.Price().Amount(),
		IsInternal:   result.IsInternal,
	})
}

// GetRates handles GET /api/v1/shipping-rates/service/:serviceId/agency/:agencyId.
func (s *Server) GetRates(ctx echo.Context) error {
	caller, err := callerFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	serviceID, err := kernel.UUIDFromString(ctx.Param("serviceId"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("service id", err))
	}
	agencyID, err := kernel.UUIDFromString(ctx.Param("agencyId"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("agency id", err))
	}

	allowed, err := s.ownsAgency(ctx, caller, security.ViewRates, agencyID)
	if err != nil {
		return writeError(ctx, err)
	}
	if !allowed {
		return writeError(ctx, errs.NewAccessDeniedError("view rates"))
	}

	query, err := queries.NewGetRatesByServiceAndAgencyQuery(serviceID, agencyID)
	if err != nil {
		return writeError(ctx, err)
	}

	views, err := s.ratesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := make([]rateViewResponse, 0, len(views))
	for _, view := range views {
		resp = append(resp, rateViewToResponse(view))
	}

	return ctx.JSON(http.StatusOK, resp)
}

// ResolveDeliveryRate handles GET /api/v1/delivery-rates/resolve.
func (s *Server) ResolveDeliveryRate(ctx echo.Context) error {
	caller, err := callerFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	agencyID, err := kernel.UUIDFromString(ctx.QueryParam("agency_id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("agency_id", err))
	}
	carrierID, err := kernel.UUIDFromString(ctx.QueryParam("carrier_id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("carrier_id", err))
	}

	var cityID *kernel.UUID
	if raw := ctx.QueryParam("city_id"); raw != "" {
		parsed, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("city_id", parseErr))
		}
		cityID = &parsed
	}

	allowed, err := s.ownsAgency(ctx, caller, security.ViewRates, agencyID)
	if err != nil {
		return writeError(ctx, err)
	}
	if !allowed {
		return writeError(ctx, errs.NewAccessDeniedError("view rates"))
	}

	query, err := queries.NewResolveDeliveryRateQuery(
		agencyID, carrierID, cityID, deliveryrate.CityType(ctx.QueryParam("city_type")))
	if err != nil {
		return writeError(ctx, err)
	}

	resolved, err := s.resolveRateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := resolvedRateResponse{
		RateInCents: resolved.RateInCents,
		CostInCents: resolved.CostInCents,
		IsInherited: resolved.IsInherited,
	}
	if resolved.SourceAgencyID != nil {
		source := resolved.SourceAgencyID.String()
		resp.SourceAgencyID = &source
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetOrderStatusSummary handles GET /api/v1/orders/:id/status-summary.
func (s *Server) GetOrderStatusSummary(ctx echo.Context) error {
	if _, err := callerFromRequest(ctx); err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("order id", err))
	}

	query, err := queries.NewGetOrderStatusSummaryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	summary, err := s.statusSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	breakdown := make(map[string]int, len(summary.StatusBreakdown))
	for status, count := range summary.StatusBreakdown {
		breakdown[status.String()] = count
	}

	return ctx.JSON(http.StatusOK, orderStatusSummaryResponse{
		OrderID:         summary.OrderID.String(),
		OrderStatus:     summary.OrderStatus.String(),
		ParcelsCount:    summary.ParcelsCount,
		StatusBreakdown: breakdown,
	})
}

// ListParcels handles GET /api/v1/parcels.
func (s *Server) ListParcels(ctx echo.Context) error {
	caller, err := callerFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if !security.CanPerform(caller, security.ViewParcels) {
		return writeError(ctx, errs.NewAccessDeniedError("view parcels"))
	}

	scope, err := security.VisibleAgencies(ctx.Request().Context(), caller, s.agencies)
	if err != nil {
		return writeError(ctx, err)
	}

	page, limit, err := paginationParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListParcelsQuery(
		scope, queries.ReadyFor(ctx.QueryParam("ready_for")), page, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.listParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	parcels := make([]parcelResponse, 0, len(result.Parcels))
	for _, row := range result.Parcels {
		parcels = append(parcels, parcelResponse{
			ID:       row.ID.String(),
			OrderID:  row.OrderID.String(),
			AgencyID: row.AgencyID.String(),
			HBL:      row.HBL,
			Status:   row.Status.String(),
		})
	}

	return ctx.JSON(http.StatusOK, listParcelsResponse{
		Parcels: parcels,
		Total:   result.Total,
	})
}

// ownsAgency reports whether the caller may touch a resource owned by the
// given agency, expanding the caller's visible set when needed.
func (s *Server) ownsAgency(
	ctx echo.Context,
	caller security.Caller,
	action security.Action,
	ownerAgencyID kernel.UUID,
) (bool, error) {
	if !security.CanPerform(caller, action) {
		return false, nil
	}
	if caller.IsElevated() {
		return true, nil
	}

	scope, err := security.VisibleAgencies(ctx.Request().Context(), caller, s.agencies)
	if err != nil {
		if errors.Is(err, errs.ErrValueIsRequired) {
			return false, nil
		}
		return false, err
	}

	return security.CanAccess(caller, action, &ownerAgencyID, nil, scope.AgencyIDs), nil
}

func parsePricingIDs(req createShippingRateRequest) (productID, serviceID, sellerID, buyerID kernel.UUID, err error) {
	if productID, err = kernel.UUIDFromString(req.ProductID); err != nil {
		err = errs.NewValueIsInvalidErrorWithCause("product_id", err)
		return
	}
	if serviceID, err = kernel.UUIDFromString(req.ServiceID); err != nil {
		err = errs.NewValueIsInvalidErrorWithCause("service_id", err)
		return
	}
	if sellerID, err = kernel.UUIDFromString(req.SellerAgencyID); err != nil {
		err = errs.NewValueIsInvalidErrorWithCause("seller_agency_id", err)
		return
	}
	if buyerID, err = kernel.UUIDFromString(req.BuyerAgencyID); err != nil {
		err = errs.NewValueIsInvalidErrorWithCause("buyer_agency_id", err)
	}
	return
}
