package http

import (
	"strconv"

	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/model/agency"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/security"
	"forwarding/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the auth gateway after token verification.
// The service never sees raw credentials.
const (
	headerUserRole  = "X-User-Role"
	headerAgencyID  = "X-Agency-Id"
	headerCarrierID = "X-Carrier-Id"
)

const (
	defaultPageSize = 50
)

type createAgencyRequest struct {
	Name           string  `json:"name"`
	AgencyType     string  `json:"agency_type"`
	ParentAgencyID *string `json:"parent_agency_id"`
}

type updateAgencyRequest struct {
	Name *string `json:"name"`
}

type agencyResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	AgencyType        string  `json:"agency_type"`
	ParentAgencyID    *string `json:"parent_agency_id"`
	ForwarderID       string  `json:"forwarder_id"`
	ProvisioningError string  `json:"provisioning_error,omitempty"`
}

type createShippingRateRequest struct {
	ProductID      string `json:"product_id"`
	ServiceID      string `json:"service_id"`
	SellerAgencyID string `json:"seller_agency_id"`
	BuyerAgencyID  string `json:"buyer_agency_id"`
	CostInCents    int64  `json:"cost_in_cents"`
	PriceInCents   int64  `json:"price_in_cents"`
	IsActive       bool   `json:"is_active"`
}

type updateShippingRateRequest struct {
	CostInCents  int64 `json:"cost_in_cents"`
	PriceInCents int64 `json:"price_in_cents"`
	IsActive     bool  `json:"is_active"`
}

type createShippingRateResponse struct {
	RateID       string `json:"rate_id"`
	AgreementID  string `json:"agreement_id"`
	PriceInCents int64  `json:"price_in_cents"`
	CostInCents  int64  `json:"cost_in_cents"`
	IsInternal   bool   `json:"is_internal"`
}

type rateViewResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Unit         string `json:"unit"`
	PriceInCents int64  `json:"price_in_cents"`
	CostInCents  int64  `json:"cost_in_cents"`
	IsActive     bool   `json:"is_active"`
}

type serviceWithRatesResponse struct {
	ServiceID   string             `json:"service_id"`
	ServiceName string             `json:"service_name"`
	Rates       []rateViewResponse `json:"rates"`
}

type resolvedRateResponse struct {
	RateInCents    int64   `json:"rate_in_cents"`
	CostInCents    int64   `json:"cost_in_cents"`
	IsInherited    bool    `json:"is_inherited"`
	SourceAgencyID *string `json:"source_agency_id"`
}

type orderStatusSummaryResponse struct {
	OrderID         string         `json:"order_id"`
	OrderStatus     string         `json:"order_status"`
	ParcelsCount    int            `json:"parcels_count"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
}

type parcelResponse struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	AgencyID string `json:"agency_id"`
	HBL      string `json:"hbl"`
	Status   string `json:"status"`
}

type listParcelsResponse struct {
	Parcels []parcelResponse `json:"parcels"`
	Total   int64            `json:"total"`
}

func agencyToResponse(a *agency.Agency) agencyResponse {
	resp := agencyResponse{
		ID:          a.ID().String(),
		Name:        a.Name(),
		AgencyType:  a.AgencyType().String(),
		ForwarderID: a.ForwarderID().String(),
	}
	if a.ParentID() != nil {
		parent := a.ParentID().String()
		resp.ParentAgencyID = &parent
	}
	return resp
}

func rateViewToResponse(view queries.RateView) rateViewResponse {
	return rateViewResponse{
		ID:           view.ID.String(),
		Name:         view.Name,
		Description:  view.Description,
		Unit:         view.Unit,
		PriceInCents: view.PriceInCents,
		CostInCents:  view.CostInCents,
		IsActive:     view.IsActive,
	}
}

// callerFromRequest builds the security caller from the gateway's identity
// headers. A missing or unknown role means the request never passed the
// gateway and is treated as unauthenticated.
func callerFromRequest(ctx echo.Context) (security.Caller, error) {
	roleHeader := ctx.Request().Header.Get(headerUserRole)
	if roleHeader == "" {
		return security.Caller{}, errs.ErrUnauthenticated
	}

	role, err := security.RoleFromString(roleHeader)
	if err != nil {
		return security.Caller{}, errs.ErrUnauthenticated
	}

	var agencyID, carrierID *kernel.UUID
	if raw := ctx.Request().Header.Get(headerAgencyID); raw != "" {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return security.Caller{}, errs.NewValueIsInvalidErrorWithCause("agency id header", parseErr)
		}
		agencyID = &id
	}
	if raw := ctx.Request().Header.Get(headerCarrierID); raw != "" {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return security.Caller{}, errs.NewValueIsInvalidErrorWithCause("carrier id header", parseErr)
		}
		carrierID = &id
	}

	return security.NewCaller(role, agencyID, carrierID)
}

// paginationParams reads page and limit query parameters, applying defaults
// when absent. Range checks live in the query constructor.
func paginationParams(ctx echo.Context) (page, limit int, err error) {
	page, limit = 1, defaultPageSize

	if raw := ctx.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errs.NewValueIsInvalidErrorWithCause("page", err)
		}
	}
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errs.NewValueIsInvalidErrorWithCause("limit", err)
		}
	}
	return page, limit, nil
}
