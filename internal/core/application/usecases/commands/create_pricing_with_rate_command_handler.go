package commands

import (
	"context"
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pricing"
	"forwarding/internal/pkg/errs"
)

// CreatePricingWithRateResult carries the two aggregates written by the
// command. IsInternal is derived: the seller and buyer agency coincide.
type CreatePricingWithRateResult struct {
	Agreement  *pricing.Agreement
	Rate       *pricing.ShippingRate
	IsInternal bool
}

// CreatePricingWithRateCommandHandler creates one pricing agreement and one
// shipping rate as a single all-or-nothing unit.
//
// Every referenced entity is checked inside the transaction, so the checks
// and the dual write observe one snapshot. Two concurrent creators of the
// same (seller, buyer, product, service) tuple race on the store's unique
// constraint; the loser receives a conflict, never a partial write.
type CreatePricingWithRateCommandHandler struct {
	uowFactory PricingUoWFactory
	now        func() time.Time
}

// NewCreatePricingWithRateCommandHandler creates a handler for agreement+rate
// creation. The clock is injected so effective-from instants are
// deterministic under test; pass nil for the system clock.
func NewCreatePricingWithRateCommandHandler(
	uowFactory PricingUoWFactory,
	now func() time.Time,
) CreatePricingWithRateCommandHandler {
	if now == nil {
		now = time.Now
	}
	return CreatePricingWithRateCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle processes the command and returns the created aggregates.
func (h *CreatePricingWithRateCommandHandler) Handle(
	ctx context.Context,
	cmd CreatePricingWithRateCommand,
) (CreatePricingWithRateResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreatePricingWithRateResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreatePricingWithRateResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := h.checkReferences(ctx, uow, cmd); err != nil {
		return CreatePricingWithRateResult{}, err
	}

	pricingRepo := uow.PricingRepository()
	_, err := pricingRepo.GetAgreementByTuple(ctx,
		cmd.SellerAgencyID(), cmd.BuyerAgencyID(), cmd.ProductID(), cmd.ServiceID())
	if err == nil {
		return CreatePricingWithRateResult{}, errs.NewConflictError(
			"pricing agreement for this seller, buyer, product and service already exists")
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return CreatePricingWithRateResult{}, err
	}

	effectiveFrom := h.now().UTC()
	agreement, err := pricing.NewAgreement(
		kernel.NewUUID(),
		cmd.SellerAgencyID(), cmd.BuyerAgencyID(),
		cmd.ProductID(), cmd.ServiceID(),
		cmd.CostInCents(), cmd.IsActive(), effectiveFrom)
	if err != nil {
		return CreatePricingWithRateResult{}, err
	}

	rate, err := pricing.NewShippingRate(
		kernel.NewUUID(),
		cmd.ProductID(), cmd.ServiceID(),
		cmd.BuyerAgencyID(), agreement.ID(),
		cmd.PriceInCents(), pricing.Public, cmd.IsActive(), effectiveFrom)
	if err != nil {
		return CreatePricingWithRateResult{}, err
	}

	if err = pricingRepo.AddAgreement(ctx, agreement); err != nil {
		return CreatePricingWithRateResult{}, err
	}
	if err = pricingRepo.AddRate(ctx, rate); err != nil {
		return CreatePricingWithRateResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreatePricingWithRateResult{}, err
	}

	return CreatePricingWithRateResult{
		Agreement:  agreement,
		Rate:       rate,
		IsInternal: agreement.IsInternal(),
	}, nil
}

// checkReferences verifies that the product and service exist and are
// active, and that both agencies exist, with a distinct error for each.
func (h *CreatePricingWithRateCommandHandler) checkReferences(
	ctx context.Context,
	uow PricingUoW,
	cmd CreatePricingWithRateCommand,
) error {
	catalog := uow.CatalogRepository()
	product, err := catalog.GetProduct(ctx, cmd.ProductID())
	if err != nil {
		return err
	}
	if !product.IsActive {
		return errs.NewValueIsInvalidError("product is not active")
	}

	service, err := catalog.GetService(ctx, cmd.ServiceID())
	if err != nil {
		return err
	}
	if !service.IsActive {
		return errs.NewValueIsInvalidError("service is not active")
	}

	agencies := uow.AgencyRepository()
	if _, err := agencies.Get(ctx, cmd.SellerAgencyID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewObjectNotFoundError("seller agency", cmd.SellerAgencyID().String())
		}
		return err
	}
	if _, err := agencies.Get(ctx, cmd.BuyerAgencyID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewObjectNotFoundError("buyer agency", cmd.BuyerAgencyID().String())
		}
		return err
	}

	return nil
}
