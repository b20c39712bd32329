package commands

import (
	"context"

	"forwarding/internal/core/domain/model/pricing"
)

// UpdateShippingRateResult carries the two aggregates changed by the
// command. IsInternal is derived: the seller and buyer agency coincide.
type UpdateShippingRateResult struct {
	Agreement  *pricing.Agreement
	Rate       *pricing.ShippingRate
	IsInternal bool
}

// UpdateShippingRateCommandHandler applies a price/status change to a
// shipping rate and its linked agreement inside one transaction.
type UpdateShippingRateCommandHandler struct {
	uowFactory PricingUoWFactory
}

// NewUpdateShippingRateCommandHandler creates a handler for atomic
// rate+agreement updates.
func NewUpdateShippingRateCommandHandler(uowFactory PricingUoWFactory) UpdateShippingRateCommandHandler {
	return UpdateShippingRateCommandHandler{uowFactory: uowFactory}
}

// Handle processes the update command and returns the updated aggregates.
// An unknown rate, or a rate whose agreement row has gone missing, rolls the
// whole operation back.
func (h *UpdateShippingRateCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateShippingRateCommand,
) (UpdateShippingRateResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateShippingRateResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateShippingRateResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pricingRepo := uow.PricingRepository()
	rate, err := pricingRepo.GetRate(ctx, cmd.RateID())
	if err != nil {
		return UpdateShippingRateResult{}, err
	}

	agreement, err := pricingRepo.GetAgreement(ctx, rate.AgreementID())
	if err != nil {
		return UpdateShippingRateResult{}, err
	}

	if err = rate.ChangePrice(cmd.PriceInCents()); err != nil {
		return UpdateShippingRateResult{}, err
	}
	rate.SetActive(cmd.IsActive())

	if err = agreement.ChangePrice(cmd.CostInCents()); err != nil {
		return UpdateShippingRateResult{}, err
	}
	agreement.SetActive(cmd.IsActive())

	if err = pricingRepo.UpdateRate(ctx, rate); err != nil {
		return UpdateShippingRateResult{}, err
	}
	if err = pricingRepo.UpdateAgreement(ctx, agreement); err != nil {
		return UpdateShippingRateResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateShippingRateResult{}, err
	}

	return UpdateShippingRateResult{
		Agreement:  agreement,
		Rate:       rate,
		IsInternal: agreement.IsInternal(),
	}, nil
}
