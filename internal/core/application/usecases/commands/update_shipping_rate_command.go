package commands

import (
	"errors"
	"fmt"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrUpdateShippingRateCommandIsNotConstructed = errors.New(
	"UpdateShippingRateCommand must be created via NewUpdateShippingRateCommand constructor",
)

// UpdateShippingRateCommand represents a request to change a shipping rate
// and its linked agreement together. A partial update, rate changed but
// agreement not, must never be observable.
type UpdateShippingRateCommand struct { //nolint:recvcheck //using for validation
	rateID       kernel.UUID
	costInCents  kernel.Cents
	priceInCents kernel.Cents
	isActive     bool

	guard guard.ConstructorGuard
}

// NewUpdateShippingRateCommand creates a command to update a rate and its
// agreement. The same sell-not-below-cost rule as creation applies.
func NewUpdateShippingRateCommand(
	rateID kernel.UUID,
	costInCents kernel.Cents,
	priceInCents kernel.Cents,
	isActive bool,
) (UpdateShippingRateCommand, error) {
	cmd := UpdateShippingRateCommand{
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRateID(rateID),
		cmd.setAmounts(costInCents, priceInCents),
	); err != nil {
		return UpdateShippingRateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShippingRateCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShippingRateCommandIsNotConstructed)
}

// RateID returns the shipping rate being updated.
func (c UpdateShippingRateCommand) RateID() kernel.UUID {
	return c.rateID
}

// CostInCents returns the new wholesale cost.
func (c UpdateShippingRateCommand) CostInCents() kernel.Cents {
	return c.costInCents
}

// PriceInCents returns the new sell price.
func (c UpdateShippingRateCommand) PriceInCents() kernel.Cents {
	return c.priceInCents
}

// IsActive returns whether the rate and agreement stay active.
func (c UpdateShippingRateCommand) IsActive() bool {
	return c.isActive
}

func (c *UpdateShippingRateCommand) setRateID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("rate id", err)
	}
	c.rateID = id
	return nil
}

func (c *UpdateShippingRateCommand) setAmounts(cost, price kernel.Cents) error {
	if err := cost.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("cost in cents", err)
	}
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price in cents", err)
	}
	belowCost, err := price.IsLessThan(cost)
	if err != nil {
		return err
	}
	if belowCost {
		return errs.NewValueIsInvalidErrorWithCause("price in cents",
			fmt.Errorf("sell price %s is below cost %s", price, cost))
	}

	c.costInCents = cost
	c.priceInCents = price
	return nil
}
