package commands

import (
	"errors"
	"fmt"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var (
	ErrCreatePricingWithRateCommandIsNotConstructed = errors.New(
		"CreatePricingWithRateCommand must be created via NewCreatePricingWithRateCommand constructor",
	)
)

// CreatePricingWithRateCommand represents a request to create a pricing
// agreement together with its buyer-side shipping rate, as one atomic unit.
//
// The cost is the wholesale price the buyer pays the seller; the price is
// what the buyer charges downstream. A sell price below cost is a business
// rule violation and is rejected here, before any write.
type CreatePricingWithRateCommand struct { //nolint:recvcheck //using for validation
	productID      kernel.UUID
	serviceID      kernel.UUID
	sellerAgencyID kernel.UUID
	buyerAgencyID  kernel.UUID
	costInCents    kernel.Cents
	priceInCents   kernel.Cents
	isActive       bool

	guard guard.ConstructorGuard
}

// NewCreatePricingWithRateCommand creates a command to register an agreement
// and its rate. Validates all four identifiers, both monetary amounts, and
// the sell-not-below-cost rule.
func NewCreatePricingWithRateCommand(
	productID kernel.UUID,
	serviceID kernel.UUID,
	sellerAgencyID kernel.UUID,
	buyerAgencyID kernel.UUID,
	costInCents kernel.Cents,
	priceInCents kernel.Cents,
	isActive bool,
) (CreatePricingWithRateCommand, error) {
	cmd := CreatePricingWithRateCommand{
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setServiceID(serviceID),
		cmd.setSellerAgencyID(sellerAgencyID),
		cmd.setBuyerAgencyID(buyerAgencyID),
		cmd.setAmounts(costInCents, priceInCents),
	); err != nil {
		return CreatePricingWithRateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePricingWithRateCommand) Validate() error {
	return c.guard.Validate(ErrCreatePricingWithRateCommandIsNotConstructed)
}

// ProductID returns the priced product's id.
func (c CreatePricingWithRateCommand) ProductID() kernel.UUID {
	return c.productID
}

// ServiceID returns the priced service's id.
func (c CreatePricingWithRateCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

// SellerAgencyID returns the selling agency's id.
func (c CreatePricingWithRateCommand) SellerAgencyID() kernel.UUID {
	return c.sellerAgencyID
}

// BuyerAgencyID returns the buying agency's id.
func (c CreatePricingWithRateCommand) BuyerAgencyID() kernel.UUID {
	return c.buyerAgencyID
}

// CostInCents returns the wholesale cost to the buyer.
func (c CreatePricingWithRateCommand) CostInCents() kernel.Cents {
	return c.costInCents
}

// PriceInCents returns the buyer-facing sell price.
func (c CreatePricingWithRateCommand) PriceInCents() kernel.Cents {
	return c.priceInCents
}

// IsActive returns whether the new agreement and rate apply immediately.
func (c CreatePricingWithRateCommand) IsActive() bool {
	return c.isActive
}

func (c *CreatePricingWithRateCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product id", err)
	}
	c.productID = id
	return nil
}

func (c *CreatePricingWithRateCommand) setServiceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("service id", err)
	}
	c.serviceID = id
	return nil
}

func (c *CreatePricingWithRateCommand) setSellerAgencyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("seller agency id", err)
	}
	c.sellerAgencyID = id
	return nil
}

func (c *CreatePricingWithRateCommand) setBuyerAgencyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyer agency id", err)
	}
	c.buyerAgencyID = id
	return nil
}

func (c *CreatePricingWithRateCommand) setAmounts(cost, price kernel.Cents) error {
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
