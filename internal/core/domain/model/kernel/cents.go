package kernel

import (
	"fmt"

	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

// ErrCentsIsNotConstructed is returned when attempting to use an improperly
// initialized Cents value. Cents must be created via NewCents to ensure the
// amount is non-negative.
var ErrCentsIsNotConstructed = errs.NewValueIsRequiredError(
	"cents must be created via NewCents constructor")

// Cents is an immutable value object representing a monetary amount in
// integer cents. The amount is always non-negative; the zero value of the
// struct is invalid and fails validation.
//
// Example:
//
//	price, err := kernel.NewCents(800)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(price) // Output: 800¢
type Cents struct { //nolint:recvcheck //using for validation
	amount int64
	guard  guard.ConstructorGuard
}

// NewCents creates a Cents value. The amount must be greater than or equal
// to zero; negative amounts return a validation error.
func NewCents(amount int64) (Cents, error) {
	c := Cents{
		guard: guard.NewConstructorGuard(),
	}

	if err := c.setAmount(amount); err != nil {
		return Cents{}, err
	}

	return c, nil
}

// Validate checks if the Cents value was properly constructed.
// The zero value is invalid and will fail this validation.
func (c Cents) Validate() error {
	return c.guard.Validate(ErrCentsIsNotConstructed)
}

// Amount returns the monetary amount in cents.
func (c Cents) Amount() int64 {
	return c.amount
}

// IsEqual compares two Cents values for equality.
// Both values must be properly constructed for the comparison to succeed.
func (c Cents) IsEqual(other Cents) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}

	return c.amount == other.amount, nil
}

// IsLessThan reports whether c is strictly smaller than other.
// Both values must be properly constructed for the comparison to succeed.
func (c Cents) IsLessThan(other Cents) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}

	return c.amount < other.amount, nil
}

// String returns a human-readable representation, e.g. "800¢".
// This method implements the fmt.Stringer interface.
func (c Cents) String() string {
	return fmt.Sprintf("%d¢", c.amount)
}

// setAmount sets the amount with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, to enable self-encapsulated validation during construction.
func (c *Cents) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%d is negative", amount))
	}

	c.amount = amount
	return nil
}
