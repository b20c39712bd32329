package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrRenameAgencyCommandIsNotConstructed = errors.New(
	"RenameAgencyCommand must be created via NewRenameAgencyCommand constructor",
)

// RenameAgencyCommand represents a partial patch of an agency's name.
// Hierarchy placement is immutable after creation; only the name changes.
type RenameAgencyCommand struct { //nolint:recvcheck //using for validation
	agencyID kernel.UUID
	name     string

	guard guard.ConstructorGuard
}

// NewRenameAgencyCommand creates a command to rename an agency.
func NewRenameAgencyCommand(agencyID kernel.UUID, name string) (RenameAgencyCommand, error) {
	cmd := RenameAgencyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgencyID(agencyID),
		cmd.setName(name),
	); err != nil {
		return RenameAgencyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RenameAgencyCommand) Validate() error {
	return c.guard.Validate(ErrRenameAgencyCommandIsNotConstructed)
}

// AgencyID returns the agency being renamed.
func (c RenameAgencyCommand) AgencyID() kernel.UUID {
	return c.agencyID
}

// Name returns the new display name.
func (c RenameAgencyCommand) Name() string {
	return c.name
}

func (c *RenameAgencyCommand) setAgencyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agency id", err)
	}
	c.agencyID = id
	return nil
}

func (c *RenameAgencyCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}
